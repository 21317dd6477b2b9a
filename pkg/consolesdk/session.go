package consolesdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Session is an authenticated handle on the console. Access tokens are not
// refreshed; log in again once ExpiresAt has passed.
type Session struct {
	client      *Client
	accessToken string
	expiresAt   time.Time
}

func (c *Client) sessionFromToken(tok *TokenResponse) *Session {
	return &Session{client: c, accessToken: tok.AccessToken, expiresAt: tok.ExpiresAt}
}

func (s *Session) AccessToken() string  { return s.accessToken }
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

func (s *Session) call(ctx context.Context, method, path string, body, out any, expectedStatus int) error {
	return s.client.call(ctx, method, path, s.accessToken, body, out, expectedStatus)
}

func orgPath(orgID string, rest ...string) string {
	p := "/v1/organizations/" + url.PathEscape(orgID)
	for _, r := range rest {
		p += "/" + url.PathEscape(r)
	}
	return p
}

func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	var out MeResponse
	if err := s.call(ctx, http.MethodGet, "/v1/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Platform admin
// ============================================================================

// ListWaitlist lists entries, optionally filtered by status.
func (s *Session) ListWaitlist(ctx context.Context, status string) ([]WaitlistEntry, error) {
	path := "/v1/admin/waitlist"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out []WaitlistEntry
	if err := s.call(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) SetWaitlistStatus(ctx context.Context, id, status string) (*SetWaitlistStatusResponse, error) {
	var out SetWaitlistStatusResponse
	path := "/v1/admin/waitlist/" + url.PathEscape(id)
	if err := s.call(ctx, http.MethodPatch, path, SetWaitlistStatusRequest{Status: status}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateCatalogEntry(ctx context.Context, req CreateCatalogEntryRequest) (*CatalogEntry, error) {
	var out CatalogEntry
	if err := s.call(ctx, http.MethodPost, "/v1/admin/catalog", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Organizations
// ============================================================================

func (s *Session) CreateInvitation(ctx context.Context, orgID string, req CreateInvitationRequest) (*CreateInvitationResponse, error) {
	var out CreateInvitationResponse
	if err := s.call(ctx, http.MethodPost, orgPath(orgID, "invitations"), req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListInvitations(ctx context.Context, orgID string) ([]Invitation, error) {
	var out []Invitation
	if err := s.call(ctx, http.MethodGet, orgPath(orgID, "invitations"), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) CancelInvitation(ctx context.Context, orgID, invitationID string) error {
	return s.call(ctx, http.MethodDelete, orgPath(orgID, "invitations", invitationID), nil, nil, http.StatusNoContent)
}

func (s *Session) ListMembers(ctx context.Context, orgID string) ([]Member, error) {
	var out []Member
	if err := s.call(ctx, http.MethodGet, orgPath(orgID, "members"), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) RemoveMember(ctx context.Context, orgID, userID string) error {
	return s.call(ctx, http.MethodDelete, orgPath(orgID, "members", userID), nil, nil, http.StatusNoContent)
}

func (s *Session) GetSubscription(ctx context.Context, orgID string) (*Subscription, error) {
	var out Subscription
	if err := s.call(ctx, http.MethodGet, orgPath(orgID, "subscription"), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// MFA
// ============================================================================

func (s *Session) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	var out TOTPEnrollResponse
	if err := s.call(ctx, http.MethodPost, "/v1/mfa/totp/enroll", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyTOTP enables MFA and returns the initial backup codes.
func (s *Session) VerifyTOTP(ctx context.Context, code string) ([]string, error) {
	var out BackupCodesResponse
	if err := s.call(ctx, http.MethodPost, "/v1/mfa/totp/verify", TOTPCodeRequest{Code: code}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.BackupCodes, nil
}

func (s *Session) RegenerateBackupCodes(ctx context.Context, code string) ([]string, error) {
	var out BackupCodesResponse
	if err := s.call(ctx, http.MethodPost, "/v1/mfa/backup-codes", TOTPCodeRequest{Code: code}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.BackupCodes, nil
}

func (s *Session) RemoveTOTP(ctx context.Context, code string) error {
	var out MFAStatusResponse
	return s.call(ctx, http.MethodDelete, "/v1/mfa/totp", TOTPCodeRequest{Code: code}, &out, http.StatusOK)
}

// ============================================================================
// Catalog
// ============================================================================

// SearchCatalog returns one page of catalog entries matching query. Pass the
// previous page's NextCursor to continue.
func (s *Session) SearchCatalog(ctx context.Context, query, cursor string, limit int) (*CatalogPage, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/v1/catalog"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out CatalogPage
	if err := s.call(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetCatalogEntry(ctx context.Context, id string) (*CatalogEntry, error) {
	var out CatalogEntry
	if err := s.call(ctx, http.MethodGet, "/v1/catalog/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

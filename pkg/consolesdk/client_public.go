package consolesdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/breachwatch/pkg/jwtx"
)

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.call(ctx, http.MethodGet, "/livez", "", nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness checks if the service is ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.call(ctx, http.MethodGet, "/readyz", "", nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetJWKS fetches the public keys that verify console access tokens.
func (c *Client) GetJWKS(ctx context.Context) (*jwtx.JWKS, error) {
	var jwks jwtx.JWKS
	if err := c.call(ctx, http.MethodGet, "/.well-known/jwks.json", "", nil, &jwks, http.StatusOK); err != nil {
		return nil, err
	}
	return &jwks, nil
}

func (c *Client) JoinWaitlist(ctx context.Context, req JoinWaitlistRequest) (*WaitlistEntry, error) {
	var entry WaitlistEntry
	if err := c.call(ctx, http.MethodPost, "/v1/waitlist", "", req, &entry, http.StatusCreated); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *Client) VerifyOnboarding(ctx context.Context, token string) (*OnboardingVerifyResponse, error) {
	var out OnboardingVerifyResponse
	path := "/v1/onboarding/verify?token=" + url.QueryEscape(token)
	if err := c.call(ctx, http.MethodGet, path, "", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CompleteOnboarding(ctx context.Context, req CompleteOnboardingRequest) (*OnboardingResponse, error) {
	var out OnboardingResponse
	if err := c.call(ctx, http.MethodPost, "/v1/onboarding/complete", "", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetInvitation(ctx context.Context, token string) (*InvitationDetailsResponse, error) {
	var out InvitationDetailsResponse
	if err := c.call(ctx, http.MethodGet, "/v1/invitations/"+url.PathEscape(token), "", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AcceptInvitation(ctx context.Context, token string, req AcceptInvitationRequest) (*AcceptInvitationResponse, error) {
	var out AcceptInvitationResponse
	path := "/v1/invitations/" + url.PathEscape(token) + "/accept"
	if err := c.call(ctx, http.MethodPost, path, "", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates with email and password. When the account has MFA
// enabled the error is a *MFARequiredError holding the challenge.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var raw json.RawMessage
	err := c.call(ctx, http.MethodPost, "/v1/auth/login", "", LoginRequest{Email: email, Password: password}, &raw, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var probe struct {
		MFARequired bool `json:"mfaRequired"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if probe.MFARequired {
		var challenge MFAChallenge
		if err := json.Unmarshal(raw, &challenge); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return nil, &MFARequiredError{Challenge: challenge}
	}

	var tok TokenResponse
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return c.sessionFromToken(&tok), nil
}

// CompleteMFA answers a login challenge with a TOTP or backup code.
func (c *Client) CompleteMFA(ctx context.Context, mfaToken, code string) (*Session, error) {
	var tok TokenResponse
	err := c.call(ctx, http.MethodPost, "/v1/auth/mfa", "", MFALoginRequest{MFAToken: mfaToken, Code: code}, &tok, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return c.sessionFromToken(&tok), nil
}

// Bootstrap creates the first platform admin. token is the configured
// bootstrap token.
func (c *Client) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/bootstrap", "", req, map[string]string{
		"X-Bootstrap-Token": token,
	})
	if err != nil {
		return nil, err
	}
	var user User
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

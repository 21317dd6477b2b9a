package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/service"
	"github.com/aussiebroadwan/breachwatch/pkg/consolesdk"
	"github.com/aussiebroadwan/breachwatch/pkg/httpx"
	"github.com/aussiebroadwan/breachwatch/pkg/jwtx"
)

type SessionHandler struct {
	SessionService *service.SessionService
}

// HandleLogin handles POST /v1/auth/login
//
//	@Summary		Log in with email and password
//	@Description	Returns an access token, or an MFA challenge when the account has a second factor enabled.
//	@Description	Answer the challenge with POST /v1/auth/mfa.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		consolesdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	consolesdk.TokenResponse	"Logged in, or consolesdk.MFAChallenge when a second factor is required"
//	@Failure		400		{object}	consolesdk.ErrorResponse	"Missing email or password"
//	@Failure		401		{object}	consolesdk.ErrorResponse	"Invalid credentials"
//	@Failure		429		{object}	consolesdk.ErrorResponse	"Too many attempts"
//	@Router			/v1/auth/login [post].
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req consolesdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	res, err := h.SessionService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	if res.MFARequired {
		httpx.WriteJSON(w, http.StatusOK, consolesdk.MFAChallenge{
			MFARequired: true,
			MFAToken:    res.MFAToken,
			Methods:     res.MFAMethods,
			ExpiresAt:   res.MFAExpiresAt,
		})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(*res.Token))
}

// HandleMFA handles POST /v1/auth/mfa
//
//	@Summary		Answer an MFA challenge
//	@Description	Accepts a TOTP code or an unused backup code. A challenge allows five wrong answers.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		consolesdk.MFALoginRequest	true	"Challenge token and code"
//	@Success		200		{object}	consolesdk.TokenResponse
//	@Failure		400		{object}	consolesdk.ErrorResponse	"Missing token or code"
//	@Failure		401		{object}	consolesdk.ErrorResponse	"Invalid code or challenge"
//	@Failure		410		{object}	consolesdk.ErrorResponse	"Challenge expired"
//	@Router			/v1/auth/mfa [post].
func (h *SessionHandler) HandleMFA(w http.ResponseWriter, r *http.Request) {
	var req consolesdk.MFALoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	tok, err := h.SessionService.CompleteMFA(r.Context(), req.MFAToken, req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(tok))
}

// HandleMe handles GET /v1/me
//
//	@Summary		Get the caller's profile
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	consolesdk.MeResponse
//	@Failure		401	{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/me [get].
func (h *SessionHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, err := h.SessionService.Me(r.Context(), actorFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, consolesdk.MeResponse{
		User:        toUser(p.User),
		Memberships: mapSlice(p.Memberships, toMembership),
	})
}

func toTokenResponse(tok jwtx.IssuedToken) consolesdk.TokenResponse {
	return consolesdk.TokenResponse{
		AccessToken: tok.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(tok.ExpiresAt).Round(time.Second).Seconds()),
		ExpiresAt:   tok.ExpiresAt,
	}
}

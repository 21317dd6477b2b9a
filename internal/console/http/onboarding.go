package http

import (
	"net/http"

	"github.com/aussiebroadwan/breachwatch/internal/console/service"
	"github.com/aussiebroadwan/breachwatch/pkg/consolesdk"
	"github.com/aussiebroadwan/breachwatch/pkg/httpx"
)

type OnboardingHandler struct {
	OnboardingService *service.OnboardingService
}

// HandleVerify handles GET /v1/onboarding/verify
//
//	@Summary		Verify an onboarding link
//	@Description	Checks an onboarding token without consuming it.
//	@Tags			Onboarding
//	@Produce		json
//	@Param			token	query		string	true	"Onboarding token from the approval email"
//	@Success		200		{object}	consolesdk.OnboardingVerifyResponse
//	@Failure		400		{object}	consolesdk.ErrorResponse	"Missing token"
//	@Failure		403		{object}	consolesdk.ErrorResponse	"Entry is not approved"
//	@Failure		404		{object}	consolesdk.ErrorResponse	"Unknown or already used token"
//	@Failure		409		{object}	consolesdk.ErrorResponse	"An account already exists for the email"
//	@Failure		410		{object}	consolesdk.ErrorResponse	"Token expired"
//	@Router			/v1/onboarding/verify [get].
func (h *OnboardingHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	entry, err := h.OnboardingService.Verify(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, consolesdk.OnboardingVerifyResponse{
		Email:   entry.Email,
		Name:    entry.Name,
		Company: entry.Company,
	})
}

// HandleComplete handles POST /v1/onboarding/complete
//
//	@Summary		Complete onboarding
//	@Description	Consumes the onboarding token and creates the organization, its trial subscription and the owner account in one transaction.
//	@Tags			Onboarding
//	@Accept			json
//	@Produce		json
//	@Param			request	body		consolesdk.CompleteOnboardingRequest	true	"Token, organization name and password"
//	@Success		201		{object}	consolesdk.OnboardingResponse
//	@Failure		400		{object}	consolesdk.ErrorResponse	"Validation failed"
//	@Failure		403		{object}	consolesdk.ErrorResponse	"Entry is not approved"
//	@Failure		404		{object}	consolesdk.ErrorResponse	"Unknown or already used token"
//	@Failure		409		{object}	consolesdk.ErrorResponse	"Account exists or concurrent completion"
//	@Failure		410		{object}	consolesdk.ErrorResponse	"Token expired"
//	@Failure		500		{object}	consolesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/onboarding/complete [post].
func (h *OnboardingHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	var req consolesdk.CompleteOnboardingRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	res, err := h.OnboardingService.Complete(r.Context(), service.CompleteOnboardingRequest{
		Token:            req.Token,
		OrganizationName: req.OrganizationName,
		Password:         req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, consolesdk.OnboardingResponse{
		User:         toUser(res.User),
		Organization: toOrganization(res.Organization),
		Subscription: toSubscription(res.Subscription),
	})
}

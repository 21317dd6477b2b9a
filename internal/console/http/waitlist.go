package http

import (
	"net/http"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/service"
	"github.com/aussiebroadwan/breachwatch/pkg/consolesdk"
	"github.com/aussiebroadwan/breachwatch/pkg/httpx"
)

type WaitlistHandler struct {
	WaitlistService *service.WaitlistService
}

// HandleJoin handles POST /v1/waitlist
//
//	@Summary		Join the waitlist
//	@Description	Registers interest in BreachWatch. Emails are unique across the waitlist.
//	@Tags			Waitlist
//	@Accept			json
//	@Produce		json
//	@Param			request	body		consolesdk.JoinWaitlistRequest	true	"Email, name and optional company"
//	@Success		201		{object}	consolesdk.WaitlistEntry
//	@Failure		400		{object}	consolesdk.ErrorResponse	"Invalid email or name"
//	@Failure		409		{object}	consolesdk.ErrorResponse	"Email already on the waitlist"
//	@Router			/v1/waitlist [post].
func (h *WaitlistHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	var req consolesdk.JoinWaitlistRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	entry, err := h.WaitlistService.Join(r.Context(), service.JoinWaitlistRequest{
		Email:   req.Email,
		Name:    req.Name,
		Company: req.Company,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toWaitlistEntry(entry))
}

// HandleList handles GET /v1/admin/waitlist
//
//	@Summary		List waitlist entries
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status	query		string	false	"Filter by status"	Enums(PENDING, APPROVED, REJECTED)
//	@Success		200		{array}		consolesdk.WaitlistEntry
//	@Failure		400		{object}	consolesdk.ErrorResponse	"Unknown status"
//	@Failure		401		{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	consolesdk.ErrorResponse	"Caller is not a platform admin"
//	@Router			/v1/admin/waitlist [get].
func (h *WaitlistHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var status *domain.WaitlistStatus
	if v := r.URL.Query().Get("status"); v != "" {
		s := domain.WaitlistStatus(v)
		status = &s
	}

	entries, err := h.WaitlistService.List(r.Context(), actorFrom(r), status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(entries, toWaitlistEntry))
}

// HandleGet handles GET /v1/admin/waitlist/{id}
//
//	@Summary		Get a waitlist entry
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Entry ID"
//	@Success		200	{object}	consolesdk.WaitlistEntry
//	@Failure		401	{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	consolesdk.ErrorResponse	"Caller is not a platform admin"
//	@Failure		404	{object}	consolesdk.ErrorResponse	"Entry not found"
//	@Router			/v1/admin/waitlist/{id} [get].
func (h *WaitlistHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	entry, err := h.WaitlistService.Get(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toWaitlistEntry(entry))
}

// HandleSetStatus handles PATCH /v1/admin/waitlist/{id}
//
//	@Summary		Approve or reject a waitlist entry
//	@Description	Approving issues a single-use onboarding link and emails it. Approving an already approved entry changes nothing.
//	@Description	The onboarding URL is only ever returned by the call that issued it.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Entry ID"
//	@Param			request	body		consolesdk.SetWaitlistStatusRequest	true	"New status"
//	@Success		200		{object}	consolesdk.SetWaitlistStatusResponse
//	@Failure		400		{object}	consolesdk.ErrorResponse	"Unknown status"
//	@Failure		401		{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	consolesdk.ErrorResponse	"Caller is not a platform admin"
//	@Failure		404		{object}	consolesdk.ErrorResponse	"Entry not found"
//	@Router			/v1/admin/waitlist/{id} [patch].
func (h *WaitlistHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req consolesdk.SetWaitlistStatusRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	change, err := h.WaitlistService.SetStatus(r.Context(), actorFrom(r), r.PathValue("id"), domain.WaitlistStatus(req.Status))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, consolesdk.SetWaitlistStatusResponse{
		WaitlistEntry: toWaitlistEntry(change.Entry),
		OnboardingURL: change.OnboardingURL,
	})
}

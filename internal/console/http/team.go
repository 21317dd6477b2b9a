package http

import (
	"net/http"

	"github.com/aussiebroadwan/breachwatch/internal/console/service"
	"github.com/aussiebroadwan/breachwatch/pkg/httpx"
)

type TeamHandler struct {
	TeamService *service.TeamService
}

// HandleListMembers handles GET /v1/organizations/{orgID}/members
//
//	@Summary		List organization members
//	@Tags			Organizations
//	@Security		BearerAuth
//	@Produce		json
//	@Param			orgID	path		string	true	"Organization ID"
//	@Success		200		{array}		consolesdk.Member
//	@Failure		401		{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	consolesdk.ErrorResponse	"Not a member"
//	@Router			/v1/organizations/{orgID}/members [get].
func (h *TeamHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.TeamService.ListMembers(r.Context(), actorFrom(r), r.PathValue("orgID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(members, toMember))
}

// HandleRemoveMember handles DELETE /v1/organizations/{orgID}/members/{userID}
//
//	@Summary		Remove a member
//	@Description	Requires ADMIN. The owner and the caller cannot be removed.
//	@Tags			Organizations
//	@Security		BearerAuth
//	@Param			orgID	path	string	true	"Organization ID"
//	@Param			userID	path	string	true	"User ID"
//	@Success		204
//	@Failure		400	{object}	consolesdk.ErrorResponse	"Owner or self removal"
//	@Failure		401	{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	consolesdk.ErrorResponse	"Insufficient permissions"
//	@Failure		404	{object}	consolesdk.ErrorResponse	"Member not found"
//	@Router			/v1/organizations/{orgID}/members/{userID} [delete].
func (h *TeamHandler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	if err := h.TeamService.RemoveMember(r.Context(), actorFrom(r), r.PathValue("orgID"), r.PathValue("userID")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSubscription handles GET /v1/organizations/{orgID}/subscription
//
//	@Summary		Get the organization's subscription
//	@Tags			Organizations
//	@Security		BearerAuth
//	@Produce		json
//	@Param			orgID	path		string	true	"Organization ID"
//	@Success		200		{object}	consolesdk.Subscription
//	@Failure		401		{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	consolesdk.ErrorResponse	"Not a member"
//	@Failure		404		{object}	consolesdk.ErrorResponse	"No subscription"
//	@Router			/v1/organizations/{orgID}/subscription [get].
func (h *TeamHandler) HandleSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := h.TeamService.Subscription(r.Context(), actorFrom(r), r.PathValue("orgID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSubscription(sub))
}

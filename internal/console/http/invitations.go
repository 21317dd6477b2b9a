package http

import (
	"net/http"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/service"
	"github.com/aussiebroadwan/breachwatch/pkg/consolesdk"
	"github.com/aussiebroadwan/breachwatch/pkg/httpx"
)

type InvitationsHandler struct {
	InvitationService *service.InvitationService
}

// HandleCreate handles POST /v1/organizations/{orgID}/invitations
//
//	@Summary		Invite someone into an organization
//	@Description	Requires ADMIN in the organization. The accept URL is returned once and emailed to the invitee.
//	@Tags			Invitations
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			orgID	path		string								true	"Organization ID"
//	@Param			request	body		consolesdk.CreateInvitationRequest	true	"Invitee email and role"
//	@Success		201		{object}	consolesdk.CreateInvitationResponse
//	@Failure		400		{object}	consolesdk.ErrorResponse	"Validation failed"
//	@Failure		401		{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	consolesdk.ErrorResponse	"Insufficient permissions"
//	@Failure		409		{object}	consolesdk.ErrorResponse	"Already a member or already invited"
//	@Router			/v1/organizations/{orgID}/invitations [post].
func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req consolesdk.CreateInvitationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	created, err := h.InvitationService.Create(r.Context(), actorFrom(r), r.PathValue("orgID"), service.CreateInvitationRequest{
		Email: req.Email,
		Role:  domain.MemberRole(req.Role),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, consolesdk.CreateInvitationResponse{
		Invitation: toInvitation(created.Invitation),
		AcceptURL:  created.AcceptURL,
	})
}

// HandleList handles GET /v1/organizations/{orgID}/invitations
//
//	@Summary		List an organization's invitations
//	@Tags			Invitations
//	@Security		BearerAuth
//	@Produce		json
//	@Param			orgID	path		string	true	"Organization ID"
//	@Success		200		{array}		consolesdk.Invitation
//	@Failure		401		{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	consolesdk.ErrorResponse	"Not a member"
//	@Router			/v1/organizations/{orgID}/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	invs, err := h.InvitationService.List(r.Context(), actorFrom(r), r.PathValue("orgID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(invs, toInvitation))
}

// HandleCancel handles DELETE /v1/organizations/{orgID}/invitations/{id}
//
//	@Summary		Cancel a pending invitation
//	@Tags			Invitations
//	@Security		BearerAuth
//	@Param			orgID	path	string	true	"Organization ID"
//	@Param			id		path	string	true	"Invitation ID"
//	@Success		204
//	@Failure		400	{object}	consolesdk.ErrorResponse	"Invitation is no longer pending"
//	@Failure		401	{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	consolesdk.ErrorResponse	"Insufficient permissions"
//	@Failure		404	{object}	consolesdk.ErrorResponse	"Invitation not found"
//	@Router			/v1/organizations/{orgID}/invitations/{id} [delete].
func (h *InvitationsHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	if err := h.InvitationService.Cancel(r.Context(), actorFrom(r), r.PathValue("orgID"), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGet handles GET /v1/invitations/{token}
//
//	@Summary		Resolve an invitation link
//	@Description	Shows the invitation with its effective status and whether the invited email already has an account.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	path		string	true	"Invitation token"
//	@Success		200		{object}	consolesdk.InvitationDetailsResponse
//	@Failure		404		{object}	consolesdk.ErrorResponse	"Unknown token"
//	@Router			/v1/invitations/{token} [get].
func (h *InvitationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	details, err := h.InvitationService.Get(r.Context(), r.PathValue("token"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, consolesdk.InvitationDetailsResponse{
		Invitation:   toInvitation(details.Invitation),
		Organization: toOrganization(details.Organization),
		UserExists:   details.UserExists,
	})
}

// HandleAccept handles POST /v1/invitations/{token}/accept
//
//	@Summary		Accept an invitation
//	@Description	Joins the organization. Name and password are required only when the invited email has no account yet; otherwise they are ignored.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			token	path		string								true	"Invitation token"
//	@Param			request	body		consolesdk.AcceptInvitationRequest	true	"Account details for new users"
//	@Success		200		{object}	consolesdk.AcceptInvitationResponse
//	@Failure		400		{object}	consolesdk.ErrorResponse	"Validation failed or invitation not pending"
//	@Failure		404		{object}	consolesdk.ErrorResponse	"Unknown token"
//	@Failure		409		{object}	consolesdk.ErrorResponse	"Already a member or membership limit reached"
//	@Failure		410		{object}	consolesdk.ErrorResponse	"Invitation expired"
//	@Router			/v1/invitations/{token}/accept [post].
func (h *InvitationsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	var req consolesdk.AcceptInvitationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	res, err := h.InvitationService.Accept(r.Context(), r.PathValue("token"), service.AcceptInvitationRequest{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, consolesdk.AcceptInvitationResponse{
		User:         toUser(res.User),
		Organization: toOrganization(res.Organization),
		UserCreated:  res.UserCreated,
	})
}

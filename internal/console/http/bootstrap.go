package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/breachwatch/internal/console/service"
	"github.com/aussiebroadwan/breachwatch/pkg/consolesdk"
	"github.com/aussiebroadwan/breachwatch/pkg/httpx"
	"github.com/aussiebroadwan/breachwatch/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP creates the first platform admin.
//
//	@Summary		Bootstrap the console
//	@Description	Creates the first platform administrator. Only available while a bootstrap token is configured and no admin exists.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						true	"Bootstrap token"
//	@Param			request				body		consolesdk.BootstrapRequest	true	"Admin account"
//	@Success		201					{object}	consolesdk.User
//	@Failure		400					{object}	consolesdk.ErrorResponse	"Validation failed"
//	@Failure		403					{object}	consolesdk.ErrorResponse	"Bootstrap disabled or wrong token"
//	@Failure		409					{object}	consolesdk.ErrorResponse	"Already bootstrapped"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req consolesdk.BootstrapRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	u, err := h.BootstrapService.Bootstrap(r.Context(), r.Header.Get("X-Bootstrap-Token"), service.BootstrapRequest{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("bootstrapped platform admin", slog.String("user_id", u.ID))
	httpx.WriteJSON(w, http.StatusCreated, toUser(u))
}

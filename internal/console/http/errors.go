package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/breachwatch/internal/console/service"
	"github.com/aussiebroadwan/breachwatch/pkg/httpx"
	"github.com/aussiebroadwan/breachwatch/pkg/slogx"
)

// statusOf maps a service error onto an HTTP status.
func statusOf(err error) int {
	switch service.KindOf(err) {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindExpired:
		return http.StatusGone
	case service.KindState:
		if errors.Is(err, service.ErrNotApproved) {
			return http.StatusForbidden
		}
		return http.StatusBadRequest
	case service.KindConflict:
		return http.StatusConflict
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// writeServiceError answers with the status and client-safe message of err.
// Internal errors are logged with their cause; the client only sees a
// generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
	}
	httpx.WriteError(w, status, service.MessageOf(err))
}

// actorFrom returns the authenticated caller placed on the context by
// httpx.AuthnMiddleware, or the anonymous actor.
func actorFrom(r *http.Request) service.Actor {
	userID, _ := httpx.UserIDFromContext(r.Context())
	return service.Actor{UserID: userID}
}

func writeBadRequest(w http.ResponseWriter, err error) {
	httpx.WriteError(w, http.StatusBadRequest, err.Error())
}

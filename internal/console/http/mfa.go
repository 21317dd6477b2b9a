package http

import (
	"net/http"

	"github.com/aussiebroadwan/breachwatch/internal/console/service"
	"github.com/aussiebroadwan/breachwatch/pkg/consolesdk"
	"github.com/aussiebroadwan/breachwatch/pkg/httpx"
)

type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleEnroll handles POST /v1/mfa/totp/enroll
//
//	@Summary		Start TOTP enrollment
//	@Description	Generates a new TOTP secret. MFA is not enabled until a code is verified.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	consolesdk.TOTPEnrollResponse
//	@Failure		401	{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		409	{object}	consolesdk.ErrorResponse	"MFA already enabled"
//	@Router			/v1/mfa/totp/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	e, err := h.MFAService.EnrollTOTP(r.Context(), actorFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, consolesdk.TOTPEnrollResponse{
		Secret:  e.Secret,
		URL:     e.URL,
		Issuer:  e.Issuer,
		Account: e.Account,
	})
}

// HandleVerify handles POST /v1/mfa/totp/verify
//
//	@Summary		Confirm TOTP enrollment
//	@Description	Enables MFA and returns a fresh set of backup codes. The codes are shown only once.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		consolesdk.TOTPCodeRequest	true	"Current TOTP code"
//	@Success		200		{object}	consolesdk.BackupCodesResponse
//	@Failure		400		{object}	consolesdk.ErrorResponse	"Wrong code or no enrollment in progress"
//	@Failure		401		{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		409		{object}	consolesdk.ErrorResponse	"MFA already enabled"
//	@Router			/v1/mfa/totp/verify [post].
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req consolesdk.TOTPCodeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	codes, err := h.MFAService.VerifyTOTP(r.Context(), actorFrom(r), req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, consolesdk.BackupCodesResponse{BackupCodes: codes})
}

// HandleRegenerateBackupCodes handles POST /v1/mfa/backup-codes
//
//	@Summary		Regenerate backup codes
//	@Description	Replaces every existing backup code. Requires a current TOTP code.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		consolesdk.TOTPCodeRequest	true	"Current TOTP code"
//	@Success		200		{object}	consolesdk.BackupCodesResponse
//	@Failure		400		{object}	consolesdk.ErrorResponse	"Wrong code"
//	@Failure		401		{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	consolesdk.ErrorResponse	"MFA not enabled"
//	@Router			/v1/mfa/backup-codes [post].
func (h *MFAHandler) HandleRegenerateBackupCodes(w http.ResponseWriter, r *http.Request) {
	var req consolesdk.TOTPCodeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	codes, err := h.MFAService.RegenerateBackupCodes(r.Context(), actorFrom(r), req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, consolesdk.BackupCodesResponse{BackupCodes: codes})
}

// HandleRemove handles DELETE /v1/mfa/totp
//
//	@Summary		Disable MFA
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		consolesdk.TOTPCodeRequest	true	"Current TOTP code"
//	@Success		200		{object}	consolesdk.MFAStatusResponse
//	@Failure		400		{object}	consolesdk.ErrorResponse	"Wrong code"
//	@Failure		401		{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	consolesdk.ErrorResponse	"MFA not enabled"
//	@Router			/v1/mfa/totp [delete].
func (h *MFAHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	var req consolesdk.TOTPCodeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	if err := h.MFAService.RemoveMFA(r.Context(), actorFrom(r), req.Code); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, consolesdk.MFAStatusResponse{MFAEnabled: false})
}

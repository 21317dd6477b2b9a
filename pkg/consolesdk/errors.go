package consolesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// APIError is a non-2xx response from the console.
type APIError struct {
	StatusCode int
	Message    string

	// RetryAfter is set on 429 responses.
	RetryAfter int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("consolesdk: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// MFARequiredError is returned by Login when the account has MFA enabled.
// Answer the challenge with Client.CompleteMFA.
type MFARequiredError struct {
	Challenge MFAChallenge
}

func (e *MFARequiredError) Error() string {
	return "consolesdk: mfa required"
}

// StatusCode returns the HTTP status of err if it is an *APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool     { return StatusCode(err) == http.StatusNotFound }
func IsGone(err error) bool         { return StatusCode(err) == http.StatusGone }
func IsConflict(err error) bool     { return StatusCode(err) == http.StatusConflict }
func IsForbidden(err error) bool    { return StatusCode(err) == http.StatusForbidden }
func IsUnauthorized(err error) bool { return StatusCode(err) == http.StatusUnauthorized }

// parseErrorResponse builds an *APIError from a response body. Bodies that
// are not the usual JSON shape keep their raw text as the message.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		apiErr.Message = er.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}

	if v := resp.Header.Get("Retry-After"); v != "" {
		apiErr.RetryAfter, _ = strconv.Atoi(v)
	}
	return apiErr
}

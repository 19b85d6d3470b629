package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mutix31/Sharebin/internal/common"
)

const maxJSONBody = 1 << 20

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps service errors onto HTTP statuses and stable error codes.
// Expired and exhausted content is 410 so clients can show a distinct
// "no longer available" page.
func statusFor(err error) (int, errorResponse) {
	var ve *common.ValidationError
	var mbe *http.MaxBytesError

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, errorResponse{Error: "validation", Message: ve.Message, Field: ve.Field}
	case errors.As(err, &mbe):
		return http.StatusRequestEntityTooLarge, errorResponse{Error: "too_large", Message: "upload exceeds the 50MB limit"}
	case errors.Is(err, common.ErrExpired):
		return http.StatusGone, errorResponse{Error: "expired", Message: "this content has expired"}
	case errors.Is(err, common.ErrLimitReached):
		return http.StatusGone, errorResponse{Error: "limit_reached", Message: "this content reached its view limit"}
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, errorResponse{Error: "not_found"}
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid_credentials", Message: err.Error()}
	case errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, errorResponse{Error: "unauthenticated"}
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusForbidden, errorResponse{Error: "forbidden"}
	case errors.Is(err, common.ErrUserExists):
		return http.StatusConflict, errorResponse{Error: "user_exists", Message: err.Error()}
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, errorResponse{Error: "conflict"}
	}
	return http.StatusInternalServerError, errorResponse{Error: "internal", Message: "something went wrong, please retry"}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, body)
}

// writeDeleteError hides whether a record exists from callers that may not
// delete it.
func (h *Handler) writeDeleteError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, common.ErrorUnauthorized) {
		err = common.ErrorNotFound
	}
	h.writeError(w, r, err)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return decodeJSONLimit(w, r, maxJSONBody, v)
}

func decodeJSONLimit(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return err
		}
		return common.NewValidationError("body", "malformed JSON")
	}
	return nil
}

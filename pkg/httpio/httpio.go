package httpio

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/scramble-live/scoreboard/pkg/apperrors"
)

// ErrorResponse matches the original wire shape: a bare error string.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError maps an AppError to its HTTP status; anything else is a 500.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		WriteJSON(w, appErr.HTTPStatus, ErrorResponse{Error: appErr.Message})
		return
	}
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// Decode parses a JSON request body into dst, rejecting unknown fields is
// deliberately not done: the original API ignored extras.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.Validation("invalid request body")
	}
	return nil
}

package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/gratitude-api/pkg/apperr"
)

// APIResponse is the envelope used for error replies.
type APIResponse struct {
	Status  int         `json:"status"`
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// JSON writes payload with statusCode. The status line is already sent when
// encoding fails, so the failure is only logged on the global zap logger.
func JSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("failed to encode response", zap.Int("status", statusCode), zap.Error(err))
	}
}

func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

func Error(w http.ResponseWriter, statusCode int, message string, errs interface{}) {
	JSON(w, statusCode, APIResponse{
		Status:  statusCode,
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// FromError writes the reply matching the kind of err. Storage failures never
// expose the underlying driver message.
func FromError(w http.ResponseWriter, err error) {
	var (
		ve *apperr.ValidationError
		nf *apperr.NotFoundError
	)

	switch {
	case errors.As(err, &ve):
		Error(w, http.StatusUnprocessableEntity, "Validation failed", ve.Fields)
	case errors.As(err, &nf):
		Error(w, http.StatusNotFound, "Not found", nf.Error())
	case errors.Is(err, apperr.ErrValidation):
		Error(w, http.StatusUnprocessableEntity, "Validation failed", err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		Error(w, http.StatusNotFound, "Not found", err.Error())
	default:
		Error(w, http.StatusInternalServerError, "Internal server error", nil)
	}
}

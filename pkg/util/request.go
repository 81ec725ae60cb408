package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/gratitude-api/pkg/apperr"
)

const maxBodyBytes = 1 << 20

// DecodeJSON reads a JSON request body into dst. Malformed bodies and values
// of the wrong type come back as *apperr.ValidationError.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var (
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
		maxErr    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return apperr.NewValidationError(map[string]string{
			typeErr.Field: fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.Kind()),
		})
	case errors.As(err, &syntaxErr):
		return apperr.NewValidationError(map[string]string{
			"body": fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset),
		})
	case errors.As(err, &maxErr):
		return apperr.NewValidationError(map[string]string{
			"body": fmt.Sprintf("body must not exceed %d bytes", maxErr.Limit),
		})
	case errors.Is(err, io.EOF):
		return apperr.NewValidationError(map[string]string{"body": "request body is required"})
	default:
		return apperr.NewValidationError(map[string]string{"body": "invalid JSON body"})
	}
}

// ParseID reads an integer path parameter. Zero and negative ids parse fine
// and are left to the lookup, which reports them as not found.
func ParseID(r *http.Request, key string) (int64, error) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.NewValidationError(map[string]string{
			key: fmt.Sprintf("%s must be an integer", key),
		})
	}
	return id, nil
}

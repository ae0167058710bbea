package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	errs "github.com/matzehuels/pixmesh/pkg/errors"
)

// ErrorResponse is the JSON body written by [WriteError].
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// StatusFor returns the HTTP status code for err.
func StatusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errs.IsInvalid(err):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrCodeNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrCodeUnsupported):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as a JSON [ErrorResponse] with the status from
// [StatusFor]. Uncoded errors are reported as INTERNAL_ERROR.
func WriteError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	WriteJSON(w, StatusFor(err), ErrorResponse{
		Code:  string(code),
		Error: errs.UserMessage(err),
	})
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/mazer/pkg/errors"
)

type apiError struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

type apiListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, code errors.Code, msg string) {
	writeJSON(w, status, apiError{Error: msg, Code: code})
}

// writeError maps an error's code onto an HTTP status.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	errorJSON(w, StatusFor(err), code, errors.UserMessage(err))
}

// StatusFor returns the HTTP status for err.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

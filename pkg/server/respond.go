package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/graphwalk/pkg/errors"
)

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func newErrorBody(err error) *errorBody {
	return &errorBody{Code: errors.GetCode(err), Message: errors.UserMessage(err)}
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeAnimationInProgress:
		return http.StatusConflict
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNodeNotFound, errors.ErrCodeInvalidColoring, errors.ErrCodeEmptyGraph:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidGraph, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidPath, errors.ErrCodeInvalidColor:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), struct {
		Error *errorBody `json:"error"`
	}{newErrorBody(err)})
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeValidationFailed     = "validation_failed"
	codeInsufficientStock    = "insufficient_stock"
	codeAuthenticationFailed = "authentication_failed"
	codeNotAuthenticated     = "not_authenticated"
	codeInvalidToken         = "invalid_token"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorBody(w, status, errorResponse{Error: msg, Code: code})
}

func writeErrorBody(w http.ResponseWriter, status int, body errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(body)
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps err to its status and code and returns the status.
// Unrecognised errors become an opaque 500.
func writeDomainError(w http.ResponseWriter, err error) int {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeErrorBody(w, http.StatusBadRequest, errorResponse{
			Error:  "validation failed",
			Code:   codeValidationFailed,
			Fields: vErr.Fields,
		})
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientStock):
		writeError(w, http.StatusConflict, codeInsufficientStock, err.Error())
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, codeAuthenticationFailed, err.Error())
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotAuthenticated):
		w.Header().Set("WWW-Authenticate", "Token")
		writeError(w, http.StatusUnauthorized, codeNotAuthenticated, err.Error())
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidToken):
		w.Header().Set("WWW-Authenticate", "Token")
		writeError(w, http.StatusUnauthorized, codeInvalidToken, err.Error())
		return http.StatusUnauthorized
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return http.StatusInternalServerError
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-restaurant-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message"`
}

// SuccessEnvelope is used by the customer-facing order and booking routes.
type SuccessEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorEnvelope is the body of every error response.
type ErrorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorEnvelope{Error: msg, Code: code})
}

// errorMapping pairs a domain error kind with its HTTP status and code.
type errorMapping struct {
	kind   error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domain.ErrValidation, http.StatusBadRequest, "validation_error"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrInvalidOTP, http.StatusBadRequest, "invalid_otp"},
	{domain.ErrExpiredOTP, http.StatusBadRequest, "expired_otp"},
	{domain.ErrUnverified, http.StatusBadRequest, "unverified"},
	{domain.ErrWrongPassword, http.StatusBadRequest, "wrong_password"},
	{domain.ErrDelivery, http.StatusInternalServerError, "delivery_error"},
	{domain.ErrConflict, http.StatusConflict, "conflict"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
}

// respondError maps a service error to a response. Store failures and
// unknown errors become 500 "Server Error" and are logged with their cause.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	writeMappedError(w, r, err, http.StatusNotFound)
}

// respondAuthError is respondError for the account routes, where the mobile
// client expects an unknown account to be a 400.
func respondAuthError(w http.ResponseWriter, r *http.Request, err error) {
	writeMappedError(w, r, err, http.StatusBadRequest)
}

func writeMappedError(w http.ResponseWriter, r *http.Request, err error, notFoundStatus int) {
	var de *domain.Error
	if errors.As(err, &de) {
		for _, m := range errorMappings {
			if errors.Is(de.Kind, m.kind) {
				status := m.status
				if m.kind == domain.ErrNotFound {
					status = notFoundStatus
				}
				if status >= http.StatusInternalServerError {
					slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
				}
				writeError(w, status, m.code, de.Msg)
				return
			}
		}
	}
	slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
	writeError(w, http.StatusInternalServerError, "store_error", "Server Error")
}

// decodeJSON reads the request body into v, replying 400 on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "Invalid request body")
		return false
	}
	return true
}

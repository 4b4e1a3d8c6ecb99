package handler

import (
	"net/http"

	"github.com/go-restaurant-api/internal/application/auth"
	"github.com/go-restaurant-api/internal/application/session"
	"github.com/go-restaurant-api/internal/domain"
	"github.com/go-restaurant-api/internal/transport/http/middleware"
)

// AuthHandler serves registration, login, password reset and profile.
type AuthHandler struct {
	otp     auth.Service
	session session.Service
}

func NewAuthHandler(otp auth.Service, sess session.Service) *AuthHandler {
	return &AuthHandler{otp: otp, session: sess}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

type loginResponse struct {
	Message string               `json:"message"`
	Token   string               `json:"token"`
	Email   string               `json:"email"`
	User    domain.PublicProfile `json:"user"`
}

type profileResponse struct {
	ID     string  `json:"_id"`
	Email  string  `json:"email"`
	Name   *string `json:"name"`
	Mobile *string `json:"mobile"`
}

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.otp.RequestRegistrationOTP(r.Context(), req.Email, req.Password); err != nil {
		respondAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "OTP sent successfully"})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.otp.VerifyRegistrationOTP(r.Context(), req.Email, req.OTP); err != nil {
		respondAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Registration Successful"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.session.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Message: "Login Successful",
		Token:   res.Token,
		Email:   res.Email,
		User:    res.Profile,
	})
}

func (h *AuthHandler) ForgotPasswordSendOTP(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.otp.RequestPasswordResetOTP(r.Context(), req.Email); err != nil {
		respondAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "OTP sent to your email"})
}

func (h *AuthHandler) ForgotPasswordVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.otp.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		respondAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Password reset successfully"})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "No token provided")
		return
	}
	acc, err := h.session.Profile(r.Context(), claims.Email)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		ID:     acc.AccountID,
		Email:  acc.Email,
		Name:   acc.Name,
		Mobile: acc.Mobile,
	})
}

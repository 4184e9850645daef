package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todoapi/internal/apperr"
	"todoapi/internal/model"
	"todoapi/internal/service/auth"
	"todoapi/pkg/metrics"
)

type AuthHandler struct {
	auth        *auth.Service
	logger      *zap.Logger
	development bool
}

func NewAuthHandler(auth *auth.Service, logger *zap.Logger, development bool) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger, development: development}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.Validation("Invalid request body"), h.development)
		return
	}

	result, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		metrics.IncrementAuthAttempt("register", "failure")
		respondError(c, h.logger, err, h.development)
		return
	}

	metrics.IncrementAuthAttempt("register", "success")
	respondData(c, http.StatusCreated, "User registered successfully", result)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.Validation("Invalid request body"), h.development)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		metrics.IncrementAuthAttempt("login", "failure")
		respondError(c, h.logger, err, h.development)
		return
	}

	metrics.IncrementAuthAttempt("login", "success")
	respondData(c, http.StatusOK, "Login successful", result)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.Validation("Invalid request body"), h.development)
		return
	}

	message, code, err := h.auth.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		metrics.IncrementAuthAttempt("forgot_password", "failure")
		respondError(c, h.logger, err, h.development)
		return
	}

	metrics.IncrementAuthAttempt("forgot_password", "success")

	// The code is echoed back only in development mode, as a testing
	// convenience; release builds never take this branch.
	if h.development && code != "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "devToken": code})
		return
	}
	respondData(c, http.StatusOK, message, nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.Validation("Invalid request body"), h.development)
		return
	}

	if err := h.auth.ConfirmPasswordReset(c.Request.Context(), req); err != nil {
		metrics.IncrementAuthAttempt("reset_password", "failure")
		respondError(c, h.logger, err, h.development)
		return
	}

	metrics.IncrementAuthAttempt("reset_password", "success")
	respondData(c, http.StatusOK, "Password reset successful. You can now login with your new password.", nil)
}

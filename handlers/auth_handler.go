package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tranphattrien/easycode-server/apperr"
	"github.com/tranphattrien/easycode-server/auth"
	"github.com/tranphattrien/easycode-server/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	req := struct {
		Fullname string `json:"fullname"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	if err := h.authService.Signup(c.Request.Context(), req.Fullname, req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "Registration successful. Please check your email for activation link.",
	})
}

func (h *AuthHandler) ActivateAccount(c *gin.Context) {
	req := struct {
		ActivationToken string `json:"activation_token"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	if err := h.authService.Activate(c.Request.Context(), req.ActivationToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account activated successfully"})
}

func (h *AuthHandler) Signin(c *gin.Context) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	session, err := h.authService.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Signin successful", "user": session})
}

func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	req := struct {
		AccessToken string `json:"access_token"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	session, err := h.authService.GoogleAuth(c.Request.Context(), req.AccessToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Signin successful", "user": session})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	req := struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), auth.UserId(c), req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Password changed successfully!"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tranphattrien/easycode-server/apperr"
	"github.com/tranphattrien/easycode-server/auth"
	"github.com/tranphattrien/easycode-server/models"
	"github.com/tranphattrien/easycode-server/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) SearchUsers(c *gin.Context) {
	req := struct {
		Query string `json:"query"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	users, err := h.userService.Search(c.Request.Context(), req.Query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	req := struct {
		Username string `json:"username"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	req := struct {
		Username    string             `json:"username"`
		Bio         string             `json:"bio"`
		SocialLinks models.SocialLinks `json:"social_links"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	if err := h.userService.UpdateProfile(c.Request.Context(), auth.UserId(c), req.Username, req.Bio, req.SocialLinks); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": req.Username})
}

func (h *UserHandler) UpdateProfileImg(c *gin.Context) {
	req := struct {
		Url string `json:"url"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Url) == 0 {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	if err := h.userService.SetProfileImg(c.Request.Context(), auth.UserId(c), req.Url); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile_img": req.Url})
}

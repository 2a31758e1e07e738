package handlers

import (
	"net/http"

	"talento_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PATCH("", h.UpdateProfile)
		profile.POST("/avatar", h.UploadAvatar)
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.userService.UpdateProfile(userID, patch)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	url, err := h.userService.UploadAvatar(c.Request.Context(), userID, fileHeader)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

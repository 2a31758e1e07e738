package handlers

import (
	"net/http"
	"strconv"

	"talento_backend/internal/models"
	"talento_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewAdminHandler(base *BaseHandler, userService services.UserService) *AdminHandler {
	return &AdminHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// RegisterRoutes mounts the admin surface. The caller is expected to have
// applied the role check on rg already.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.ListUsers)
	rg.PATCH("/users/:id/status", h.SetUserStatus)
	rg.DELETE("/users/:id", h.DeleteUser)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.userService.ListUsers(limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.userService.SetUserStatus(c.Param("id"), models.UserStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

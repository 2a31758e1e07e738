package handlers

import (
	"net/http"

	"talento_backend/internal/services"
	"talento_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	*BaseHandler
	contactService services.ContactService
}

func NewContactHandler(base *BaseHandler, contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    base,
		contactService: contactService,
	}
}

func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.Submit)
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.contactService.Submit(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully!"})
}

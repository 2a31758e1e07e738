package handlers

import (
	"net/http"

	"talento_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/subscription", h.Current)
}

func (h *SubscriptionHandler) Current(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.GetForUser(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

package handlers

import (
	"net/http"

	"talento_backend/internal/metrics"
	"talento_backend/internal/services"
	"talento_backend/internal/services/dto"
	"talento_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payment := rg.Group("/payment")
	{
		payment.POST("/create-order", h.CreateOrder)
		payment.POST("/verify", h.Verify)
	}
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.paymentService.CreateOrder(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Verify checks the gateway callback signature. The response shape is
// fixed: checkout scripts key off the success flag and the echoed ids.
func (h *PaymentHandler) Verify(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.VerifyPaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.paymentService.VerifyPayment(c.Request.Context(), userID, &req)
	if err != nil {
		var appErr *apperrors.AppError
		if apperrors.As(err, &appErr) && appErr.Code == apperrors.CodeInvalidSignature {
			metrics.PaymentVerifications.WithLabelValues("invalid_signature").Inc()
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid signature",
			})
			return
		}
		metrics.PaymentVerifications.WithLabelValues("error").Inc()
		h.HandleServiceError(c, err)
		return
	}

	metrics.PaymentVerifications.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"order_id":   resp.OrderID,
		"payment_id": resp.PaymentID,
	})
}

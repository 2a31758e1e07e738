package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"talento_backend/internal/services/dto"
	"talento_backend/internal/validator"
	"talento_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubPaymentService struct {
	verifyErr error
}

func (s *stubPaymentService) CreateOrder(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	return &dto.CreateOrderResponse{
		Success:  true,
		OrderID:  "order_abc",
		Amount:   49900,
		Currency: "INR",
		KeyID:    "rzp_test_key",
	}, nil
}

func (s *stubPaymentService) VerifyPayment(ctx context.Context, userID string, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error) {
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return &dto.VerifyPaymentResponse{
		Success:   true,
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
	}, nil
}

func paymentTestRouter(svc *stubPaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", "user-1")
	})
	handler := NewPaymentHandler(NewBaseHandler(validator.New()), svc)
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router
}

const verifyBody = `{
	"razorpay_order_id": "order_abc",
	"razorpay_payment_id": "pay_123",
	"razorpay_signature": "deadbeef"
}`

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPaymentVerify_SuccessShape(t *testing.T) {
	router := paymentTestRouter(&stubPaymentService{})

	w := postJSON(router, "/api/v1/payment/verify", verifyBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"order_id":"order_abc","payment_id":"pay_123"}`, w.Body.String())
}

func TestPaymentVerify_InvalidSignatureShape(t *testing.T) {
	router := paymentTestRouter(&stubPaymentService{
		verifyErr: apperrors.New(apperrors.CodeInvalidSignature, "payment", "Payment verification failed", 400),
	})

	w := postJSON(router, "/api/v1/payment/verify", verifyBody)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid signature"}`, w.Body.String())
}

func TestPaymentVerify_MissingFieldsRejected(t *testing.T) {
	router := paymentTestRouter(&stubPaymentService{})

	w := postJSON(router, "/api/v1/payment/verify", `{"razorpay_order_id":"order_abc"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentCreateOrder_ReturnsCheckoutFields(t *testing.T) {
	router := paymentTestRouter(&stubPaymentService{})

	w := postJSON(router, "/api/v1/payment/create-order", `{}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"key_id":"rzp_test_key"`)
	assert.Contains(t, w.Body.String(), `"order_id":"order_abc"`)
}

package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"talento_backend/internal/email"
	"talento_backend/internal/logger"
	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
	"talento_backend/internal/services/dto"
	"talento_backend/internal/services/payment"
	"talento_backend/pkg/apperrors"
)

// PaymentGateway abstracts the Razorpay client for testing.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*payment.GatewayOrder, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// PaymentConfig carries the checkout knobs from configuration.
type PaymentConfig struct {
	KeyID      string
	Currency   string
	PlanAmount int64 // minor units
	PlanDays   int
}

type PaymentService interface {
	CreateOrder(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	VerifyPayment(ctx context.Context, userID string, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error)
}

type PaymentServiceImpl struct {
	gateway             PaymentGateway
	paymentRepo         repositories.PaymentRepository
	userRepo            repositories.UserRepository
	subscriptionService SubscriptionService
	emailProvider       email.Provider // nil when mail is not configured
	config              PaymentConfig
}

func NewPaymentService(
	gateway PaymentGateway,
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
	subscriptionService SubscriptionService,
	emailProvider email.Provider,
	config PaymentConfig,
) PaymentService {
	return &PaymentServiceImpl{
		gateway:             gateway,
		paymentRepo:         paymentRepo,
		userRepo:            userRepo,
		subscriptionService: subscriptionService,
		emailProvider:       emailProvider,
		config:              config,
	}
}

// CreateOrder creates a gateway order and records it locally. The recorded
// amount is the one verification later settles against.
func (s *PaymentServiceImpl) CreateOrder(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	amount := req.Amount
	if amount <= 0 {
		amount = s.config.PlanAmount
	}
	currency := req.Currency
	if currency == "" {
		currency = s.config.Currency
	}

	receipt := fmt.Sprintf("order_%d", time.Now().UnixMilli())

	order, err := s.gateway.CreateOrder(ctx, amount, currency, receipt)
	if err != nil {
		logger.CtxWithError(ctx, "failed to create gateway order", err, "amount", amount)
		return nil, apperrors.NewExternalServiceError("payment", "Failed to create order", err)
	}

	record := &models.PaymentOrder{
		UserID:   userID,
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  receipt,
		Status:   models.PaymentStatusCreated,
	}
	if err := s.paymentRepo.CreateOrder(record); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CreateOrderResponse{
		Success:  true,
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    s.config.KeyID,
	}, nil
}

// VerifyPayment checks the callback signature and, when valid, records the
// transaction and grants the subscription. Duplicate callbacks for the same
// payment id are answered with success without a second grant.
func (s *PaymentServiceImpl) VerifyPayment(ctx context.Context, userID string, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error) {
	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		logger.CtxWarn(ctx, "payment signature mismatch", "order_id", req.OrderID)
		return nil, apperrors.New(apperrors.CodeInvalidSignature, "payment", "Invalid signature", http.StatusBadRequest)
	}

	// Client retries and duplicate gateway callbacks land here.
	if _, err := s.paymentRepo.FindTransactionByPaymentID(req.PaymentID); err == nil {
		return s.successResponse(req), nil
	} else if !apperrors.Is(err, repositories.ErrTransactionNotFound) {
		return nil, apperrors.InternalError(err)
	}

	order, err := s.paymentRepo.FindOrderByOrderID(req.OrderID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.NewBadRequestError("Unknown order")
		}
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	tx := &models.PaymentTransaction{
		UserID:    userID,
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Amount:    order.Amount, // never the client-supplied amount
		Status:    models.PaymentStatusPaid,
		PaidAt:    &now,
	}
	if err := s.paymentRepo.CreateTransaction(tx); err != nil {
		// A concurrent duplicate hit the unique index first; the payment
		// is recorded, answer success.
		if _, findErr := s.paymentRepo.FindTransactionByPaymentID(req.PaymentID); findErr == nil {
			return s.successResponse(req), nil
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.paymentRepo.MarkOrderStatus(req.OrderID, models.PaymentStatusPaid); err != nil {
		logger.CtxWithError(ctx, "failed to mark order paid", err, "order_id", req.OrderID)
	}

	sub, err := s.subscriptionService.ActivateForUser(userID, s.config.PlanDays)
	if err != nil {
		// The payment is recorded; surface the entitlement failure loudly
		// but do not claim the verification failed.
		logger.CtxWithError(ctx, "failed to activate subscription after payment", err, "payment_id", req.PaymentID)
		return nil, apperrors.InternalError(err)
	}

	s.sendConfirmation(ctx, userID, req, sub.EndDate)

	return s.successResponse(req), nil
}

func (s *PaymentServiceImpl) successResponse(req *dto.VerifyPaymentRequest) *dto.VerifyPaymentResponse {
	return &dto.VerifyPaymentResponse{
		Success:   true,
		Message:   "Payment verified successfully",
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
	}
}

// sendConfirmation is best effort; a mail failure never fails the payment.
func (s *PaymentServiceImpl) sendConfirmation(ctx context.Context, userID string, req *dto.VerifyPaymentRequest, validUntil time.Time) {
	if s.emailProvider == nil {
		return
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		logger.CtxWithError(ctx, "confirmation mail skipped: user lookup failed", err)
		return
	}

	err = s.emailProvider.SendTemplate(
		[]string{user.Email},
		"Your Talento subscription is active",
		"payment_confirmation",
		email.TemplateData{
			"OrderID":    req.OrderID,
			"PaymentID":  req.PaymentID,
			"ValidUntil": validUntil.Format("2 January 2006"),
		},
	)
	if err != nil {
		logger.CtxWithError(ctx, "failed to send payment confirmation", err, "payment_id", req.PaymentID)
	}
}

package dto

type CreateOrderRequest struct {
	Amount   int64  `json:"amount" validate:"omitempty,gt=0"` // minor units; 0 falls back to the plan amount
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

type CreateOrderResponse struct {
	Success  bool   `json:"success"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"` // public key for the checkout script
}

// VerifyPaymentRequest mirrors the gateway checkout callback field names.
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required" validate:"required"`
	Signature string `json:"razorpay_signature" binding:"required" validate:"required"`
}

type VerifyPaymentResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
}

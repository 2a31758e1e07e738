package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RazorpayService talks to the Razorpay Orders API and verifies checkout
// callback signatures. Credentials are injected from configuration; the
// HTTP client is created once, lazily, on first use.
type RazorpayService struct {
	KeyID     string
	KeySecret string
	BaseURL   string // e.g. https://api.razorpay.com/v1

	client *http.Client
}

func NewRazorpayService(keyID, keySecret, baseURL string) *RazorpayService {
	return &RazorpayService{
		KeyID:     keyID,
		KeySecret: keySecret,
		BaseURL:   baseURL,
	}
}

func (r *RazorpayService) httpClient() *http.Client {
	if r.client == nil {
		r.client = &http.Client{Timeout: 15 * time.Second}
	}
	return r.client
}

// GatewayOrder is the subset of the orders API response we consume.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateOrder creates a gateway order for the given amount in minor units.
func (r *RazorpayService) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*GatewayOrder, error) {
	body, err := json.Marshal(orderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(r.KeyID, r.KeySecret)

	resp, err := r.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, respBody)
	}

	var order GatewayOrder
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return &order, nil
}

// Signature computes the hex HMAC-SHA256 digest the gateway signs checkout
// callbacks with: HMAC(secret, "{order_id}|{payment_id}").
func (r *RazorpayService) Signature(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(r.KeySecret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature recomputes the callback signature and compares the hex
// digests in constant time. The gateway signs with lowercase hex, so any
// deviation from that exact string, including a case flip, fails.
func (r *RazorpayService) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(r.KeySecret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

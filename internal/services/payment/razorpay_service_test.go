package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_webhook_secret"

func signedWith(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_ValidSignature(t *testing.T) {
	t.Parallel()

	svc := NewRazorpayService("key_id", testSecret, "https://api.example.com/v1")
	sig := signedWith(testSecret, "order_1", "pay_1")

	assert.True(t, svc.VerifySignature("order_1", "pay_1", sig))
}

func TestVerifySignature_SingleCharacterMutationsFail(t *testing.T) {
	t.Parallel()

	svc := NewRazorpayService("key_id", testSecret, "https://api.example.com/v1")
	sig := signedWith(testSecret, "order_1", "pay_1")

	for i := 0; i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}
		assert.False(t, svc.VerifySignature("order_1", "pay_1", string(mutated)),
			"mutation at position %d must not verify", i)
	}
}

func TestVerifySignature_CaseVariantsFail(t *testing.T) {
	t.Parallel()

	svc := NewRazorpayService("key_id", testSecret, "https://api.example.com/v1")
	sig := signedWith(testSecret, "order_1", "pay_1")

	assert.False(t, svc.VerifySignature("order_1", "pay_1", strings.ToUpper(sig)))

	// Flip the case of each hex letter one at a time.
	for i := 0; i < len(sig); i++ {
		if sig[i] < 'a' || sig[i] > 'f' {
			continue
		}
		mutated := []byte(sig)
		mutated[i] = sig[i] - ('a' - 'A')
		assert.False(t, svc.VerifySignature("order_1", "pay_1", string(mutated)),
			"case flip at position %d must not verify", i)
	}
}

func TestVerifySignature_WrongIDsFail(t *testing.T) {
	t.Parallel()

	svc := NewRazorpayService("key_id", testSecret, "https://api.example.com/v1")
	sig := signedWith(testSecret, "order_1", "pay_1")

	assert.False(t, svc.VerifySignature("order_2", "pay_1", sig))
	assert.False(t, svc.VerifySignature("order_1", "pay_2", sig))
	assert.False(t, svc.VerifySignature("order_1", "pay_1", ""))
	assert.False(t, svc.VerifySignature("order_1", "pay_1", "not-hex-!!"))
}

func TestVerifySignature_WrongSecretFails(t *testing.T) {
	t.Parallel()

	svc := NewRazorpayService("key_id", testSecret, "https://api.example.com/v1")
	sig := signedWith("another_secret", "order_1", "pay_1")

	assert.False(t, svc.VerifySignature("order_1", "pay_1", sig))
}

func TestCreateOrder_SendsBasicAuthAndParsesResponse(t *testing.T) {
	t.Parallel()

	var gotUser, gotPass string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		require.Equal(t, "/orders", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_test123",
			"amount":   49900,
			"currency": "INR",
			"receipt":  "order_1700000000000",
			"status":   "created",
		})
	}))
	defer server.Close()

	svc := NewRazorpayService("key_id", "key_secret", server.URL)
	order, err := svc.CreateOrder(context.Background(), 49900, "INR", "order_1700000000000")
	require.NoError(t, err)

	assert.Equal(t, "key_id", gotUser)
	assert.Equal(t, "key_secret", gotPass)
	assert.Equal(t, float64(49900), gotBody["amount"])
	assert.Equal(t, "INR", gotBody["currency"])

	assert.Equal(t, "order_test123", order.ID)
	assert.Equal(t, int64(49900), order.Amount)
	assert.Equal(t, "created", order.Status)
}

func TestCreateOrder_GatewayErrorSurfaces(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"description":"Authentication failed"}}`))
	}))
	defer server.Close()

	svc := NewRazorpayService("bad", "creds", server.URL)
	_, err := svc.CreateOrder(context.Background(), 100, "INR", "r1")
	assert.Error(t, err)
}

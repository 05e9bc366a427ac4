package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"earnings-wallet/pkg/common"
)

// RazorpayService implements OrderGateway against the Razorpay Orders API.
type RazorpayService struct {
	keyID     string
	keySecret string
	baseURL   string
}

func NewRazorpayService() *RazorpayService {
	baseURL := os.Getenv("RAZORPAY_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.razorpay.com/v1"
	}
	return &RazorpayService{
		keyID:     os.Getenv("RAZORPAY_KEY_ID"),
		keySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		baseURL:   baseURL,
	}
}

// CreateOrder opens a Razorpay order for the given amount in paisa and
// returns the gateway order id.
func (s *RazorpayService) CreateOrder(amountPaisa int64, currency, receipt string) (string, error) {
	payload := map[string]interface{}{
		"amount":          amountPaisa,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	resp, err := common.PostBasicAuth(s.baseURL+"/orders", payload, s.keyID, s.keySecret)
	if err != nil {
		return "", fmt.Errorf("razorpay order creation failed: %w", err)
	}

	body, ok := resp.(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("unexpected razorpay order response: %v", resp)
	}
	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("razorpay order response missing id: %v", body)
	}
	return orderID, nil
}

// VerifySignature checks the checkout callback signature:
// HMAC-SHA256 over "<order_id>|<payment_id>" with the key secret.
func (s *RazorpayService) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (s *RazorpayService) KeyID() string {
	return s.keyID
}

package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	"buildestate-server/config"

	razorpay "github.com/razorpay/razorpay-go"
)

// MaxTokenAmount caps the deposit at 500,000 minor units, the gateway's
// sandbox ceiling.
const MaxTokenAmount int64 = 500000

// PaymentService wraps the Razorpay order API and signature verification.
// The key secret is injected once from config.
type PaymentService struct {
	client    *razorpay.Client
	keySecret string
}

func NewPaymentService(cfg *config.Config) *PaymentService {
	return &PaymentService{
		client:    razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		keySecret: cfg.RazorpayKeySecret,
	}
}

// TokenAmount is the deposit collected to confirm booking intent: 5% of the
// property price, capped at MaxTokenAmount.
func TokenAmount(price int64) int64 {
	amount := int64(math.Round(float64(price) * 0.05))
	if amount > MaxTokenAmount {
		amount = MaxTokenAmount
	}
	return amount
}

// CreateOrder requests a gateway order for the given amount (minor units) and
// returns the gateway order ID.
func (p *PaymentService) CreateOrder(amount int64, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": "INR",
		"receipt":  receipt,
	}

	order, err := p.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("razorpay order create: missing order id in response")
	}

	return orderID, nil
}

// VerifySignature recomputes HMAC-SHA256 over "orderID|paymentID" with the key
// secret and compares it to the supplied signature in constant time.
func (p *PaymentService) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifyRazorpaySignature(orderID, paymentID, signature, p.keySecret)
}

func VerifyRazorpaySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

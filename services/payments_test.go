package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestTokenAmount(t *testing.T) {
	cases := []struct {
		price int64
		want  int64
	}{
		{0, 0},
		{100, 5},
		{1_000_000, 50_000},         // 5% of 10,000 rupees
		{10_000_000, 500_000},       // exactly at the cap
		{20_000_000, MaxTokenAmount}, // capped
		{999, 50},                   // rounds 49.95 up
	}

	for _, tc := range cases {
		if got := TokenAmount(tc.price); got != tc.want {
			t.Errorf("TokenAmount(%d) = %d, want %d", tc.price, got, tc.want)
		}
	}
}

func signFor(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRazorpaySignature(t *testing.T) {
	const secret = "test_key_secret"
	orderID := "order_MkWd8xyzABC123"
	paymentID := "pay_MkWeQabcDEF456"

	valid := signFor(orderID, paymentID, secret)
	if !VerifyRazorpaySignature(orderID, paymentID, valid, secret) {
		t.Fatal("expected valid signature to verify")
	}

	if VerifyRazorpaySignature(orderID, paymentID, valid, "other_secret") {
		t.Fatal("expected signature with wrong secret to fail")
	}

	if VerifyRazorpaySignature(orderID, "pay_tampered", valid, secret) {
		t.Fatal("expected tampered payment id to fail")
	}

	if VerifyRazorpaySignature(orderID, paymentID, "", secret) {
		t.Fatal("expected empty signature to fail")
	}
}

package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signature computes the hex-encoded HMAC-SHA256 over "orderID|paymentID"
// with the gateway's shared secret. This is the exact scheme Razorpay uses
// to sign checkout callbacks.
func Signature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether the supplied signature matches the
// recomputed one. Comparison is constant-time.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	expected := Signature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign returns the Razorpay checkout signature: hex HMAC-SHA256 of "order_id|payment_id".
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature was issued for the order and payment.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(secret, orderID, paymentID)), []byte(signature))
}

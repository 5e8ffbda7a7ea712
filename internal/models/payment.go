package models

// PaymentProviderRazorpay is the gateway used for paid webinars.
const PaymentProviderRazorpay = "razorpay"

// PaymentOrder is a gateway order created by the backend for a paid registration.
// Amount is in the currency's minor unit, as the gateway expects.
type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// OrderRequest asks the backend to create a payment order.
type OrderRequest struct {
	WebinarID int64 `json:"webinarId"`
	UserID    int64 `json:"userId"`
}

// PaymentVerification is the gateway callback payload forwarded to the backend.
type PaymentVerification struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
	WebinarID int64  `json:"webinarId" binding:"required"`
	UserID    int64  `json:"userId"`
}

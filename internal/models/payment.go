package models

// CheckoutSession is returned when an embedded checkout session is opened.
type CheckoutSession struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
}

// Checkout session states reported to the frontend poller.
const (
	// CheckoutStatusComplete means the customer finished paying.
	CheckoutStatusComplete = "complete"
	// CheckoutStatusOpen means the session is still awaiting payment.
	CheckoutStatusOpen = "open"
	// CheckoutStatusExpired means the session timed out.
	CheckoutStatusExpired = "expired"
	// CheckoutStatusError means the session could not be looked up.
	CheckoutStatusError = "error"
)

// CheckoutStatus is the normalized payment state of a checkout session.
type CheckoutStatus struct {
	Status        string `json:"status"`
	CustomerEmail string `json:"customer_email,omitempty"`
	// RequestID is the consultation request the session was opened for,
	// recovered from session metadata.
	RequestID string `json:"requestId,omitempty"`
	Tier      Tier   `json:"tier,omitempty"`
}

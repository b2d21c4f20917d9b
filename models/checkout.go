package models

import "strings"

// CheckoutState tracks the two-phase payment/booking commit.
type CheckoutState string

const (
	CheckoutNotStarted       CheckoutState = "not_started"
	CheckoutIntentCreated    CheckoutState = "intent_created"
	CheckoutPaymentConfirmed CheckoutState = "payment_confirmed"
	CheckoutBookingCreated   CheckoutState = "booking_created"
)

// FreeOrderPrefix marks a synthetic reservation ID for zero-total orders,
// which bypass payment confirmation entirely.
const FreeOrderPrefix = "free_order_"

// IsFreeOrderIntent reports whether the intent ID denotes the zero-payment path.
func IsFreeOrderIntent(intentID string) bool {
	return strings.HasPrefix(intentID, FreeOrderPrefix)
}

// CanTransition reports whether moving from one checkout state to another is
// legal. The state only advances forward: a failed confirmation stays at
// IntentCreated, a failed commit stays at PaymentConfirmed, and
// BookingCreated is terminal. The one backward edge is explicit cancellation
// of an unconfirmed intent.
func (s CheckoutState) CanTransition(to CheckoutState) bool {
	switch s {
	case CheckoutNotStarted:
		return to == CheckoutIntentCreated || to == CheckoutPaymentConfirmed
	case CheckoutIntentCreated:
		// NotStarted is reachable only via explicit cancellation before
		// any money moves.
		return to == CheckoutPaymentConfirmed || to == CheckoutNotStarted
	case CheckoutPaymentConfirmed:
		return to == CheckoutBookingCreated
	case CheckoutBookingCreated:
		return false
	}
	return false
}

// CheckoutRecord is the draft's persisted checkout progress, kept so a
// reload between payment confirmation and booking commit can resume the
// commit without re-charging.
type CheckoutRecord struct {
	State           CheckoutState `json:"state"`
	PaymentIntentID string        `json:"paymentIntentId,omitempty"`
	ClientSecret    string        `json:"clientSecret,omitempty"`
	AmountDollars   float64       `json:"amountDollars,omitempty"`
	BookingNumber   string        `json:"bookingNumber,omitempty"`
}

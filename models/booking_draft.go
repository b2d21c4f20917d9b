package models

import "time"

// IdentityMode says how the customer is identified for this draft. It is set
// once at wizard entry; switching modes requires starting over.
type IdentityMode string

const (
	IdentityGuest         IdentityMode = "guest"
	IdentityAuthenticated IdentityMode = "authenticated"
)

// BookingDraft is the configuration-in-progress for one wizard session. It is
// the single source of truth for everything the customer has chosen so far.
type BookingDraft struct {
	DraftID  string       `json:"draftId"`
	Identity IdentityMode `json:"identity"`

	// CustomerID and CustomerEmail are set when Identity is authenticated;
	// CustomerInfo is required only for guests.
	CustomerID    string       `json:"customerId,omitempty"`
	CustomerEmail string       `json:"customerEmail,omitempty"`
	CustomerInfo  CustomerInfo `json:"customerInfo,omitempty"`

	Service  ServiceSelection `json:"service"`
	Schedule Schedule         `json:"schedule"`
	Pickup   Address          `json:"pickup"`
	Delivery Address          `json:"delivery"`

	Discount      Discount `json:"discount"`
	TermsAccepted bool     `json:"termsAccepted"`

	// Quote is the last applied price breakdown; PricingSeq is the highest
	// recomputation sequence number dispatched for this draft.
	Quote      *PriceQuote `json:"quote,omitempty"`
	PricingSeq uint64      `json:"pricingSeq"`

	CurrentStep int            `json:"currentStep"`
	Checkout    CheckoutRecord `json:"checkout"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Locked reports whether draft mutation is rejected: checkout has entered
// phase 1 and has not been explicitly cancelled back to NotStarted.
func (d *BookingDraft) Locked() bool {
	return d.Checkout.State != "" && d.Checkout.State != CheckoutNotStarted
}

// Finalized reports whether a booking number has been issued for this draft.
func (d *BookingDraft) Finalized() bool {
	return d.Checkout.State == CheckoutBookingCreated
}

// InvalidateQuote drops discount validation so eligibility is re-checked on
// the next recomputation. The previous quote object stays in place so the UI
// can keep showing a price while a refresh is pending; staleness is detected
// by comparing fingerprints.
func (d *BookingDraft) InvalidateQuote() {
	d.Discount.Validated = false
}

// QuoteFresh reports whether the applied quote was computed from the given
// fingerprint of the current draft.
func (d *BookingDraft) QuoteFresh(fingerprint string) bool {
	return d.Quote != nil && d.Quote.Fingerprint == fingerprint
}

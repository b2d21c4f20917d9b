package models

import "time"

// Booking is the authoritative record committed after payment clears.
// PaymentIntentID carries a unique index so commit retries with the same
// confirmed intent can never create a second booking.
type Booking struct {
	BookingNumber   string       `bson:"booking_number" json:"booking_number"`
	PaymentIntentID string       `bson:"payment_intent_id" json:"payment_intent_id"`
	Status          string       `bson:"status" json:"status"`
	Identity        IdentityMode `bson:"identity" json:"identity"`
	CustomerID      string       `bson:"customer_id,omitempty" json:"customer_id,omitempty"`
	CustomerInfo    CustomerInfo `bson:"customer_info,omitempty" json:"customer_info,omitempty"`

	Service  ServiceSelection `bson:"service" json:"service"`
	Schedule Schedule         `bson:"schedule" json:"schedule"`
	Pickup   Address          `bson:"pickup" json:"pickup"`
	Delivery Address          `bson:"delivery" json:"delivery"`

	DiscountCode  string     `bson:"discount_code,omitempty" json:"discount_code,omitempty"`
	Quote         PriceQuote `bson:"quote" json:"quote"`
	AmountDollars float64    `bson:"amount_dollars" json:"amount_dollars"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// SavedAddress is an address persisted on an authenticated account as a
// side effect of booking creation.
type SavedAddress struct {
	Nickname  string    `bson:"nickname" json:"nickname"`
	Address   Address   `bson:"address" json:"address"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Account is an authenticated customer record.
type Account struct {
	ID             string         `bson:"_id" json:"id"`
	Email          string         `bson:"email" json:"email"`
	PasswordHash   string         `bson:"password_hash" json:"-"`
	FirstName      string         `bson:"first_name" json:"first_name"`
	LastName       string         `bson:"last_name" json:"last_name"`
	Phone          string         `bson:"phone" json:"phone"`
	Role           string         `bson:"role" json:"role"` // "customer" or "staff"
	EmailVerified  bool           `bson:"email_verified" json:"email_verified"`
	SavedAddresses []SavedAddress `bson:"saved_addresses,omitempty" json:"saved_addresses,omitempty"`
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `bson:"updated_at" json:"updated_at"`
}

package handlers

import (
	"context"

	"swiftmove/models"
	"swiftmove/services/account"
	"swiftmove/services/checkout"
	"swiftmove/services/discount"
	"swiftmove/services/pricing"
	"swiftmove/services/wizard"

	"go.uber.org/zap"
)

// BookingFinder looks up committed bookings by their public number.
type BookingFinder interface {
	GetByNumber(ctx context.Context, bookingNumber string) (*models.Booking, error)
}

// HandlerBundle groups the services the HTTP layer dispatches into.
type HandlerBundle struct {
	Wizard    wizard.Service
	Checkout  *checkout.Orchestrator
	Pricing   pricing.QuoteService
	Discounts *discount.Validator
	Accounts  account.Service
	Bookings  BookingFinder
	Logger    *zap.Logger
}

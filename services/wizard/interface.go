package wizard

import (
	"context"

	"swiftmove/models"
)

// SessionContext is the caller's authentication state, injected explicitly
// at construction of each draft rather than read from ambient globals.
type SessionContext struct {
	Authenticated bool
	CustomerID    string
	Email         string
}

// Authenticator signs a customer in. Failures carry categorized reasons.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.Account, string, error)
}

// Service sequences the booking wizard: step guards, guest/authenticated
// branching, and every draft mutation.
type Service interface {
	StartDraft(ctx context.Context, session SessionContext) (*models.BookingDraft, error)
	GetDraft(ctx context.Context, draftID string) (*models.BookingDraft, error)
	Advance(ctx context.Context, draftID string) (*models.BookingDraft, error)
	Back(ctx context.Context, draftID string) (*models.BookingDraft, error)
	StartOver(ctx context.Context, draftID string) (*models.BookingDraft, error)
	Authenticate(ctx context.Context, draftID, email, password string) (*models.BookingDraft, string, error)

	UpdateService(ctx context.Context, draftID string, sel models.ServiceSelection) (*models.BookingDraft, error)
	UpdateSchedule(ctx context.Context, draftID string, sched models.Schedule) (*models.BookingDraft, error)
	UpdateAddresses(ctx context.Context, draftID string, pickup, delivery models.Address) (*models.BookingDraft, error)
	UpdateCustomerInfo(ctx context.Context, draftID string, info models.CustomerInfo) (*models.BookingDraft, error)
	AcceptTerms(ctx context.Context, draftID string, accepted bool) (*models.BookingDraft, error)
	ApplyDiscount(ctx context.Context, draftID, code string) (*models.BookingDraft, error)
	RemoveDiscount(ctx context.Context, draftID string) (*models.BookingDraft, error)
}

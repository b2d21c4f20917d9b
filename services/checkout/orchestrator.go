package checkout

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"swiftmove/models"
	"swiftmove/services/account"
	"swiftmove/services/pricing"
	"swiftmove/services/wizard"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingRepository persists authoritative bookings. CreateByIntent must be
// idempotent on the payment intent ID: a retry with the same intent returns
// the booking created the first time.
type BookingRepository interface {
	CreateByIntent(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetByIntentID(ctx context.Context, intentID string) (*models.Booking, error)
}

// TaskEnqueuer schedules the deferred reconcile check that catches a
// confirmed payment with no booking behind it.
type TaskEnqueuer interface {
	EnqueueReconcile(draftID, intentID string, delay time.Duration) error
}

// Orchestrator runs the reserve → confirm → commit sequence. It holds the
// draft locked from phase 1 until cancellation or completion.
type Orchestrator struct {
	Store    wizard.DraftStore
	Sync     *pricing.Synchronizer
	Gateway  PaymentGateway
	Bookings BookingRepository
	Accounts account.Service
	Tasks    TaskEnqueuer
	Logger   *zap.Logger
}

// reconcileDelay is how long after intent creation the reconcile task fires.
const reconcileDelay = 30 * time.Minute

// transition advances the draft's checkout state along a legal edge of the
// state machine, or returns a StateError naming where it is stuck.
func transition(draft *models.BookingDraft, to models.CheckoutState) error {
	from := draft.Checkout.State
	if from == "" {
		from = models.CheckoutNotStarted
	}
	if !from.CanTransition(to) {
		return NewStateError(string(from), fmt.Sprintf("cannot move checkout to %s", to))
	}
	draft.Checkout.State = to
	return nil
}

// CreateIntent is phase 1. It re-runs a final blocking price recomputation,
// then either reserves funds for the quoted total or, for a zero total,
// skips confirmation entirely with a synthetic free-order reservation.
func (o *Orchestrator) CreateIntent(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	draft, err := o.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	switch draft.Checkout.State {
	case models.CheckoutBookingCreated:
		return nil, NewStateError(string(draft.Checkout.State), "booking already created")
	case models.CheckoutIntentCreated, models.CheckoutPaymentConfirmed:
		// An intent already exists; hand it back rather than minting a
		// second one.
		return draft, nil
	}

	if err := o.readyForCheckout(draft); err != nil {
		return nil, err
	}
	// Review&Pay blocks payment until the final recomputation resolves.
	if err := o.Sync.EnsureFresh(ctx, draft); err != nil {
		return nil, err
	}

	total := draft.Quote.Total
	if total <= 0 {
		// Free order: no gateway interaction at all.
		if err := transition(draft, models.CheckoutPaymentConfirmed); err != nil {
			return nil, err
		}
		draft.Checkout.PaymentIntentID = models.FreeOrderPrefix + uuid.New().String()
		draft.Checkout.ClientSecret = ""
		draft.Checkout.AmountDollars = 0
		if err := o.Store.Save(ctx, draft); err != nil {
			return nil, err
		}
		o.Logger.Info("free order reserved",
			zap.String("draftId", draft.DraftID),
			zap.String("intentId", draft.Checkout.PaymentIntentID))
		return draft, nil
	}

	cents := int64(math.Round(total * 100))
	intent, err := o.Gateway.CreateIntent(ctx, cents, map[string]string{
		"draft_id": draft.DraftID,
	})
	if err != nil {
		// A failed intent creation stays NotStarted and may be retried.
		return nil, NewPaymentError("", err.Error())
	}

	if err := transition(draft, models.CheckoutIntentCreated); err != nil {
		return nil, err
	}
	draft.Checkout.PaymentIntentID = intent.ID
	draft.Checkout.ClientSecret = intent.ClientSecret
	draft.Checkout.AmountDollars = total
	if err := o.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	if o.Tasks != nil {
		if err := o.Tasks.EnqueueReconcile(draft.DraftID, intent.ID, reconcileDelay); err != nil {
			o.Logger.Warn("failed to schedule checkout reconcile",
				zap.String("intentId", intent.ID), zap.Error(err))
		}
	}
	o.Logger.Info("payment intent created",
		zap.String("draftId", draft.DraftID),
		zap.String("intentId", intent.ID),
		zap.Float64("amount", total))
	return draft, nil
}

// VerifyPayment is phase 2's server side: after the customer confirms
// client-side, verify the gateway reports the funds reserved. On failure
// the state stays IntentCreated and the gateway's message is surfaced
// verbatim.
func (o *Orchestrator) VerifyPayment(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	draft, err := o.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	switch draft.Checkout.State {
	case models.CheckoutPaymentConfirmed, models.CheckoutBookingCreated:
		// Funds behind a confirmed or already-committed checkout are
		// settled; a retried booking request must pass through here to
		// reach the idempotent commit.
		return draft, nil
	case models.CheckoutIntentCreated:
		// proceed
	default:
		return nil, NewStateError(string(draft.Checkout.State), "no payment intent to confirm")
	}

	intent, err := o.Gateway.GetIntent(ctx, draft.Checkout.PaymentIntentID)
	if err != nil {
		return nil, NewPaymentError(draft.Checkout.PaymentIntentID, err.Error())
	}
	if intent.Status != StatusSucceeded {
		return nil, NewPaymentError(intent.ID, fmt.Sprintf("payment not completed (status %s)", intent.Status))
	}

	if err := transition(draft, models.CheckoutPaymentConfirmed); err != nil {
		return nil, err
	}
	if err := o.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Commit is phase 3: create the authoritative booking from the confirmed
// (or free-order) reservation. It is retryable with the same intent ID; a
// transient backend failure can never strand a charged customer without a
// path to a booking.
func (o *Orchestrator) Commit(ctx context.Context, draftID string) (*models.Booking, error) {
	draft, err := o.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Checkout.State == models.CheckoutBookingCreated {
		existing, err := o.Bookings.GetByIntentID(ctx, draft.Checkout.PaymentIntentID)
		if err == nil && existing != nil {
			return existing, nil
		}
		return nil, NewStateError(string(draft.Checkout.State), "booking already created")
	}
	if draft.Checkout.State != models.CheckoutPaymentConfirmed {
		return nil, NewStateError(string(draft.Checkout.State), "payment has not been confirmed")
	}

	record := buildBooking(draft)
	created, err := o.Bookings.CreateByIntent(ctx, record)
	if err != nil {
		// Money has moved; escalate so this cannot be silently dropped,
		// and leave the state at PaymentConfirmed for retry.
		o.Logger.Error("booking commit failed after confirmed payment",
			zap.String("draftId", draft.DraftID),
			zap.String("intentId", draft.Checkout.PaymentIntentID),
			zap.Error(err))
		if o.Tasks != nil {
			if terr := o.Tasks.EnqueueReconcile(draft.DraftID, draft.Checkout.PaymentIntentID, 5*time.Minute); terr != nil {
				o.Logger.Error("failed to schedule commit escalation",
					zap.String("intentId", draft.Checkout.PaymentIntentID), zap.Error(terr))
			}
		}
		return nil, NewCommitError(draft.Checkout.PaymentIntentID, err.Error())
	}

	if draft.Identity == models.IdentityAuthenticated && o.Accounts != nil {
		addrs := unpinnedAddresses(draft)
		if err := o.Accounts.SaveAddresses(ctx, draft.CustomerID, addrs); err != nil {
			// Side effect only; the booking stands.
			o.Logger.Warn("failed to save addresses on account",
				zap.String("customerId", draft.CustomerID), zap.Error(err))
		}
	}

	if err := transition(draft, models.CheckoutBookingCreated); err != nil {
		return nil, err
	}
	draft.Checkout.BookingNumber = created.BookingNumber
	if err := o.Store.Save(ctx, draft); err != nil {
		o.Logger.Warn("failed to persist finalized draft",
			zap.String("draftId", draft.DraftID), zap.Error(err))
	}
	o.Sync.Forget(draft.DraftID)

	o.Logger.Info("booking created",
		zap.String("draftId", draft.DraftID),
		zap.String("bookingNumber", created.BookingNumber),
		zap.String("intentId", created.PaymentIntentID))
	return created, nil
}

// Cancel abandons an unconfirmed checkout, unlocking the draft. Once
// payment is confirmed it cannot be cancelled here; the flow must reach
// BookingCreated or go to support.
func (o *Orchestrator) Cancel(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	draft, err := o.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Checkout.State != models.CheckoutIntentCreated {
		return nil, NewStateError(string(draft.Checkout.State), "only an unconfirmed intent can be cancelled")
	}
	if !models.IsFreeOrderIntent(draft.Checkout.PaymentIntentID) {
		if err := o.Gateway.CancelIntent(ctx, draft.Checkout.PaymentIntentID); err != nil {
			o.Logger.Warn("failed to cancel payment intent",
				zap.String("intentId", draft.Checkout.PaymentIntentID), zap.Error(err))
		}
	}
	if err := transition(draft, models.CheckoutNotStarted); err != nil {
		return nil, err
	}
	draft.Checkout = models.CheckoutRecord{State: models.CheckoutNotStarted}
	if err := o.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// readyForCheckout verifies every wizard guard up to Review&Pay.
func (o *Orchestrator) readyForCheckout(draft *models.BookingDraft) error {
	for _, step := range wizard.VisibleSteps(draft) {
		if !wizard.CanAdvance(draft, step) {
			return wizard.NewGuardError(step, "booking configuration incomplete")
		}
	}
	return nil
}

func buildBooking(draft *models.BookingDraft) *models.Booking {
	number := newBookingNumber()
	b := &models.Booking{
		BookingNumber:   number,
		PaymentIntentID: draft.Checkout.PaymentIntentID,
		Status:          "confirmed",
		Identity:        draft.Identity,
		Service:         draft.Service,
		Schedule:        draft.Schedule,
		Pickup:          draft.Pickup,
		Delivery:        draft.Delivery,
		Quote:           *draft.Quote,
		AmountDollars:   draft.Quote.Total,
		CreatedAt:       time.Now(),
	}
	if draft.Discount.Validated && draft.Discount.Descriptor != nil {
		b.DiscountCode = draft.Discount.Descriptor.Code
	}
	if draft.Identity == models.IdentityAuthenticated {
		b.CustomerID = draft.CustomerID
		// The account email is persisted as contact info so discount
		// redemption counts are keyed by email for both identities.
		b.CustomerInfo = models.CustomerInfo{Email: draft.CustomerEmail}
	} else {
		// Guests pass raw contact fields; no account is created.
		b.CustomerInfo = draft.CustomerInfo
	}
	return b
}

func newBookingNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "SM-" + raw[:8]
}

// unpinnedAddresses returns the customer-entered addresses, skipping a
// programmatically pinned airport terminal.
func unpinnedAddresses(draft *models.BookingDraft) []models.Address {
	var out []models.Address
	if !draft.Pickup.ReadOnly {
		out = append(out, draft.Pickup)
	}
	if !draft.Delivery.ReadOnly {
		out = append(out, draft.Delivery)
	}
	return out
}

package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"swiftmove/models"
	"swiftmove/services/catalog"
	"swiftmove/services/discount"
	"swiftmove/services/pricing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultWizardService implements Service.
type DefaultWizardService struct {
	Store     DraftStore
	Sync      *pricing.Synchronizer
	Discounts *discount.Validator
	Accounts  Authenticator
	Logger    *zap.Logger
}

// StartDraft creates a fresh draft. A freshly mounted wizard defaults to
// guest identity; an already-authenticated session is forced to
// authenticated and advances past the identity step.
func (s *DefaultWizardService) StartDraft(ctx context.Context, session SessionContext) (*models.BookingDraft, error) {
	draft := &models.BookingDraft{
		DraftID:     uuid.New().String(),
		Identity:    models.IdentityGuest,
		CurrentStep: StepIdentity,
		Checkout:    models.CheckoutRecord{State: models.CheckoutNotStarted},
		CreatedAt:   time.Now(),
	}
	if session.Authenticated {
		draft.Identity = models.IdentityAuthenticated
		draft.CustomerID = session.CustomerID
		draft.CustomerEmail = session.Email
		draft.CustomerInfo = models.CustomerInfo{}
		draft.CurrentStep = StepService
	}
	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	s.Logger.Info("booking draft started",
		zap.String("draftId", draft.DraftID),
		zap.String("identity", string(draft.Identity)))
	return draft, nil
}

// GetDraft loads a draft by ID.
func (s *DefaultWizardService) GetDraft(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	return s.Store.Get(ctx, draftID)
}

// Advance moves forward one step after the current step's guard passes. The
// CustomerInfo step is skipped for authenticated drafts.
func (s *DefaultWizardService) Advance(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Locked() {
		return nil, NewLockedError(draftID)
	}
	if draft.CurrentStep >= LastStep {
		return draft, nil
	}
	if !CanAdvance(draft, draft.CurrentStep) {
		return nil, NewGuardError(draft.CurrentStep, "required fields are missing or invalid")
	}
	next := draft.CurrentStep + 1
	if next == StepCustomerInfo && draft.Identity == models.IdentityAuthenticated {
		next++
	}
	draft.CurrentStep = next
	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Back moves one step backward. It is always allowed and never clears data.
func (s *DefaultWizardService) Back(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Locked() {
		return nil, NewLockedError(draftID)
	}
	if draft.CurrentStep > StepIdentity {
		prev := draft.CurrentStep - 1
		if prev == StepCustomerInfo && draft.Identity == models.IdentityAuthenticated {
			prev--
		}
		draft.CurrentStep = prev
		if err := s.Store.Save(ctx, draft); err != nil {
			return nil, err
		}
	}
	return draft, nil
}

// StartOver discards the draft entirely and hands back a fresh guest draft
// at the identity step.
func (s *DefaultWizardService) StartOver(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	if err := s.Store.Delete(ctx, draftID); err != nil {
		s.Logger.Warn("failed to delete draft on start-over", zap.String("draftId", draftID), zap.Error(err))
	}
	s.Sync.Forget(draftID)
	return s.StartDraft(ctx, SessionContext{})
}

// Authenticate signs the customer in and flips the draft to authenticated
// identity, clearing previously entered guest contact info. A failed
// sign-in leaves the draft untouched; the error carries the categorized
// reason.
func (s *DefaultWizardService) Authenticate(ctx context.Context, draftID, email, password string) (*models.BookingDraft, string, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, "", err
	}
	if draft.Locked() {
		return nil, "", NewLockedError(draftID)
	}

	account, token, err := s.Accounts.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	draft.Identity = models.IdentityAuthenticated
	draft.CustomerID = account.ID
	draft.CustomerEmail = account.Email
	draft.CustomerInfo = models.CustomerInfo{}
	if draft.CurrentStep == StepIdentity {
		draft.CurrentStep = StepService
	}
	s.refreshPricing(ctx, draft)
	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, "", err
	}
	return draft, token, nil
}

// mutate runs a draft mutation, re-checks the discount, triggers a price
// recomputation, and saves. Locked drafts reject all mutation.
func (s *DefaultWizardService) mutate(ctx context.Context, draftID string, fn func(*models.BookingDraft) error) (*models.BookingDraft, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Locked() {
		return nil, NewLockedError(draftID)
	}
	if err := fn(draft); err != nil {
		return nil, err
	}
	s.refreshPricing(ctx, draft)
	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// refreshPricing re-validates any entered discount against the new
// configuration and recomputes the quote. A failed recomputation keeps the
// previous quote in place; staleness is caught again at checkout.
func (s *DefaultWizardService) refreshPricing(ctx context.Context, draft *models.BookingDraft) {
	draft.InvalidateQuote()
	if draft.Discount.Code != "" && s.Discounts != nil {
		desc, err := s.Discounts.Validate(ctx, draft.Discount.Code, discount.ValidationContext{
			Email:       s.draftEmail(draft),
			ServiceType: draft.Service.Type,
			Subtotal:    preDiscountSubtotal(draft),
		})
		switch {
		case err == nil:
			draft.Discount.Validated = true
			draft.Discount.Descriptor = desc
		case isMinSpendRejection(err) && draft.Discount.Descriptor != nil:
			// The subtotal here is the pre-mutation one; the engine
			// enforces minimum spend against the real subtotal on every
			// quote, so keep the code attached and let it decide.
			draft.Discount.Validated = true
		default:
			s.Logger.Info("discount no longer eligible",
				zap.String("draftId", draft.DraftID),
				zap.String("code", draft.Discount.Code),
				zap.Error(err))
			draft.Discount.Descriptor = nil
		}
	}
	if !draft.Service.IsSet() {
		return
	}
	if _, err := s.Sync.Recompute(ctx, draft); err != nil {
		s.Logger.Warn("price recomputation failed",
			zap.String("draftId", draft.DraftID),
			zap.Error(err))
	}
}

func isMinSpendRejection(err error) bool {
	var rej *discount.RejectionError
	return errors.As(err, &rej) && rej.Reason == discount.ReasonMinSpend
}

// draftEmail is the contact email discount redemption is keyed by: the
// account email for authenticated drafts, the entered contact email for
// guests.
func (s *DefaultWizardService) draftEmail(draft *models.BookingDraft) string {
	if draft.Identity == models.IdentityAuthenticated {
		return draft.CustomerEmail
	}
	return draft.CustomerInfo.Email
}

// preDiscountSubtotal is the last known pre-discount total, used as an
// advisory minimum-spend input. The pricing engine re-applies eligibility
// authoritatively on every quote.
func preDiscountSubtotal(draft *models.BookingDraft) float64 {
	if draft.Quote == nil {
		return 0
	}
	return draft.Quote.Total + draft.Quote.DiscountAmount
}

// UpdateService switches or completes the service variant. The tagged-union
// setters guarantee no field of the previous variant survives.
func (s *DefaultWizardService) UpdateService(ctx context.Context, draftID string, sel models.ServiceSelection) (*models.BookingDraft, error) {
	return s.mutate(ctx, draftID, func(draft *models.BookingDraft) error {
		if draft.Service.Type == models.ServiceBladeTransfer && sel.Type != models.ServiceBladeTransfer {
			unpinAirportAddress(draft)
		}
		switch sel.Type {
		case models.ServiceMiniMove:
			if sel.MiniMove == nil {
				return fmt.Errorf("mini move fields missing")
			}
			draft.Service.SetMiniMove(*sel.MiniMove)
		case models.ServiceStandardDelivery:
			if sel.StandardDelivery == nil {
				return fmt.Errorf("standard delivery fields missing")
			}
			draft.Service.SetStandardDelivery(*sel.StandardDelivery)
		case models.ServiceSpecialtyItems:
			if sel.SpecialtyOnly == nil {
				return fmt.Errorf("specialty item fields missing")
			}
			draft.Service.SetSpecialtyOnly(*sel.SpecialtyOnly)
		case models.ServiceBladeTransfer:
			if sel.BladeTransfer == nil {
				return fmt.Errorf("blade transfer fields missing")
			}
			draft.Service.SetBladeTransfer(*sel.BladeTransfer)
			pinAirportAddress(draft)
		default:
			return fmt.Errorf("unknown service type: %s", sel.Type)
		}
		return nil
	})
}

// pinAirportAddress forces the airport side of a BLADE transfer to the
// terminal address; it is not independently editable.
func pinAirportAddress(draft *models.BookingDraft) {
	blade := draft.Service.BladeTransfer
	if blade == nil {
		return
	}
	airport, ok := catalog.AirportByCode(blade.Airport)
	if !ok {
		return
	}
	pinned := models.Address{
		Line1:    airport.TerminalLine,
		City:     airport.City,
		State:    airport.State,
		Zip:      airport.Zip,
		ReadOnly: true,
	}
	if blade.Direction == models.DirectionToAirport {
		draft.Delivery = pinned
	} else {
		draft.Pickup = pinned
	}
}

// unpinAirportAddress clears any pinned terminal address left behind by a
// BLADE transfer. Other variants never pin, so a ReadOnly address is always
// terminal data that must not leak across a variant switch.
func unpinAirportAddress(draft *models.BookingDraft) {
	if draft.Pickup.ReadOnly {
		draft.Pickup = models.Address{}
	}
	if draft.Delivery.ReadOnly {
		draft.Delivery = models.Address{}
	}
}

// UpdateSchedule sets pickup date, time window, and COI flag.
func (s *DefaultWizardService) UpdateSchedule(ctx context.Context, draftID string, sched models.Schedule) (*models.BookingDraft, error) {
	return s.mutate(ctx, draftID, func(draft *models.BookingDraft) error {
		draft.Schedule = sched
		return nil
	})
}

// UpdateAddresses sets pickup and delivery addresses. For BLADE transfers
// the pinned airport side is re-imposed over whatever the caller sent.
func (s *DefaultWizardService) UpdateAddresses(ctx context.Context, draftID string, pickup, delivery models.Address) (*models.BookingDraft, error) {
	return s.mutate(ctx, draftID, func(draft *models.BookingDraft) error {
		draft.Pickup = pickup
		draft.Delivery = delivery
		if draft.Service.Type == models.ServiceBladeTransfer {
			pinAirportAddress(draft)
		}
		return nil
	})
}

// UpdateCustomerInfo sets guest contact fields. It is ignored for
// authenticated drafts, which never block on contact info.
func (s *DefaultWizardService) UpdateCustomerInfo(ctx context.Context, draftID string, info models.CustomerInfo) (*models.BookingDraft, error) {
	return s.mutate(ctx, draftID, func(draft *models.BookingDraft) error {
		if draft.Identity == models.IdentityAuthenticated {
			return nil
		}
		draft.CustomerInfo = info
		return nil
	})
}

// AcceptTerms records the terms-acceptance flag checked by the Review&Pay
// guard.
func (s *DefaultWizardService) AcceptTerms(ctx context.Context, draftID string, accepted bool) (*models.BookingDraft, error) {
	return s.mutate(ctx, draftID, func(draft *models.BookingDraft) error {
		draft.TermsAccepted = accepted
		return nil
	})
}

// ApplyDiscount validates and attaches a code. Rejections surface the
// categorized reason and leave the draft's previous discount state intact.
func (s *DefaultWizardService) ApplyDiscount(ctx context.Context, draftID, code string) (*models.BookingDraft, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Locked() {
		return nil, NewLockedError(draftID)
	}
	desc, err := s.Discounts.Validate(ctx, code, discount.ValidationContext{
		Email:       s.draftEmail(draft),
		ServiceType: draft.Service.Type,
		Subtotal:    preDiscountSubtotal(draft),
	})
	if err != nil {
		return nil, err
	}
	draft.Discount = models.Discount{Code: desc.Code, Validated: true, Descriptor: desc}
	if draft.Service.IsSet() {
		if _, rerr := s.Sync.Recompute(ctx, draft); rerr != nil {
			s.Logger.Warn("price recomputation failed after discount",
				zap.String("draftId", draft.DraftID), zap.Error(rerr))
		}
	}
	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// RemoveDiscount clears the code and recomputes.
func (s *DefaultWizardService) RemoveDiscount(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	return s.mutate(ctx, draftID, func(draft *models.BookingDraft) error {
		draft.Discount = models.Discount{}
		return nil
	})
}

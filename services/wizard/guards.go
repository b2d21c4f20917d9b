package wizard

import (
	"time"

	"swiftmove/models"
	"swiftmove/services/catalog"
)

// Wizard steps. Step 4 is skipped entirely for authenticated customers.
const (
	StepIdentity     = 0
	StepService      = 1
	StepSchedule     = 2
	StepAddresses    = 3
	StepCustomerInfo = 4
	StepReviewPay    = 5
)

// LastStep is the final wizard step.
const LastStep = StepReviewPay

// CanAdvance is a pure predicate over the draft: forward navigation out of
// the given step is allowed only when it returns true.
func CanAdvance(draft *models.BookingDraft, step int) bool {
	switch step {
	case StepIdentity:
		return draft.Identity != ""
	case StepService:
		return serviceComplete(draft.Service)
	case StepSchedule:
		// BLADE schedules derive from the flight; the step is
		// auto-satisfied.
		if draft.Service.Type == models.ServiceBladeTransfer {
			return true
		}
		return draft.Schedule.Resolved()
	case StepAddresses:
		return addressesComplete(draft)
	case StepCustomerInfo:
		// Guest-only; never blocks an authenticated customer.
		if draft.Identity == models.IdentityAuthenticated {
			return true
		}
		return draft.CustomerInfo.Complete()
	case StepReviewPay:
		return draft.TermsAccepted
	}
	return false
}

func serviceComplete(sel models.ServiceSelection) bool {
	switch sel.Type {
	case models.ServiceMiniMove:
		return sel.MiniMove != nil && sel.MiniMove.PackageID != ""
	case models.ServiceStandardDelivery:
		if sel.StandardDelivery == nil {
			return false
		}
		if sel.StandardDelivery.ItemCount > 0 {
			return true
		}
		return hasSpecialtyQuantity(sel.StandardDelivery.SpecialtyItems)
	case models.ServiceSpecialtyItems:
		return sel.SpecialtyOnly != nil && hasSpecialtyQuantity(sel.SpecialtyOnly.SpecialtyItems)
	case models.ServiceBladeTransfer:
		b := sel.BladeTransfer
		if b == nil || b.Airport == "" || b.FlightTime == "" {
			return false
		}
		if b.BagCount < catalog.BladeMinimumBags {
			return false
		}
		return flightDateInFuture(b.FlightDate)
	}
	return false
}

func hasSpecialtyQuantity(items []models.SpecialtyItemSelection) bool {
	for _, it := range items {
		if it.Quantity > 0 {
			return true
		}
	}
	return false
}

func flightDateInFuture(date string) bool {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	today := time.Now().Truncate(24 * time.Hour)
	return !day.Before(today)
}

func addressesComplete(draft *models.BookingDraft) bool {
	if draft.Service.Type == models.ServiceBladeTransfer {
		// The airport side is pinned programmatically; only the other
		// side needs validation.
		if draft.Service.BladeTransfer == nil {
			return false
		}
		if draft.Service.BladeTransfer.Direction == models.DirectionToAirport {
			return draft.Pickup.Complete()
		}
		return draft.Delivery.Complete()
	}
	return draft.Pickup.Complete() && draft.Delivery.Complete()
}

// VisibleSteps returns the step sequence the customer actually walks, with
// CustomerInfo removed for authenticated drafts so displayed numbering has
// no gap.
func VisibleSteps(draft *models.BookingDraft) []int {
	if draft.Identity == models.IdentityAuthenticated {
		return []int{StepIdentity, StepService, StepSchedule, StepAddresses, StepReviewPay}
	}
	return []int{StepIdentity, StepService, StepSchedule, StepAddresses, StepCustomerInfo, StepReviewPay}
}

// DisplayStep maps an internal step to the 1-based number the customer sees.
func DisplayStep(draft *models.BookingDraft, step int) int {
	for i, s := range VisibleSteps(draft) {
		if s == step {
			return i + 1
		}
	}
	return 0
}

package wizard

import (
	"testing"
	"time"

	"swiftmove/models"

	"github.com/stretchr/testify/require"
)

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func completeAddress() models.Address {
	return models.Address{Line1: "123 Main St", City: "New York", State: "NY", Zip: "10001"}
}

func completeCustomerInfo() models.CustomerInfo {
	return models.CustomerInfo{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "212-555-0134",
	}
}

func TestCanAdvance_IdentityStep(t *testing.T) {
	draft := &models.BookingDraft{}
	require.False(t, CanAdvance(draft, StepIdentity))

	draft.Identity = models.IdentityGuest
	require.True(t, CanAdvance(draft, StepIdentity))
}

func TestCanAdvance_ServiceStep(t *testing.T) {
	draft := &models.BookingDraft{Identity: models.IdentityGuest}
	require.False(t, CanAdvance(draft, StepService), "no service selected")

	draft.Service.SetStandardDelivery(models.StandardDeliverySelection{})
	require.False(t, CanAdvance(draft, StepService), "zero items and no specialty items")

	draft.Service.SetStandardDelivery(models.StandardDeliverySelection{ItemCount: 1})
	require.True(t, CanAdvance(draft, StepService))

	draft.Service.SetStandardDelivery(models.StandardDeliverySelection{
		SpecialtyItems: []models.SpecialtyItemSelection{{ItemID: "peloton", Quantity: 1}},
	})
	require.True(t, CanAdvance(draft, StepService), "specialty items alone satisfy the step")

	draft.Service.SetMiniMove(models.MiniMoveSelection{})
	require.False(t, CanAdvance(draft, StepService))
	draft.Service.SetMiniMove(models.MiniMoveSelection{PackageID: "petite"})
	require.True(t, CanAdvance(draft, StepService))
}

func TestCanAdvance_BladeServiceStep(t *testing.T) {
	draft := &models.BookingDraft{Identity: models.IdentityGuest}

	blade := models.BladeTransferSelection{
		Airport:    "JFK",
		FlightDate: futureDate(7),
		FlightTime: "14:30",
		BagCount:   2,
		Direction:  models.DirectionToAirport,
	}
	draft.Service.SetBladeTransfer(blade)
	require.True(t, CanAdvance(draft, StepService))

	under := blade
	under.BagCount = 1
	draft.Service.SetBladeTransfer(under)
	require.False(t, CanAdvance(draft, StepService), "below the bag minimum")

	past := blade
	past.FlightDate = "2019-06-01"
	draft.Service.SetBladeTransfer(past)
	require.False(t, CanAdvance(draft, StepService), "flight date in the past")

	noTime := blade
	noTime.FlightTime = ""
	draft.Service.SetBladeTransfer(noTime)
	require.False(t, CanAdvance(draft, StepService))
}

func TestCanAdvance_ScheduleStep(t *testing.T) {
	draft := &models.BookingDraft{Identity: models.IdentityGuest}
	draft.Service.SetStandardDelivery(models.StandardDeliverySelection{ItemCount: 2})
	require.False(t, CanAdvance(draft, StepSchedule))

	draft.Schedule = models.Schedule{PickupDate: futureDate(3), TimeWindow: models.WindowMorning}
	require.True(t, CanAdvance(draft, StepSchedule))

	draft.Schedule.TimeWindow = models.WindowSpecificHour
	draft.Schedule.SpecificHour = 27
	require.False(t, CanAdvance(draft, StepSchedule), "specific hour out of range")
	draft.Schedule.SpecificHour = 14
	require.True(t, CanAdvance(draft, StepSchedule))

	// BLADE derives timing from the flight; the step never blocks.
	draft.Service.SetBladeTransfer(models.BladeTransferSelection{})
	draft.Schedule = models.Schedule{}
	require.True(t, CanAdvance(draft, StepSchedule))
}

func TestCanAdvance_AddressesStep(t *testing.T) {
	draft := &models.BookingDraft{Identity: models.IdentityGuest}
	draft.Service.SetStandardDelivery(models.StandardDeliverySelection{ItemCount: 2})

	require.False(t, CanAdvance(draft, StepAddresses))
	draft.Pickup = completeAddress()
	require.False(t, CanAdvance(draft, StepAddresses), "delivery still missing")
	draft.Delivery = completeAddress()
	require.True(t, CanAdvance(draft, StepAddresses))
}

func TestCanAdvance_BladeAddressesOnlyNeedNonAirportSide(t *testing.T) {
	draft := &models.BookingDraft{Identity: models.IdentityGuest}
	draft.Service.SetBladeTransfer(models.BladeTransferSelection{
		Airport:   "JFK",
		Direction: models.DirectionToAirport,
	})

	require.False(t, CanAdvance(draft, StepAddresses))
	draft.Pickup = completeAddress()
	require.True(t, CanAdvance(draft, StepAddresses), "airport side is pinned; only pickup needs entry")

	draft.Service.SetBladeTransfer(models.BladeTransferSelection{
		Airport:   "JFK",
		Direction: models.DirectionFromAirport,
	})
	draft.Pickup = models.Address{}
	draft.Delivery = completeAddress()
	require.True(t, CanAdvance(draft, StepAddresses))
}

func TestCanAdvance_CustomerInfoStep(t *testing.T) {
	draft := &models.BookingDraft{Identity: models.IdentityGuest}
	require.False(t, CanAdvance(draft, StepCustomerInfo))

	draft.CustomerInfo = models.CustomerInfo{FirstName: "Jane", LastName: "Doe", Email: "not-an-email", Phone: "212-555-0134"}
	require.False(t, CanAdvance(draft, StepCustomerInfo))

	draft.CustomerInfo = completeCustomerInfo()
	require.True(t, CanAdvance(draft, StepCustomerInfo))

	// Authenticated drafts never block on contact info.
	authed := &models.BookingDraft{Identity: models.IdentityAuthenticated}
	require.True(t, CanAdvance(authed, StepCustomerInfo))
}

func TestCanAdvance_ReviewPayStep(t *testing.T) {
	draft := &models.BookingDraft{Identity: models.IdentityGuest}
	require.False(t, CanAdvance(draft, StepReviewPay))
	draft.TermsAccepted = true
	require.True(t, CanAdvance(draft, StepReviewPay))
}

func TestVisibleSteps_AuthenticatedSkipsCustomerInfo(t *testing.T) {
	guest := &models.BookingDraft{Identity: models.IdentityGuest}
	require.Len(t, VisibleSteps(guest), 6)
	require.Contains(t, VisibleSteps(guest), StepCustomerInfo)

	authed := &models.BookingDraft{Identity: models.IdentityAuthenticated}
	require.Len(t, VisibleSteps(authed), 5)
	require.NotContains(t, VisibleSteps(authed), StepCustomerInfo)
}

func TestDisplayStep_NoGapInNumbering(t *testing.T) {
	guest := &models.BookingDraft{Identity: models.IdentityGuest}
	require.Equal(t, 5, DisplayStep(guest, StepCustomerInfo))
	require.Equal(t, 6, DisplayStep(guest, StepReviewPay))

	authed := &models.BookingDraft{Identity: models.IdentityAuthenticated}
	require.Equal(t, 4, DisplayStep(authed, StepAddresses))
	require.Equal(t, 5, DisplayStep(authed, StepReviewPay), "review renumbers to close the gap")
	require.Equal(t, 0, DisplayStep(authed, StepCustomerInfo), "hidden step has no display number")
}

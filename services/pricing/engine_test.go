package pricing

import (
	"context"
	"testing"

	"swiftmove/models"

	"github.com/stretchr/testify/require"
)

// 2026-01-05 is a Monday, 2026-01-03 a Saturday.
const (
	weekday  = "2026-01-05"
	saturday = "2026-01-03"
)

func standardRequest(items int) PriceRequest {
	var sel models.ServiceSelection
	sel.SetStandardDelivery(models.StandardDeliverySelection{ItemCount: items})
	return PriceRequest{
		Service:     sel,
		PickupDate:  weekday,
		TimeWindow:  models.WindowMorning,
		PickupZip:   "10001",
		DeliveryZip: "10002",
	}
}

func TestQuote_StandardDeliveryMinimumFloor(t *testing.T) {
	engine := NewEngine()

	// 2 items at $95 is $190, below the job minimum.
	q, err := engine.Quote(context.Background(), standardRequest(2))
	require.NoError(t, err)
	require.InDelta(t, 285, q.BasePrice, 0.001)
	require.InDelta(t, 285, q.Total, 0.001)

	// 4 items clears the floor.
	q, err = engine.Quote(context.Background(), standardRequest(4))
	require.NoError(t, err)
	require.InDelta(t, 380, q.BasePrice, 0.001)
	require.InDelta(t, 380, q.Total, 0.001)
}

func TestQuote_StandardDeliverySurcharges(t *testing.T) {
	engine := NewEngine()

	req := standardRequest(2)
	req.Service.StandardDelivery.SameDay = true
	req.COIRequired = true

	q, err := engine.Quote(context.Background(), req)
	require.NoError(t, err)
	require.InDelta(t, 285, q.BasePrice, 0.001)
	require.InDelta(t, 360, q.SameDaySurcharge, 0.001)
	require.InDelta(t, 50, q.COIFee, 0.001)
	require.InDelta(t, 695, q.Total, 0.001)
}

func TestQuote_WeekendAndSpecificHour(t *testing.T) {
	engine := NewEngine()

	req := standardRequest(2)
	req.PickupDate = saturday
	req.TimeWindow = models.WindowSpecificHour

	q, err := engine.Quote(context.Background(), req)
	require.NoError(t, err)
	require.InDelta(t, 28.5, q.WeekendSurcharge, 0.001)
	require.InDelta(t, 25, q.TimeWindowSurcharge, 0.001)
	require.InDelta(t, 338.5, q.Total, 0.001)
}

func TestQuote_GeoSurchargeOnDifferentSectionalCenters(t *testing.T) {
	engine := NewEngine()

	req := standardRequest(2)
	req.DeliveryZip = "11201"

	q, err := engine.Quote(context.Background(), req)
	require.NoError(t, err)
	require.InDelta(t, 75, q.GeoSurcharge, 0.001)
	require.InDelta(t, 360, q.Total, 0.001)
}

func TestQuote_MiniMovePackages(t *testing.T) {
	engine := NewEngine()

	var sel models.ServiceSelection
	sel.SetMiniMove(models.MiniMoveSelection{PackageID: "petite", IncludePacking: true})
	req := PriceRequest{
		Service:     sel,
		PickupDate:  weekday,
		TimeWindow:  models.WindowFlexible,
		COIRequired: true,
		PickupZip:   "10001",
		DeliveryZip: "10002",
	}

	q, err := engine.Quote(context.Background(), req)
	require.NoError(t, err)
	require.InDelta(t, 995, q.BasePrice, 0.001)
	require.InDelta(t, 250, q.OrganizingTotal, 0.001)
	require.InDelta(t, 22.19, q.OrganizingTax, 0.001)
	require.InDelta(t, 50, q.COIFee, 0.001, "petite package does not include COI")
	require.InDelta(t, 1317.19, q.Total, 0.001)

	// The full package includes COI, so the flag adds nothing.
	sel.SetMiniMove(models.MiniMoveSelection{PackageID: "full"})
	req.Service = sel
	q, err = engine.Quote(context.Background(), req)
	require.NoError(t, err)
	require.InDelta(t, 2490, q.BasePrice, 0.001)
	require.InDelta(t, 0, q.COIFee, 0.001)
	require.InDelta(t, 2490, q.Total, 0.001)
}

func TestQuote_BladeTransfer(t *testing.T) {
	engine := NewEngine()

	var sel models.ServiceSelection
	sel.SetBladeTransfer(models.BladeTransferSelection{
		Airport:   "JFK",
		BagCount:  2,
		Direction: models.DirectionToAirport,
	})
	// Weekend date and specific hour must not surcharge a BLADE transfer.
	req := PriceRequest{
		Service:    sel,
		PickupDate: saturday,
		TimeWindow: models.WindowSpecificHour,
	}

	q, err := engine.Quote(context.Background(), req)
	require.NoError(t, err)
	require.InDelta(t, 150, q.BasePrice, 0.001, "2 bags hits the job minimum")
	require.InDelta(t, 0, q.WeekendSurcharge, 0.001)
	require.InDelta(t, 0, q.TimeWindowSurcharge, 0.001)
	require.InDelta(t, 150, q.Total, 0.001)

	sel.SetBladeTransfer(models.BladeTransferSelection{
		Airport:   "JFK",
		BagCount:  4,
		Direction: models.DirectionToAirport,
	})
	req.Service = sel
	q, err = engine.Quote(context.Background(), req)
	require.NoError(t, err)
	require.InDelta(t, 300, q.BasePrice, 0.001)

	sel.SetBladeTransfer(models.BladeTransferSelection{Airport: "ABC", BagCount: 2})
	req.Service = sel
	_, err = engine.Quote(context.Background(), req)
	require.Error(t, err)
}

func TestQuote_DiscountEligibilityReappliedPerQuote(t *testing.T) {
	engine := NewEngine()

	req := standardRequest(2)
	req.Discount = &models.DiscountDescriptor{
		Code: "HAMPTONS50", Kind: models.DiscountFixed, Amount: 50, MinSpend: 300,
	}

	// Subtotal 285 sits under the code's minimum spend; the discount row
	// disappears from the breakdown rather than erroring.
	q, err := engine.Quote(context.Background(), req)
	require.NoError(t, err)
	require.InDelta(t, 0, q.DiscountAmount, 0.001)
	require.InDelta(t, 285, q.Total, 0.001)

	req = standardRequest(4)
	req.Discount = &models.DiscountDescriptor{
		Code: "HAMPTONS50", Kind: models.DiscountFixed, Amount: 50, MinSpend: 300,
	}
	q, err = engine.Quote(context.Background(), req)
	require.NoError(t, err)
	require.InDelta(t, 50, q.DiscountAmount, 0.001)
	require.InDelta(t, 330, q.Total, 0.001)
}

func TestQuote_FullDiscountDrivesTotalToZero(t *testing.T) {
	engine := NewEngine()

	req := standardRequest(4)
	req.Discount = &models.DiscountDescriptor{
		Code: "FIRSTMOVE", Kind: models.DiscountPercent, Percent: 100,
	}

	q, err := engine.Quote(context.Background(), req)
	require.NoError(t, err)
	require.InDelta(t, 380, q.DiscountAmount, 0.001)
	require.InDelta(t, 0, q.Total, 0.001)
}

func TestQuote_SetsFingerprint(t *testing.T) {
	engine := NewEngine()

	req := standardRequest(2)
	q, err := engine.Quote(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, req.Fingerprint(), q.Fingerprint)
	require.NotEmpty(t, q.Fingerprint)
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := standardRequest(2)
	b := standardRequest(2)
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	c := standardRequest(3)
	require.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	d := standardRequest(2)
	d.COIRequired = true
	require.NotEqual(t, a.Fingerprint(), d.Fingerprint())
}

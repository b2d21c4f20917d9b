package pricing

import (
	"context"
	"fmt"
	"math"

	"swiftmove/models"
	"swiftmove/services/catalog"
)

// QuoteService computes a deterministic price breakdown for a fully
// specified configuration.
type QuoteService interface {
	Quote(ctx context.Context, req PriceRequest) (*models.PriceQuote, error)
}

// Engine is the catalog-backed QuoteService.
type Engine struct{}

// NewEngine returns a catalog-backed pricing engine.
func NewEngine() *Engine {
	return &Engine{}
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}

// Quote computes the price breakdown for the request. Components not
// applicable to the configuration stay zero.
func (e *Engine) Quote(_ context.Context, req PriceRequest) (*models.PriceQuote, error) {
	q := &models.PriceQuote{}

	switch req.Service.Type {
	case models.ServiceMiniMove:
		sel := req.Service.MiniMove
		if sel == nil {
			return nil, fmt.Errorf("mini move selection missing")
		}
		pkg, ok := catalog.MiniMovePackageByID(sel.PackageID)
		if !ok {
			return nil, fmt.Errorf("unknown mini move package: %s", sel.PackageID)
		}
		q.BasePrice = pkg.BasePrice
		if sel.IncludePacking {
			q.OrganizingTotal += pkg.PackingPrice
		}
		if sel.IncludeUnpacking {
			q.OrganizingTotal += pkg.UnpackingPrice
		}
		if q.OrganizingTotal > 0 {
			q.OrganizingTax = round(q.OrganizingTotal * catalog.OrganizingTaxRate)
		}
		if req.COIRequired && !pkg.COIIncluded {
			q.COIFee = catalog.COIFee
		}

	case models.ServiceStandardDelivery:
		sel := req.Service.StandardDelivery
		if sel == nil {
			return nil, fmt.Errorf("standard delivery selection missing")
		}
		items := float64(sel.ItemCount) * catalog.StandardPerItemRate
		specialty, err := specialtyTotal(sel.SpecialtyItems)
		if err != nil {
			return nil, err
		}
		// The per-item subtotal is floored at the stated minimum; the
		// minimum applies to the whole job including specialty items.
		q.BasePrice = math.Max(items+specialty, catalog.StandardMinimum)
		if sel.SameDay {
			q.SameDaySurcharge = catalog.SameDayFlatSurcharge
		}
		if req.COIRequired {
			q.COIFee = catalog.COIFee
		}

	case models.ServiceSpecialtyItems:
		sel := req.Service.SpecialtyOnly
		if sel == nil {
			return nil, fmt.Errorf("specialty selection missing")
		}
		specialty, err := specialtyTotal(sel.SpecialtyItems)
		if err != nil {
			return nil, err
		}
		q.BasePrice = specialty
		if req.COIRequired {
			q.COIFee = catalog.COIFee
		}

	case models.ServiceBladeTransfer:
		sel := req.Service.BladeTransfer
		if sel == nil {
			return nil, fmt.Errorf("blade transfer selection missing")
		}
		if _, ok := catalog.AirportByCode(sel.Airport); !ok {
			return nil, fmt.Errorf("unknown airport: %s", sel.Airport)
		}
		q.BasePrice = math.Max(float64(sel.BagCount)*catalog.BladePerBagRate, catalog.BladeMinimum)

	default:
		return nil, fmt.Errorf("no service selected")
	}

	// Schedule-driven surcharges do not apply to BLADE transfers, whose
	// timing is derived from the flight.
	if req.Service.Type != models.ServiceBladeTransfer {
		if catalog.IsWeekendRate(req.PickupDate) {
			q.WeekendSurcharge = round(q.BasePrice * catalog.WeekendSurchargeRate)
		}
		if req.TimeWindow == models.WindowSpecificHour {
			q.TimeWindowSurcharge = catalog.SpecificHourSurcharge
		}
	}

	q.GeoSurcharge = geoSurcharge(req.PickupZip, req.DeliveryZip)

	subtotal := q.BasePrice + q.SameDaySurcharge + q.WeekendSurcharge +
		q.TimeWindowSurcharge + q.GeoSurcharge + q.COIFee +
		q.OrganizingTotal + q.OrganizingTax

	// Eligibility is re-applied on every quote, not just at code entry: a
	// configuration change that drops the subtotal under the code's
	// minimum spend removes the discount from the breakdown.
	if req.Discount != nil && subtotal >= req.Discount.MinSpend {
		q.DiscountAmount = round(req.Discount.AmountOff(subtotal))
	}

	q.Total = round(subtotal - q.DiscountAmount)
	q.Fingerprint = req.Fingerprint()
	return q, nil
}

func specialtyTotal(items []models.SpecialtyItemSelection) (float64, error) {
	var total float64
	for _, sel := range items {
		item, ok := catalog.SpecialtyItemByID(sel.ItemID)
		if !ok {
			return 0, fmt.Errorf("unknown specialty item: %s", sel.ItemID)
		}
		total += float64(sel.Quantity) * item.UnitPrice
	}
	return total, nil
}

// geoSurcharge applies a flat fee when pickup and delivery sit in different
// zip sectional centers (first three digits).
func geoSurcharge(pickupZip, deliveryZip string) float64 {
	if len(pickupZip) < 3 || len(deliveryZip) < 3 {
		return 0
	}
	if pickupZip[:3] != deliveryZip[:3] {
		return 75
	}
	return 0
}

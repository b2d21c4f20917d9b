package handlers

import (
	"fmt"
	"net/http"

	"swiftmove/models"
	"swiftmove/services/discount"
	"swiftmove/services/pricing"
	"swiftmove/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// pricingPreviewRequest is the flat payload of the public pricing preview.
type pricingPreviewRequest struct {
	ServiceType string `json:"service_type" binding:"required"`

	// Mini move.
	PackageID        string `json:"package_id"`
	IncludePacking   bool   `json:"include_packing"`
	IncludeUnpacking bool   `json:"include_unpacking"`

	// Standard delivery / specialty items.
	ItemCount      int                  `json:"item_count"`
	SameDay        bool                 `json:"same_day"`
	SpecialtyItems []specialtyItemInput `json:"specialty_items"`

	// BLADE transfer.
	Airport    string `json:"airport"`
	Terminal   string `json:"terminal"`
	FlightDate string `json:"flight_date"`
	FlightTime string `json:"flight_time"`
	BagCount   int    `json:"bag_count"`
	Direction  string `json:"direction"`

	// Schedule and addresses.
	PickupDate   string `json:"pickup_date"`
	TimeWindow   string `json:"time_window"`
	COIRequired  bool   `json:"coi_required"`
	PickupZip    string `json:"pickup_zip"`
	DeliveryZip  string `json:"delivery_zip"`
	DiscountCode string `json:"discount_code"`
	Email        string `json:"email"`
}

type specialtyItemInput struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

func (r pricingPreviewRequest) selection() (models.ServiceSelection, error) {
	var sel models.ServiceSelection
	switch models.ServiceType(r.ServiceType) {
	case models.ServiceMiniMove:
		sel.SetMiniMove(models.MiniMoveSelection{
			PackageID:        r.PackageID,
			IncludePacking:   r.IncludePacking,
			IncludeUnpacking: r.IncludeUnpacking,
		})
	case models.ServiceStandardDelivery:
		sel.SetStandardDelivery(models.StandardDeliverySelection{
			ItemCount:      r.ItemCount,
			SameDay:        r.SameDay,
			SpecialtyItems: r.specialtySelections(),
		})
	case models.ServiceSpecialtyItems:
		sel.SetSpecialtyOnly(models.SpecialtyOnlySelection{
			SpecialtyItems: r.specialtySelections(),
		})
	case models.ServiceBladeTransfer:
		sel.SetBladeTransfer(models.BladeTransferSelection{
			Airport:    r.Airport,
			Terminal:   r.Terminal,
			FlightDate: r.FlightDate,
			FlightTime: r.FlightTime,
			BagCount:   r.BagCount,
			Direction:  models.TransferDirection(r.Direction),
		})
	default:
		return sel, fmt.Errorf("unknown service type: %s", r.ServiceType)
	}
	return sel, nil
}

func (r pricingPreviewRequest) specialtySelections() []models.SpecialtyItemSelection {
	out := make([]models.SpecialtyItemSelection, 0, len(r.SpecialtyItems))
	for _, it := range r.SpecialtyItems {
		out = append(out, models.SpecialtyItemSelection{ItemID: it.ItemID, Quantity: it.Quantity})
	}
	return out
}

// PricingPreviewHandler computes a price breakdown for an arbitrary
// configuration, without touching any draft.
func (hb *HandlerBundle) PricingPreviewHandler(c *gin.Context) {
	var input pricingPreviewRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sel, err := input.selection()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid service selection", err.Error())
		return
	}

	req := pricing.PriceRequest{
		Service:     sel,
		PickupDate:  input.PickupDate,
		TimeWindow:  models.TimeWindow(input.TimeWindow),
		COIRequired: input.COIRequired,
		PickupZip:   input.PickupZip,
		DeliveryZip: input.DeliveryZip,
	}

	if input.DiscountCode != "" {
		// Run the code through validation with the undiscounted subtotal;
		// an ineligible code prices without it and reports why.
		base, err := hb.Pricing.Quote(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		desc, derr := hb.Discounts.Validate(c.Request.Context(), input.DiscountCode, discount.ValidationContext{
			Email:       input.Email,
			ServiceType: sel.Type,
			Subtotal:    base.Total,
		})
		if derr != nil {
			hb.Logger.Debug("preview discount rejected", zap.String("code", input.DiscountCode), zap.Error(derr))
			c.JSON(http.StatusOK, gin.H{"quote": base, "discount_rejected": derr.Error()})
			return
		}
		req.Discount = desc
	}

	quote, err := hb.Pricing.Quote(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

package pricing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"swiftmove/models"
)

// PriceRequest is the full input to a quote computation. It is a pure
// projection of a draft's price-relevant fields: two drafts that agree on
// these fields always produce the same request and the same fingerprint.
type PriceRequest struct {
	Service     models.ServiceSelection    `json:"service"`
	PickupDate  string                     `json:"pickupDate,omitempty"`
	TimeWindow  models.TimeWindow          `json:"timeWindow,omitempty"`
	COIRequired bool                       `json:"coiRequired"`
	PickupZip   string                     `json:"pickupZip,omitempty"`
	DeliveryZip string                     `json:"deliveryZip,omitempty"`
	Discount    *models.DiscountDescriptor `json:"discount,omitempty"`
}

// BuildRequest projects the price-relevant fields out of a draft. The
// discount descriptor is included only once validated.
func BuildRequest(draft *models.BookingDraft) PriceRequest {
	req := PriceRequest{
		Service:     draft.Service,
		PickupDate:  draft.Schedule.PickupDate,
		TimeWindow:  draft.Schedule.TimeWindow,
		COIRequired: draft.Schedule.COIRequired,
		PickupZip:   draft.Pickup.Zip,
		DeliveryZip: draft.Delivery.Zip,
	}
	if draft.Discount.Validated && draft.Discount.Descriptor != nil {
		req.Discount = draft.Discount.Descriptor
	}
	return req
}

// Fingerprint canonically serializes the request and hashes it. Identical
// fingerprints mean a redundant pricing call can be skipped.
func (r PriceRequest) Fingerprint() string {
	data, err := json.Marshal(r)
	if err != nil {
		// PriceRequest contains only marshalable fields; this cannot
		// happen for real inputs.
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

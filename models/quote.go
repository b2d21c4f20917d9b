package models

// PriceQuote is a price breakdown in dollars. Components not applicable to
// the current configuration are zero; Total = sum(components) - Discount.
type PriceQuote struct {
	BasePrice           float64 `json:"basePrice"`
	SameDaySurcharge    float64 `json:"sameDaySurcharge,omitempty"`
	WeekendSurcharge    float64 `json:"weekendSurcharge,omitempty"`
	TimeWindowSurcharge float64 `json:"timeWindowSurcharge,omitempty"`
	GeoSurcharge        float64 `json:"geoSurcharge,omitempty"`
	COIFee              float64 `json:"coiFee,omitempty"`
	OrganizingTotal     float64 `json:"organizingTotal,omitempty"`
	OrganizingTax       float64 `json:"organizingTax,omitempty"`
	DiscountAmount      float64 `json:"discountAmount,omitempty"`
	Total               float64 `json:"total"`

	// QuoteSeq is the dispatch sequence number of the recomputation that
	// produced this quote; Fingerprint is the request fingerprint it was
	// computed from.
	QuoteSeq    uint64 `json:"quoteSeq"`
	Fingerprint string `json:"fingerprint"`
}

// Discount is the draft's discount-code state. Validated resets to false
// whenever the code or any price-relevant field changes.
type Discount struct {
	Code       string              `json:"code,omitempty"`
	Validated  bool                `json:"validated"`
	Descriptor *DiscountDescriptor `json:"descriptor,omitempty"`
}

// DiscountKind distinguishes percent-off from fixed-amount codes.
type DiscountKind string

const (
	DiscountPercent DiscountKind = "percent"
	DiscountFixed   DiscountKind = "fixed"
)

// DiscountDescriptor is a normalized, accepted discount.
type DiscountDescriptor struct {
	Code     string       `json:"code"`
	Kind     DiscountKind `json:"kind"`
	Percent  float64      `json:"percent,omitempty"` // 0-100
	Amount   float64      `json:"amount,omitempty"`  // dollars, for fixed
	MinSpend float64      `json:"minSpend,omitempty"`
}

// AmountOff returns the dollar discount for a given pre-discount total.
// The result never exceeds the total.
func (d DiscountDescriptor) AmountOff(total float64) float64 {
	var off float64
	switch d.Kind {
	case DiscountPercent:
		off = total * d.Percent / 100
	case DiscountFixed:
		off = d.Amount
	}
	if off > total {
		off = total
	}
	if off < 0 {
		off = 0
	}
	return off
}

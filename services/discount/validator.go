package discount

import (
	"context"
	"fmt"
	"strings"

	"swiftmove/models"

	"go.uber.org/zap"
)

// Code is a configured discount code.
type Code struct {
	Code              string
	Kind              models.DiscountKind
	Percent           float64
	Amount            float64
	MinSpend          float64
	Active            bool
	SingleUsePerEmail bool
	// Services restricts eligibility; empty means any service type.
	Services []models.ServiceType
}

// UsageChecker answers whether an email has already redeemed a code.
type UsageChecker interface {
	HasUsedDiscount(ctx context.Context, email, code string) (bool, error)
}

// ValidationContext is the configuration the code is checked against.
// Eligibility is configuration-dependent, so acceptance must be re-checked
// whenever price-relevant fields change.
type ValidationContext struct {
	Email       string
	ServiceType models.ServiceType
	Subtotal    float64
}

// Validator validates user-entered discount codes.
type Validator struct {
	codes  map[string]Code
	usage  UsageChecker
	logger *zap.Logger
}

// NewValidator builds a validator over the configured code table.
func NewValidator(codes []Code, usage UsageChecker, logger *zap.Logger) *Validator {
	table := make(map[string]Code, len(codes))
	for _, c := range codes {
		table[strings.ToUpper(c.Code)] = c
	}
	return &Validator{codes: table, usage: usage, logger: logger}
}

// DefaultCodes is the built-in code table.
func DefaultCodes() []Code {
	return []Code{
		{Code: "MOVE10", Kind: models.DiscountPercent, Percent: 10, Active: true},
		{Code: "HAMPTONS50", Kind: models.DiscountFixed, Amount: 50, MinSpend: 300, Active: true},
		{Code: "FIRSTMOVE", Kind: models.DiscountPercent, Percent: 100, Active: true, SingleUsePerEmail: true},
		{Code: "BLADE25", Kind: models.DiscountFixed, Amount: 25, Active: true, Services: []models.ServiceType{models.ServiceBladeTransfer}},
	}
}

// Validate checks a code against the current configuration and identity and
// returns a normalized descriptor, or a RejectionError with the reason.
// Acceptance is idempotent for an unchanged (code, context) pair.
func (v *Validator) Validate(ctx context.Context, code string, vctx ValidationContext) (*models.DiscountDescriptor, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, NewRejection(ReasonInvalidCode, "no code entered")
	}

	c, ok := v.codes[normalized]
	if !ok {
		return nil, NewRejection(ReasonInvalidCode, fmt.Sprintf("code %q is not recognized", normalized))
	}
	if !c.Active {
		return nil, NewRejection(ReasonInactive, fmt.Sprintf("code %q is no longer active", normalized))
	}
	if len(c.Services) > 0 && !serviceEligible(c.Services, vctx.ServiceType) {
		return nil, NewRejection(ReasonIneligibleService, fmt.Sprintf("code %q does not apply to this service", normalized))
	}
	if vctx.Subtotal < c.MinSpend {
		return nil, NewRejection(ReasonMinSpend, fmt.Sprintf("code %q requires a minimum of $%.2f", normalized, c.MinSpend))
	}
	if c.SingleUsePerEmail && v.usage != nil && vctx.Email != "" {
		used, err := v.usage.HasUsedDiscount(ctx, vctx.Email, normalized)
		if err != nil {
			v.logger.Warn("discount usage lookup failed", zap.String("code", normalized), zap.Error(err))
			return nil, fmt.Errorf("failed to verify code usage: %w", err)
		}
		if used {
			return nil, NewRejection(ReasonAlreadyUsed, fmt.Sprintf("code %q was already used", normalized))
		}
	}

	return &models.DiscountDescriptor{
		Code:     normalized,
		Kind:     c.Kind,
		Percent:  c.Percent,
		Amount:   c.Amount,
		MinSpend: c.MinSpend,
	}, nil
}

func serviceEligible(allowed []models.ServiceType, st models.ServiceType) bool {
	for _, a := range allowed {
		if a == st {
			return true
		}
	}
	return false
}

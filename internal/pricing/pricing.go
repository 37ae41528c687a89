package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type CommissionType string

const (
	CommissionPercentage CommissionType = "percentage"
	CommissionFixed      CommissionType = "fixed"
)

// PricingConfig is an agency's markup model: a commission (percentage of the
// base price or a fixed amount) plus a flat service fee per booking.
type PricingConfig struct {
	CommissionType  CommissionType  `json:"commission_type"`
	CommissionValue decimal.Decimal `json:"commission_value"`
	ServiceFee      decimal.Decimal `json:"service_fee"`
}

// DefaultConfig is applied on a user's first access: 10% commission plus a
// 50.00 service fee.
func DefaultConfig() PricingConfig {
	return PricingConfig{
		CommissionType:  CommissionPercentage,
		CommissionValue: decimal.NewFromInt(10),
		ServiceFee:      decimal.NewFromInt(50),
	}
}

// ValidateConfig rejects configurations before they reach the pricing path.
func ValidateConfig(cfg PricingConfig) error {
	switch cfg.CommissionType {
	case CommissionPercentage, CommissionFixed:
	default:
		return fmt.Errorf("%w: unknown commission type %q", ErrInvalidConfig, cfg.CommissionType)
	}
	if cfg.CommissionValue.IsNegative() {
		return fmt.Errorf("%w: negative commission value", ErrInvalidConfig)
	}
	if cfg.ServiceFee.IsNegative() {
		return fmt.Errorf("%w: negative service fee", ErrInvalidConfig)
	}
	return nil
}

// PriceBreakdown is the resold price of one offer: the supplier's base price,
// the agency commission and service fee, and the final total.
type PriceBreakdown struct {
	BasePrice  decimal.Decimal `json:"base_price"`
	ServiceFee decimal.Decimal `json:"service_fee"`
	Commission decimal.Decimal `json:"commission"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Currency   string          `json:"currency"`
}

// ComputeBreakdown prices one offer. Commission and total are rounded half-up
// to 2 decimal places, the minor-unit precision of the currencies in scope.
// Deterministic: identical inputs always produce identical output.
func ComputeBreakdown(basePrice decimal.Decimal, cfg PricingConfig) (PriceBreakdown, error) {
	if basePrice.IsNegative() {
		return PriceBreakdown{}, fmt.Errorf("%w: negative amount %s", ErrInvalidPrice, basePrice)
	}

	var commission decimal.Decimal
	if cfg.CommissionType == CommissionPercentage {
		commission = basePrice.Mul(cfg.CommissionValue).Div(decimal.NewFromInt(100))
	} else {
		commission = cfg.CommissionValue
	}
	commission = commission.Round(2)

	total := basePrice.Add(cfg.ServiceFee).Add(commission).Round(2)

	return PriceBreakdown{
		BasePrice:  basePrice,
		ServiceFee: cfg.ServiceFee,
		Commission: commission,
		TotalPrice: total,
	}, nil
}

package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeBreakdown_PercentageCommission(t *testing.T) {
	cfg := PricingConfig{
		CommissionType:  CommissionPercentage,
		CommissionValue: decimal.NewFromInt(10),
		ServiceFee:      decimal.NewFromInt(50),
	}

	got, err := ComputeBreakdown(dec("1000.00"), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.Commission.Equal(dec("100.00")) {
		t.Errorf("commission = %s, want 100.00", got.Commission)
	}
	if !got.TotalPrice.Equal(dec("1150.00")) {
		t.Errorf("total = %s, want 1150.00", got.TotalPrice)
	}
}

func TestComputeBreakdown_FixedCommission(t *testing.T) {
	cfg := PricingConfig{
		CommissionType:  CommissionFixed,
		CommissionValue: decimal.NewFromInt(75),
		ServiceFee:      decimal.NewFromInt(50),
	}

	got, err := ComputeBreakdown(dec("1000.00"), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.Commission.Equal(dec("75.00")) {
		t.Errorf("commission = %s, want 75.00", got.Commission)
	}
	if !got.TotalPrice.Equal(dec("1125.00")) {
		t.Errorf("total = %s, want 1125.00", got.TotalPrice)
	}
}

func TestComputeBreakdown_RoundsHalfUp(t *testing.T) {
	// 10.5% of 100.10 is 10.5105, which rounds up to 10.51.
	cfg := PricingConfig{
		CommissionType:  CommissionPercentage,
		CommissionValue: dec("10.5"),
		ServiceFee:      decimal.Zero,
	}

	got, err := ComputeBreakdown(dec("100.10"), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.Commission.Equal(dec("10.51")) {
		t.Errorf("commission = %s, want 10.51", got.Commission)
	}
	if !got.TotalPrice.Equal(dec("110.61")) {
		t.Errorf("total = %s, want 110.61", got.TotalPrice)
	}
}

func TestComputeBreakdown_TotalIsSumOfParts(t *testing.T) {
	cfg := PricingConfig{
		CommissionType:  CommissionPercentage,
		CommissionValue: dec("12.34"),
		ServiceFee:      dec("19.99"),
	}

	got, err := ComputeBreakdown(dec("487.65"), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := got.BasePrice.Add(got.ServiceFee).Add(got.Commission)
	if !got.TotalPrice.Equal(sum) {
		t.Errorf("total %s != base+fee+commission %s", got.TotalPrice, sum)
	}
}

func TestComputeBreakdown_ZeroBasePrice(t *testing.T) {
	got, err := ComputeBreakdown(decimal.Zero, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.Commission.Equal(decimal.Zero) {
		t.Errorf("commission = %s, want 0", got.Commission)
	}
	if !got.TotalPrice.Equal(decimal.NewFromInt(50)) {
		t.Errorf("total = %s, want 50", got.TotalPrice)
	}
}

func TestComputeBreakdown_NegativeBasePrice(t *testing.T) {
	_, err := ComputeBreakdown(dec("-10"), DefaultConfig())
	if !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice, got: %v", err)
	}
}

func TestComputeBreakdown_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	base := dec("321.99")

	first, err := ComputeBreakdown(base, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ComputeBreakdown(base, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.TotalPrice.Equal(second.TotalPrice) {
		t.Errorf("breakdown not deterministic: %s vs %s", first.TotalPrice, second.TotalPrice)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     PricingConfig
		wantErr bool
	}{
		{"valid percentage", DefaultConfig(), false},
		{"valid fixed", PricingConfig{CommissionType: CommissionFixed, CommissionValue: dec("25"), ServiceFee: dec("10")}, false},
		{"unknown type", PricingConfig{CommissionType: "markup", CommissionValue: dec("10"), ServiceFee: dec("10")}, true},
		{"negative commission", PricingConfig{CommissionType: CommissionPercentage, CommissionValue: dec("-1"), ServiceFee: dec("10")}, true},
		{"negative service fee", PricingConfig{CommissionType: CommissionFixed, CommissionValue: dec("10"), ServiceFee: dec("-1")}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateConfig(tc.cfg)
			if tc.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got: %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"PT2H25M", 145},
		{"PT45M", 45},
		{"PT3H", 180},
		{"P1DT2H", 1560},
		{"PT0M", 0},
	}

	for _, tc := range tests {
		got, err := parseISODuration(tc.in)
		if err != nil {
			t.Errorf("parseISODuration(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseISODuration(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseISODuration_Invalid(t *testing.T) {
	for _, in := range []string{"", "2h30m", "PT-5M", "garbage"} {
		if _, err := parseISODuration(in); err == nil {
			t.Errorf("parseISODuration(%q): expected error", in)
		}
	}
}

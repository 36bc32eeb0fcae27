// Package tax computes ICMS, PIS and COFINS over a monetary value and a
// freight lane. The calculation is a total function: any input shape,
// including empty region codes and a zero value, yields a breakdown.
package tax

import (
	"github.com/shopspring/decimal"

	"github.com/fiscalbr/fiscal-processor/internal/money"
)

// Breakdown holds the rate and computed value for each tax
type Breakdown struct {
	ICMSRate    decimal.Decimal `json:"icms_rate"`
	ICMSValue   decimal.Decimal `json:"icms_value"`
	PISRate     decimal.Decimal `json:"pis_rate"`
	PISValue    decimal.Decimal `json:"pis_value"`
	COFINSRate  decimal.Decimal `json:"cofins_rate"`
	COFINSValue decimal.Decimal `json:"cofins_value"`
}

// RateTable holds the tax rates, in percent.
// These are simplified placeholder rates, not a real tax table; production
// reuse should inject rates from an authoritative source.
type RateTable struct {
	ICMSInternal   decimal.Decimal
	ICMSInterstate decimal.Decimal
	PIS            decimal.Decimal
	COFINS         decimal.Decimal
}

// DefaultRateTable returns the illustrative policy rates
func DefaultRateTable() RateTable {
	return RateTable{
		ICMSInternal:   decimal.NewFromInt(18),
		ICMSInterstate: decimal.NewFromInt(12),
		PIS:            money.MustFromString("1.65"),
		COFINS:         money.MustFromString("7.6"),
	}
}

// Calculator computes tax breakdowns from an injected rate table
type Calculator struct {
	rates RateTable
}

// NewCalculator creates a calculator with the given rate table
func NewCalculator(rates RateTable) *Calculator {
	return &Calculator{rates: rates}
}

// NewDefaultCalculator creates a calculator with the default rate table
func NewDefaultCalculator() *Calculator {
	return NewCalculator(DefaultRateTable())
}

// Calculate computes the breakdown for a value moved from origin to
// destination. Tax is only meaningful once a value and a complete lane are
// known: a non-positive value or an empty region code yields the all-zero
// breakdown. ICMS uses the internal rate when origin equals destination,
// the interstate rate otherwise. Computed values are rounded to centavos,
// half away from zero.
func (c *Calculator) Calculate(value decimal.Decimal, origin, destination string) Breakdown {
	if !money.IsPositive(value) || origin == "" || destination == "" {
		return Breakdown{
			ICMSRate:    money.Zero,
			ICMSValue:   money.Zero,
			PISRate:     money.Zero,
			PISValue:    money.Zero,
			COFINSRate:  money.Zero,
			COFINSValue: money.Zero,
		}
	}

	icmsRate := c.rates.ICMSInterstate
	if origin == destination {
		icmsRate = c.rates.ICMSInternal
	}

	return Breakdown{
		ICMSRate:    icmsRate,
		ICMSValue:   money.ApplyRate(value, icmsRate),
		PISRate:     c.rates.PIS,
		PISValue:    money.ApplyRate(value, c.rates.PIS),
		COFINSRate:  c.rates.COFINS,
		COFINSValue: money.ApplyRate(value, c.rates.COFINS),
	}
}

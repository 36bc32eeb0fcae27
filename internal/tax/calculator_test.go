package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fiscalbr/fiscal-processor/internal/tax"
)

func TestCalculate_InternalOperation(t *testing.T) {
	calc := tax.NewDefaultCalculator()

	breakdown := calc.Calculate(decimal.NewFromInt(1000), "SP", "SP")

	assert.True(t, breakdown.ICMSRate.Equal(decimal.NewFromInt(18)))
	assert.True(t, breakdown.ICMSValue.Equal(decimal.NewFromInt(180)),
		"ICMS: got %s", breakdown.ICMSValue)
	assert.True(t, breakdown.PISValue.Equal(decimal.RequireFromString("16.5")),
		"PIS: got %s", breakdown.PISValue)
	assert.True(t, breakdown.COFINSValue.Equal(decimal.NewFromInt(76)),
		"COFINS: got %s", breakdown.COFINSValue)
}

func TestCalculate_InterstateOperation(t *testing.T) {
	calc := tax.NewDefaultCalculator()

	breakdown := calc.Calculate(decimal.NewFromInt(1000), "SP", "RJ")

	assert.True(t, breakdown.ICMSRate.Equal(decimal.NewFromInt(12)))
	assert.True(t, breakdown.ICMSValue.Equal(decimal.NewFromInt(120)),
		"ICMS: got %s", breakdown.ICMSValue)

	// PIS and COFINS do not depend on the lane
	assert.True(t, breakdown.PISValue.Equal(decimal.RequireFromString("16.5")))
	assert.True(t, breakdown.COFINSValue.Equal(decimal.NewFromInt(76)))
}

func TestCalculate_GuardClause(t *testing.T) {
	calc := tax.NewDefaultCalculator()

	tests := []struct {
		name        string
		value       decimal.Decimal
		origin      string
		destination string
	}{
		{"zero value", decimal.Zero, "SP", "SP"},
		{"empty origin", decimal.NewFromInt(1000), "", "SP"},
		{"empty destination", decimal.NewFromInt(1000), "SP", ""},
		{"everything empty", decimal.Zero, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown := calc.Calculate(tt.value, tt.origin, tt.destination)

			assert.True(t, breakdown.ICMSRate.IsZero())
			assert.True(t, breakdown.ICMSValue.IsZero())
			assert.True(t, breakdown.PISRate.IsZero())
			assert.True(t, breakdown.PISValue.IsZero())
			assert.True(t, breakdown.COFINSRate.IsZero())
			assert.True(t, breakdown.COFINSValue.IsZero())
		})
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	calc := tax.NewDefaultCalculator()
	value := decimal.RequireFromString("1234.56")

	first := calc.Calculate(value, "MG", "BA")
	second := calc.Calculate(value, "MG", "BA")

	assert.True(t, first.ICMSValue.Equal(second.ICMSValue))
	assert.True(t, first.PISValue.Equal(second.PISValue))
	assert.True(t, first.COFINSValue.Equal(second.COFINSValue))
}

func TestCalculate_RoundsHalfAwayFromZero(t *testing.T) {
	calc := tax.NewDefaultCalculator()

	// 18% of 0.25 = 0.045, which rounds up to 0.05
	breakdown := calc.Calculate(decimal.RequireFromString("0.25"), "SP", "SP")
	assert.True(t, breakdown.ICMSValue.Equal(decimal.RequireFromString("0.05")),
		"ICMS: got %s", breakdown.ICMSValue)

	// 1.65% of 10 = 0.165, which rounds up to 0.17
	breakdown = calc.Calculate(decimal.NewFromInt(10), "SP", "SP")
	assert.True(t, breakdown.PISValue.Equal(decimal.RequireFromString("0.17")),
		"PIS: got %s", breakdown.PISValue)
}

func TestCalculate_CustomRateTable(t *testing.T) {
	calc := tax.NewCalculator(tax.RateTable{
		ICMSInternal:   decimal.NewFromInt(20),
		ICMSInterstate: decimal.NewFromInt(7),
		PIS:            decimal.NewFromInt(1),
		COFINS:         decimal.NewFromInt(3),
	})

	breakdown := calc.Calculate(decimal.NewFromInt(100), "SP", "AM")

	assert.True(t, breakdown.ICMSRate.Equal(decimal.NewFromInt(7)))
	assert.True(t, breakdown.ICMSValue.Equal(decimal.NewFromInt(7)))
	assert.True(t, breakdown.PISValue.Equal(decimal.NewFromInt(1)))
	assert.True(t, breakdown.COFINSValue.Equal(decimal.NewFromInt(3)))
}

func TestDefaultRateTable(t *testing.T) {
	rates := tax.DefaultRateTable()

	assert.True(t, rates.ICMSInternal.Equal(decimal.NewFromInt(18)))
	assert.True(t, rates.ICMSInterstate.Equal(decimal.NewFromInt(12)))
	assert.True(t, rates.PIS.Equal(decimal.RequireFromString("1.65")))
	assert.True(t, rates.COFINS.Equal(decimal.RequireFromString("7.6")))
}

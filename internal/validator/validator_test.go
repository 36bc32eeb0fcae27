package validator_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalbr/fiscal-processor/internal/model"
	"github.com/fiscalbr/fiscal-processor/internal/validator"
)

func validRecord() *model.Record {
	return &model.Record{
		Type:        model.TypeRevenue,
		Number:      "12345",
		Value:       decimal.NewFromInt(1000),
		Origin:      "SP",
		Destination: "RJ",
		Category:    "frete",
	}
}

func TestValidate_ValidRecord(t *testing.T) {
	report := validator.Validate(validRecord())

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
}

func TestValidate_EmptyRecord(t *testing.T) {
	report := validator.Validate(&model.Record{})

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 4)
	assert.Empty(t, report.Warnings)

	// Errors keep the rule evaluation order
	assert.Equal(t, "Número do documento é obrigatório", report.Errors[0])
	assert.Equal(t, "Valor deve ser maior que zero", report.Errors[1])
	assert.Equal(t, "UF de origem é obrigatória", report.Errors[2])
	assert.Equal(t, "UF de destino é obrigatória", report.Errors[3])
}

func TestValidate_NilRecord(t *testing.T) {
	report := validator.Validate(nil)

	assert.False(t, report.Valid)
	assert.Len(t, report.Errors, 4)
}

func TestValidate_NegativeValue(t *testing.T) {
	rec := validRecord()
	rec.Value = decimal.NewFromInt(-10)

	report := validator.Validate(rec)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Errors, "Valor deve ser maior que zero")
}

func TestValidate_InvalidUF(t *testing.T) {
	rec := validRecord()
	rec.Origin = "XX"
	rec.Destination = "ZZ"

	report := validator.Validate(rec)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Errors, "UF de origem inválida: XX")
	assert.Contains(t, report.Errors, "UF de destino inválida: ZZ")
}

func TestValidate_CFOPDirection(t *testing.T) {
	tests := []struct {
		name        string
		cfop        string
		origin      string
		destination string
		wantWarning string
	}{
		{
			name:        "internal with internal prefix",
			cfop:        "5101",
			origin:      "SP",
			destination: "SP",
			wantWarning: "",
		},
		{
			name:        "interstate with interstate prefix",
			cfop:        "6101",
			origin:      "SP",
			destination: "RJ",
			wantWarning: "",
		},
		{
			name:        "internal with interstate prefix",
			cfop:        "6101",
			origin:      "SP",
			destination: "SP",
			wantWarning: "CFOP 6101 não corresponde a operação interna (SP->SP)",
		},
		{
			name:        "interstate with internal prefix",
			cfop:        "5101",
			origin:      "SP",
			destination: "RJ",
			wantWarning: "CFOP 5101 não corresponde a operação interestadual (SP->RJ)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			rec.CFOP = tt.cfop
			rec.Origin = tt.origin
			rec.Destination = tt.destination

			report := validator.Validate(rec)
			assert.True(t, report.Valid, "warnings never affect validity")

			if tt.wantWarning == "" {
				assert.Empty(t, report.Warnings)
			} else {
				require.Len(t, report.Warnings, 1)
				assert.Equal(t, tt.wantWarning, report.Warnings[0])
			}
		})
	}
}

func TestValidate_CFOPSkippedWithoutTriad(t *testing.T) {
	// Missing destination: the direction check is skipped, not an error
	rec := &model.Record{
		Type:     model.TypeRevenue,
		Number:   "1",
		Value:    decimal.NewFromInt(100),
		Origin:   "SP",
		CFOP:     "6101",
		Category: "frete",
	}

	report := validator.Validate(rec)
	assert.False(t, report.Valid) // destination still required
	assert.Empty(t, report.Warnings)
}

func TestValidate_MissingCategoryWarning(t *testing.T) {
	rec := validRecord()
	rec.Category = ""

	report := validator.Validate(rec)
	assert.True(t, report.Valid)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "Categoria não informada para lançamento de receita", report.Warnings[0])
}

func TestValidate_ExpenseWithoutCategoryNoWarning(t *testing.T) {
	rec := validRecord()
	rec.Type = model.TypeExpense
	rec.Category = ""

	report := validator.Validate(rec)
	assert.Empty(t, report.Warnings)
}

func TestValidate_FreshReportPerCall(t *testing.T) {
	rec := validRecord()

	first := validator.Validate(rec)
	second := validator.Validate(rec)

	require.NotSame(t, first, second)
	first.Errors = append(first.Errors, "mutated")
	assert.Empty(t, second.Errors)
}

func TestValidate_AllUFsAccepted(t *testing.T) {
	require.Len(t, model.UFs, 27)

	for uf := range model.UFs {
		rec := validRecord()
		rec.Origin = uf
		rec.Destination = uf

		report := validator.Validate(rec)
		assert.True(t, report.Valid, "UF %s should validate", uf)
	}
}

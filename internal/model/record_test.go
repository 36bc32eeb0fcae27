package model_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalbr/fiscal-processor/internal/model"
)

func TestRecordJSON(t *testing.T) {
	rec := model.Record{
		Type:        model.TypeRevenue,
		Source:      model.SourceCTe,
		Date:        time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		Value:       decimal.RequireFromString("1500.00"),
		Number:      "12345",
		Origin:      "SP",
		Destination: "RJ",
		Description: "Frete CT-e 12345 (SP -> RJ)",
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"document_number":"12345"`)
	assert.Contains(t, string(data), `"type":"receita"`)
	assert.Contains(t, string(data), `"source":"CTE"`)
	// CFOP and category are omitted when empty
	assert.NotContains(t, string(data), "cfop")
	assert.NotContains(t, string(data), "category")

	var decoded model.Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Value.Equal(rec.Value))
	assert.Equal(t, rec.Number, decoded.Number)
}

func TestIsValidUF(t *testing.T) {
	valid := []string{"SP", "RJ", "MG", "DF", "AC", "TO"}
	for _, code := range valid {
		assert.True(t, model.IsValidUF(code), "expected %s to be valid", code)
	}

	invalid := []string{"", "XX", "sp", "SPP", "BR"}
	for _, code := range invalid {
		assert.False(t, model.IsValidUF(code), "expected %s to be invalid", code)
	}
}

func TestUFCount(t *testing.T) {
	assert.Len(t, model.UFs, 27)
}

func TestParseError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := model.NewParseError(model.SourceCTe, "xml", "malformed document", cause)

	assert.Contains(t, err.Error(), "CTE")
	assert.Contains(t, err.Error(), "xml")
	assert.Contains(t, err.Error(), "malformed document")
	assert.Contains(t, err.Error(), "unexpected EOF")
	assert.ErrorIs(t, err, cause)
}

func TestParseError_NoCause(t *testing.T) {
	err := model.NewParseError(model.SourceNFSe, "DataEmissao", "invalid timestamp", nil)

	assert.Equal(t, "[NFSE] DataEmissao: invalid timestamp", err.Error())
	assert.NoError(t, errors.Unwrap(err))
}

func TestFormatError(t *testing.T) {
	err := model.NewFormatError("unrecognized fiscal document format", model.SourceCTe, model.SourceNFSe)

	assert.Contains(t, err.Error(), "unrecognized fiscal document format")
	assert.Contains(t, err.Error(), "CTE")
	assert.Contains(t, err.Error(), "NFSE")
	assert.Equal(t, []model.Source{model.SourceCTe, model.SourceNFSe}, err.Attempted)
}

func TestFormatError_NoAttempts(t *testing.T) {
	err := model.NewFormatError("no match")
	assert.Equal(t, "no match", err.Error())
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source identifies the fiscal document schema a record came from
type Source string

const (
	SourceCTe     Source = "CTE"
	SourceNFSe    Source = "NFSE"
	SourceUnknown Source = "UNKNOWN"
)

// RecordType classifies the fiscal event
type RecordType string

const (
	TypeRevenue RecordType = "receita"
	TypeExpense RecordType = "despesa"
)

// Record is the canonical transaction record produced by extraction.
// Extraction fills the document fields and zeroes the tax values;
// the tax calculator output is merged in afterwards by the caller.
type Record struct {
	Type        RecordType      `json:"type"`
	Source      Source          `json:"source"`
	Date        time.Time       `json:"date"`
	Value       decimal.Decimal `json:"value"`
	Number      string          `json:"document_number"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	Description string          `json:"description"`

	// Filled by the caller, not by extraction
	CFOP     string `json:"cfop,omitempty"`
	Category string `json:"category,omitempty"`

	// Populated from the tax breakdown, never by extraction
	ICMSValue   decimal.Decimal `json:"icms_value"`
	PISValue    decimal.Decimal `json:"pis_value"`
	COFINSValue decimal.Decimal `json:"cofins_value"`
}

// UFs is the fixed set of 27 Brazilian state/federal-district codes
var UFs = map[string]bool{
	"AC": true, "AL": true, "AP": true, "AM": true, "BA": true,
	"CE": true, "DF": true, "ES": true, "GO": true, "MA": true,
	"MT": true, "MS": true, "MG": true, "PA": true, "PB": true,
	"PR": true, "PE": true, "PI": true, "RJ": true, "RN": true,
	"RS": true, "RO": true, "RR": true, "SC": true, "SP": true,
	"SE": true, "TO": true,
}

// IsValidUF reports whether code is one of the 27 region codes
func IsValidUF(code string) bool {
	return UFs[code]
}

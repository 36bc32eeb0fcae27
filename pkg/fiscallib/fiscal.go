// Package fiscallib provides a public API for processing Brazilian fiscal
// XML documents (CT-e freight manifests and NFS-e service invoices).
//
// This package exposes the core types for extracting canonical records,
// computing ICMS/PIS/COFINS and validating records against the fiscal
// business rules.
//
// Example usage:
//
//	p := fiscallib.NewProcessor()
//	result, err := p.Process(ctx, xmlBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Record.Value, result.Report.Valid)
package fiscallib

import (
	"github.com/fiscalbr/fiscal-processor/internal/model"
	"github.com/fiscalbr/fiscal-processor/internal/tax"
	"github.com/fiscalbr/fiscal-processor/internal/validator"
)

// Re-export core types for public API
type (
	Record     = model.Record
	RecordType = model.RecordType
	Source     = model.Source
	Breakdown  = tax.Breakdown
	RateTable  = tax.RateTable
	Report     = validator.Report
)

// Re-export record types
const (
	TypeRevenue = model.TypeRevenue
	TypeExpense = model.TypeExpense
)

// Re-export source schemas
const (
	SourceCTe     = model.SourceCTe
	SourceNFSe    = model.SourceNFSe
	SourceUnknown = model.SourceUnknown
)

// Re-export error types
type (
	ParseError  = model.ParseError
	FormatError = model.FormatError
)

// IsValidUF reports whether code is one of the 27 region codes
func IsValidUF(code string) bool {
	return model.IsValidUF(code)
}

// DefaultRateTable returns the illustrative policy rates
func DefaultRateTable() RateTable {
	return tax.DefaultRateTable()
}

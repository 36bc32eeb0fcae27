// Package validator checks a canonical record against fiscal business
// rules. Validation issues are data, not errors: the caller always gets a
// complete report back, with user-facing messages in Portuguese.
package validator

import (
	"fmt"

	"github.com/fiscalbr/fiscal-processor/internal/model"
	"github.com/fiscalbr/fiscal-processor/internal/money"
)

// CFOP leading digits for operation direction
const (
	cfopInternalPrefix   = '5'
	cfopInterstatePrefix = '6'
)

// Report is the outcome of validating a single record.
// A fresh report is built per call and never mutated after return.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validate evaluates every rule independently, in a fixed order, and never
// panics on missing fields. Warnings do not affect validity.
func Validate(rec *model.Record) *Report {
	report := &Report{
		Errors:   []string{},
		Warnings: []string{},
	}

	if rec == nil {
		rec = &model.Record{}
	}

	if rec.Number == "" {
		report.Errors = append(report.Errors, "Número do documento é obrigatório")
	}

	if !money.IsPositive(rec.Value) {
		report.Errors = append(report.Errors, "Valor deve ser maior que zero")
	}

	if rec.Origin == "" {
		report.Errors = append(report.Errors, "UF de origem é obrigatória")
	}
	if rec.Destination == "" {
		report.Errors = append(report.Errors, "UF de destino é obrigatória")
	}

	if rec.Origin != "" && !model.IsValidUF(rec.Origin) {
		report.Errors = append(report.Errors, fmt.Sprintf("UF de origem inválida: %s", rec.Origin))
	}
	if rec.Destination != "" && !model.IsValidUF(rec.Destination) {
		report.Errors = append(report.Errors, fmt.Sprintf("UF de destino inválida: %s", rec.Destination))
	}

	// Direction cross-check runs only when the full triad is present; an
	// incomplete triad is skipped silently
	if rec.CFOP != "" && rec.Origin != "" && rec.Destination != "" {
		isInternal := rec.Origin == rec.Destination
		prefix := rec.CFOP[0]
		lane := fmt.Sprintf("%s->%s", rec.Origin, rec.Destination)

		if isInternal && prefix != cfopInternalPrefix {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("CFOP %s não corresponde a operação interna (%s)", rec.CFOP, lane))
		} else if !isInternal && prefix != cfopInterstatePrefix {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("CFOP %s não corresponde a operação interestadual (%s)", rec.CFOP, lane))
		}
	}

	if rec.Type == model.TypeRevenue && rec.Category == "" {
		report.Warnings = append(report.Warnings, "Categoria não informada para lançamento de receita")
	}

	report.Valid = len(report.Errors) == 0
	return report
}

package server

import (
	"github.com/shopspring/decimal"

	"github.com/fiscalbr/fiscal-processor/internal/model"
	"github.com/fiscalbr/fiscal-processor/internal/tax"
	"github.com/fiscalbr/fiscal-processor/internal/validator"
)

// ExtractResponse is the response for the extract endpoint
type ExtractResponse struct {
	Record *model.Record `json:"record"`
	Source string        `json:"source"`
}

// ProcessResponse is the response for the process endpoint
type ProcessResponse struct {
	Record *model.Record     `json:"record"`
	Taxes  *tax.Breakdown    `json:"taxes"`
	Report *validator.Report `json:"report"`
}

// TaxRequest is the request body for the taxes endpoint
type TaxRequest struct {
	Value       decimal.Decimal `json:"value"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
}

// InfoResponse is the response for the info endpoint
type InfoResponse struct {
	Format string `json:"format"`
	Source string `json:"source"`
	Size   int    `json:"size"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

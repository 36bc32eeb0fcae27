package xml

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fiscalbr/fiscal-processor/internal/model"
	"github.com/fiscalbr/fiscal-processor/internal/money"
)

// NFS-e layouts vary by municipality, so the service value is looked up
// document-wide under a few known spellings instead of a fixed container
var nfseValueTags = []string{"ValorServicos", "ValorServico", "vServ"}

const (
	nfseTagEmission    = "DataEmissao"
	nfseTagDescription = "Discriminacao"
	nfseTagNumber      = "Numero"
)

// nfseDescriptionLimit bounds service descriptions
const nfseDescriptionLimit = 100

// NFSeAdapter extracts NFS-e service invoices
type NFSeAdapter struct{}

// NewNFSeAdapter creates a new NFS-e adapter
func NewNFSeAdapter() *NFSeAdapter {
	return &NFSeAdapter{}
}

// Source returns the document schema
func (a *NFSeAdapter) Source() model.Source {
	return model.SourceNFSe
}

// CanParse checks for a service value leaf under any known spelling
func (a *NFSeAdapter) CanParse(content []byte) bool {
	for _, tag := range nfseValueTags {
		if bytes.Contains(content, []byte("<"+tag)) {
			return true
		}
	}
	return false
}

// Parse extracts NFS-e XML into a Record.
// A zero or unparseable service value is treated as absence and rejected
// with ErrNoMatch, so the registry reports the document as unrecognized.
func (a *NFSeAdapter) Parse(ctx context.Context, r io.Reader) (*model.Record, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewParseError(model.SourceNFSe, "content", "failed to read content", err)
	}

	tags := append([]string{nfseTagEmission, nfseTagDescription, nfseTagNumber}, nfseValueTags...)
	fields, err := leafValues(content, "", tags...)
	if err != nil {
		return nil, model.NewParseError(model.SourceNFSe, "xml", "failed to parse XML", err)
	}

	value := serviceValue(fields)
	if !money.IsPositive(value) {
		return nil, ErrNoMatch
	}

	// Service invoices carry no interstate freight lane, so origin and
	// destination stay empty
	return &model.Record{
		Type:        model.TypeRevenue,
		Source:      model.SourceNFSe,
		Date:        emissionDate(fields[nfseTagEmission]),
		Value:       value,
		Number:      fields[nfseTagNumber],
		Origin:      "",
		Destination: "",
		Description: nfseDescription(fields),
		ICMSValue:   money.Zero,
		PISValue:    money.Zero,
		COFINSValue: money.Zero,
	}, nil
}

// serviceValue returns the first positive value among the known spellings
func serviceValue(fields map[string]string) decimal.Decimal {
	for _, tag := range nfseValueTags {
		if v := money.ParseOrZero(fields[tag]); money.IsPositive(v) {
			return v
		}
	}
	return money.Zero
}

// nfseDescription prefers the invoice discrimination text; when absent it
// synthesizes one from the invoice number
func nfseDescription(fields map[string]string) string {
	if desc := strings.TrimSpace(fields[nfseTagDescription]); desc != "" {
		return truncate(desc, nfseDescriptionLimit)
	}
	return fmt.Sprintf("Serviço NFS-e %s", fields[nfseTagNumber])
}

package xml

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fiscalbr/fiscal-processor/internal/model"
	"github.com/fiscalbr/fiscal-processor/internal/money"
)

// CT-e leaf fields, looked up inside the <infCte> subtree only
const (
	cteTagNumber      = "nCT"
	cteTagEmission    = "dhEmi"
	cteTagValue       = "vTPrest"
	cteTagOrigin      = "UFIni"
	cteTagDestination = "UFFim"
	cteTagObservation = "xObs"
)

// cteDescriptionLimit bounds descriptions derived from observation text
const cteDescriptionLimit = 50

// CTeAdapter extracts CT-e freight manifests
type CTeAdapter struct{}

// NewCTeAdapter creates a new CT-e adapter
func NewCTeAdapter() *CTeAdapter {
	return &CTeAdapter{}
}

// Source returns the document schema
func (a *CTeAdapter) Source() model.Source {
	return model.SourceCTe
}

// CanParse checks for the CT-e information container
func (a *CTeAdapter) CanParse(content []byte) bool {
	return bytes.Contains(content, []byte("<infCte"))
}

// Parse extracts CT-e XML into a Record.
// A CT-e shell whose total service value parses to zero is not accepted;
// the registry lets it fall through to the NFS-e adapter.
func (a *CTeAdapter) Parse(ctx context.Context, r io.Reader) (*model.Record, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewParseError(model.SourceCTe, "content", "failed to read content", err)
	}

	fields, err := leafValues(content, "infCte",
		cteTagNumber, cteTagEmission, cteTagValue,
		cteTagOrigin, cteTagDestination, cteTagObservation)
	if err != nil {
		return nil, model.NewParseError(model.SourceCTe, "xml", "failed to parse XML", err)
	}

	value := money.ParseOrZero(fields[cteTagValue])
	if !money.IsPositive(value) {
		return nil, ErrNoMatch
	}

	return &model.Record{
		Type:        model.TypeRevenue,
		Source:      model.SourceCTe,
		Date:        emissionDate(fields[cteTagEmission]),
		Value:       value,
		Number:      fields[cteTagNumber],
		Origin:      fields[cteTagOrigin],
		Destination: fields[cteTagDestination],
		Description: cteDescription(fields),
		ICMSValue:   money.Zero,
		PISValue:    money.Zero,
		COFINSValue: money.Zero,
	}, nil
}

// cteDescription prefers the manifest observation text; when absent it
// synthesizes one from the freight note number and the lane
func cteDescription(fields map[string]string) string {
	if obs := strings.TrimSpace(fields[cteTagObservation]); obs != "" {
		return truncate(obs, cteDescriptionLimit)
	}
	return fmt.Sprintf("Frete CT-e %s (%s -> %s)",
		fields[cteTagNumber], fields[cteTagOrigin], fields[cteTagDestination])
}

// Helper functions

// emissionDate keeps the date portion of an emission timestamp
// (2024-05-10T14:33:00-03:00 becomes 2024-05-10); current date when absent
// or unparseable
func emissionDate(s string) time.Time {
	datePart := s
	if idx := strings.IndexByte(s, 'T'); idx > 0 {
		datePart = s[:idx]
	}
	if t, err := time.Parse("2006-01-02", datePart); err == nil {
		return t
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// truncate bounds s to max characters without splitting a rune
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

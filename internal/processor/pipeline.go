package processor

import (
	"context"
	"io"

	"github.com/fiscalbr/fiscal-processor/internal/model"
	"github.com/fiscalbr/fiscal-processor/internal/money"
	xmlparser "github.com/fiscalbr/fiscal-processor/internal/parser/xml"
	"github.com/fiscalbr/fiscal-processor/internal/tax"
	"github.com/fiscalbr/fiscal-processor/internal/validator"
)

// Format represents the detected input format
type Format int

const (
	FormatUnknown Format = iota
	FormatXML
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	default:
		return "unknown"
	}
}

// DetectFormat identifies the input format from content
func DetectFormat(data []byte) Format {
	if len(data) == 0 {
		return FormatUnknown
	}
	if data[0] == '<' {
		return FormatXML
	}
	// UTF-8 BOM
	if len(data) > 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF && data[3] == '<' {
		return FormatXML
	}
	return FormatUnknown
}

// Result holds the outcome of processing a single document
type Result struct {
	Record *model.Record     `json:"record,omitempty"`
	Taxes  *tax.Breakdown    `json:"taxes,omitempty"`
	Report *validator.Report `json:"report,omitempty"`
	Error  error             `json:"-"`
}

// Pipeline runs extraction, tax calculation and validation over fiscal
// documents. Each call is independent; a pipeline is safe for concurrent use.
type Pipeline struct {
	registry   *xmlparser.Registry
	calculator *tax.Calculator
}

// Option configures a pipeline
type Option func(*Pipeline)

// WithRateTable replaces the default tax rates
func WithRateTable(rates tax.RateTable) Option {
	return func(p *Pipeline) {
		p.calculator = tax.NewCalculator(rates)
	}
}

// WithRegistry replaces the default adapter registry
func WithRegistry(registry *xmlparser.Registry) Option {
	return func(p *Pipeline) {
		p.registry = registry
	}
}

// NewPipeline creates a pipeline with the given options
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		registry:   xmlparser.NewRegistry(),
		calculator: tax.NewDefaultCalculator(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Detect identifies the document schema without extracting
func (p *Pipeline) Detect(content []byte) (model.Source, error) {
	adapter, err := p.registry.Detect(content)
	if err != nil {
		return model.SourceUnknown, err
	}
	return adapter.Source(), nil
}

// ProcessXML extracts a record from an XML reader, leaving tax values zeroed
func (p *Pipeline) ProcessXML(ctx context.Context, r io.Reader) *Result {
	content, err := io.ReadAll(r)
	if err != nil {
		return &Result{Error: model.NewParseError(model.SourceUnknown, "content", "failed to read content", err)}
	}
	return p.ProcessXMLBytes(ctx, content)
}

// ProcessXMLBytes extracts a record from XML content, leaving tax values zeroed
func (p *Pipeline) ProcessXMLBytes(ctx context.Context, content []byte) *Result {
	record, err := p.registry.Parse(ctx, content)
	if err != nil {
		return &Result{Error: err}
	}
	return &Result{Record: record}
}

// CalculateTaxes computes the breakdown for a record without mutating it
func (p *Pipeline) CalculateTaxes(rec *model.Record) tax.Breakdown {
	if rec == nil {
		return p.calculator.Calculate(money.Zero, "", "")
	}
	return p.calculator.Calculate(rec.Value, rec.Origin, rec.Destination)
}

// Validate runs the business rules over a record
func (p *Pipeline) Validate(rec *model.Record) *validator.Report {
	return validator.Validate(rec)
}

// Process runs the full chain: extract, compute taxes, merge the breakdown
// into the record, validate. Extraction failure aborts the call; the later
// stages are total and always populate the result.
func (p *Pipeline) Process(ctx context.Context, content []byte) *Result {
	result := p.ProcessXMLBytes(ctx, content)
	if result.Error != nil {
		return result
	}

	breakdown := p.calculator.Calculate(result.Record.Value, result.Record.Origin, result.Record.Destination)
	result.Record.ICMSValue = breakdown.ICMSValue
	result.Record.PISValue = breakdown.PISValue
	result.Record.COFINSValue = breakdown.COFINSValue
	result.Taxes = &breakdown
	result.Report = validator.Validate(result.Record)

	return result
}

package fiscallib

import (
	"context"
	"io"

	"github.com/shopspring/decimal"

	"github.com/fiscalbr/fiscal-processor/internal/model"
	"github.com/fiscalbr/fiscal-processor/internal/processor"
	"github.com/fiscalbr/fiscal-processor/internal/validator"
)

// Result holds the outcome of processing one document
type Result struct {
	Record *Record
	Taxes  *Breakdown
	Report *Report
}

// Processor runs the extraction, tax and validation stages
type Processor struct {
	pipeline *processor.Pipeline
}

// NewProcessor creates a processor with the default rate table
func NewProcessor() *Processor {
	return &Processor{pipeline: processor.NewPipeline()}
}

// NewProcessorWithRates creates a processor with a custom rate table
func NewProcessorWithRates(rates RateTable) *Processor {
	return &Processor{pipeline: processor.NewPipeline(processor.WithRateTable(rates))}
}

// Extract parses XML content into a canonical record with zeroed tax values
func (p *Processor) Extract(ctx context.Context, r io.Reader) (*Record, error) {
	result := p.pipeline.ProcessXML(ctx, r)
	if result.Error != nil {
		return nil, result.Error
	}
	return result.Record, nil
}

// Process runs the full chain over one document: extract, compute taxes,
// merge the breakdown into the record, validate
func (p *Processor) Process(ctx context.Context, content []byte) (*Result, error) {
	result := p.pipeline.Process(ctx, content)
	if result.Error != nil {
		return nil, result.Error
	}
	return &Result{
		Record: result.Record,
		Taxes:  result.Taxes,
		Report: result.Report,
	}, nil
}

// ProcessBatch processes multiple documents concurrently. Each document is
// an isolated all-or-nothing unit; the first error is returned alongside
// the results that succeeded.
func (p *Processor) ProcessBatch(ctx context.Context, inputs [][]byte) ([]*Result, error) {
	results := make([]*Result, len(inputs))
	errCh := make(chan error, len(inputs))

	for i, input := range inputs {
		go func(idx int, content []byte) {
			result, err := p.Process(ctx, content)
			if err != nil {
				errCh <- err
				return
			}
			results[idx] = result
			errCh <- nil
		}(i, input)
	}

	var firstErr error
	for range inputs {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return results, firstErr
}

// CalculateTaxes computes the breakdown for a value and lane
func (p *Processor) CalculateTaxes(value decimal.Decimal, origin, destination string) Breakdown {
	return p.pipeline.CalculateTaxes(&model.Record{
		Value:       value,
		Origin:      origin,
		Destination: destination,
	})
}

// Validate runs the business rules over a record
func (p *Processor) Validate(rec *Record) *Report {
	return validator.Validate(rec)
}

// DetectSource identifies the document schema without extracting
func (p *Processor) DetectSource(content []byte) (Source, error) {
	return p.pipeline.Detect(content)
}

package xml

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/fiscalbr/fiscal-processor/internal/model"
)

// Adapter extracts a schema-specific fiscal document into a Record
type Adapter interface {
	// Parse extracts XML content into a Record
	Parse(ctx context.Context, r io.Reader) (*model.Record, error)

	// CanParse returns true if the adapter's structural markers are present
	CanParse(content []byte) bool

	// Source returns the document schema
	Source() model.Source
}

// ErrNoMatch signals that a document carries an adapter's structure but no
// acceptable value; the registry falls through to the next adapter.
var ErrNoMatch = errors.New("no schema match")

// Registry holds all registered adapters
type Registry struct {
	adapters []Adapter
}

// NewRegistry creates registry with all adapters.
// Order matters: CT-e is tried before NFS-e, and a CT-e-shaped document
// with a zero service value falls through to NFS-e.
func NewRegistry() *Registry {
	return &Registry{
		adapters: []Adapter{
			NewCTeAdapter(),  // <infCte> container
			NewNFSeAdapter(), // service value leaf, layout varies by municipality
		},
	}
}

// Detect identifies the first adapter whose markers match the content
func (r *Registry) Detect(content []byte) (Adapter, error) {
	for _, a := range r.adapters {
		if a.CanParse(content) {
			return a, nil
		}
	}
	return nil, model.NewFormatError("unrecognized fiscal document format", model.SourceCTe, model.SourceNFSe)
}

// Parse extracts content using the first adapter that accepts it.
// Malformed XML fails before any adapter runs; a well-formed document
// accepted by no adapter fails with a FormatError naming both schemas.
func (r *Registry) Parse(ctx context.Context, content []byte) (*model.Record, error) {
	if err := checkWellFormed(content); err != nil {
		return nil, model.NewParseError(model.SourceUnknown, "xml", "malformed XML document", err)
	}

	for _, a := range r.adapters {
		if !a.CanParse(content) {
			continue
		}
		record, err := a.Parse(ctx, bytes.NewReader(content))
		if errors.Is(err, ErrNoMatch) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return record, nil
	}

	return nil, model.NewFormatError("unrecognized fiscal document format", model.SourceCTe, model.SourceNFSe)
}

// RegisterAdapter adds a custom adapter to the registry
func (r *Registry) RegisterAdapter(a Adapter) {
	// Add at the beginning so custom adapters take priority
	r.adapters = append([]Adapter{a}, r.adapters...)
}

// GetAdapter returns adapter for a specific source schema
func (r *Registry) GetAdapter(source model.Source) Adapter {
	for _, a := range r.adapters {
		if a.Source() == source {
			return a
		}
	}
	return nil
}

// checkWellFormed walks every token so a syntax error anywhere in the
// document is caught before extraction starts. Input with no element at
// all is not a document: the tokenizer accepts bare top-level character
// data, so the walk must see at least one start element.
func checkWellFormed(content []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(content))
	sawElement := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			if !sawElement {
				return errors.New("no root element")
			}
			return nil
		}
		if err != nil {
			return err
		}
		if _, ok := tok.(xml.StartElement); ok {
			sawElement = true
		}
	}
}

// leafValues collects the first character data of each wanted leaf element,
// keyed by local tag name. When scope is non-empty only the subtree of the
// first <scope> element is inspected; the search is document-wide otherwise.
func leafValues(content []byte, scope string, tags ...string) (map[string]string, error) {
	wanted := make(map[string]bool, len(tags))
	for _, t := range tags {
		wanted[t] = true
	}

	values := make(map[string]string)
	dec := xml.NewDecoder(bytes.NewReader(content))

	depth := 0
	inScope := scope == ""
	scopeDepth := 0
	current := ""

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			name := t.Name.Local
			if !inScope {
				if name == scope {
					inScope = true
					scopeDepth = depth
				}
				continue
			}
			if wanted[name] {
				current = name
			} else {
				current = ""
			}

		case xml.EndElement:
			if inScope && scope != "" && depth == scopeDepth {
				// left the scoped subtree; later siblings do not count
				return values, nil
			}
			depth--
			current = ""

		case xml.CharData:
			if current != "" {
				if _, ok := values[current]; !ok {
					values[current] = strings.TrimSpace(string(t))
				}
			}
		}
	}

	return values, nil
}

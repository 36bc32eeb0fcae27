package model

import "fmt"

// ParseError represents malformed XML input
type ParseError struct {
	Source  Source
	Field   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Source, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Source, e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(source Source, field, message string, cause error) *ParseError {
	return &ParseError{
		Source:  source,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// FormatError represents well-formed XML that matches no known schema
type FormatError struct {
	Attempted []Source
	Message   string
}

func (e *FormatError) Error() string {
	if len(e.Attempted) > 0 {
		return fmt.Sprintf("%s (attempted: %v)", e.Message, e.Attempted)
	}
	return e.Message
}

// NewFormatError creates a new format error naming the schemas attempted
func NewFormatError(message string, attempted ...Source) *FormatError {
	return &FormatError{
		Attempted: attempted,
		Message:   message,
	}
}

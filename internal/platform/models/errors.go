package models

import "fmt"

// ErrorKind classifies a parse diagnostic.
type ErrorKind string

// Parse diagnostic kinds. Only StreamFailure aborts a parse.
const (
	MalformedXML         ErrorKind = "malformed_xml"
	TypeMismatch         ErrorKind = "type_mismatch"
	MissingRequiredField ErrorKind = "missing_required_field"
	UnrecognizedField    ErrorKind = "unrecognized_field"
	StreamFailure        ErrorKind = "stream_failure"
)

// ParseError is a single non-fatal parse diagnostic with the position of the
// construct it concerns. Line and Column are 1-based; Column counts bytes.
type ParseError struct {
	Kind    ErrorKind
	Line    int
	Column  int
	Message string
	// Value is the offending raw text, when there is one.
	Value string
}

// Error implements the error interface.
func (e ParseError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s at line %d, column %d: %s: %q", e.Kind, e.Line, e.Column, e.Message, e.Value)
	}
	return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Line, e.Column, e.Message)
}

// ParseSummary is the outcome of decoding one feed. It is returned even when
// decoding fails, so partial results are never lost.
type ParseSummary struct {
	Catalog    *Catalog
	OfferCount int
	// Errors is every recorded diagnostic in document order.
	Errors []ParseError
	// DroppedErrors counts diagnostics suppressed after the error cap was hit.
	DroppedErrors int
}

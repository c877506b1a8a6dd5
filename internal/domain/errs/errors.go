// Package errs defines the structured error taxonomy of the pricing engine.
//
// Every error carries a kind plus the offending field, code or formula so
// the UI can render field-level detail instead of a generic failure banner.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an engine error.
type Kind string

const (
	// KindValidation marks user-correctable input problems.
	KindValidation Kind = "validation_error"
	// KindCatalogLookup marks a missing or unreachable catalog product.
	KindCatalogLookup Kind = "catalog_lookup_error"
	// KindFormula marks a bad user-authored formula.
	KindFormula Kind = "formula_error"
	// KindTimeout marks an orchestrator-level computation timeout.
	KindTimeout Kind = "computation_timeout"
)

var (
	// ErrComputationTimeout is returned when a computation exceeds the
	// orchestrator's safety timeout. The caller may retry.
	ErrComputationTimeout = errors.New("computation timed out")
	// ErrSuperseded is returned to callers whose request was collapsed
	// away by a newer one inside the debounce window.
	ErrSuperseded = errors.New("request superseded by a newer one")
)

// FieldViolation is one violated constraint on one input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError accumulates every violated field of a request so the
// caller can show all problems at once instead of fixing them one by one.
type ValidationError struct {
	Violations []FieldViolation
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a violation and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
	return e
}

// HasViolations reports whether any field failed.
func (e *ValidationError) HasViolations() bool { return len(e.Violations) > 0 }

// Fields returns the violated field names in order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		fields[i] = v.Field
	}
	return fields
}

// CatalogLookupError reports a product that could not be resolved. The
// originating operation is aborted with no partial writes.
type CatalogLookupError struct {
	Code string
	Err  error
}

func (e *CatalogLookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog lookup for %q failed: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("product %q not found in catalog", e.Code)
}

// Unwrap exposes the underlying transport error, if any.
func (e *CatalogLookupError) Unwrap() error { return e.Err }

// FormulaError reports a custom formula that failed to parse or evaluate.
// The offending formula text is carried for display.
type FormulaError struct {
	Formula string
	Reason  string
}

func (e *FormulaError) Error() string {
	return fmt.Sprintf("formula %q: %s", e.Formula, e.Reason)
}

// KindOf maps an error to its taxonomy kind, or "" for unclassified errors.
func KindOf(err error) Kind {
	var ve *ValidationError
	var ce *CatalogLookupError
	var fe *FormulaError
	switch {
	case errors.As(err, &ve):
		return KindValidation
	case errors.As(err, &ce):
		return KindCatalogLookup
	case errors.As(err, &fe):
		return KindFormula
	case errors.Is(err, ErrComputationTimeout):
		return KindTimeout
	}
	return ""
}

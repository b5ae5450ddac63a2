// Package errors defines the structured error taxonomy of the grade
// pipeline. Fatal conditions (duplicate roster identities, malformed
// report markup, ambiguous name matches, inconsistent grouping data)
// are modeled as typed errors; normal partial-data states (unmatched
// rows, ungraded participants, null grades) are not errors and travel
// in result values instead.
package errors

import (
	"fmt"
	"strings"
)

// ErrorType classifies a fatal pipeline error.
type ErrorType string

const (
	// ErrTypeDuplicateKey signals a roster identity collision: two
	// participants share a normalized email or an ID number.
	ErrTypeDuplicateKey ErrorType = "DUPLICATE_KEY"
	// ErrTypeMalformedReport signals an unparseable grades table or cell.
	ErrTypeMalformedReport ErrorType = "MALFORMED_REPORT"
	// ErrTypeAmbiguousMatch signals a report name matching more than
	// one roster participant.
	ErrTypeAmbiguousMatch ErrorType = "AMBIGUOUS_MATCH"
	// ErrTypeInconsistentGrouping signals corrupted roster group data.
	ErrTypeInconsistentGrouping ErrorType = "INCONSISTENT_GROUPING"
	// ErrTypeInvalidInput signals an unusable roster row or file.
	ErrTypeInvalidInput ErrorType = "INVALID_INPUT"
	// ErrTypeConfig signals invalid configuration.
	ErrTypeConfig ErrorType = "CONFIG"
)

// GradingError is the application error type shared by all pipeline
// stages.
type GradingError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *GradingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with GradingError.
func (e *GradingError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *GradingError) WithContext(key string, value interface{}) *GradingError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new grading error.
func New(errType ErrorType, message string, cause error) *GradingError {
	return &GradingError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err is, wraps, or aggregates a GradingError
// of the given type. Unlike a plain errors.As lookup it keeps walking
// past the first GradingError, so a combined per-row error answers for
// every member.
func IsType(err error, errType ErrorType) bool {
	if err == nil {
		return false
	}
	if ge, ok := err.(*GradingError); ok {
		if ge.Type == errType {
			return true
		}
		return IsType(ge.Cause, errType)
	}
	switch x := err.(type) {
	case interface{ Unwrap() error }:
		return IsType(x.Unwrap(), errType)
	case interface{ Unwrap() []error }:
		for _, e := range x.Unwrap() {
			if IsType(e, errType) {
				return true
			}
		}
	}
	return false
}

// Helper constructors for the taxonomy

// NewDuplicateKeyError creates a roster identity collision error.
// kind names the colliding key space ("email" or "id number").
func NewDuplicateKeyError(kind, key string) *GradingError {
	return New(ErrTypeDuplicateKey,
		fmt.Sprintf("duplicate %s %q in roster", kind, key), nil).
		WithContext("kind", kind).
		WithContext("key", key)
}

// NewMalformedReportError creates a report parsing error. row is the
// 1-based data row index, or 0 when the failure concerns the table as
// a whole.
func NewMalformedReportError(row int, message string, cause error) *GradingError {
	err := New(ErrTypeMalformedReport, message, cause)
	if row > 0 {
		err = err.WithContext("row", row)
	}
	return err
}

// NewAmbiguousMatchError creates an error for a report name matching
// several roster participants. The candidates are named in the message
// so the operator can see who collides without digging into context.
func NewAmbiguousMatchError(name string, candidates []string) *GradingError {
	return New(ErrTypeAmbiguousMatch,
		fmt.Sprintf("report name %q matches %d roster participants: %s",
			name, len(candidates), strings.Join(candidates, ", ")), nil).
		WithContext("name", name).
		WithContext("candidates", candidates)
}

// NewInconsistentGroupingError creates an error for a group code mapped
// to more than one grouping set.
func NewInconsistentGroupingError(code string, sets []string) *GradingError {
	return New(ErrTypeInconsistentGrouping,
		fmt.Sprintf("group code %q maps to multiple sets %v", code, sets), nil).
		WithContext("code", code).
		WithContext("sets", sets)
}

// NewInvalidInputError creates an error for an unusable input row or file.
func NewInvalidInputError(message string, cause error) *GradingError {
	return New(ErrTypeInvalidInput, message, cause)
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *GradingError {
	return New(ErrTypeConfig, message, cause)
}

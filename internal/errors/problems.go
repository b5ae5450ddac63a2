package errors

import (
	"strings"
)

// Problems accumulates per-row errors so a single run can surface every
// defect found instead of stopping at the first one. Only malformed
// table structure aborts eagerly; row-level problems are collected here
// and reported together.
type Problems struct {
	errs []*GradingError
}

// Add appends an error. Nil errors are ignored.
func (p *Problems) Add(err *GradingError) {
	if err != nil {
		p.errs = append(p.errs, err)
	}
}

// Len returns the number of accumulated errors.
func (p *Problems) Len() int {
	return len(p.errs)
}

// All returns the accumulated errors in insertion order.
func (p *Problems) All() []*GradingError {
	return p.errs
}

// ErrOrNil returns nil when no problems were accumulated, a single
// error when exactly one was, and a combined error otherwise.
func (p *Problems) ErrOrNil() error {
	switch len(p.errs) {
	case 0:
		return nil
	case 1:
		return p.errs[0]
	}
	return p
}

// Error implements the error interface for the combined case.
func (p *Problems) Error() string {
	var b strings.Builder
	for i, err := range p.errs {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap exposes the accumulated errors to errors.Is and errors.As.
func (p *Problems) Unwrap() []error {
	out := make([]error, len(p.errs))
	for i, err := range p.errs {
		out[i] = err
	}
	return out
}

package dcf

import (
	"errors"
	"fmt"
)

// Kind classifies the domain failures a valuation can surface verbatim.
type Kind string

const (
	// KindDataUnavailable marks missing mandatory identity data
	// (shares outstanding).
	KindDataUnavailable Kind = "data_unavailable"

	// KindFinancialsUnavailable marks a ticker with no financial
	// statements at the provider.
	KindFinancialsUnavailable Kind = "financials_unavailable"
)

// ValuationError is a domain failure whose message is surfaced to the
// caller as-is. Anything else crossing the orchestrator boundary gets
// wrapped as an unexpected error instead.
type ValuationError struct {
	Kind    Kind
	Message string
}

func (e *ValuationError) Error() string {
	return e.Message
}

// DataUnavailablef builds a DataUnavailable error
func DataUnavailablef(format string, args ...interface{}) *ValuationError {
	return &ValuationError{
		Kind:    KindDataUnavailable,
		Message: fmt.Sprintf(format, args...),
	}
}

// FinancialsUnavailablef builds a FinancialsUnavailable error
func FinancialsUnavailablef(format string, args ...interface{}) *ValuationError {
	return &ValuationError{
		Kind:    KindFinancialsUnavailable,
		Message: fmt.Sprintf(format, args...),
	}
}

// AsValuationError reports whether err is (or wraps) a ValuationError
func AsValuationError(err error) (*ValuationError, bool) {
	var verr *ValuationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

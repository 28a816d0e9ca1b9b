// Package shared holds types that cross component boundaries: the error
// taxonomy with its API codes, the inbound message envelope and the match
// outcome enum.
package shared

import "errors"

// Validation errors detected before any mutation. They are returned without
// side effects.
var (
	ErrInvalidAmount     = errors.New("amount must be a positive finite number")
	ErrMissingIdentifier = errors.New("personal identifier is required")
	ErrIdentifierBanned  = errors.New("personal identifier is banned")
)

// ErrorCode is the stable error vocabulary exposed to API clients and used to
// classify consumer outcomes as terminal or retryable.
type ErrorCode string

const (
	CodeInvalidAmount       ErrorCode = "INVALID_AMOUNT"
	CodeMissingIdentifier   ErrorCode = "MISSING_IDENTIFIER"
	CodeIdentifierBanned    ErrorCode = "IDENTIFIER_BANNED"
	CodeChargeNotFound      ErrorCode = "CHARGE_NOT_FOUND"
	CodeOrderNotFound       ErrorCode = "ORDER_NOT_FOUND"
	CodeAlreadyConfirmed    ErrorCode = "ALREADY_CONFIRMED"
	CodeNoPendingCharge     ErrorCode = "NO_PENDING_CHARGE"
	CodeInfrastructureError ErrorCode = "INFRASTRUCTURE_ERROR"
)

// Coder is implemented by typed domain errors that know their API code.
type Coder interface {
	Code() ErrorCode
}

// CodeOf maps an error to its taxonomy code. Anything unrecognized is an
// infrastructure failure: the storage backends wrap their own errors, so an
// unmapped error always means the backend misbehaved or timed out.
func CodeOf(err error) ErrorCode {
	var coder Coder
	if errors.As(err, &coder) {
		return coder.Code()
	}

	switch {
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrMissingIdentifier):
		return CodeMissingIdentifier
	case errors.Is(err, ErrIdentifierBanned):
		return CodeIdentifierBanned
	}

	return CodeInfrastructureError
}

// IsTerminal reports whether an error is a final outcome of processing a
// command rather than a transient failure. Terminal errors must not cause a
// message redelivery; only infrastructure errors warrant a retry.
func IsTerminal(err error) bool {
	if err == nil {
		return true
	}
	return CodeOf(err) != CodeInfrastructureError
}

package payments

import (
	"errors"
	"fmt"
)

// Rejection reasons. A rejected record is skipped; none of these abort a run.
var (
	// Validation.
	ErrMalformedRecord = errors.New("malformed record")
	ErrUnknownType     = errors.New("unknown transaction type")
	ErrMissingAmount   = errors.New("missing amount")
	ErrInvalidAmount   = errors.New("invalid amount")

	// Admission.
	ErrDuplicateTransaction = errors.New("duplicate transaction")

	// Ledger.
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAccountLocked      = errors.New("account locked")
	ErrUnknownTransaction = errors.New("unknown transaction")
	ErrClientMismatch     = errors.New("transaction belongs to another client")
	ErrInvalidTransition  = errors.New("invalid dispute transition")
)

// reasons lists the rejection sentinels in the order they are reported.
var reasons = []error{
	ErrMalformedRecord,
	ErrUnknownType,
	ErrMissingAmount,
	ErrInvalidAmount,
	ErrDuplicateTransaction,
	ErrInsufficientFunds,
	ErrAccountLocked,
	ErrUnknownTransaction,
	ErrClientMismatch,
	ErrInvalidTransition,
}

// Reason returns the rejection sentinel err wraps, or nil if err is not a rejection.
func Reason(err error) error {
	for _, r := range reasons {
		if errors.Is(err, r) {
			return r
		}
	}
	return nil
}

// IsRejection reports whether err is a per-record rejection, as opposed to a
// run-level failure.
func IsRejection(err error) bool { return Reason(err) != nil }

// RecordError is a rejection attached to the input line of the record.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *RecordError) Unwrap() error { return e.Err }

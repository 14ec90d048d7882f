package easysplit

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is matching. The concrete error types carry
// the details.
var (
	ErrInvalidEdge         = errors.New("invalid edge")
	ErrConservation        = errors.New("conservation violation")
	ErrTooManyParticipants = errors.New("too many participants")
)

// InvalidEdgeError reports an edge whose endpoints cannot form a debt:
// a participant owing itself, or a blank participant name. It signals a
// bug in the caller, not in the data.
type InvalidEdgeError struct {
	Creditor string
	Debtor   string
}

func (e *InvalidEdgeError) Error() string {
	if e.Creditor == e.Debtor {
		return fmt.Sprintf("invalid edge: %q cannot owe itself", e.Creditor)
	}
	return fmt.Sprintf("invalid edge: creditor %q, debtor %q", e.Creditor, e.Debtor)
}

func (e *InvalidEdgeError) Unwrap() error { return ErrInvalidEdge }

// ConservationError reports a broken zero-sum invariant: money appeared or
// vanished during a reduction. It is fatal and never silently corrected,
// because it means an internal defect rather than bad input.
type ConservationError struct {
	Detail    string
	Imbalance Amount
}

func (e *ConservationError) Error() string {
	return fmt.Sprintf("conservation violation: %s (imbalance %s)", e.Detail, e.Imbalance)
}

func (e *ConservationError) Unwrap() error { return ErrConservation }

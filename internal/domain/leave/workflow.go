package leave

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("leave request not found")
	ErrForbidden       = errors.New("forbidden")
	ErrAlreadyResolved = errors.New("leave request already resolved")
	ErrInvalidRange    = errors.New("end date before start date")
)

// ValidateRange rejects requests whose end date precedes the start date.
func ValidateRange(start, end time.Time) error {
	if end.Before(start) {
		return ErrInvalidRange
	}
	return nil
}

// CanTransition enforces the Pending -> Approved|Rejected state machine. A
// request that already left Pending can never move again.
func CanTransition(current, next Status) error {
	if current != StatusPending {
		return ErrAlreadyResolved
	}
	if next != StatusApproved && next != StatusRejected {
		return ErrAlreadyResolved
	}
	return nil
}

// CanDelete allows deletion only of a still-pending request by its owner.
func CanDelete(req Request, callerEmployeeID string) error {
	if req.EmployeeID != callerEmployeeID {
		return ErrForbidden
	}
	if req.Status != StatusPending {
		return ErrForbidden
	}
	return nil
}

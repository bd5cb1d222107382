package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount is returned when a contribution is below the minimum amount
	ErrInvalidAmount = errors.New("contribution amount below minimum")

	// ErrNotAllowed is returned when contributions are disabled for the item
	ErrNotAllowed = errors.New("contributions are not allowed for this item")

	// ErrNotFound is returned when the target row does not exist or is archived
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a reservation race or funding race is lost
	ErrConflict = errors.New("conflict")

	// ErrForbidden is returned when the caller does not own the resource
	ErrForbidden = errors.New("forbidden")

	// ErrConversionFailed is returned when the currency conversion cannot be performed
	ErrConversionFailed = errors.New("currency conversion failed")

	// ErrStoreUnavailable is returned on lock timeouts and connection loss
	ErrStoreUnavailable = errors.New("store unavailable")
)

// GoalReachedError is returned when an item's funding goal is already met.
// It carries the boundary that was hit so clients can render it.
type GoalReachedError struct {
	PriceCents     int64
	CollectedCents int64
}

func (e *GoalReachedError) Error() string {
	return fmt.Sprintf("funding goal already reached (%d of %d cents collected)", e.CollectedCents, e.PriceCents)
}

// ExceedsRemainingError is returned when a contribution is larger than what is
// still missing toward the item's price.
type ExceedsRemainingError struct {
	RemainingCents int64
}

func (e *ExceedsRemainingError) Error() string {
	return fmt.Sprintf("contribution exceeds remaining amount (%d cents)", e.RemainingCents)
}

// InsufficientBalanceError is returned when a debit would make a balance negative.
type InsufficientBalanceError struct {
	BalanceCents int64
	ChargedCents int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance (%d cents available, %d cents required)", e.BalanceCents, e.ChargedCents)
}

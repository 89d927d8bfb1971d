package invoice

import (
	"errors"
	"fmt"
	"strings"
)

// Common document editing errors
var (
	// ErrLastItem is returned when removing the only remaining line item.
	// An invoice always carries at least one item.
	ErrLastItem = errors.New("cannot remove the last line item")

	// ErrItemIndex is returned when an item position is out of range.
	ErrItemIndex = errors.New("line item index out of range")

	// ErrInvalidDate is returned when a date is not an ISO calendar date (YYYY-MM-DD).
	ErrInvalidDate = errors.New("invalid invoice date")

	// ErrInvalidDiscountType is returned for a discount type other than amount or percent.
	ErrInvalidDiscountType = errors.New("invalid discount type")
)

// ValidationErrors carries the blocking problems found by ValidateForExport.
// It lets the export path hand the list back through an error return.
type ValidationErrors []string

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	if len(v) == 1 {
		return "invoice is not ready for export: " + v[0]
	}
	return fmt.Sprintf("invoice is not ready for export (%d problems): %s", len(v), strings.Join(v, " "))
}

// ItemError wraps an editing error with the 1-based item position it concerns.
type ItemError struct {
	// Op is the editing operation that failed (e.g., "RemoveItem").
	Op string

	// Position is the 1-based item position as shown to the user.
	Position int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ItemError) Error() string {
	return fmt.Sprintf("invoice: %s item %d: %v", e.Op, e.Position, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ItemError) Unwrap() error {
	return e.Err
}

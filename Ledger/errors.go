package Ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrItemNotFound means a movement references an item id that does not
	// exist in the master list.
	ErrItemNotFound = errors.New("referenced item not found")

	// ErrInvalidQuantity means the quantity is missing, zero or negative.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrInvalidDate means the date is not a YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidType means the movement type is neither IN nor OUT.
	ErrInvalidType = errors.New("type must be IN or OUT")
)

// InsufficientStockError rejects an OUT movement that would drive the
// derived stock of an item below zero. It carries enough context to be
// shown to the operator as-is.
type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (%s): available %d, requested %d",
		e.ItemName, e.ItemID, e.Available, e.Requested)
}

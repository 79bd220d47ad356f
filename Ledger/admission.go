package Ledger

import (
	"time"

	"Inventaris/Models"
)

// Candidate is a movement proposed for admission, before it has an id.
type Candidate struct {
	Date     string
	Type     string
	ItemID   string
	Quantity int
	Notes    string
}

// ValidateNewTransaction is the single hard gate of the ledger. It checks a
// candidate movement against the log as it exists prior to the candidate:
// the item must exist, the quantity must be positive, the date must parse,
// and an OUT movement must not exceed the item's current derived stock.
//
// The caller owns atomicity: the snapshot load, this check and the append
// must run under one writer at a time, or two concurrent OUT movements
// could both pass against the same stale stock value.
func ValidateNewTransaction(items []Models.Item, transactions []Models.StockTransaction, c Candidate) error {
	if c.Type != Models.TypeIn && c.Type != Models.TypeOut {
		return ErrInvalidType
	}
	if c.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if _, err := time.Parse("2006-01-02", c.Date); err != nil {
		return ErrInvalidDate
	}

	var item *Models.Item
	for i := range items {
		if items[i].ID == c.ItemID {
			item = &items[i]
			break
		}
	}
	if item == nil {
		return ErrItemNotFound
	}

	if c.Type == Models.TypeOut {
		available := item.Stock
		for _, t := range transactions {
			if t.ItemID != item.ID {
				continue
			}
			switch t.Type {
			case Models.TypeIn:
				available += t.Quantity
			case Models.TypeOut:
				available -= t.Quantity
			}
		}
		if c.Quantity > available {
			return &InsufficientStockError{
				ItemID:    item.ID,
				ItemName:  item.Name,
				Available: available,
				Requested: c.Quantity,
			}
		}
	}
	return nil
}

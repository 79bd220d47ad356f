package Ledger

import (
	"strings"

	"Inventaris/Models"
)

// TypeAll matches movements of both directions in a Filter.
const TypeAll = "ALL"

// Filter narrows a movement list for reports and exports. All criteria are
// optional and combine conjunctively. The same filter instance must be used
// for the on-screen list and its export so the file always contains exactly
// what the viewer sees.
type Filter struct {
	DateFrom string // inclusive, YYYY-MM-DD, empty = unbounded
	DateTo   string // inclusive, YYYY-MM-DD, empty = unbounded
	Type     string // ALL, IN or OUT; empty means ALL
	Search   string // case-insensitive substring of item name or id
}

// Match reports whether a single movement passes every criterion.
func (f Filter) Match(t Models.StockTransaction) bool {
	if f.Type != "" && f.Type != TypeAll && t.Type != f.Type {
		return false
	}
	if f.DateFrom != "" && t.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && t.Date > f.DateTo {
		return false
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(t.ItemName), q) &&
			!strings.Contains(strings.ToLower(t.ItemID), q) {
			return false
		}
	}
	return true
}

// Apply keeps the movements matching the filter, preserving input order.
func (f Filter) Apply(transactions []Models.StockTransaction) []Models.StockTransaction {
	matched := make([]Models.StockTransaction, 0, len(transactions))
	for _, t := range transactions {
		if f.Match(t) {
			matched = append(matched, t)
		}
	}
	return matched
}

// MatchItem applies the search criterion to a stock row, for the final
// stock view which filters on the same name-or-id substring.
func (f Filter) MatchItem(item Models.Item) bool {
	q := strings.TrimSpace(f.Search)
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(item.Name), q) ||
		strings.Contains(strings.ToLower(item.ID), q)
}

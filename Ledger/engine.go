// Package Ledger derives every stock figure of the inventory from two
// snapshots: the item master list and the append-only movement log.
// Nothing here touches storage or keeps state between calls; callers load
// a snapshot, compute, and throw the result away. Recomputing on every
// request is cheap at this scale and removes the whole class of
// stale-derived-state bugs.
package Ledger

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"Inventaris/Models"
)

// ItemStock is an item joined with its derived current stock level.
type ItemStock struct {
	Models.Item
	FinalStock int `json:"finalStock"`
}

// Movement is the total moved in and out of one item over the whole log.
type Movement struct {
	In  int `json:"totalIn"`
	Out int `json:"totalOut"`
}

// FinalStocks folds the movement log over each item's baseline stock and
// returns the derived current level per item, sorted by item name
// (case-insensitive, locale-aware). Movements referencing an unknown item
// id are skipped; they belong to items that have since been deleted and
// must not produce phantom rows. The fold is order-independent, so the
// log may arrive in any order.
func FinalStocks(items []Models.Item, transactions []Models.StockTransaction) []ItemStock {
	levels := make(map[string]int, len(items))
	for _, item := range items {
		levels[item.ID] = item.Stock
	}

	for _, t := range transactions {
		current, ok := levels[t.ItemID]
		if !ok {
			continue
		}
		switch t.Type {
		case Models.TypeIn:
			current += t.Quantity
		case Models.TypeOut:
			current -= t.Quantity
		}
		levels[t.ItemID] = current
	}

	result := make([]ItemStock, 0, len(items))
	for _, item := range items {
		result = append(result, ItemStock{Item: item, FinalStock: levels[item.ID]})
	}

	byName := collate.New(language.Indonesian, collate.IgnoreCase)
	sort.SliceStable(result, func(i, j int) bool {
		return byName.CompareString(result[i].Name, result[j].Name) < 0
	})
	return result
}

// Movements sums moved quantities per item, grouped by direction. It is
// independent of the master list: entries for deleted items simply stay in
// the map and are dropped when the caller joins against current items.
func Movements(transactions []Models.StockTransaction) map[string]Movement {
	totals := make(map[string]Movement)
	for _, t := range transactions {
		m := totals[t.ItemID]
		switch t.Type {
		case Models.TypeIn:
			m.In += t.Quantity
		case Models.TypeOut:
			m.Out += t.Quantity
		}
		totals[t.ItemID] = m
	}
	return totals
}

// SortNewestFirst orders movements for report views: date descending,
// ties broken by id descending, so the most recent entry comes first.
func SortNewestFirst(transactions []Models.StockTransaction) []Models.StockTransaction {
	sorted := make([]Models.StockTransaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].ID > sorted[j].ID
	})
	return sorted
}

// StockAfter reconstructs, for every movement, the stock level that
// existed immediately after it was applied. The current level is only
// known for the present, so the walk runs backward: newest first, seeded
// from each item's final stock. The value recorded for the movement being
// visited is the running level; the movement's effect is then reversed to
// obtain the level the next (older) movement left behind.
//
// Movements whose item is missing from finals get no entry; reports show
// them as not available. They do not disturb other items' walks.
func StockAfter(finals []ItemStock, transactions []Models.StockTransaction) map[uint]int {
	running := make(map[string]int, len(finals))
	for _, f := range finals {
		running[f.ID] = f.FinalStock
	}

	after := make(map[uint]int, len(transactions))
	for _, t := range SortNewestFirst(transactions) {
		current, ok := running[t.ItemID]
		if !ok {
			continue
		}
		after[t.ID] = current

		switch t.Type {
		case Models.TypeIn:
			current -= t.Quantity
		case Models.TypeOut:
			current += t.Quantity
		}
		running[t.ItemID] = current
	}
	return after
}

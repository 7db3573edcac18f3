package gavel

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/apd"
	"github.com/google/uuid"
)

type OrderSide byte

const (
	SideBuy OrderSide = iota
	SideSell
)

func (s OrderSide) String() string {
	if s == SideBuy {
		return "Buy"
	}
	return "Sell"
}

// Order is one unit of resting interest submitted to an auction round.
// Qty is the remaining tradable quantity; the engine decrements it only
// on its private working copy, never on the caller's slice.
type Order struct {
	ID         uint64
	CustomerID uuid.UUID
	Side       OrderSide
	Price      apd.Decimal
	Qty        int64
}

// SideMismatchError reports an order routed to the wrong side list. It is
// a caller bug, not an input error: the whole matching call aborts and no
// trades are produced.
type SideMismatchError struct {
	OrderID uint64
	Want    OrderSide
	Got     OrderSide
}

func (e *SideMismatchError) Error() string {
	return fmt.Sprintf("invalid order %d: expected side %s, found %s", e.OrderID, e.Want, e.Got)
}

// function that compares two Orders and returns true if a sorts before b
type LessFunc func(a, b Order) bool

func makeComparator(priceDescending bool) LessFunc {
	const (
		ascending  bool = true
		descending bool = false
	)
	sort := ascending
	if priceDescending {
		sort = descending
	}
	return func(a, b Order) bool {
		priceCmp := a.Price.Cmp(&b.Price)
		if priceCmp == 0 { // equal prices keep arrival order (stable sort)
			return false
		}
		if priceCmp < 0 {
			return sort
		}
		return !sort
	}
}

// sortOrders sorts orders in place. Stability matters: ties have no
// secondary key and must keep the order the input arrived in.
func sortOrders(orders []Order, less LessFunc) {
	sort.SliceStable(orders, func(i, j int) bool {
		return less(orders[i], orders[j])
	})
}

package gavel

import (
	"time"

	"github.com/cockroachdb/apd"
	"github.com/google/uuid"
)

// Trade represents two opposed matched orders. ID is zero until the trade
// is recorded in a TradeBook.
type Trade struct {
	ID            uint64
	Buyer, Seller uuid.UUID
	Instrument    string
	Qty           int64
	Price         apd.Decimal
	Timestamp     time.Time

	BidOrderID uint64
	AskOrderID uint64

	Rejected bool
}

// PricingMode labels how a round's clearing prices were formed.
type PricingMode byte

const (
	// PricingPairMidpoint - every pair clears at the midpoint of its own prices.
	PricingPairMidpoint PricingMode = iota
	// PricingUniform - the whole round clears at a single price.
	PricingUniform
)

func (p PricingMode) String() string {
	if p == PricingUniform {
		return "uniform"
	}
	return "pair-midpoint"
}

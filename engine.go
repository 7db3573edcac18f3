package gavel

import (
	"time"

	"github.com/cockroachdb/apd"
	"github.com/google/uuid"
)

var (
	// BaseContext drives all clearing-price arithmetic. Precision has to be
	// non-zero because midpoints divide; 16 digits is far beyond any
	// realistic price grid.
	BaseContext = apd.Context{
		Precision:   16,
		MaxExponent: apd.MaxExponent,
		MinExponent: apd.MinExponent,
		Traps:       apd.DefaultTraps,
	}

	two = apd.New(2, 0)
)

// AuctionEngine matches independent buy and sell order sets for a single
// instrument against a fixed NBBO band. Both matching operations are pure:
// the engine keeps no state between calls and never mutates its inputs, so
// concurrent calls against one engine are safe as long as each supplies
// its own slices.
type AuctionEngine struct {
	Instrument string

	nbbo NBBO
}

// Create a new auction engine. The band is accepted as-is: an inverted
// NBBO is not an error here (it yields empty rounds), use NBBO.Validate
// to reject one up front.
func NewAuctionEngine(instrument string, nbbo NBBO) *AuctionEngine {
	return &AuctionEngine{
		Instrument: instrument,
		nbbo:       nbbo,
	}
}

// NBBO returns the band the engine was constructed with.
func (e *AuctionEngine) NBBO() NBBO {
	return e.nbbo
}

// RunGreedyAuction pairs buys and sells in price priority, each pair
// clearing at the midpoint of its own limit prices. Buys are scanned
// highest-first (outer), sells lowest-first (inner); a partially filled
// order stays eligible against later counter-orders in the same scan.
// An empty result is a valid outcome, not an error.
func (e *AuctionEngine) RunGreedyAuction(buyOrders, sellOrders []Order) ([]Trade, error) {
	buys, sells, err := e.prepare(buyOrders, sellOrders)
	if err != nil {
		return nil, err
	}

	trades := make([]Trade, 0)
	for b := range buys {
		for s := range sells {
			if buys[b].Qty <= 0 || sells[s].Qty <= 0 {
				continue
			}
			if !e.eligible(&buys[b], &sells[s]) {
				continue
			}
			qty := min(buys[b].Qty, sells[s].Qty)
			price, err := midpoint(&buys[b].Price, &sells[s].Price)
			if err != nil {
				return nil, err
			}

			trades = append(trades, Trade{
				Buyer:      buys[b].CustomerID,
				Seller:     sells[s].CustomerID,
				Instrument: e.Instrument,
				Qty:        qty,
				Price:      price,
				Timestamp:  time.Now(),
				BidOrderID: buys[b].ID,
				AskOrderID: sells[s].ID,
			})

			buys[b].Qty -= qty
			sells[s].Qty -= qty
		}
	}
	return trades, nil
}

// one recorded fill from the combinatorial first pass
type fill struct {
	buyer, seller          uuid.UUID
	bidOrderID, askOrderID uint64
	qty                    int64
}

// RunCombinatorialAuction runs the same eligibility scan as the greedy
// operation but defers pricing: every fill in the round clears at one
// uniform price, the midpoint of the marginal buy and sell prices.
//
// Marginal here means the prices of the last eligible pair in scan order,
// not the boundary bid/offer of the accepted allocation. That matches the
// reference behavior and is load-bearing for compatibility - see
// DESIGN.md before "fixing" it.
func (e *AuctionEngine) RunCombinatorialAuction(buyOrders, sellOrders []Order) ([]Trade, error) {
	buys, sells, err := e.prepare(buyOrders, sellOrders)
	if err != nil {
		return nil, err
	}

	// first pass: discover fills and track the marginal prices
	fills := make([]fill, 0)
	var marginalBuy, marginalSell apd.Decimal
	for b := range buys {
		for s := range sells {
			if buys[b].Qty <= 0 || sells[s].Qty <= 0 {
				continue
			}
			if !e.eligible(&buys[b], &sells[s]) {
				continue
			}
			qty := min(buys[b].Qty, sells[s].Qty)

			fills = append(fills, fill{
				buyer:      buys[b].CustomerID,
				seller:     sells[s].CustomerID,
				bidOrderID: buys[b].ID,
				askOrderID: sells[s].ID,
				qty:        qty,
			})
			marginalBuy = buys[b].Price
			marginalSell = sells[s].Price

			buys[b].Qty -= qty
			sells[s].Qty -= qty
		}
	}

	trades := make([]Trade, 0, len(fills))
	if len(fills) == 0 {
		return trades, nil
	}

	clearingPrice, err := midpoint(&marginalBuy, &marginalSell)
	if err != nil {
		return nil, err
	}

	// second pass: emit every fill at the uniform clearing price
	for _, f := range fills {
		trades = append(trades, Trade{
			Buyer:      f.buyer,
			Seller:     f.seller,
			Instrument: e.Instrument,
			Qty:        f.qty,
			Price:      clearingPrice,
			Timestamp:  time.Now(),
			BidOrderID: f.bidOrderID,
			AskOrderID: f.askOrderID,
		})
	}
	return trades, nil
}

// prepare validates both sides and returns sorted working copies. The
// caller's slices are never touched past this point.
func (e *AuctionEngine) prepare(buyOrders, sellOrders []Order) ([]Order, []Order, error) {
	if err := validateSides(buyOrders, sellOrders); err != nil {
		return nil, nil, err
	}
	buys := append([]Order(nil), buyOrders...)
	sells := append([]Order(nil), sellOrders...)
	// highest bid first, lowest offer first
	sortOrders(buys, makeComparator(true))
	sortOrders(sells, makeComparator(false))
	return buys, sells, nil
}

// validateSides checks that every order sits in the list its side claims.
// The first violation aborts the whole call - routing an order to the
// wrong list is a caller bug, not recoverable input.
func validateSides(buyOrders, sellOrders []Order) error {
	for i := range buyOrders {
		if buyOrders[i].Side != SideBuy {
			return &SideMismatchError{OrderID: buyOrders[i].ID, Want: SideBuy, Got: buyOrders[i].Side}
		}
	}
	for i := range sellOrders {
		if sellOrders[i].Side != SideSell {
			return &SideMismatchError{OrderID: sellOrders[i].ID, Want: SideSell, Got: sellOrders[i].Side}
		}
	}
	return nil
}

// eligible reports whether a buy/sell pair may trade: the buy has to cross
// the sell (>=, so equal prices match) and both limits have to sit inside
// or at the band.
func (e *AuctionEngine) eligible(buy, sell *Order) bool {
	if buy.Price.Cmp(&sell.Price) < 0 {
		return false
	}
	return e.nbbo.allowsBuy(&buy.Price) && e.nbbo.allowsSell(&sell.Price)
}

// midpoint returns (x + y) / 2.
func midpoint(x, y *apd.Decimal) (apd.Decimal, error) {
	var sum, mid apd.Decimal
	if _, err := BaseContext.Add(&sum, x, y); err != nil {
		return apd.Decimal{}, err
	}
	if _, err := BaseContext.Quo(&mid, &sum, two); err != nil {
		return apd.Decimal{}, err
	}
	return mid, nil
}

// return a minimum of two int64s
func min(q1, q2 int64) int64 {
	if q1 <= q2 {
		return q1
	}
	return q2
}

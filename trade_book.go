package gavel

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// AuctionRound is the recorded outcome of one matching call.
type AuctionRound struct {
	ID         uuid.UUID
	Instrument string
	Pricing    PricingMode
	Trades     []Trade
	Timestamp  time.Time
}

// TradeBook collects the trades of completed auction rounds. The engine
// itself is stateless; orchestrators that want history, settlement
// hand-off or notifications record rounds here.
type TradeBook struct {
	Instrument string

	rounds      []AuctionRound
	trades      []Trade
	todayTrades map[uint64]*Trade
	nextTradeID uint64
	tradeMutex  sync.RWMutex

	tradeRepo      TradeRepository
	callbacks      []TradeCallback
	roundCallbacks []RoundCallback
}

func NewTradeBook(instrument string, tradeRepo TradeRepository) *TradeBook {
	return &TradeBook{
		Instrument:  instrument,
		rounds:      make([]AuctionRound, 0, 16),
		trades:      make([]Trade, 0, 1024),
		todayTrades: make(map[uint64]*Trade),
		tradeRepo:   tradeRepo,
	}
}

// Subscribe registers a callback executed for every trade recorded from
// this point on.
func (t *TradeBook) Subscribe(callback TradeCallback) {
	t.tradeMutex.Lock()
	defer t.tradeMutex.Unlock()
	t.callbacks = append(t.callbacks, callback)
}

// SubscribeRounds registers a callback executed once per recorded round.
func (t *TradeBook) SubscribeRounds(callback RoundCallback) {
	t.tradeMutex.Lock()
	defer t.tradeMutex.Unlock()
	t.roundCallbacks = append(t.roundCallbacks, callback)
}

// Record stores the trades of one matching call as a round, assigning
// trade IDs and persisting each trade through the repository. Recording
// an empty round is valid - a no-match auction is still an auction.
func (t *TradeBook) Record(pricing PricingMode, trades []Trade) (AuctionRound, error) {
	round := AuctionRound{
		ID:         uuid.New(),
		Instrument: t.Instrument,
		Pricing:    pricing,
		Trades:     make([]Trade, 0, len(trades)),
		Timestamp:  time.Now(),
	}

	t.tradeMutex.Lock()
	nextID := t.nextTradeID
	for _, trade := range trades {
		nextID += 1
		trade.ID = nextID
		if err := t.tradeRepo.Store(trade); err != nil {
			t.tradeMutex.Unlock()
			return AuctionRound{}, errors.Wrapf(err, "store trade %d for round %s", trade.ID, round.ID)
		}
		round.Trades = append(round.Trades, trade)
	}
	t.nextTradeID = nextID
	t.trades = append(t.trades, round.Trades...)
	for i := range round.Trades {
		trade := &t.trades[len(t.trades)-len(round.Trades)+i]
		t.todayTrades[trade.ID] = trade
	}
	t.rounds = append(t.rounds, round)
	callbacks := t.callbacks
	roundCallbacks := t.roundCallbacks
	t.tradeMutex.Unlock()

	for _, callback := range callbacks {
		for _, trade := range round.Trades {
			callback.Execute(trade)
		}
	}
	for _, callback := range roundCallbacks {
		callback.Execute(round)
	}
	return round, nil
}

// Reject marks a recorded trade as rejected (e.g. kicked back by
// settlement). The trade stays in the book.
func (t *TradeBook) Reject(tradeID uint64) {
	t.tradeMutex.Lock()
	defer t.tradeMutex.Unlock()

	if trade, ok := t.todayTrades[tradeID]; ok {
		trade.Rejected = true
		t.todayTrades[tradeID] = trade
	}
}

// Rounds returns a copy of all recorded rounds in recording order.
func (t *TradeBook) Rounds() []AuctionRound {
	t.tradeMutex.RLock()
	defer t.tradeMutex.RUnlock()

	roundsCopy := make([]AuctionRound, len(t.rounds))
	copy(roundsCopy, t.rounds)
	return roundsCopy
}

// DailyTrades returns a copy of every recorded trade across rounds.
func (t *TradeBook) DailyTrades() []Trade {
	t.tradeMutex.RLock()
	defer t.tradeMutex.RUnlock()

	tradesCopy := make([]Trade, len(t.trades))
	copy(tradesCopy, t.trades)
	return tradesCopy
}

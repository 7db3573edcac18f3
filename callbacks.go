package gavel

type TradeCallbackFunc func(trade Trade)

func (f TradeCallbackFunc) Execute(trade Trade) {
	f(trade)
}

type RoundCallbackFunc func(round AuctionRound)

func (f RoundCallbackFunc) Execute(round AuctionRound) {
	f(round)
}

type TradeCallback interface {
	Execute(trade Trade)
}

type RoundCallback interface {
	Execute(round AuctionRound)
}

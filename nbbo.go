package gavel

import (
	"errors"

	"github.com/cockroachdb/apd"
)

var ErrInvertedNBBO = errors.New("NBBO bid is above its ask")

// NBBO is the reference band one auction round executes inside: buys must
// price at or below Ask, sells at or above Bid. It is a snapshot - the
// engine never derives it from the order sets and never changes it.
type NBBO struct {
	Bid apd.Decimal
	Ask apd.Decimal
}

// Validate rejects an inverted band. Construction of an engine does not
// call this - an inverted band is accepted and simply matches nothing -
// so strict callers have to opt in.
func (n *NBBO) Validate() error {
	if n.Bid.Cmp(&n.Ask) > 0 {
		return ErrInvertedNBBO
	}
	return nil
}

func (n *NBBO) allowsBuy(price *apd.Decimal) bool {
	return price.Cmp(&n.Ask) <= 0
}

func (n *NBBO) allowsSell(price *apd.Decimal) bool {
	return price.Cmp(&n.Bid) >= 0
}

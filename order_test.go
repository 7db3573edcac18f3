package gavel

import (
	"testing"

	"github.com/cockroachdb/apd"
)

func TestSortOrders_BuyPriority(t *testing.T) {
	orders := []Order{
		createOrder(1, SideBuy, apd.New(10010, -2), 10),
		createOrder(2, SideBuy, apd.New(10065, -2), 10),
		createOrder(3, SideBuy, apd.New(9950, -2), 10),
		createOrder(4, SideBuy, apd.New(10025, -2), 10),
	}

	sortOrders(orders, makeComparator(true))

	want := []uint64{2, 4, 1, 3}
	for i, order := range orders {
		if order.ID != want[i] {
			t.Errorf("expected order %d in place %d, got %d", want[i], i, order.ID)
		}
	}
}

func TestSortOrders_SellPriority(t *testing.T) {
	orders := []Order{
		createOrder(1, SideSell, apd.New(10010, -2), 10),
		createOrder(2, SideSell, apd.New(9950, -2), 10),
		createOrder(3, SideSell, apd.New(10065, -2), 10),
		createOrder(4, SideSell, apd.New(10025, -2), 10),
	}

	sortOrders(orders, makeComparator(false))

	want := []uint64{2, 1, 4, 3}
	for i, order := range orders {
		if order.ID != want[i] {
			t.Errorf("expected order %d in place %d, got %d", want[i], i, order.ID)
		}
	}
}

// equal prices carry no secondary key - ties have to keep arrival order
func TestSortOrders_StableTies(t *testing.T) {
	orders := []Order{
		createOrder(1, SideBuy, apd.New(10000, -2), 10),
		createOrder(2, SideBuy, apd.New(10025, -2), 10),
		createOrder(3, SideBuy, apd.New(10000, -2), 10),
		createOrder(4, SideBuy, apd.New(10000, -2), 10),
	}

	sortOrders(orders, makeComparator(true))

	want := []uint64{2, 1, 3, 4}
	for i, order := range orders {
		if order.ID != want[i] {
			t.Errorf("expected order %d in place %d, got %d", want[i], i, order.ID)
		}
	}
}

func TestSideMismatchError_Message(t *testing.T) {
	err := &SideMismatchError{OrderID: 42, Want: SideBuy, Got: SideSell}
	want := "invalid order 42: expected side Buy, found Sell"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

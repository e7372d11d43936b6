package orderbook

import "sort"

// priceLevel owns the time-priority queue of resting orders at one price,
// plus a cached aggregate of their remaining quantity. orders is kept sorted
// by (timestamp, id) at all times, so iteration is always time-priority
// order and insert locates its slot with a binary search. Lookup by ID
// (cancel/update/positionOf) is a linear scan — levels are expected to stay
// small relative to the book as a whole.
type priceLevel struct {
	price   float64
	orders  []*LimitOrder
	sumLeft int64
}

func newPriceLevel(price float64) *priceLevel {
	return &priceLevel{price: price}
}

// insert places order into its sorted position. The caller (MatchingEngine)
// is responsible for ensuring the order's ID is not already present.
func (pl *priceLevel) insert(order *LimitOrder) {
	idx := sort.Search(len(pl.orders), func(i int) bool {
		return order.less(pl.orders[i])
	})
	pl.orders = append(pl.orders, nil)
	copy(pl.orders[idx+1:], pl.orders[idx:])
	pl.orders[idx] = order
	pl.sumLeft += order.Left
}

// cancel removes the order with the given ID, if present.
func (pl *priceLevel) cancel(id int64) bool {
	idx := pl.indexOf(id)
	if idx < 0 {
		return false
	}
	removed := pl.orders[idx]
	pl.orders = append(pl.orders[:idx], pl.orders[idx+1:]...)
	pl.sumLeft -= removed.Left
	return true
}

// remove drops the order at position idx without touching sumLeft — used by
// fill(), which has already adjusted sumLeft for the quantity it consumed.
func (pl *priceLevel) remove(idx int) {
	pl.orders = append(pl.orders[:idx], pl.orders[idx+1:]...)
}

// update re-seats order at its (possibly new) sorted position — used by
// amend, where a size-raising amend assigns a fresh timestamp and must move
// to the tail, while a size-reducing amend retains its timestamp and thus
// its position. priorLeft is the order's Left before the caller applied its
// mutation; since order is the same pointer the level already holds, by the
// time update runs order.Left already reflects the new size, so the removal
// side of the reseat must subtract priorLeft rather than order.Left itself.
func (pl *priceLevel) update(order *LimitOrder, priorLeft int64) {
	if idx := pl.indexOf(order.ID); idx >= 0 {
		pl.sumLeft -= priorLeft
		pl.orders = append(pl.orders[:idx], pl.orders[idx+1:]...)
	}
	pl.insert(order)
}

// retire removes an order whose Left has already been mutated to zero by
// the caller, the same pointer-aliasing hazard update guards against:
// sumLeft must drop by priorLeft, the size the order actually held while
// resting, not by its now-zeroed Left.
func (pl *priceLevel) retire(id int64, priorLeft int64) bool {
	idx := pl.indexOf(id)
	if idx < 0 {
		return false
	}
	pl.orders = append(pl.orders[:idx], pl.orders[idx+1:]...)
	pl.sumLeft -= priorLeft
	return true
}

func (pl *priceLevel) nItems() int {
	return len(pl.orders)
}

// positionOf returns the zero-based index of id in time-priority order, or
// -1 if the order is not resting at this level.
func (pl *priceLevel) positionOf(id int64) int {
	return pl.indexOf(id)
}

func (pl *priceLevel) indexOf(id int64) int {
	for i, o := range pl.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func (pl *priceLevel) empty() bool {
	return len(pl.orders) == 0
}

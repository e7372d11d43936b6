package orderbook

import "sync"

// orderIndex maps order ID to its live LimitOrder. It is the source of
// truth for status and is guarded by its own RWMutex. Entries for cancelled
// and executed orders are retained for the lifetime of the process so
// QueryOrder can keep answering for them; there is no eviction policy.
type orderIndex struct {
	mu   sync.RWMutex
	byID map[int64]*LimitOrder
}

func newOrderIndex() *orderIndex {
	return &orderIndex{byID: make(map[int64]*LimitOrder)}
}

// insertIfAbsent adds order keyed by its ID, rejecting duplicates. Caller
// must hold the write lock.
func (idx *orderIndex) insertIfAbsent(order *LimitOrder) bool {
	if _, exists := idx.byID[order.ID]; exists {
		return false
	}
	idx.byID[order.ID] = order
	return true
}

// get returns the order for id, if any. Caller must hold a read or write
// lock.
func (idx *orderIndex) get(id int64) (*LimitOrder, bool) {
	o, ok := idx.byID[id]
	return o, ok
}

// mutateLeftAndStatus updates an order's remaining quantity and status in
// place. Because priceLevel holds the same *LimitOrder pointer, this is
// simultaneously the ladder-side mirror update. Caller must hold the write
// lock.
func (idx *orderIndex) mutateLeftAndStatus(order *LimitOrder, left int64, status Status) {
	order.Left = left
	order.Status = status
}

// mutateTimestampAndQty updates an order's quantity, remaining size and,
// when raising size, its timestamp — used by amend. Caller must hold the
// write lock.
func (idx *orderIndex) mutateTimestampAndQty(order *LimitOrder, timestamp int64, quantity, left int64) {
	order.Timestamp = timestamp
	order.Quantity = quantity
	order.Left = left
}

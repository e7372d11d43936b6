package orderbook

// DepthResult is the response to QueryDepth: the depth-th best level's
// price and aggregate size, or zeros with the requested depth echoed when
// out of range.
type DepthResult struct {
	Side    Side
	Depth   int
	Price   float64
	SumLeft int64
	NItems  int
}

// QueryDepth returns the depth-th best level (1 = best price) on side,
// without mutating the book. Out-of-range depths return zeros with Depth
// echoed back.
func (e *Engine) QueryDepth(side Side, depth int) DepthResult {
	ladder := e.ladder(side)

	ladder.mu.RLock()
	defer ladder.mu.RUnlock()

	result := DepthResult{Side: side, Depth: depth}
	if depth < 1 || depth > ladder.nLevels() {
		return result
	}
	level := ladder.nthBest(depth)
	if level == nil {
		return result
	}
	result.Price = level.price
	result.SumLeft = level.sumLeft
	result.NItems = level.nItems()
	return result
}

// OrderView is the response to QueryOrder: a snapshot of an order's side,
// price, sizes, queue position, and status. The sentinel zero value (with
// HasOrder false) is returned for unknown IDs.
type OrderView struct {
	HasOrder bool
	Side     Side
	Price    float64
	Quantity int64
	Left     int64
	Position int
	Status   Status
}

// QueryOrder returns a point-in-time snapshot of order id's state, without
// mutating the book. Position is the order's zero-based index in its
// level's time-priority queue while resting (open or partial), and -1
// otherwise, including for unknown IDs.
func (e *Engine) QueryOrder(id int64) OrderView {
	e.index.mu.RLock()
	order, ok := e.index.get(id)
	if !ok {
		e.index.mu.RUnlock()
		return OrderView{Position: -1}
	}
	side, price, quantity, left, status := order.Side, order.Price, order.Quantity, order.Left, order.Status
	e.index.mu.RUnlock()

	position := -1
	if status == Open || status == Partial {
		ladder := e.ladder(side)
		ladder.mu.RLock()
		if level, ok := ladder.levelAt(price); ok {
			position = level.positionOf(id)
		}
		ladder.mu.RUnlock()
	}

	return OrderView{
		HasOrder: true,
		Side:     side,
		Price:    price,
		Quantity: quantity,
		Left:     left,
		Position: position,
		Status:   status,
	}
}

// Package orderbook implements a single-instrument, price-time priority
// limit order book: an in-memory matching engine over a dual price-indexed
// book (bid/ask price ladders) and an order index keyed by order ID.
package orderbook

import (
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Engine is the matching engine: add/cancel/amend/match/fill over the
// order index and the two price ladders. The zero value is not usable; use
// New.
type Engine struct {
	tickSize  float64
	precision float64

	bids  *priceLadder
	asks  *priceLadder
	index *orderIndex
	clock clock

	logger zerolog.Logger
}

// New builds an Engine for a single instrument. tickSize is the minimum
// price increment; precision is the relative tolerance (dimensionless,
// typically ~1e-3) used when snapping a submitted price to the nearest
// multiple of tickSize.
func New(tickSize, precision float64) *Engine {
	return &Engine{
		tickSize:  tickSize,
		precision: precision,
		bids:      newBidLadder(),
		asks:      newAskLadder(),
		index:     newOrderIndex(),
		logger:    log.Logger,
	}
}

// alignTick snaps price to the nearest multiple of the engine's tick size,
// reporting whether price was close enough to a tick to accept.
func (e *Engine) alignTick(price float64) (float64, bool) {
	rem := math.Mod(price, e.tickSize)
	tol := e.tickSize * e.precision
	if rem < tol || e.tickSize-rem < tol {
		// Dividing by the inverse tick (rather than multiplying by the tick)
		// keeps a price typed as an exact tick multiple, e.g. 0.15, bit-exact.
		n := math.Round(price / e.tickSize)
		return n / (1 / e.tickSize), true
	}
	return 0, false
}

func (e *Engine) ladder(side Side) *priceLadder {
	if side == Buy {
		return e.bids
	}
	return e.asks
}

func (e *Engine) opposite(side Side) *priceLadder {
	if side == Buy {
		return e.asks
	}
	return e.bids
}

// Add validates, tick-aligns, and matches a new limit order, then posts any
// residual quantity to the book. Returns false if the order is rejected for
// a misaligned price or a duplicate ID.
func (e *Engine) Add(id int64, side Side, quantity int64, price float64) bool {
	aligned, ok := e.alignTick(price)
	if !ok {
		return false
	}

	order := newLimitOrder(id, side, quantity, aligned, &e.clock)

	e.index.mu.Lock()
	inserted := e.index.insertIfAbsent(order)
	e.index.mu.Unlock()
	if !inserted {
		return false
	}

	e.match(order)

	if order.Left > 0 {
		same := e.ladder(side)
		same.mu.Lock()
		level := same.upsertLevel(order.Price)
		level.insert(order)
		same.mu.Unlock()
	} else {
		e.index.mu.Lock()
		e.index.mutateLeftAndStatus(order, 0, Executed)
		e.index.mu.Unlock()
	}

	return true
}

// match walks the opposite ladder from best price, filling order against
// resting levels until it is exhausted, no level crosses, or the opposite
// ladder is empty.
func (e *Engine) match(order *LimitOrder) {
	opp := e.opposite(order.Side)

	// Lock order index before side, even though both locks are released
	// together at the end of this single state transition.
	e.index.mu.Lock()
	opp.mu.Lock()
	defer e.index.mu.Unlock()
	defer opp.mu.Unlock()

	fillID := uuid.New()
	firstFill := true

	var erase []float64
	opp.best(func(level *priceLevel) bool {
		if crosses(order, level.price) {
			if firstFill {
				e.index.mutateLeftAndStatus(order, order.Left, Partial)
				firstFill = false
			}
			e.fill(level, order, fillID)
			if level.empty() {
				erase = append(erase, level.price)
			}
			return order.Left > 0
		}
		return false
	})
	for _, price := range erase {
		opp.eraseLevelIfEmpty(price)
	}

	if order.Left == 0 && order.Status != Open {
		e.index.mutateLeftAndStatus(order, 0, Executed)
	}
}

// crosses reports whether a level at levelPrice crosses with order: a buy
// crosses any ask at or below its price, a sell any bid at or above it.
func crosses(order *LimitOrder, levelPrice float64) bool {
	if order.Side == Buy {
		return levelPrice <= order.Price
	}
	return levelPrice >= order.Price
}

// fill walks level in time-priority order, consuming resting orders against
// the incoming order until either the level or the incoming order is
// exhausted. Caller must hold the index lock and the opposite side's lock.
func (e *Engine) fill(level *priceLevel, order *LimitOrder, fillID uuid.UUID) {
	for len(level.orders) > 0 && order.Left > 0 {
		r := level.orders[0]

		if order.Left <= r.Left {
			restLeft := r.Left - order.Left
			level.sumLeft -= order.Left
			e.logger.Debug().
				Str("fillID", fillID.String()).
				Int64("takerID", order.ID).
				Int64("makerID", r.ID).
				Int64("qty", order.Left).
				Float64("price", level.price).
				Msg("fill")
			order.Left = 0

			if restLeft > 0 {
				e.index.mutateLeftAndStatus(r, restLeft, Partial)
			} else {
				e.index.mutateLeftAndStatus(r, 0, Executed)
				level.remove(0)
			}
			return
		}

		level.sumLeft -= r.Left
		e.logger.Debug().
			Str("fillID", fillID.String()).
			Int64("takerID", order.ID).
			Int64("makerID", r.ID).
			Int64("qty", r.Left).
			Float64("price", level.price).
			Msg("fill")
		order.Left -= r.Left
		e.index.mutateLeftAndStatus(r, 0, Executed)
		level.remove(0)
	}
}

// Cancel removes a resting order. An order already cancelled or executed is
// left untouched and Cancel returns false: a terminal status is never
// overwritten.
func (e *Engine) Cancel(id int64) bool {
	e.index.mu.Lock()
	order, ok := e.index.get(id)
	if !ok || order.Status == Cancelled || order.Status == Executed {
		e.index.mu.Unlock()
		return false
	}
	side, price := order.Side, order.Price
	e.index.mutateLeftAndStatus(order, order.Left, Cancelled)
	e.index.mu.Unlock()

	ladder := e.ladder(side)
	ladder.mu.Lock()
	removed := false
	if level, ok := ladder.levelAt(price); ok {
		removed = level.cancel(id)
		if level.empty() {
			ladder.eraseLevelIfEmpty(price)
		}
	}
	ladder.mu.Unlock()

	return removed
}

// Amend changes a resting order's quantity in place. Raising quantity
// assigns a fresh timestamp, forfeiting queue priority; reducing or holding
// quantity steady retains the original timestamp and thus position. No
// re-matching is triggered even if the amended order would now cross.
//
// An amend that reduces left all the way to zero retires the order: status
// moves to Executed and it is un-rested from its level, the same way fill
// retires an order whose left reaches zero.
func (e *Engine) Amend(id int64, newQuantity int64) bool {
	e.index.mu.Lock()
	order, ok := e.index.get(id)
	if !ok || order.Status == Cancelled || order.Status == Executed {
		e.index.mu.Unlock()
		return false
	}

	delta := newQuantity - order.Quantity
	priorLeft := order.Left
	newLeft := priorLeft + delta
	if newLeft < 0 {
		e.index.mu.Unlock()
		return false
	}

	timestamp := order.Timestamp
	if delta > 0 {
		timestamp = e.clock.now()
	}
	e.index.mutateTimestampAndQty(order, timestamp, newQuantity, newLeft)
	if newLeft == 0 {
		e.index.mutateLeftAndStatus(order, 0, Executed)
	}
	side, price := order.Side, order.Price
	e.index.mu.Unlock()

	// order is the same pointer the level holds, and the index has already
	// mutated its Left above, so the level must be told the pre-mutation
	// size (priorLeft) to adjust sumLeft by the real delta instead of
	// subtracting the order's already-updated Left.
	ladder := e.ladder(side)
	ladder.mu.Lock()
	if level, ok := ladder.levelAt(price); ok {
		if newLeft == 0 {
			level.retire(id, priorLeft)
			ladder.eraseLevelIfEmpty(price)
		} else {
			level.update(order, priorLeft)
		}
	}
	ladder.mu.Unlock()

	return true
}

package orderbook

import (
	"sync"

	"github.com/tidwall/btree"
)

// priceLadder is a price-sorted map of price to priceLevel, guarded by its
// own RWMutex. Bids and asks are each a btree.BTreeG[*priceLevel]
// distinguished only by their comparator: a greater-than comparator for
// bids makes ascending B-tree iteration best-price-first, and a less-than
// comparator does the same for asks, so both sides share one walk-from-best
// code path.
type priceLadder struct {
	mu     sync.RWMutex
	levels *btree.BTreeG[*priceLevel]
}

func newBidLadder() *priceLadder {
	return &priceLadder{
		levels: btree.NewBTreeG(func(a, b *priceLevel) bool {
			return a.price > b.price
		}),
	}
}

func newAskLadder() *priceLadder {
	return &priceLadder{
		levels: btree.NewBTreeG(func(a, b *priceLevel) bool {
			return a.price < b.price
		}),
	}
}

// upsertLevel returns the level at price, creating an empty one if absent.
// Caller must hold the ladder's write lock.
func (l *priceLadder) upsertLevel(price float64) *priceLevel {
	if existing, ok := l.levels.Get(&priceLevel{price: price}); ok {
		return existing
	}
	pl := newPriceLevel(price)
	l.levels.Set(pl)
	return pl
}

// levelAt returns the level at price, if any. Caller must hold a read or
// write lock on the ladder.
func (l *priceLadder) levelAt(price float64) (*priceLevel, bool) {
	return l.levels.Get(&priceLevel{price: price})
}

// eraseLevelIfEmpty removes the level at price if it holds no orders.
// Caller must hold the ladder's write lock.
func (l *priceLadder) eraseLevelIfEmpty(price float64) {
	if pl, ok := l.levels.Get(&priceLevel{price: price}); ok && pl.empty() {
		l.levels.Delete(pl)
	}
}

// best walks levels from best price to worst, invoking fn on each until fn
// returns false or the tree is exhausted. Caller must hold a read or write
// lock on the ladder.
func (l *priceLadder) best(fn func(pl *priceLevel) bool) {
	l.levels.Scan(fn)
}

// nLevels reports the number of levels in the ladder, empty or not. Caller
// must hold a read or write lock on the ladder.
func (l *priceLadder) nLevels() int {
	return l.levels.Len()
}

// nthBest returns the depth-th best level (1 = best), or nil if depth is out
// of range. Caller must hold a read or write lock on the ladder.
func (l *priceLadder) nthBest(depth int) *priceLevel {
	if depth < 1 {
		return nil
	}
	var found *priceLevel
	i := 0
	l.levels.Scan(func(pl *priceLevel) bool {
		i++
		if i == depth {
			found = pl
			return false
		}
		return true
	})
	return found
}

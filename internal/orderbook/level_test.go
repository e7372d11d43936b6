package orderbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceLevel_InsertKeepsSumAndOrder(t *testing.T) {
	pl := newPriceLevel(10.0)
	c := &clock{}

	a := newLimitOrder(1, Buy, 5, 10.0, c)
	b := newLimitOrder(2, Buy, 7, 10.0, c)

	pl.insert(a)
	pl.insert(b)

	assert.Equal(t, int64(12), pl.sumLeft)
	assert.Equal(t, []int64{1, 2}, idsOf(pl))
	assert.Equal(t, 0, pl.positionOf(1))
	assert.Equal(t, 1, pl.positionOf(2))
	assert.Equal(t, -1, pl.positionOf(999))
}

func TestPriceLevel_Cancel(t *testing.T) {
	pl := newPriceLevel(10.0)
	c := &clock{}
	a := newLimitOrder(1, Buy, 5, 10.0, c)
	b := newLimitOrder(2, Buy, 7, 10.0, c)
	pl.insert(a)
	pl.insert(b)

	assert.True(t, pl.cancel(1))
	assert.False(t, pl.cancel(1), "cancelling twice must fail the second time")
	assert.Equal(t, int64(7), pl.sumLeft)
	assert.Equal(t, []int64{2}, idsOf(pl))
}

func TestPriceLevel_UpdateReordersOnNewTimestamp(t *testing.T) {
	pl := newPriceLevel(10.0)
	c := &clock{}
	a := newLimitOrder(1, Buy, 5, 10.0, c)
	b := newLimitOrder(2, Buy, 7, 10.0, c)
	pl.insert(a)
	pl.insert(b)

	priorLeft := a.Left
	a.Timestamp = c.now()
	a.Left = 9
	pl.update(a, priorLeft)

	assert.Equal(t, []int64{2, 1}, idsOf(pl))
	assert.Equal(t, int64(16), pl.sumLeft)
}

func TestPriceLevel_RetireDropsSumLeftByPriorSize(t *testing.T) {
	pl := newPriceLevel(10.0)
	c := &clock{}
	a := newLimitOrder(1, Buy, 5, 10.0, c)
	b := newLimitOrder(2, Buy, 7, 10.0, c)
	pl.insert(a)
	pl.insert(b)

	priorLeft := a.Left
	a.Left = 0
	assert.True(t, pl.retire(1, priorLeft))
	assert.Equal(t, []int64{2}, idsOf(pl))
	assert.Equal(t, int64(7), pl.sumLeft)
}

func TestPriceLevel_EmptyAfterLastRemoval(t *testing.T) {
	pl := newPriceLevel(10.0)
	c := &clock{}
	a := newLimitOrder(1, Buy, 5, 10.0, c)
	pl.insert(a)
	assert.False(t, pl.empty())
	pl.cancel(1)
	assert.True(t, pl.empty())
}

func idsOf(pl *priceLevel) []int64 {
	ids := make([]int64, len(pl.orders))
	for i, o := range pl.orders {
		ids[i] = o.ID
	}
	return ids
}

package orderbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBidLadder_BestFirstIsHighestPrice(t *testing.T) {
	ladder := newBidLadder()
	ladder.upsertLevel(10.0)
	ladder.upsertLevel(12.0)
	ladder.upsertLevel(11.0)

	require.Equal(t, 3, ladder.nLevels())
	assert.Equal(t, 12.0, ladder.nthBest(1).price)
	assert.Equal(t, 11.0, ladder.nthBest(2).price)
	assert.Equal(t, 10.0, ladder.nthBest(3).price)
	assert.Nil(t, ladder.nthBest(4))
}

func TestAskLadder_BestFirstIsLowestPrice(t *testing.T) {
	ladder := newAskLadder()
	ladder.upsertLevel(10.0)
	ladder.upsertLevel(12.0)
	ladder.upsertLevel(11.0)

	assert.Equal(t, 10.0, ladder.nthBest(1).price)
	assert.Equal(t, 11.0, ladder.nthBest(2).price)
	assert.Equal(t, 12.0, ladder.nthBest(3).price)
}

func TestLadder_EraseLevelIfEmpty(t *testing.T) {
	ladder := newBidLadder()
	level := ladder.upsertLevel(10.0)
	c := &clock{}
	level.insert(newLimitOrder(1, Buy, 5, 10.0, c))

	ladder.eraseLevelIfEmpty(10.0)
	require.Equal(t, 1, ladder.nLevels(), "non-empty level must survive eraseLevelIfEmpty")

	level.cancel(1)
	ladder.eraseLevelIfEmpty(10.0)
	assert.Equal(t, 0, ladder.nLevels())
}

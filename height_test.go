package cskiplist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeightOracleGetHeightBounds(t *testing.T) {
	o := newHeightOracle(24)
	for i := 0; i < 1000; i++ {
		h := o.getHeight(24)
		require.GreaterOrEqual(t, h, 1)
		require.LessOrEqual(t, h, 24)
	}
}

func TestHeightOracleGetHeightRespectsCap(t *testing.T) {
	o := newHeightOracle(24)
	for i := 0; i < 1000; i++ {
		h := o.getHeight(3)
		require.LessOrEqual(t, h, 3)
	}
}

func TestHeightOracleClampsDegenerateMaxHeight(t *testing.T) {
	o := newHeightOracle(2)
	for i := 0; i < 100; i++ {
		h := o.getHeight(2)
		require.GreaterOrEqual(t, h, 1)
		require.LessOrEqual(t, h, 2)
	}
}

func TestHeightOracleSizeLimitsAreMonotonic(t *testing.T) {
	o := newHeightOracle(24)
	for h := 1; h <= 24; h++ {
		require.Greater(t, o.getSizeLimit(h), o.getSizeLimit(h-1))
	}
}

func TestHeightOracleForIsASingletonPerMaxHeight(t *testing.T) {
	a := heightOracleFor(16)
	b := heightOracleFor(16)
	require.Same(t, a, b)

	c := heightOracleFor(8)
	require.NotSame(t, a, c)
}

func TestHeightOracleDistributionIsRoughlyGeometric(t *testing.T) {
	o := newHeightOracle(24)
	const trials = 20000
	counts := make(map[int]int)
	for i := 0; i < trials; i++ {
		counts[o.getHeight(24)]++
	}
	// Roughly half of draws should land at height 1 under p=0.5; allow a
	// generous band since this is a statistical, not exact, property.
	require.InDelta(t, trials/2, counts[1], float64(trials)/5)
}

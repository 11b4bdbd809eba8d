package cskiplist

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultConfig(t *testing.T) {
	c := defaultConfig()
	require.Equal(t, defaultMaxHeight, c.maxHeight)
	require.NotNil(t, c.allocator)
	require.NotNil(t, c.logger)
}

func TestWithMaxHeightClampsBelowOne(t *testing.T) {
	c := defaultConfig()
	WithMaxHeight(0)(&c)
	require.Equal(t, 1, c.maxHeight)

	WithMaxHeight(6)(&c)
	require.Equal(t, 6, c.maxHeight)
}

func TestWithAllocatorIgnoresNil(t *testing.T) {
	c := defaultConfig()
	original := c.allocator
	WithAllocator(nil)(&c)
	require.Same(t, original, c.allocator)

	custom := newCountingAllocator()
	WithAllocator(custom)(&c)
	require.Same(t, custom, c.allocator)
}

func TestWithLoggerIgnoresNil(t *testing.T) {
	c := defaultConfig()
	original := c.logger
	WithLogger(nil)(&c)
	require.Same(t, original, c.logger)

	logger := zap.NewExample()
	WithLogger(logger)(&c)
	require.Same(t, logger, c.logger)
}

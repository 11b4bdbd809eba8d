package cskiplist

import "go.uber.org/zap"

const (
	// defaultMaxHeight bounds the number of layers a list will grow to.
	// 32 layers comfortably covers lists far larger than any process is
	// likely to hold in memory (the doubling growth schedule only reaches
	// height 32 once the list holds more than 2^31, ~2 billion, elements).
	defaultMaxHeight = 32
)

// config collects the construction-time parameters of a List. It is
// built by applying a caller's Options over a set of defaults, the
// same functional-options shape used throughout the example corpus for
// optional constructor parameters.
type config struct {
	maxHeight int
	allocator Allocator
	logger    *zap.Logger
}

func defaultConfig() config {
	return config{
		maxHeight: defaultMaxHeight,
		allocator: newCountingAllocator(),
		logger:    nopLogger(),
	}
}

// Option configures a List at construction time.
type Option func(*config)

// WithMaxHeight caps the number of layers the list may grow to. It
// must be at least 1; values below 1 are silently clamped to 1.
func WithMaxHeight(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.maxHeight = n
	}
}

// WithAllocator supplies the Allocator used to account for node
// memory. A nil Allocator is ignored and the default is kept.
func WithAllocator(a Allocator) Option {
	return func(c *config) {
		if a != nil {
			c.allocator = a
		}
	}
}

// WithLogger supplies a zap.Logger for the list's rare diagnostic
// events (height growth, recycler flushes). A nil Logger is ignored
// and the default no-op logger is kept.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

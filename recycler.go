package cskiplist

import (
	"sync"

	"go.uber.org/zap"
)

// recycler defers physical reclamation of removed nodes until no open
// Accessor can still be holding a reference to them. It mirrors the
// NodeRecycler described in the source this package is modeled on:
// every Accessor, on construction, increments a shared pinned count;
// every node removed from the list while at least one Accessor is
// open goes onto a pending list instead of being handed to the
// allocator immediately. When the pinned count drops to zero (the
// last open Accessor closes), the pending list is flushed.
//
// trivial caches the Allocator's TrivialDeallocate bit: when set, the
// recycler short-circuits entirely (no queueing, no Deallocate call),
// matching an arena/bump allocator whose Deallocate has no observable
// effect anyway.
type recycler[K any, V any] struct {
	mu      sync.Mutex
	pending []*node[K, V]
	pinned  int64

	alloc   Allocator
	trivial bool
	logger  *zap.Logger
}

func newRecycler[K any, V any](alloc Allocator, logger *zap.Logger) *recycler[K, V] {
	return &recycler[K, V]{alloc: alloc, trivial: alloc.TrivialDeallocate(), logger: logger}
}

// addRef is called when an Accessor is opened.
func (r *recycler[K, V]) addRef() {
	r.mu.Lock()
	r.pinned++
	r.mu.Unlock()
}

// releaseRef is called when an Accessor is closed. If this was the
// last open Accessor, every node queued since the pin was taken is
// deallocated now.
func (r *recycler[K, V]) releaseRef() {
	r.mu.Lock()
	r.pinned--
	var flush []*node[K, V]
	if r.pinned == 0 && len(r.pending) > 0 {
		flush = r.pending
		r.pending = nil
	}
	r.mu.Unlock()

	if len(flush) == 0 {
		return
	}
	r.logger.Debug("recycler: sweeping pending nodes", zap.Int("count", len(flush)))
	for _, n := range flush {
		r.alloc.Deallocate(nodeSize[K, V](n.Height()))
	}
}

// retire queues a removed node for reclamation. If the allocator's
// deallocation is trivial (an arena/bump allocator), retire is a
// no-op: there is nothing worth queueing or freeing. Otherwise, if no
// Accessor is currently open, the node is freed immediately; while any
// Accessor is open (including the one returned by New), it is queued.
func (r *recycler[K, V]) retire(n *node[K, V]) {
	if r.trivial {
		return
	}
	r.mu.Lock()
	if r.pinned == 0 {
		r.mu.Unlock()
		r.alloc.Deallocate(nodeSize[K, V](n.Height()))
		return
	}
	r.pending = append(r.pending, n)
	r.mu.Unlock()
}

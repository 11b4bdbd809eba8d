package cskiplist

import (
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// backoffRestartThreshold is how many bare Gosched restarts a writer
// tries before it starts sleeping: a bounded back-off against the
// pathological removal cadence that could otherwise livelock a writer
// restarting on a removed successor (see the package's open-question
// notes on insert/remove restart behavior).
const backoffRestartThreshold = 32

// backoff yields the processor on early restarts and sleeps briefly
// once a writer has restarted an unusual number of times in a row.
func backoff(restarts int) {
	if restarts < backoffRestartThreshold {
		runtime.Gosched()
		return
	}
	time.Sleep(sleepQuantum)
}

// LessFunc is a strict weak order over K: less(a, b) must be
// deterministic and safe to call from multiple goroutines at once.
// Equality is derived as !less(a, b) && !less(b, a).
type LessFunc[K any] func(a, b K) bool

// list is the shared core behind every Accessor obtained from New: the
// search/insert/remove/growHeight machinery described for the Skip
// List Core. It is never exposed directly; callers only ever see an
// Accessor.
type list[K any, V any] struct {
	head      atomic.Pointer[node[K, V]]
	height    atomic.Int32
	size      atomic.Int64
	maxHeight int

	less     LessFunc[K]
	oracle   *heightOracle
	recycler *recycler[K, V]
	alloc    Allocator
	logger   *zap.Logger
}

func newList[K any, V any](less LessFunc[K], cfg config) *list[K, V] {
	l := &list[K, V]{
		maxHeight: cfg.maxHeight,
		less:      less,
		oracle:    heightOracleFor(cfg.maxHeight),
		alloc:     cfg.allocator,
		logger:    cfg.logger,
	}
	l.recycler = newRecycler[K, V](cfg.allocator, cfg.logger)
	l.head.Store(newHeadNode[K, V](1))
	l.height.Store(1)
	return l
}

func (l *list[K, V]) equal(a, b K) bool {
	return !l.less(a, b) && !l.less(b, a)
}

// findDownRight performs the down-then-right search described for the
// Skip List Core: always rooted at head, always spanning the full
// height of preds/succs. insert and remove use this; both start fresh
// from head on every attempt (including restarts), so there is no
// cached predecessor to start from.
func (l *list[K, V]) findDownRight(key K, preds, succs []*node[K, V]) int {
	return l.findRightDown(l.head.Load(), len(preds)-1, key, preds, succs)
}

// findRightDown is the shared search primitive: starting from an
// arbitrary node at an arbitrary top layer, it steps right at that
// layer until overshooting key, then drops down a layer and repeats,
// filling preds[topLayer:0] and succs[topLayer:0] and returning the
// highest level an equal node was found at, or -1. findDownRight is
// the degenerate case that always starts at head; the Skipper's To
// fast path calls this directly from a cached hint node partway up
// the tower, the right-then-down shape named for the Skip List Core's
// findNodeRightDown.
func (l *list[K, V]) findRightDown(start *node[K, V], topLayer int, key K, preds, succs []*node[K, V]) int {
	foundLayer := -1
	pred := start
	for layer := topLayer; layer >= 0; layer-- {
		curr := pred.next0(layer)
		for curr != nil && l.less(curr.key, key) {
			pred = curr
			curr = pred.next0(layer)
		}
		if foundLayer == -1 && curr != nil && l.equal(curr.key, key) {
			foundLayer = layer
		}
		preds[layer] = pred
		succs[layer] = curr
	}
	return foundLayer
}

// find is the lock-free read path: returns a live (fully linked, not
// marked for removal) node equal to key, or nil.
func (l *list[K, V]) find(key K) *node[K, V] {
	pred := l.head.Load()
	topLayer := int(l.height.Load()) - 1
	var curr *node[K, V]
	for layer := topLayer; layer >= 0; layer-- {
		curr = pred.next0(layer)
		for curr != nil && l.less(curr.key, key) {
			pred = curr
			curr = pred.next0(layer)
		}
	}
	if curr != nil && l.equal(curr.key, key) && curr.fullyLinked.Load() && !curr.markedForRemoval.Load() {
		return curr
	}
	return nil
}

// lowerBound returns the first live node whose key is not less than
// key, advancing past marked nodes at level 0.
func (l *list[K, V]) lowerBound(key K) *node[K, V] {
	pred := l.head.Load()
	topLayer := int(l.height.Load()) - 1
	var curr *node[K, V]
	for layer := topLayer; layer >= 0; layer-- {
		curr = pred.next0(layer)
		for curr != nil && l.less(curr.key, key) {
			pred = curr
			curr = pred.next0(layer)
		}
	}
	if curr != nil && curr.markedForRemoval.Load() {
		curr = curr.next()
	}
	return curr
}

// insert implements the six-step insertion algorithm: probe, check
// for an existing element, choose a height, lock predecessors
// bottom-up, link, then publish size and maybe grow. It returns the
// live node for key (new or pre-existing) and whether it was newly
// added.
func (l *list[K, V]) insert(key K, value V) (*node[K, V], bool, error) {
	restarts := 0
	for {
		h := int(l.height.Load())
		preds := make([]*node[K, V], l.maxHeight)
		succs := make([]*node[K, V], l.maxHeight)

		foundLayer := l.findDownRight(key, preds[:h], succs[:h])
		if foundLayer != -1 {
			found := succs[foundLayer]
			if found.markedForRemoval.Load() {
				restarts++
				backoff(restarts)
				continue
			}
			for !found.fullyLinked.Load() {
				runtime.Gosched()
			}
			return found, false, nil
		}

		newHeight := l.oracle.getHeight(h)
		if newHeight > h {
			head := l.head.Load()
			for i := h; i < newHeight; i++ {
				preds[i] = head
				succs[i] = nil
			}
		}

		locked := make([]*node[K, V], 0, newHeight)
		valid := true
		for layer := 0; layer < newHeight && valid; layer++ {
			pred := preds[layer]
			if !containsNode(locked, pred) {
				pred.lock.Lock()
				locked = append(locked, pred)
			}
			succ := succs[layer]
			valid = !pred.markedForRemoval.Load() &&
				pred.next0(layer) == succ &&
				(succ == nil || !succ.markedForRemoval.Load())
		}
		if !valid {
			unlockAll(locked)
			restarts++
			backoff(restarts)
			continue
		}

		size := nodeSize[K, V](newHeight)
		if err := l.alloc.Allocate(size); err != nil {
			unlockAll(locked)
			return nil, false, allocationError(size, err)
		}

		n := newNode[K, V](key, value, newHeight)
		for layer := 0; layer < newHeight; layer++ {
			n.setNext(layer, succs[layer])
			preds[layer].setNext(layer, n)
		}
		n.fullyLinked.Store(true)
		unlockAll(locked)

		newSize := l.size.Add(1)
		curHeight := int(l.height.Load())
		if curHeight < l.maxHeight && uint64(newSize) > l.oracle.getSizeLimit(curHeight) {
			l.growHeight(curHeight + 1)
		}
		return n, true, nil
	}
}

// remove implements the logical-mark-then-unlink deletion algorithm.
func (l *list[K, V]) remove(key K) bool {
	restarts := 0
	for {
		h := int(l.height.Load())
		preds := make([]*node[K, V], h)
		succs := make([]*node[K, V], h)

		foundLayer := l.findDownRight(key, preds, succs)
		if foundLayer == -1 {
			return false
		}
		candidate := succs[foundLayer]

		candidate.lock.Lock()
		if candidate.markedForRemoval.Load() {
			candidate.lock.Unlock()
			return false
		}
		candidate.markedForRemoval.Store(true)
		nodeHeight := candidate.Height()

		locked := []*node[K, V]{candidate}
		valid := true
		for layer := 0; layer < nodeHeight && valid; layer++ {
			pred := preds[layer]
			if pred != candidate && !containsNode(locked, pred) {
				pred.lock.Lock()
				locked = append(locked, pred)
			}
			valid = pred.next0(layer) == candidate
		}
		if !valid {
			unlockAll(locked)
			restarts++
			backoff(restarts)
			continue
		}

		for layer := nodeHeight - 1; layer >= 0; layer-- {
			preds[layer].setNext(layer, candidate.next0(layer))
		}
		unlockAll(locked)

		l.size.Add(-1)
		l.recycler.retire(candidate)
		return true
	}
}

// growHeight attempts to replace the head with a taller sentinel once
// size has passed the oracle's threshold for the current height. A
// lost race (another writer already grew the head) is a silent no-op.
func (l *list[K, V]) growHeight(newHeight int) {
	if newHeight > l.maxHeight {
		newHeight = l.maxHeight
	}
	oldHead := l.head.Load()
	if oldHead.Height() >= newHeight {
		return
	}

	size := nodeSize[K, V](newHeight)
	if err := l.alloc.Allocate(size); err != nil {
		l.logger.Debug("grow height: allocation failed", zap.Int("newHeight", newHeight), zap.Error(err))
		return
	}

	newHead := newHeadNode[K, V](newHeight)
	oldHead.lock.Lock()
	for layer := 0; layer < oldHead.Height(); layer++ {
		newHead.setNext(layer, oldHead.next0(layer))
	}
	swapped := l.head.CompareAndSwap(oldHead, newHead)
	oldHead.lock.Unlock()

	if !swapped {
		l.alloc.Deallocate(size)
		return
	}

	l.height.Store(int32(newHeight))
	oldHead.markedForRemoval.Store(true)
	l.recycler.retire(oldHead)
	l.logger.Debug("grew height", zap.Int("newHeight", newHeight), zap.Int64("size", l.size.Load()))
}

// first returns the leftmost live node, or nil if the list is empty.
func (l *list[K, V]) first() *node[K, V] {
	return l.head.Load().next()
}

// last returns the rightmost live node, or nil if the list is empty.
// Best-effort under concurrent mutation, as documented on Accessor.
func (l *list[K, V]) last() *node[K, V] {
	pred := l.head.Load()
	topLayer := int(l.height.Load()) - 1
	var rightmost *node[K, V]
	for layer := topLayer; layer >= 0; layer-- {
		curr := pred.next0(layer)
		for curr != nil {
			if !curr.markedForRemoval.Load() {
				rightmost = curr
			}
			pred = curr
			curr = pred.next0(layer)
		}
	}
	return rightmost
}

func (l *list[K, V]) Size() int64 { return l.size.Load() }
func (l *list[K, V]) Empty() bool { return l.size.Load() == 0 }
func (l *list[K, V]) Height() int { return int(l.height.Load()) }

func containsNode[K any, V any](set []*node[K, V], n *node[K, V]) bool {
	for _, s := range set {
		if s == n {
			return true
		}
	}
	return false
}

func unlockAll[K any, V any](locked []*node[K, V]) {
	for _, n := range locked {
		n.lock.Unlock()
	}
}

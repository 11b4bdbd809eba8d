package cskiplist

// Iterator is a forward cursor over live entries, starting from a
// position obtained via Accessor.Begin or Accessor.LowerBound.
// Advancing skips nodes marked for removal at level 0. The zero
// Iterator (n == nil) compares equal to Accessor.End.
type Iterator[K any, V any] struct {
	l *list[K, V]
	n *node[K, V]
}

// Valid reports whether the iterator refers to a live entry.
func (it Iterator[K, V]) Valid() bool {
	return it.n != nil
}

// Key returns the current entry's key. Valid must be true.
func (it Iterator[K, V]) Key() K {
	return it.n.key
}

// Value returns the current entry's value. Valid must be true.
func (it Iterator[K, V]) Value() V {
	return it.n.value
}

// Next advances the iterator past the current node, skipping any
// nodes marked for removal in between.
func (it Iterator[K, V]) Next() Iterator[K, V] {
	if it.n == nil {
		return it
	}
	return Iterator[K, V]{l: it.l, n: it.n.next()}
}

// Equal reports whether two iterators refer to the same node (pointer
// equality), matching the forward iterator's equality contract.
func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	return it.n == other.n
}

// Skipper is a cached traversal cursor: a tower of predecessor and
// successor pointers, one per layer of the head it was initialized
// against, plus a per-layer hint used to accelerate repeated To(key)
// calls that walk forward through the key space. It mirrors the
// source this package is modeled on field for field (preds_/succs_/
// hints_) and deliberately does not filter markedForRemoval out of
// Good/Advance the way Iterator does: a Skipper is a lower-level,
// single-threaded cursor, and the brief window between a node being
// marked and being physically unlinked is surfaced instead through
// To's return value. A Skipper is single-threaded by convention:
// concurrent mutation of the underlying list is tolerated, but the
// cached path may go stale and is refreshed lazily by To/Advance.
type Skipper[K any, V any] struct {
	l *Accessor[K, V]

	headHeight int
	preds      []*node[K, V]
	succs      []*node[K, V]
	hints      []int
}

// NewSkipper creates a Skipper over the given Accessor's list,
// initialized to the list's current head.
func NewSkipper[K any, V any](a *Accessor[K, V]) *Skipper[K, V] {
	s := &Skipper[K, V]{l: a}
	s.init()
	return s
}

func (s *Skipper[K, V]) init() {
	head := s.l.l.head.Load()
	h := head.Height()

	s.headHeight = h
	s.preds = make([]*node[K, V], h)
	s.succs = make([]*node[K, V], h)
	for layer := 0; layer < h; layer++ {
		s.preds[layer] = head
		s.succs[layer] = head.next0(layer)
	}

	s.hints = make([]int, h)
	maxLayer := s.maxLayer()
	for i := 0; i < maxLayer; i++ {
		s.hints[i] = i + 1
	}
	if maxLayer >= 0 {
		s.hints[maxLayer] = maxLayer
	}
}

// maxLayer is the index of the topmost layer the Skipper currently
// tracks.
func (s *Skipper[K, V]) maxLayer() int {
	return s.headHeight - 1
}

// curHeight is the number of layers the current position participates
// in, capped by the Skipper's own tracked height.
func (s *Skipper[K, V]) curHeight() int {
	if s.succs[0] == nil {
		return 0
	}
	if h := s.succs[0].Height(); h < s.headHeight {
		return h
	}
	return s.headHeight
}

// grow extends the Skipper's towers to match a head that has grown
// past headHeight since init or the last To. It resets the hint cache
// rather than trying to preserve it across the growth event, which is
// rare enough that a cold hint cache costs nothing noticeable.
func (s *Skipper[K, V]) grow(newHeight int, head *node[K, V]) {
	newPreds := make([]*node[K, V], newHeight)
	newSuccs := make([]*node[K, V], newHeight)
	copy(newPreds, s.preds)
	copy(newSuccs, s.succs)
	for layer := s.headHeight; layer < newHeight; layer++ {
		newPreds[layer] = head
		newSuccs[layer] = head.next0(layer)
	}
	s.preds, s.succs, s.headHeight = newPreds, newSuccs, newHeight

	s.hints = make([]int, newHeight)
	maxLayer := s.maxLayer()
	for i := 0; i < maxLayer; i++ {
		s.hints[i] = i + 1
	}
	if maxLayer >= 0 {
		s.hints[maxLayer] = maxLayer
	}
}

// To repositions the Skipper at the first entry whose key is not less
// than key, using the hint-accelerated climb-then-probe search: from
// the hint cached for the current height, it climbs layers while key
// is still ahead of what's cached at each layer, then probes down from
// there with findRightDown. It reports whether it landed on a live
// (not marked for removal) entry; false also covers the
// exhausted-list case.
func (s *Skipper[K, V]) To(key K) bool {
	l := s.l.l
	head := l.head.Load()
	if h := head.Height(); h > s.headHeight {
		s.grow(h, head)
	}

	layer := s.curHeight() - 1
	if layer < 0 {
		return false
	}

	lyr := s.hints[layer]
	maxLayer := s.maxLayer()
	for lyr < maxLayer && s.succs[lyr] != nil && l.less(s.succs[lyr].key, key) {
		lyr++
	}
	s.hints[layer] = lyr

	l.findRightDown(s.preds[lyr], lyr, key, s.preds, s.succs)
	if s.succs[0] == nil {
		return false
	}
	return !s.succs[0].markedForRemoval.Load()
}

// Good reports whether the Skipper is positioned on an entry.
func (s *Skipper[K, V]) Good() bool {
	return s.succs[0] != nil
}

// Value returns the current entry's value. Good must be true.
func (s *Skipper[K, V]) Value() V {
	return s.succs[0].value
}

// Key returns the current entry's key. Good must be true.
func (s *Skipper[K, V]) Key() K {
	return s.succs[0].key
}

// Advance moves the Skipper to the next entry: level 0 steps to its
// raw successor, then every higher level whose predecessor aliased
// level 0's old position advances in lockstep, the operator++ shape
// described for the Skipper.
func (s *Skipper[K, V]) Advance() {
	if s.succs[0] == nil {
		return
	}
	s.preds[0] = s.succs[0]
	s.succs[0] = s.preds[0].next0(0)

	height := s.curHeight()
	for i := 1; i < height && s.preds[0] == s.succs[i]; i++ {
		s.preds[i] = s.succs[i]
		s.succs[i] = s.preds[i].next0(i)
	}
}

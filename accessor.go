package cskiplist

// Accessor is a handle over a shared List: obtaining one pins the
// list's reclamation scheme (addRef) so that every node dereferenced
// through it remains valid until the Accessor is closed, even if
// concurrently removed by another goroutine. Go has no destructors, so
// where the source this package is modeled on relies on scope exit,
// callers here must call Close explicitly — typically via defer,
// immediately after New or Open returns.
//
// Copies of an Accessor value share the same underlying pin exactly
// once: Accessor is itself a thin wrapper, and cloning the *list
// pointer around does not by itself take a second reference. Use Open
// to mint an additional, independently-closable Accessor over the same
// list.
type Accessor[K any, V any] struct {
	l *list[K, V]
}

// New creates an empty list ordered by less and returns an Accessor
// pinning it. The returned Accessor must be closed when no longer
// needed.
func New[K any, V any](less LessFunc[K], opts ...Option) *Accessor[K, V] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	l := newList[K, V](less, cfg)
	l.recycler.addRef()
	return &Accessor[K, V]{l: l}
}

// Open mints a new Accessor over the same underlying list, taking its
// own independent pin. Use this when a second goroutine needs to
// outlive the Accessor that created the list.
func (a *Accessor[K, V]) Open() *Accessor[K, V] {
	a.l.recycler.addRef()
	return &Accessor[K, V]{l: a.l}
}

// Close releases this Accessor's pin on the list's reclamation scheme.
// Once every open Accessor over a list has been closed, nodes queued
// for removal while they were open are physically freed.
func (a *Accessor[K, V]) Close() {
	a.l.recycler.releaseRef()
}

// Insert adds key/value if no equal key is present, otherwise returns
// the pre-existing entry. inserted is true only when a new node was
// created.
func (a *Accessor[K, V]) Insert(key K, value V) (V, bool, error) {
	n, inserted, err := a.l.insert(key, value)
	if err != nil {
		var zero V
		return zero, false, err
	}
	return n.value, inserted, nil
}

// AddOrGetData is Insert's pointer-returning form: it hands back the
// key's live value directly rather than a copy, the shape the Skip
// List Core's addOrGetData contract calls for.
func (a *Accessor[K, V]) AddOrGetData(key K, value V) (*V, bool, error) {
	n, inserted, err := a.l.insert(key, value)
	if err != nil {
		return nil, false, err
	}
	return &n.value, inserted, nil
}

// Erase logically removes key, handing the node to the recycler once
// unlinked. It returns false if key was already absent or was lost to
// a concurrent remover.
func (a *Accessor[K, V]) Erase(key K) bool {
	return a.l.remove(key)
}

// Find returns the live value for key and true, or the zero value and
// false if key is absent.
func (a *Accessor[K, V]) Find(key K) (V, bool) {
	n := a.l.find(key)
	if n == nil {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Contains reports whether key is present.
func (a *Accessor[K, V]) Contains(key K) bool {
	return a.l.find(key) != nil
}

// Count returns 1 if key is present, 0 otherwise — a set/map has no
// duplicate keys, so this is always 0 or 1.
func (a *Accessor[K, V]) Count(key K) int {
	if a.Contains(key) {
		return 1
	}
	return 0
}

// legacy interfaces
// TODO: remove these once callers have migrated to Insert/Erase/Contains.

// Add is a legacy alias for Insert that discards the value, reporting
// only whether a new node was added.
func (a *Accessor[K, V]) Add(key K, value V) bool {
	_, inserted, _ := a.l.insert(key, value)
	return inserted
}

// Remove is a legacy alias for Erase.
func (a *Accessor[K, V]) Remove(key K) bool {
	return a.l.remove(key)
}

// LowerBound returns the first live entry whose key is not less than
// key, or a zero Iterator if none exists.
func (a *Accessor[K, V]) LowerBound(key K) Iterator[K, V] {
	return Iterator[K, V]{l: a.l, n: a.l.lowerBound(key)}
}

// Begin returns an iterator over the first live entry.
func (a *Accessor[K, V]) Begin() Iterator[K, V] {
	return Iterator[K, V]{l: a.l, n: a.l.first()}
}

// End returns the sentinel "past the end" iterator; comparing against
// it is how a forward traversal knows to stop.
func (a *Accessor[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{l: a.l, n: nil}
}

// First returns the current leftmost value, best-effort under
// concurrent mutation.
func (a *Accessor[K, V]) First() (V, bool) {
	n := a.l.first()
	if n == nil {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Last returns the current rightmost value, best-effort under
// concurrent mutation.
func (a *Accessor[K, V]) Last() (V, bool) {
	n := a.l.last()
	if n == nil {
		var zero V
		return zero, false
	}
	return n.value, true
}

// PopBack tries to remove the current last entry. Under concurrent
// PopBack calls racing for the same tail element, exactly one
// succeeds.
func (a *Accessor[K, V]) PopBack() bool {
	n := a.l.last()
	if n == nil {
		return false
	}
	return a.l.remove(n.key)
}

// Size returns the approximate element count: a relaxed counter that
// is eventually, not strictly, consistent under concurrent mutation.
func (a *Accessor[K, V]) Size() int64 { return a.l.Size() }

// Empty reports whether Size() == 0.
func (a *Accessor[K, V]) Empty() bool { return a.l.Empty() }

// Height returns the list's current number of layers.
func (a *Accessor[K, V]) Height() int { return a.l.Height() }

// AllocatedSize reports bytes currently charged to the list's
// Allocator.
func (a *Accessor[K, V]) AllocatedSize() uintptr { return a.l.alloc.Size() }

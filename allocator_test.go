package cskiplist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountingAllocatorTracksSize(t *testing.T) {
	a := newCountingAllocator()
	require.Zero(t, a.Size())

	require.NoError(t, a.Allocate(64))
	require.EqualValues(t, 64, a.Size())

	require.NoError(t, a.Allocate(32))
	require.EqualValues(t, 96, a.Size())

	a.Deallocate(64)
	require.EqualValues(t, 32, a.Size())

	a.Deallocate(32)
	require.Zero(t, a.Size())
}

// failingAllocator always fails, to exercise ErrAllocation propagation
// through Insert.
type failingAllocator struct {
	cause error
}

func (f *failingAllocator) Allocate(uintptr) error { return f.cause }
func (f *failingAllocator) Deallocate(uintptr)     {}
func (f *failingAllocator) Size() uintptr          { return 0 }
func (f *failingAllocator) TrivialDeallocate() bool { return false }

func TestFailingAllocatorPropagatesAsAllocationError(t *testing.T) {
	cause := errors.New("out of memory")
	acc := New[int, string](func(a, b int) bool { return a < b }, WithAllocator(&failingAllocator{cause: cause}))
	defer acc.Close()

	_, inserted, err := acc.Insert(1, "one")
	require.False(t, inserted)
	require.ErrorIs(t, err, ErrAllocation)
	require.ErrorContains(t, err, "out of memory")
	require.False(t, acc.Contains(1))
}

// TestArenaAllocatorTrivialDeallocateSkipsRecyclerWork exercises the
// boundary case of an arena allocator with trivial deallocate: the
// destructor (here, Erase under an open second Accessor) must do no
// per-node work at all, neither queueing onto the recycler's pending
// list nor calling Deallocate.
func TestArenaAllocatorTrivialDeallocateSkipsRecyclerWork(t *testing.T) {
	arena := NewArenaAllocator()
	acc := New[int, int](intLess, WithAllocator(arena))
	defer acc.Close()

	for _, v := range []int{1, 2, 3, 4, 5} {
		_, _, err := acc.Insert(v, v)
		require.NoError(t, err)
	}
	sizeAfterInsert := arena.Size()
	require.NotZero(t, sizeAfterInsert)

	// pin a second Accessor as well: with any Accessor open, erased
	// nodes would normally be queued onto the recycler's pending list.
	second := acc.Open()
	defer second.Close()

	for _, v := range []int{1, 2, 3, 4, 5} {
		require.True(t, acc.Erase(v))
	}

	require.Empty(t, acc.l.recycler.pending, "trivial deallocate must skip the pending queue entirely")
	require.Equal(t, sizeAfterInsert, arena.Size(), "an arena allocator's Size must not shrink after erasing")
}

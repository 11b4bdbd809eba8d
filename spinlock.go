package cskiplist

import (
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sys/cpu"
)

const (
	spinFree   uint32 = 0
	spinLocked uint32 = 1

	// maxActiveSpin bounds how long lock() busy-spins before falling
	// back to sleeping in small quantums; mirrors Sleeper's
	// kMaxActiveSpin in the source this package is modeled on.
	maxActiveSpin = 4000
	sleepQuantum  = 500 * time.Microsecond
)

// lockAnnotator hooks spinLock's acquire/release transitions, mirroring
// the optional sanitizer-annotation collaborator described in the
// package's external-interfaces contract. Both fields may be left nil,
// in which case the calls are skipped entirely (nil checks, not a build
// tag, since Go doesn't let a library compile out a caller-supplied
// hook) and the lock behaves as a bare spin lock.
type lockAnnotator struct {
	onAcquired func(lock *spinLock)
	onReleased func(lock *spinLock)
}

// spinLock is a tiny mutual-exclusion lock, zero-valued to the unlocked
// state so it can be embedded directly in Node without an explicit
// initializer. It guarantees mutual exclusion only: no fairness, no
// priority inheritance, no recursion.
//
// cachePad isolates adjacent spinLocks (one per Node) onto separate
// cache lines, so that one goroutine's lock/unlock traffic on its node
// doesn't force a cache-coherence round trip for a neighboring node's
// lock held by another goroutine.
type spinLock struct {
	state    atomic.Uint32
	annotate *lockAnnotator
	_        cpu.CacheLinePad
}

// TryLock attempts to acquire the lock without blocking.
func (l *spinLock) TryLock() bool {
	ok := l.state.CompareAndSwap(spinFree, spinLocked)
	if ok && l.annotate != nil && l.annotate.onAcquired != nil {
		l.annotate.onAcquired(l)
	}
	return ok
}

// Lock acquires the lock, spinning briefly and then sleeping in small
// quantums under contention.
func (l *spinLock) Lock() {
	if l.state.CompareAndSwap(spinFree, spinLocked) {
		if l.annotate != nil && l.annotate.onAcquired != nil {
			l.annotate.onAcquired(l)
		}
		return
	}

	spins := 0
	for !l.state.CompareAndSwap(spinFree, spinLocked) {
		if spins < maxActiveSpin {
			spins++
			runtime.Gosched()
			for l.state.Load() == spinLocked {
				runtime.Gosched()
			}
		} else {
			time.Sleep(sleepQuantum)
		}
	}
	if l.annotate != nil && l.annotate.onAcquired != nil {
		l.annotate.onAcquired(l)
	}
}

// Unlock releases the lock. Unlock of an already-unlocked spinLock is a
// caller error and, like the original, is not itself checked for.
func (l *spinLock) Unlock() {
	if l.annotate != nil && l.annotate.onReleased != nil {
		l.annotate.onReleased(l)
	}
	l.state.Store(spinFree)
}

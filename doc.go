// Package cskiplist implements a concurrent ordered set backed by a skip
// list: many goroutines may look up, insert, delete, and traverse the set
// at once. The read path (Find, LowerBound, iteration) is lock-free;
// writes serialize through fine-grained per-node spin locks acquired
// bottom-up, following the lazy-synchronization scheme described by
// Herlihy & Shavit and implemented by Folly's ConcurrentSkipList.
//
// A List is shared (reference-counted) across every Accessor obtained
// from it. An Accessor pins the list's reclamation scheme for as long as
// it is open: nodes logically removed while an Accessor is alive remain
// safely dereferenceable until the last open Accessor is closed, at
// which point the Recycler physically frees them.
//
// Size() is an eventually-consistent approximate counter, and First/Last
// are best-effort under concurrent mutation; see Accessor.Size,
// Accessor.First and Accessor.Last.
package cskiplist

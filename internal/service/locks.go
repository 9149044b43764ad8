// Package service implements the business logic of the expense tracker:
// group management, the append-only expense ledger, and read-only balance
// queries on top of a storage.Store.
package service

import "sync"

// GroupLocks serializes ledger writes per group while letting reads share a
// consistent snapshot. Appends to one group take the write lock; balance
// queries take the read lock, so they never observe a half-applied write.
// Different groups lock independently; their ledgers share no state.
//
// Locks are created lazily and never discarded; the group set only grows.
type GroupLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// NewGroupLocks creates an empty lock registry, shared by the ledger and
// balance services.
func NewGroupLocks() *GroupLocks {
	return &GroupLocks{locks: make(map[string]*sync.RWMutex)}
}

func (g *GroupLocks) get(groupID string) *sync.RWMutex {
	g.mu.Lock()
	defer g.mu.Unlock()

	lock, ok := g.locks[groupID]
	if !ok {
		lock = &sync.RWMutex{}
		g.locks[groupID] = lock
	}
	return lock
}

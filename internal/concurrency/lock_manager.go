package concurrency

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// LockManager hands out one mutex per aggregate id so every mutation of a
// character (or bond) is serialized
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// LockAll acquires the locks for every id in a fixed order and returns the
// release func. Duplicates and uuid.Nil are ignored.
func (lm *LockManager) LockAll(ids ...uuid.UUID) func() {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		keys = append(keys, id.String())
	}
	slices.Sort(keys)
	keys = slices.Compact(keys)

	held := make([]*sync.Mutex, 0, len(keys))
	for _, k := range keys {
		m := lm.GetLock(k)
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

package ledger

import (
	"fmt"
	"sync"
)

// KeyMutex serializes the check-then-append sequence for a single
// (item, location) stock pair. Operations on different pairs never contend.
// The lock map is bounded by the item/location cardinality and entries are
// kept for reuse.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyMutex() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyMutex) Lock(itemID, locationID int) {
	k.pair(itemID, locationID).Lock()
}

func (k *KeyMutex) Unlock(itemID, locationID int) {
	k.pair(itemID, locationID).Unlock()
}

func (k *KeyMutex) pair(itemID, locationID int) *sync.Mutex {
	key := fmt.Sprintf("%d:%d", itemID, locationID)

	k.mu.Lock()
	defer k.mu.Unlock()

	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	return lock
}

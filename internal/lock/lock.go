// Package lock provides per-key mutual exclusion for compound
// account mutations. Every balance-affecting operation acquires the
// owning account's lock before its read-modify-write sequence, so two
// concurrent requests against the same account serialize instead of
// double-applying effects.
package lock

import "sync"

// KeyedMutex guards independent critical sections keyed by string
// (account phone numbers in practice). Locks are created on first use
// and kept for the process lifetime; the key space is bounded by the
// number of accounts.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

// Lock acquires the mutex for key, blocking until it is available.
func (k *KeyedMutex) Lock(key string) {
	k.get(key).Lock()
}

// Unlock releases the mutex for key.
func (k *KeyedMutex) Unlock(key string) {
	k.get(key).Unlock()
}

package internal

import (
	"hash/fnv"
	"sync"
)

// StripedMutex serializes operations per string key with a fixed pool of
// mutexes. Two distinct users may share a stripe, which only costs a little
// contention; the same user always maps to the same stripe, which is the
// correctness requirement for read-modify-write sequences on per-user state.
type StripedMutex struct {
	stripes []sync.Mutex
}

// NewStripedMutex allocates a pool of n stripes (minimum 1).
func NewStripedMutex(n int) *StripedMutex {
	if n <= 0 {
		n = 1
	}
	return &StripedMutex{stripes: make([]sync.Mutex, n)}
}

func (m *StripedMutex) stripe(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &m.stripes[int(h.Sum32())%len(m.stripes)]
}

// Lock acquires the stripe for key.
func (m *StripedMutex) Lock(key string) {
	m.stripe(key).Lock()
}

// Unlock releases the stripe for key.
func (m *StripedMutex) Unlock(key string) {
	m.stripe(key).Unlock()
}

package goCred

import (
	"strings"
	"sync"
)

// BreachRegistry is a case-insensitive set of passwords known to be publicly
// compromised. Population strategy (static seed list, external feed) is the
// host's concern; the engine only consults membership during analysis.
type BreachRegistry struct {
	mu  sync.RWMutex
	set map[string]struct{}
}

// NewBreachRegistry returns a registry seeded with the given passwords.
func NewBreachRegistry(seed ...string) *BreachRegistry {
	r := &BreachRegistry{set: make(map[string]struct{}, len(seed))}
	for _, p := range seed {
		r.set[strings.ToLower(p)] = struct{}{}
	}
	return r
}

// Add registers a compromised password.
func (r *BreachRegistry) Add(password string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set[strings.ToLower(password)] = struct{}{}
}

// Contains reports membership, ignoring case.
func (r *BreachRegistry) Contains(password string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.set[strings.ToLower(password)]
	return ok
}

// Len returns the number of registered passwords.
func (r *BreachRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.set)
}

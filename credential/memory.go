package credential

import (
	"context"
	"sync"
)

// MemoryStore is the in-process Store backend. It is the default when no
// Redis client is supplied to the engine builder and is suitable for tests
// and single-process deployments without durability requirements.
type MemoryStore struct {
	mu      sync.RWMutex
	creds   map[string][]byte
	history map[string][]string
	audit   map[string][][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		creds:   make(map[string][]byte),
		history: make(map[string][]string),
		audit:   make(map[string][][]byte),
	}
}

// SaveCredential implements [Store].
func (s *MemoryStore) SaveCredential(_ context.Context, userID string, blob []byte) error {
	stored := make([]byte, len(blob))
	copy(stored, blob)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[userID] = stored
	return nil
}

// LoadCredential implements [Store].
func (s *MemoryStore) LoadCredential(_ context.Context, userID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.creds[userID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

// DeleteCredential implements [Store]. Deleting an absent record is a no-op.
func (s *MemoryStore) DeleteCredential(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.creds, userID)
	return nil
}

// PushHistory implements [Store].
func (s *MemoryStore) PushHistory(_ context.Context, userID string, hash string, max int) error {
	if max <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append([]string{hash}, s.history[userID]...)
	if len(entries) > max {
		entries = entries[:max]
	}
	s.history[userID] = entries
	return nil
}

// History implements [Store].
func (s *MemoryStore) History(_ context.Context, userID string, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.history[userID]
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]string, len(entries))
	copy(out, entries)
	return out, nil
}

// ClearHistory implements [Store].
func (s *MemoryStore) ClearHistory(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.history, userID)
	return nil
}

// AppendAudit implements [Store].
func (s *MemoryStore) AppendAudit(_ context.Context, userID string, entry []byte, max int) error {
	if max <= 0 {
		return nil
	}

	stored := make([]byte, len(entry))
	copy(stored, entry)

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append([][]byte{stored}, s.audit[userID]...)
	if len(entries) > max {
		entries = entries[:max]
	}
	s.audit[userID] = entries
	return nil
}

// AuditTrail implements [Store].
func (s *MemoryStore) AuditTrail(_ context.Context, userID string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.audit[userID]
	out := make([][]byte, len(entries))
	for i, entry := range entries {
		buf := make([]byte, len(entry))
		copy(buf, entry)
		out[i] = buf
	}
	return out, nil
}

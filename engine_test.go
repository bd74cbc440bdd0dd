package goCred

import (
	"sync"
	"testing"
	"time"

	"github.com/MrEthical07/goCred/credential"
	"github.com/MrEthical07/goCred/policy"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i + 1)
	}
	return key
}

// fastTestConfig keeps the KDF at its floor so tests measure behavior, not
// derivation wall time.
func fastTestConfig() Config {
	cfg := defaultConfig()
	cfg.Hasher.PBKDF2.Iterations = 10_000
	return cfg
}

type testEngineOption func(*Builder)

func withClock(c *fakeClock) testEngineOption {
	return func(b *Builder) { b.WithClock(c.Now) }
}

func withStore(s credential.Store) testEngineOption {
	return func(b *Builder) { b.WithStore(s) }
}

func withSink(sink AuditSink) testEngineOption {
	return func(b *Builder) { b.WithAuditSink(sink) }
}

func withPolicies(p map[string]policy.Password) testEngineOption {
	return func(b *Builder) { b.WithPolicies(p) }
}

func newTestEngine(t *testing.T, opts ...testEngineOption) *Engine {
	t.Helper()

	b := New().
		WithConfig(fastTestConfig()).
		WithEncryptionKey(testKey())
	for _, opt := range opts {
		opt(b)
	}

	engine, err := b.Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}

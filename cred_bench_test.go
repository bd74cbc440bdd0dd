package goCred

import (
	"context"
	"strconv"
	"testing"
)

func BenchmarkGenerate(b *testing.B) {
	engine, cleanup := newBenchmarkEngine(b)
	defer cleanup()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Generate("admin"); err != nil {
			b.Fatalf("generate failed: %v", err)
		}
	}
}

func BenchmarkAnalyze(b *testing.B) {
	engine, cleanup := newBenchmarkEngine(b)
	defer cleanup()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Analyze("Kv7!mQx2Zr9@Lw4#Ty", "admin"); err != nil {
			b.Fatalf("analyze failed: %v", err)
		}
	}
}

func BenchmarkVerify(b *testing.B) {
	engine, cleanup := newBenchmarkEngine(b)
	defer cleanup()

	const pw = "Kv7!mQx2Zr9@"
	if _, err := engine.Store(context.Background(), "alice", pw, "admin"); err != nil {
		b.Fatalf("store failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ok, err := engine.Verify(context.Background(), "alice", pw)
		if err != nil || !ok {
			b.Fatalf("verify failed: ok=%v err=%v", ok, err)
		}
	}
}

func BenchmarkStore(b *testing.B) {
	engine, cleanup := newBenchmarkEngine(b)
	defer cleanup()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		user := "u" + strconv.Itoa(i)
		if _, err := engine.Store(context.Background(), user, "Kv7!mQx2Zr9@", "admin"); err != nil {
			b.Fatalf("store failed: %v", err)
		}
	}
}

func newBenchmarkEngine(tb testing.TB) (*Engine, func()) {
	tb.Helper()

	cfg := defaultConfig()
	cfg.Hasher.PBKDF2.Iterations = 10_000
	cfg.Metrics.Enabled = false
	cfg.Audit.Enabled = false

	engine, err := New().
		WithConfig(cfg).
		WithEncryptionKey(testKey()).
		Build()
	if err != nil {
		tb.Fatalf("Build failed: %v", err)
	}

	return engine, engine.Close
}

package goCred

import (
	"context"
	"testing"
)

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.Inc(MetricGenerated)

	snap := m.Snapshot()
	if len(snap.Counters) != 0 {
		t.Fatalf("expected empty snapshot from nil metrics, got %v", snap.Counters)
	}
}

func TestMetricsSnapshotIsCopy(t *testing.T) {
	m := &Metrics{}
	m.Inc(MetricAnalyzed)

	snap := m.Snapshot()
	if snap.Counters[MetricAnalyzed] != 1 {
		t.Fatalf("expected 1, got %d", snap.Counters[MetricAnalyzed])
	}

	m.Inc(MetricAnalyzed)
	if snap.Counters[MetricAnalyzed] != 1 {
		t.Fatal("snapshot mutated after Inc")
	}
}

func TestMetricIDNames(t *testing.T) {
	for id := MetricID(0); id < metricCount; id++ {
		if id.String() == "unknown" {
			t.Fatalf("metric %d has no name", id)
		}
	}
	if metricCount.String() != "unknown" {
		t.Fatal("expected unknown for out-of-range ID")
	}
}

func TestEngineCountersTrackOperations(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	if _, err := engine.Generate("admin"); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	const pw = "Kv7!mQx2Zr9@"
	if _, err := engine.Store(ctx, "alice", pw, "admin"); err != nil {
		t.Fatalf("Store error: %v", err)
	}
	if ok, err := engine.Verify(ctx, "alice", pw); !ok || err != nil {
		t.Fatalf("Verify error: ok=%v err=%v", ok, err)
	}
	if _, err := engine.Verify(ctx, "alice", "Wrong7pw!Xq2"); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if err := engine.Revoke(ctx, "alice"); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}

	snap := engine.MetricsSnapshot()
	for id, want := range map[MetricID]uint64{
		MetricGenerated:     1,
		MetricStoreSuccess:  1,
		MetricVerifySuccess: 1,
		MetricVerifyFailure: 1,
		MetricRevoked:       1,
	} {
		if got := snap.Counters[id]; got != want {
			t.Fatalf("counter %s = %d, want %d", id, got, want)
		}
	}
	// Store runs the analyzer internally.
	if snap.Counters[MetricAnalyzed] == 0 {
		t.Fatal("expected analyzer counter to advance")
	}
}

func TestMetricsDisabled(t *testing.T) {
	engine := newTestEngine(t, func(b *Builder) { b.WithMetricsEnabled(false) })

	if _, err := engine.Generate("admin"); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	snap := engine.MetricsSnapshot()
	if len(snap.Counters) != 0 {
		t.Fatalf("expected empty snapshot with metrics disabled, got %v", snap.Counters)
	}
}

package goCred

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestVerifyMatchAndMismatch(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	const pw = "Kv7!mQx2Zr9@"
	if _, err := engine.Store(ctx, "alice", pw, "admin"); err != nil {
		t.Fatalf("Store error: %v", err)
	}

	ok, err := engine.Verify(ctx, "alice", pw)
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = engine.Verify(ctx, "alice", "Wrong7pw!Xq2")
	if err != nil {
		t.Fatalf("mismatch is not an error condition: %v", err)
	}
	if ok {
		t.Fatal("expected mismatch")
	}

	cred, err := engine.Retrieve(ctx, "alice")
	if err != nil {
		t.Fatalf("Retrieve error: %v", err)
	}
	if cred.FailedAttempts != 1 {
		t.Fatalf("expected 1 failed attempt, got %d", cred.FailedAttempts)
	}
}

func TestVerifySuccessResetsFailedAttempts(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	const pw = "Kv7!mQx2Zr9@"
	if _, err := engine.Store(ctx, "alice", pw, "admin"); err != nil {
		t.Fatalf("Store error: %v", err)
	}

	for i := 0; i < 2; i++ {
		if ok, err := engine.Verify(ctx, "alice", "Wrong7pw!Xq2"); ok || err != nil {
			t.Fatalf("expected plain mismatch, got ok=%v err=%v", ok, err)
		}
	}
	if ok, err := engine.Verify(ctx, "alice", pw); !ok || err != nil {
		t.Fatalf("expected match below threshold, got ok=%v err=%v", ok, err)
	}

	cred, err := engine.Retrieve(ctx, "alice")
	if err != nil {
		t.Fatalf("Retrieve error: %v", err)
	}
	if cred.FailedAttempts != 0 {
		t.Fatalf("expected counter reset, got %d", cred.FailedAttempts)
	}
}

func TestVerifyLockout(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	const pw = "Kv7!mQx2Zr9@"
	if _, err := engine.Store(ctx, "alice", pw, "admin"); err != nil {
		t.Fatalf("Store error: %v", err)
	}

	// The admin policy locks at 3 failed attempts.
	for i := 0; i < 2; i++ {
		if _, err := engine.Verify(ctx, "alice", "Wrong7pw!Xq2"); err != nil {
			t.Fatalf("attempt %d: unexpected error %v", i+1, err)
		}
	}
	if _, err := engine.Verify(ctx, "alice", "Wrong7pw!Xq2"); !errors.Is(err, ErrLockedOut) {
		t.Fatalf("expected ErrLockedOut on third failure, got %v", err)
	}

	// Locked out even with the right password, before any key derivation.
	if _, err := engine.Verify(ctx, "alice", pw); !errors.Is(err, ErrLockedOut) {
		t.Fatalf("expected ErrLockedOut to persist, got %v", err)
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricLockout] != 1 {
		t.Fatalf("expected one lockout, got %d", snap.Counters[MetricLockout])
	}

	trail, err := engine.AuditTrail(ctx, "alice")
	if err != nil {
		t.Fatalf("AuditTrail error: %v", err)
	}
	if trail[0].Event != EventLockedOut {
		t.Fatalf("expected locked_out as most recent event, got %s", trail[0].Event)
	}
}

func TestVerifyStampsLastUsed(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(t, withClock(clock))
	ctx := context.Background()

	const pw = "Kv7!mQx2Zr9@"
	if _, err := engine.Store(ctx, "alice", pw, "admin"); err != nil {
		t.Fatalf("Store error: %v", err)
	}

	clock.Advance(3 * time.Hour)
	if ok, err := engine.Verify(ctx, "alice", pw); !ok || err != nil {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}

	cred, err := engine.Retrieve(ctx, "alice")
	if err != nil {
		t.Fatalf("Retrieve error: %v", err)
	}
	if !cred.LastUsedAt.Equal(clock.Now().UTC()) {
		t.Fatalf("expected LastUsedAt %v, got %v", clock.Now().UTC(), cred.LastUsedAt)
	}
}

func TestVerifyUnknownUser(t *testing.T) {
	engine := newTestEngine(t)

	if _, err := engine.Verify(context.Background(), "nobody", "whatever"); !errors.Is(err, ErrCredentialNotFound) {
		t.Fatalf("expected ErrCredentialNotFound, got %v", err)
	}
}

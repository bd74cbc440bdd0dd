package goCred

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MrEthical07/goCred/credential"
	"github.com/MrEthical07/goCred/policy"
)

// staffPolicies is a small registry for tests that need a shallow reuse
// window without a required symbol class.
func staffPolicies() map[string]policy.Password {
	return map[string]policy.Password{
		"staff": {
			MinLength:          8,
			MaxLength:          64,
			RequireUppercase:   true,
			RequireLowercase:   true,
			RequireDigit:       true,
			PreventReuse:       2,
			MaxAgeDays:         30,
			LockoutAttempts:    3,
			MinComplexityScore: 30,
		},
	}
}

func TestStoreRetrieveRoundTrip(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(t, withClock(clock))
	ctx := context.Background()

	cred, err := engine.Store(ctx, "alice", "Kv7!mQx2Zr9@", "admin")
	if err != nil {
		t.Fatalf("Store error: %v", err)
	}
	if cred.ID == "" {
		t.Fatal("expected generated credential ID")
	}
	if cred.UserID != "alice" || cred.Role != "admin" {
		t.Fatalf("unexpected identity fields: %+v", cred)
	}
	if !cred.Active || cred.FailedAttempts != 0 {
		t.Fatalf("unexpected initial state: active=%v attempts=%d", cred.Active, cred.FailedAttempts)
	}
	if !strings.HasPrefix(cred.Hash, "$pbkdf2-sha512$") {
		t.Fatalf("unexpected hash encoding: %s", cred.Hash)
	}
	if len(cred.Salt) == 0 {
		t.Fatal("expected extracted salt")
	}
	if cred.Metadata.PolicyName != "admin" {
		t.Fatalf("unexpected policy name %q", cred.Metadata.PolicyName)
	}
	wantExpiry := clock.Now().UTC().Add(60 * 24 * time.Hour)
	if !cred.ExpiresAt.Equal(wantExpiry) {
		t.Fatalf("expected expiry %v, got %v", wantExpiry, cred.ExpiresAt)
	}

	got, err := engine.Retrieve(ctx, "alice")
	if err != nil {
		t.Fatalf("Retrieve error: %v", err)
	}
	if got.ID != cred.ID || got.Hash != cred.Hash {
		t.Fatalf("retrieved credential differs: %+v vs %+v", got, cred)
	}
}

func TestStoreStructuralRejection(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Store(context.Background(), "bob", "short", "admin")
	if !errors.Is(err, ErrPolicyViolation) {
		t.Fatalf("expected ErrPolicyViolation, got %v", err)
	}

	var pv *PolicyViolationError
	if !errors.As(err, &pv) {
		t.Fatalf("expected PolicyViolationError, got %T", err)
	}
	if len(pv.Feedback) == 0 {
		t.Fatal("expected deficiency feedback")
	}
}

func TestStoreComplexityFloor(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	// Structurally complete but pattern-ridden: the dictionary token and
	// the sequential run drag the score below the admin floor of 60.
	_, err := engine.Store(ctx, "bob", "Password123!", "admin")
	var pv *PolicyViolationError
	if !errors.As(err, &pv) {
		t.Fatalf("expected PolicyViolationError, got %v", err)
	}
	var scored bool
	for _, fb := range pv.Feedback {
		if strings.Contains(fb, "complexity score") {
			scored = true
		}
	}
	if !scored {
		t.Fatalf("expected complexity feedback, got %v", pv.Feedback)
	}

	// The vendor floor of 30 admits the same password.
	if _, err := engine.Store(ctx, "carol", "Password123!", "vendor"); err != nil {
		t.Fatalf("expected vendor acceptance, got %v", err)
	}
}

func TestStoreReuseViolation(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	const pw = "Kv7!mQx2Zr9@"
	if _, err := engine.Store(ctx, "alice", pw, "admin"); err != nil {
		t.Fatalf("Store error: %v", err)
	}
	if _, err := engine.Store(ctx, "alice", pw, "admin"); !errors.Is(err, ErrReuseViolation) {
		t.Fatalf("expected ErrReuseViolation, got %v", err)
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricStoreReuseRejected] != 1 {
		t.Fatalf("expected one reuse rejection, got %d", snap.Counters[MetricStoreReuseRejected])
	}
}

func TestStoreRotationKeepsReuseWindow(t *testing.T) {
	engine := newTestEngine(t, withPolicies(staffPolicies()))
	ctx := context.Background()

	p1, p2, p3 := "Ab3kqt9Z", "Cd5mrv2X", "Ef7nsw4V"
	for _, pw := range []string{p1, p2, p3} {
		if _, err := engine.Store(ctx, "alice", pw, "staff"); err != nil {
			t.Fatalf("Store(%q) error: %v", pw, err)
		}
	}

	// Depth 2 covers the active credential (p3) plus one history entry (p2).
	if _, err := engine.Store(ctx, "alice", p2, "staff"); !errors.Is(err, ErrReuseViolation) {
		t.Fatalf("expected ErrReuseViolation for in-window password, got %v", err)
	}
	if _, err := engine.Store(ctx, "alice", p1, "staff"); err != nil {
		t.Fatalf("expected out-of-window password to be accepted, got %v", err)
	}
}

func TestStoreRotationAuditEvent(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	if _, err := engine.Store(ctx, "alice", "Kv7!mQx2Zr9@", "admin"); err != nil {
		t.Fatalf("Store error: %v", err)
	}
	if _, err := engine.Store(ctx, "alice", "Wq4#pT8%nJ2&", "admin"); err != nil {
		t.Fatalf("Store error: %v", err)
	}

	trail, err := engine.AuditTrail(ctx, "alice")
	if err != nil {
		t.Fatalf("AuditTrail error: %v", err)
	}
	if len(trail) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(trail))
	}
	// Most recent first.
	if trail[0].Event != EventRotated || trail[1].Event != EventCreated {
		t.Fatalf("unexpected event order: %s, %s", trail[0].Event, trail[1].Event)
	}
}

func TestStoreExpiryPurge(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(t, withClock(clock))
	ctx := context.Background()

	if _, err := engine.Store(ctx, "alice", "Kv7!mQx2Zr9@", "admin"); err != nil {
		t.Fatalf("Store error: %v", err)
	}

	clock.Advance(61 * 24 * time.Hour)

	if _, err := engine.Retrieve(ctx, "alice"); !errors.Is(err, ErrCredentialNotFound) {
		t.Fatalf("expected ErrCredentialNotFound after expiry, got %v", err)
	}
	if _, err := engine.Verify(ctx, "alice", "Kv7!mQx2Zr9@"); !errors.Is(err, ErrCredentialNotFound) {
		t.Fatalf("expected ErrCredentialNotFound on verify after expiry, got %v", err)
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricExpiredPurged] != 1 {
		t.Fatalf("expected one purge, got %d", snap.Counters[MetricExpiredPurged])
	}
}

func TestRevoke(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	const pw = "Kv7!mQx2Zr9@"
	if _, err := engine.Store(ctx, "alice", pw, "admin"); err != nil {
		t.Fatalf("Store error: %v", err)
	}
	if err := engine.Revoke(ctx, "alice"); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}
	if _, err := engine.Retrieve(ctx, "alice"); !errors.Is(err, ErrCredentialNotFound) {
		t.Fatalf("expected ErrCredentialNotFound after revoke, got %v", err)
	}

	// Idempotent on a missing credential.
	if err := engine.Revoke(ctx, "alice"); err != nil {
		t.Fatalf("expected idempotent revoke, got %v", err)
	}

	// History is cleared, so the old password is storable again.
	if _, err := engine.Store(ctx, "alice", pw, "admin"); err != nil {
		t.Fatalf("expected reuse window reset after revoke, got %v", err)
	}
}

func TestRetrieveUnknownUser(t *testing.T) {
	engine := newTestEngine(t)

	if _, err := engine.Retrieve(context.Background(), "nobody"); !errors.Is(err, ErrCredentialNotFound) {
		t.Fatalf("expected ErrCredentialNotFound, got %v", err)
	}
}

func TestStoreUnknownRole(t *testing.T) {
	engine := newTestEngine(t)

	if _, err := engine.Store(context.Background(), "alice", "Kv7!mQx2Zr9@", "ghost"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestRetrieveTamperedRecord(t *testing.T) {
	store := credential.NewMemoryStore()
	engine := newTestEngine(t, withStore(store))
	ctx := context.Background()

	if _, err := engine.Store(ctx, "alice", "Kv7!mQx2Zr9@", "admin"); err != nil {
		t.Fatalf("Store error: %v", err)
	}

	// Overwrite the sealed record behind the engine's back.
	if err := store.SaveCredential(ctx, "alice", []byte("garbage")); err != nil {
		t.Fatalf("SaveCredential error: %v", err)
	}

	if _, err := engine.Retrieve(ctx, "alice"); !errors.Is(err, ErrIntegrityViolation) {
		t.Fatalf("expected ErrIntegrityViolation, got %v", err)
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricIntegrityFailure] != 1 {
		t.Fatalf("expected one integrity failure, got %d", snap.Counters[MetricIntegrityFailure])
	}
}

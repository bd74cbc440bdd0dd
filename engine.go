package goCred

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/MrEthical07/goCred/credential"
	"github.com/MrEthical07/goCred/internal"
	"github.com/MrEthical07/goCred/internal/crypt"
	"github.com/MrEthical07/goCred/password"
	"github.com/MrEthical07/goCred/policy"
)

// userLockStripes bounds lock contention to one user at a time in the common
// case while keeping the mutex pool fixed-size.
const userLockStripes = 128

// Engine is the credential security engine facade. Construct it through
// [Builder.Build]; the zero value is not usable.
//
// Engine instances are intended to be configured during initialization and
// then treated as immutable. All methods are safe for concurrent use.
type Engine struct {
	config    Config
	registry  *policy.Registry
	hasher    password.Hasher
	store     credential.Store
	encryptor *crypt.Encryptor
	breach    *BreachRegistry
	audit     *auditDispatcher
	metrics   *Metrics
	userLocks *internal.StripedMutex
	logger    zerolog.Logger
	now       func() time.Time
}

// Close drains and stops the audit dispatcher. The engine must not be used
// after Close.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// Policies returns the registered role names.
func (e *Engine) Policies() []string {
	if e == nil {
		return nil
	}
	return e.registry.Roles()
}

// RegisterBreach adds passwords to the breach registry at runtime.
func (e *Engine) RegisterBreach(passwords ...string) {
	if e == nil {
		return
	}
	for _, p := range passwords {
		e.breach.Add(p)
	}
}

// AuditDropped reports how many audit events the dispatcher discarded
// because the sink could not keep up.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil {
		return
	}
	e.metrics.Inc(id)
}

// ShouldRotate reports whether a credential is inside the rotation-warning
// window (default seven days before expiry). It is independent of hard
// expiry: an expired credential also reports true.
func (e *Engine) ShouldRotate(cred *SecureCredential) bool {
	if e == nil || cred == nil {
		return false
	}
	return cred.ExpiresAt.Sub(e.now()) <= e.config.Rotation.WarningWindow
}

// NeedsRehash reports whether the credential's hash was produced with weaker
// parameters than the engine is configured with, so the host can re-hash on
// the next successful verification.
func (e *Engine) NeedsRehash(cred *SecureCredential) (bool, error) {
	if e == nil {
		return false, ErrEngineNotReady
	}
	if cred == nil {
		return false, ErrCredentialNotFound
	}
	return e.hasher.NeedsUpgrade(cred.Hash)
}

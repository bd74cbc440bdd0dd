package goCred

import (
	"context"
	"fmt"
	"math"
)

// Verify checks a candidate password against the user's active credential
// and enforces the role policy's lockout threshold.
//
// On mismatch the failed-attempt counter is incremented and persisted; once
// it reaches the policy's LockoutAttempts, the call returns [ErrLockedOut]
// and every subsequent call short-circuits before the key derivation runs. A
// successful verification resets the counter and stamps LastUsedAt.
//
// An expired credential is purged and reported as [ErrCredentialNotFound].
func (e *Engine) Verify(ctx context.Context, userID, pw string) (bool, error) {
	if e == nil {
		return false, ErrEngineNotReady
	}

	e.userLocks.Lock(userID)
	defer e.userLocks.Unlock(userID)

	cred, err := e.loadLive(ctx, userID)
	if err != nil {
		return false, err
	}

	p, ok := e.registry.Get(cred.Role)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRole, cred.Role)
	}

	lockoutEnabled := p.LockoutAttempts > 0
	if lockoutEnabled && int(cred.FailedAttempts) >= p.LockoutAttempts {
		// Terminal: no re-hash, no counter change.
		return false, ErrLockedOut
	}

	match, err := e.hasher.Verify(pw, cred.Hash)
	if err != nil {
		e.metricInc(MetricIntegrityFailure)
		return false, fmt.Errorf("%w: %v", ErrIntegrityViolation, err)
	}

	now := e.now().UTC()

	if match {
		cred.LastUsedAt = now
		cred.FailedAttempts = 0
		if err := e.saveCredential(ctx, cred); err != nil {
			return false, err
		}
		e.metricInc(MetricVerifySuccess)
		e.recordAudit(ctx, userID, EventVerified, nil)
		return true, nil
	}

	if cred.FailedAttempts < math.MaxUint8 {
		cred.FailedAttempts++
	}
	if err := e.saveCredential(ctx, cred); err != nil {
		return false, err
	}

	e.metricInc(MetricVerifyFailure)
	e.recordAudit(ctx, userID, EventRejected, map[string]string{
		"reason":          "mismatch",
		"failed_attempts": fmt.Sprintf("%d", cred.FailedAttempts),
	})

	if lockoutEnabled && int(cred.FailedAttempts) >= p.LockoutAttempts {
		e.metricInc(MetricLockout)
		e.recordAudit(ctx, userID, EventLockedOut, map[string]string{
			"threshold": fmt.Sprintf("%d", p.LockoutAttempts),
		})
		e.logger.Warn().Str("user_id", userID).Msg("credential locked out")
		return false, ErrLockedOut
	}

	return false, nil
}

package goCred

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/MrEthical07/goCred/credential"
	"github.com/MrEthical07/goCred/password"
	"github.com/MrEthical07/goCred/policy"
)

// Store hashes and persists a new credential for userID under the role's
// policy, superseding any prior active credential. The superseded hash moves
// into the reuse history, not deletion.
//
// Typed outcomes: [PolicyViolationError] when the candidate fails structural
// or complexity requirements, [ErrReuseViolation] when it matches one of the
// most recent PreventReuse passwords (the active one included),
// [ErrUnknownRole] for roles outside the registry.
func (e *Engine) Store(ctx context.Context, userID, pw, role string) (*SecureCredential, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	p, ok := e.registry.Get(role)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	e.userLocks.Lock(userID)
	defer e.userLocks.Unlock(userID)

	metrics, err := e.Analyze(pw, role)
	if err != nil {
		return nil, err
	}
	if feedback := acceptanceFailures(pw, p, metrics); len(feedback) > 0 {
		e.metricInc(MetricStorePolicyRejected)
		e.recordAudit(ctx, userID, EventRejected, map[string]string{
			"reason": "policy",
			"role":   role,
		})
		return nil, &PolicyViolationError{Feedback: feedback}
	}

	prior, err := e.loadCredential(ctx, userID)
	if err != nil && !errors.Is(err, ErrCredentialNotFound) {
		return nil, err
	}

	if reused, err := e.reuseDetected(ctx, userID, pw, prior, p.PreventReuse); err != nil {
		return nil, err
	} else if reused {
		e.metricInc(MetricStoreReuseRejected)
		e.recordAudit(ctx, userID, EventRejected, map[string]string{
			"reason": "reuse",
			"role":   role,
		})
		return nil, fmt.Errorf("%w: matches one of the last %d passwords", ErrReuseViolation, p.PreventReuse)
	}

	hash, err := e.hasher.Hash(pw)
	if err != nil {
		return nil, err
	}
	salt, err := password.ExtractSalt(hash)
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()
	cred := &credential.Credential{
		ID:         uuid.NewString(),
		UserID:     userID,
		Role:       role,
		Hash:       hash,
		Salt:       salt,
		CreatedAt:  now,
		LastUsedAt: now,
		ExpiresAt:  now.Add(time.Duration(p.MaxAgeDays) * 24 * time.Hour),
		Active:     true,
		Metadata: credential.Metadata{
			Strength:    metrics.Strength.String(),
			EntropyBits: metrics.EntropyBits,
			PolicyName:  p.Name,
		},
	}

	event := EventCreated
	if prior != nil {
		event = EventRotated
		if err := e.store.PushHistory(ctx, userID, prior.Hash, e.registry.MaxReuseDepth()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	if err := e.saveCredential(ctx, cred); err != nil {
		return nil, err
	}

	e.metricInc(MetricStoreSuccess)
	e.recordAudit(ctx, userID, event, map[string]string{
		"role":     role,
		"strength": cred.Metadata.Strength,
		"expires":  cred.ExpiresAt.Format(time.RFC3339),
	})
	e.logger.Debug().Str("user_id", userID).Str("role", role).Str("event", string(event)).Msg("credential stored")

	return cred, nil
}

// Retrieve decrypts and returns the user's active credential. An expired
// record is purged on read and reported as [ErrCredentialNotFound]; tampered
// or corrupt records surface as [ErrIntegrityViolation].
func (e *Engine) Retrieve(ctx context.Context, userID string) (*SecureCredential, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	e.userLocks.Lock(userID)
	defer e.userLocks.Unlock(userID)

	return e.loadLive(ctx, userID)
}

// Revoke deletes the user's active credential and reuse history. It is
// idempotent; the Revoked audit event is only recorded when a credential
// actually existed.
func (e *Engine) Revoke(ctx context.Context, userID string) error {
	if e == nil {
		return ErrEngineNotReady
	}

	e.userLocks.Lock(userID)
	defer e.userLocks.Unlock(userID)

	existed := true
	if _, err := e.store.LoadCredential(ctx, userID); err != nil {
		if !errors.Is(err, credential.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		existed = false
	}

	if err := e.store.DeleteCredential(ctx, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := e.store.ClearHistory(ctx, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if existed {
		e.metricInc(MetricRevoked)
		e.recordAudit(ctx, userID, EventRevoked, nil)
		e.logger.Debug().Str("user_id", userID).Msg("credential revoked")
	}
	return nil
}

// loadLive returns the decrypted credential, purging it when expired. The
// caller must hold the user lock.
func (e *Engine) loadLive(ctx context.Context, userID string) (*credential.Credential, error) {
	cred, err := e.loadCredential(ctx, userID)
	if err != nil {
		return nil, err
	}

	if cred.Expired(e.now()) {
		if err := e.store.DeleteCredential(ctx, userID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		e.metricInc(MetricExpiredPurged)
		e.recordAudit(ctx, userID, EventExpired, map[string]string{
			"expired_at": cred.ExpiresAt.Format(time.RFC3339),
		})
		return nil, ErrCredentialNotFound
	}

	return cred, nil
}

func (e *Engine) loadCredential(ctx context.Context, userID string) (*credential.Credential, error) {
	blob, err := e.store.LoadCredential(ctx, userID)
	if err != nil {
		if errors.Is(err, credential.ErrNotFound) {
			return nil, ErrCredentialNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	plaintext, err := e.encryptor.Open(blob)
	if err != nil {
		e.metricInc(MetricIntegrityFailure)
		e.logger.Warn().Str("user_id", userID).Msg("credential record failed authentication")
		return nil, fmt.Errorf("%w: %v", ErrIntegrityViolation, err)
	}

	cred, err := credential.Decode(plaintext)
	if err != nil {
		e.metricInc(MetricIntegrityFailure)
		return nil, fmt.Errorf("%w: %v", ErrIntegrityViolation, err)
	}

	return cred, nil
}

func (e *Engine) saveCredential(ctx context.Context, cred *credential.Credential) error {
	plaintext, err := credential.Encode(cred)
	if err != nil {
		return err
	}
	blob, err := e.encryptor.Seal(plaintext)
	if err != nil {
		return err
	}
	if err := e.store.SaveCredential(ctx, cred.UserID, blob); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// reuseDetected re-derives the candidate under each retained hash's own salt
// and parameters. The reuse window of depth N covers the active credential
// plus the N-1 most recent history entries.
func (e *Engine) reuseDetected(ctx context.Context, userID, pw string, prior *credential.Credential, depth int) (bool, error) {
	if depth <= 0 {
		return false, nil
	}

	hashes := make([]string, 0, depth)
	if prior != nil {
		hashes = append(hashes, prior.Hash)
		depth--
	}
	if depth > 0 {
		history, err := e.store.History(ctx, userID, depth)
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		hashes = append(hashes, history...)
	}

	for _, hash := range hashes {
		// Hashes produced under a previously configured algorithm fail to
		// parse; they cannot match and are skipped.
		match, err := e.hasher.Verify(pw, hash)
		if err != nil {
			continue
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

// acceptanceFailures returns the hard store-time rejections: length bounds,
// missing required classes, and the policy's complexity floor. Advisory
// analyzer feedback (patterns, breach) only rejects indirectly through the
// score.
func acceptanceFailures(pw string, p policy.Password, metrics PasswordMetrics) []string {
	var feedback []string

	runes := []rune(pw)
	if len(runes) < p.MinLength {
		feedback = append(feedback, "must be at least "+strconv.Itoa(p.MinLength)+" characters")
	}
	if len(runes) > p.MaxLength {
		feedback = append(feedback, "must be at most "+strconv.Itoa(p.MaxLength)+" characters")
	}
	if p.RequireUppercase && !containsClass(runes, unicode.IsUpper) {
		feedback = append(feedback, "must contain an uppercase letter")
	}
	if p.RequireLowercase && !containsClass(runes, unicode.IsLower) {
		feedback = append(feedback, "must contain a lowercase letter")
	}
	if p.RequireDigit && !containsClass(runes, unicode.IsDigit) {
		feedback = append(feedback, "must contain a digit")
	}
	if p.RequireSymbol && !containsSymbol(runes) {
		feedback = append(feedback, "must contain a symbol")
	}
	if len(feedback) == 0 && metrics.Score < p.MinComplexityScore {
		feedback = append(feedback, "complexity score "+strconv.Itoa(metrics.Score)+" below required "+strconv.Itoa(p.MinComplexityScore))
		feedback = append(feedback, metrics.Feedback...)
	}

	return feedback
}

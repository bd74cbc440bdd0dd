package goCred

import (
	"errors"
	"strings"
)

var (
	// ErrPolicyViolation is the sentinel wrapped by [PolicyViolationError].
	ErrPolicyViolation = errors.New("password policy violation")
	// ErrReuseViolation is returned when a candidate password matches one of
	// the user's retained recent passwords.
	ErrReuseViolation = errors.New("password reuse violation")
	// ErrCredentialNotFound is returned when a user has no active
	// credential. Expired credentials are reported the same way to callers.
	ErrCredentialNotFound = errors.New("credential not found")
	// ErrIntegrityViolation is returned when a stored record fails
	// authenticated decryption or decoding. It is terminal: corrupted data
	// is never returned.
	ErrIntegrityViolation = errors.New("credential integrity violation")
	// ErrLockedOut is returned once failed verifications reach the policy's
	// lockout threshold. Further verify calls short-circuit without
	// re-hashing.
	ErrLockedOut = errors.New("credential locked out")
	// ErrUnknownRole indicates a role outside the registered policy set.
	// This is integration misuse, not a runtime condition.
	ErrUnknownRole = errors.New("unknown role")
	// ErrStoreUnavailable indicates the persistence backend is unreachable.
	ErrStoreUnavailable = errors.New("credential store unavailable")
	// ErrEngineNotReady is returned when methods are called on a nil or
	// unbuilt engine.
	ErrEngineNotReady = errors.New("engine not ready")
)

// PolicyViolationError reports the structural deficiencies that caused a
// password to be rejected at store time. It wraps [ErrPolicyViolation] so
// callers can match with errors.Is.
type PolicyViolationError struct {
	Feedback []string
}

func (e *PolicyViolationError) Error() string {
	if len(e.Feedback) == 0 {
		return ErrPolicyViolation.Error()
	}
	return ErrPolicyViolation.Error() + ": " + strings.Join(e.Feedback, "; ")
}

func (e *PolicyViolationError) Unwrap() error {
	return ErrPolicyViolation
}

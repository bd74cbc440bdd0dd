package goCred

import (
	"time"

	"github.com/MrEthical07/goCred/credential"
)

// Strength is the coarse rating derived from an analyzer score.
type Strength uint8

const (
	// StrengthWeak covers scores below 40.
	StrengthWeak Strength = iota
	// StrengthFair covers scores in [40,60).
	StrengthFair
	// StrengthGood covers scores in [60,75).
	StrengthGood
	// StrengthStrong covers scores in [75,90).
	StrengthStrong
	// StrengthExcellent covers scores of 90 and above.
	StrengthExcellent
)

// String returns the rating name used in metadata and feedback.
func (s Strength) String() string {
	switch s {
	case StrengthWeak:
		return "Weak"
	case StrengthFair:
		return "Fair"
	case StrengthGood:
		return "Good"
	case StrengthStrong:
		return "Strong"
	case StrengthExcellent:
		return "Excellent"
	default:
		return "Unknown"
	}
}

// PasswordMetrics is the analyzer's verdict for one password under one
// role's policy. It is computed per call and never stored in plaintext form;
// only Strength, EntropyBits, and the policy name travel into credential
// metadata.
type PasswordMetrics struct {
	Strength Strength
	// Score is the clamped 0-100 composite of length, class, entropy,
	// pattern, and breach checks.
	Score int
	// Feedback lists human-readable deficiencies in check order.
	Feedback []string
	// EntropyBits is log2(distinctChars ^ length) for the analyzed string.
	EntropyBits float64
	// CrackTime is a coarse offline-guessing estimate assuming 1e9
	// guesses per second.
	CrackTime string
	// Compromised is set when the password appears in the breach registry.
	Compromised bool
}

// SecureCredential is the caller-facing alias for the stored record type.
type SecureCredential = credential.Credential

// EventType tags credential lifecycle actions in the audit trail.
type EventType string

const (
	// EventCreated records the first credential stored for a user.
	EventCreated EventType = "created"
	// EventVerified records a successful password verification.
	EventVerified EventType = "verified"
	// EventRejected records a rejected store or verify attempt.
	EventRejected EventType = "rejected"
	// EventRotated records a stored credential superseding a prior one.
	EventRotated EventType = "rotated"
	// EventRevoked records credential deletion.
	EventRevoked EventType = "revoked"
	// EventLockedOut records failed attempts reaching the lockout threshold.
	EventLockedOut EventType = "locked_out"
	// EventExpired records a lazy purge of an expired credential.
	EventExpired EventType = "expired"
)

// AuditEntry is one record in a user's bounded audit trail.
type AuditEntry struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Event     EventType         `json:"event"`
	Timestamp time.Time         `json:"timestamp"`
	IP        string            `json:"ip,omitempty"`
	UserAgent string            `json:"user_agent,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

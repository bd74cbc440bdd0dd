package credential

import "time"

// Metadata carries analyzer output captured at store time. It travels inside
// the encrypted record and is never persisted in plaintext.
type Metadata struct {
	Strength    string
	EntropyBits float64
	PolicyName  string
}

// Credential is the plaintext form of one user's active credential record.
// Exactly one active record exists per user; storing a new one supersedes the
// prior, whose hash moves into the reuse history.
type Credential struct {
	ID     string
	UserID string
	Role   string

	// Hash is the PHC-encoded password hash. Salt duplicates the hash's
	// base64 salt segment so the stored layout is self-contained.
	Hash string
	Salt string

	CreatedAt  time.Time
	LastUsedAt time.Time
	ExpiresAt  time.Time

	Active         bool
	FailedAttempts uint8

	Metadata Metadata
}

// Expired reports whether the record is past its expiry at the given time.
func (c *Credential) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

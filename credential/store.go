package credential

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a user has no stored credential blob.
	ErrNotFound = errors.New("credential not found")
	// ErrUnavailable indicates the storage backend is unreachable.
	ErrUnavailable = errors.New("credential backend unavailable")
)

// Store is the persistence surface for per-user credential state: the
// encrypted active record, the bounded reuse-history hash list, and the
// bounded audit trail. Blobs are opaque to the store — encryption and
// encoding happen above it.
//
// All per-user lists are most-recent-first: Push/Append prepend, and list
// reads return newest entries first. Implementations must be safe for
// concurrent use; serialization of read-modify-write sequences across
// methods is the caller's responsibility.
type Store interface {
	SaveCredential(ctx context.Context, userID string, blob []byte) error
	LoadCredential(ctx context.Context, userID string) ([]byte, error)
	DeleteCredential(ctx context.Context, userID string) error

	// PushHistory prepends a hash to the user's reuse history and trims the
	// list to max entries, evicting the oldest.
	PushHistory(ctx context.Context, userID string, hash string, max int) error
	// History returns up to limit most recent hashes.
	History(ctx context.Context, userID string, limit int) ([]string, error)
	ClearHistory(ctx context.Context, userID string) error

	// AppendAudit prepends a serialized audit entry and trims the trail to
	// max entries, evicting the oldest.
	AppendAudit(ctx context.Context, userID string, entry []byte, max int) error
	// AuditTrail returns the user's entries, most recent first.
	AuditTrail(ctx context.Context, userID string) ([][]byte, error)
}

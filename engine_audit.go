package goCred

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

func (e *Engine) recordAudit(ctx context.Context, userID string, event EventType, metadata map[string]string) {
	entry := AuditEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Event:     event,
		Timestamp: e.now().UTC(),
		IP:        clientIPFromContext(ctx),
		UserAgent: userAgentFromContext(ctx),
		Metadata:  metadata,
	}

	blob, err := json.Marshal(entry)
	if err == nil {
		if err := e.store.AppendAudit(ctx, userID, blob, e.config.Audit.TrailLength); err != nil {
			e.logger.Warn().Err(err).Str("user_id", userID).Msg("audit trail write failed")
		}
	}

	e.audit.Emit(ctx, entry)
}

// AuditTrail returns the user's persisted audit entries, most recent first.
// The trail is bounded (default 100 entries); older events are evicted.
// Entries that fail to decode are skipped rather than failing the read.
func (e *Engine) AuditTrail(ctx context.Context, userID string) ([]AuditEntry, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	blobs, err := e.store.AuditTrail(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	entries := make([]AuditEntry, 0, len(blobs))
	for _, blob := range blobs {
		var entry AuditEntry
		if err := json.Unmarshal(blob, &entry); err != nil {
			e.logger.Warn().Str("user_id", userID).Msg("skipping undecodable audit entry")
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

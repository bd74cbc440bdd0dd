package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix is the Redis key namespace used when the engine config
// leaves the prefix empty.
const DefaultKeyPrefix = "sc"

// RedisStore is the Redis-backed Store. Key layout:
//
//	<prefix>:cred:<userID>   — encrypted credential blob (string)
//	<prefix>:hist:<userID>   — reuse history (list, newest first)
//	<prefix>:audit:<userID>  — audit trail (list, newest first)
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore wraps an existing client. The caller owns the client's
// lifecycle; the store never closes it.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{redis: client, prefix: prefix}
}

func (s *RedisStore) credKey(userID string) string {
	return s.prefix + ":cred:" + userID
}

func (s *RedisStore) histKey(userID string) string {
	return s.prefix + ":hist:" + userID
}

func (s *RedisStore) auditKey(userID string) string {
	return s.prefix + ":audit:" + userID
}

func backendErr(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// SaveCredential implements [Store].
func (s *RedisStore) SaveCredential(ctx context.Context, userID string, blob []byte) error {
	if err := s.redis.Set(ctx, s.credKey(userID), blob, 0).Err(); err != nil {
		return backendErr(err)
	}
	return nil
}

// LoadCredential implements [Store].
func (s *RedisStore) LoadCredential(ctx context.Context, userID string) ([]byte, error) {
	blob, err := s.redis.Get(ctx, s.credKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, backendErr(err)
	}
	return blob, nil
}

// DeleteCredential implements [Store]. Deleting an absent record is a no-op.
func (s *RedisStore) DeleteCredential(ctx context.Context, userID string) error {
	if err := s.redis.Del(ctx, s.credKey(userID)).Err(); err != nil {
		return backendErr(err)
	}
	return nil
}

// PushHistory implements [Store].
func (s *RedisStore) PushHistory(ctx context.Context, userID string, hash string, max int) error {
	if max <= 0 {
		return nil
	}

	key := s.histKey(userID)
	pipe := s.redis.TxPipeline()
	pipe.LPush(ctx, key, hash)
	pipe.LTrim(ctx, key, 0, int64(max-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return backendErr(err)
	}
	return nil
}

// History implements [Store].
func (s *RedisStore) History(ctx context.Context, userID string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}

	entries, err := s.redis.LRange(ctx, s.histKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, backendErr(err)
	}
	return entries, nil
}

// ClearHistory implements [Store].
func (s *RedisStore) ClearHistory(ctx context.Context, userID string) error {
	if err := s.redis.Del(ctx, s.histKey(userID)).Err(); err != nil {
		return backendErr(err)
	}
	return nil
}

// AppendAudit implements [Store].
func (s *RedisStore) AppendAudit(ctx context.Context, userID string, entry []byte, max int) error {
	if max <= 0 {
		return nil
	}

	key := s.auditKey(userID)
	pipe := s.redis.TxPipeline()
	pipe.LPush(ctx, key, entry)
	pipe.LTrim(ctx, key, 0, int64(max-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return backendErr(err)
	}
	return nil
}

// AuditTrail implements [Store].
func (s *RedisStore) AuditTrail(ctx context.Context, userID string) ([][]byte, error) {
	entries, err := s.redis.LRange(ctx, s.auditKey(userID), 0, -1).Result()
	if err != nil {
		return nil, backendErr(err)
	}

	out := make([][]byte, len(entries))
	for i, entry := range entries {
		out[i] = []byte(entry)
	}
	return out, nil
}

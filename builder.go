package goCred

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/MrEthical07/goCred/credential"
	"github.com/MrEthical07/goCred/internal"
	"github.com/MrEthical07/goCred/internal/crypt"
	"github.com/MrEthical07/goCred/password"
	"github.com/MrEthical07/goCred/policy"
)

// Builder assembles an [Engine]. A Builder is single-use: Build returns an
// error on the second call.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	policies map[string]policy.Password
	breach   []string

	store         credential.Store
	auditSink     AuditSink
	logger        *zerolog.Logger
	encryptionKey []byte
	clock         func() time.Time

	built bool
}

// New returns a Builder with default configuration, default role policies,
// and an in-memory store backend.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the engine configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis selects the Redis store backend. The caller owns the client's
// lifecycle.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithStore wires a caller-supplied store backend. Takes precedence over
// WithRedis.
func (b *Builder) WithStore(store credential.Store) *Builder {
	b.store = store
	return b
}

// WithPolicies replaces the default role policy set.
func (b *Builder) WithPolicies(policies map[string]policy.Password) *Builder {
	b.policies = policies
	return b
}

// WithBreachList seeds the breach registry.
func (b *Builder) WithBreachList(passwords []string) *Builder {
	b.breach = passwords
	return b
}

// WithAuditSink wires the async audit sink. The persisted per-user trail is
// written regardless.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithLogger attaches a structured logger. Without one the engine is silent.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = &logger
	return b
}

// WithEncryptionKey supplies the 32-byte AES-256 key protecting stored
// records. The key is held in memory only; supplying it is mandatory.
func (b *Builder) WithEncryptionKey(key []byte) *Builder {
	b.encryptionKey = key
	return b
}

// WithClock overrides the engine's time source, for deterministic expiry in
// tests.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.clock = now
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and assembles the engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	policies := b.policies
	if policies == nil {
		policies = policy.Defaults()
	}
	registry, err := policy.NewRegistry(policies)
	if err != nil {
		return nil, err
	}

	var hasher password.Hasher
	switch cfg.Hasher.Algorithm {
	case AlgorithmPBKDF2:
		hasher, err = password.NewPBKDF2(cfg.Hasher.PBKDF2)
	case AlgorithmArgon2:
		hasher, err = password.NewArgon2(cfg.Hasher.Argon2)
	}
	if err != nil {
		return nil, err
	}

	encryptor, err := crypt.NewEncryptor(b.encryptionKey)
	if err != nil {
		return nil, err
	}

	store := b.store
	if store == nil {
		if b.redis != nil {
			store = credential.NewRedisStore(b.redis, cfg.Store.RedisPrefix)
		} else {
			store = credential.NewMemoryStore()
		}
	}

	logger := zerolog.Nop()
	if b.logger != nil {
		logger = *b.logger
	}

	now := b.clock
	if now == nil {
		now = time.Now
	}

	b.built = true

	return &Engine{
		config:    cfg,
		registry:  registry,
		hasher:    hasher,
		store:     store,
		encryptor: encryptor,
		breach:    NewBreachRegistry(b.breach...),
		audit:     newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics:   newMetrics(cfg.Metrics),
		userLocks: internal.NewStripedMutex(userLockStripes),
		logger:    logger,
		now:       now,
	}, nil
}

package goCred

import (
	"errors"
	"time"

	"github.com/MrEthical07/goCred/password"
)

// Config defines the engine's tunable parameters.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable. [Builder.Build] clones the config, so later
// mutation of the caller's value has no effect.
type Config struct {
	Hasher   HasherConfig
	Store    StoreConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
	Rotation RotationConfig
}

/*
====================================
HASHER CONFIG
====================================
*/

// HashAlgorithm selects the key-derivation function used for new hashes.
type HashAlgorithm string

const (
	// AlgorithmPBKDF2 is the default: PBKDF2-SHA512, 100000 iterations,
	// 64-byte key, 32-byte salt.
	AlgorithmPBKDF2 HashAlgorithm = "pbkdf2-sha512"
	// AlgorithmArgon2 selects Argon2id.
	AlgorithmArgon2 HashAlgorithm = "argon2id"
)

// HasherConfig selects and parameterizes the password hasher. Zero-valued
// parameter fields fall back to the selected algorithm's defaults.
type HasherConfig struct {
	Algorithm HashAlgorithm
	PBKDF2    password.PBKDF2Config
	Argon2    password.Argon2Config
}

/*
====================================
STORE CONFIG
====================================
*/

// StoreConfig controls the persistence backend.
type StoreConfig struct {
	// RedisPrefix namespaces all keys of the Redis backend. Ignored by the
	// in-memory backend.
	RedisPrefix string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the persisted per-user trail and the async sink
// dispatcher.
type AuditConfig struct {
	// Enabled gates the async sink dispatcher only; the persisted per-user
	// trail is always written.
	Enabled bool
	// BufferSize is the dispatcher channel depth.
	BufferSize int
	// DropIfFull makes Emit non-blocking, counting dropped events, instead
	// of blocking the engine operation on a slow sink.
	DropIfFull bool
	// TrailLength bounds the persisted per-user trail (oldest evicted).
	TrailLength int
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig toggles the in-process atomic counters.
type MetricsConfig struct {
	Enabled bool
}

/*
====================================
ROTATION CONFIG
====================================
*/

// RotationConfig controls the rotation-warning window reported by
// [Engine.ShouldRotate]. It is independent of hard expiry.
type RotationConfig struct {
	WarningWindow time.Duration
}

const (
	defaultAuditBuffer = 256
	defaultTrailLength = 100
	defaultWarnWindow  = 7 * 24 * time.Hour
)

func defaultConfig() Config {
	return Config{
		Hasher: HasherConfig{
			Algorithm: AlgorithmPBKDF2,
			PBKDF2:    password.DefaultPBKDF2Config(),
			Argon2:    password.DefaultArgon2Config(),
		},
		Audit: AuditConfig{
			Enabled:     true,
			BufferSize:  defaultAuditBuffer,
			DropIfFull:  true,
			TrailLength: defaultTrailLength,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Rotation: RotationConfig{
			WarningWindow: defaultWarnWindow,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a deep copy.
	return cfg
}

func validateConfig(cfg *Config) error {
	switch cfg.Hasher.Algorithm {
	case AlgorithmPBKDF2, AlgorithmArgon2:
	case "":
		cfg.Hasher.Algorithm = AlgorithmPBKDF2
	default:
		return errors.New("unsupported hash algorithm")
	}

	if cfg.Hasher.PBKDF2 == (password.PBKDF2Config{}) {
		cfg.Hasher.PBKDF2 = password.DefaultPBKDF2Config()
	}
	if cfg.Hasher.Argon2 == (password.Argon2Config{}) {
		cfg.Hasher.Argon2 = password.DefaultArgon2Config()
	}

	if cfg.Audit.BufferSize <= 0 {
		cfg.Audit.BufferSize = defaultAuditBuffer
	}
	if cfg.Audit.TrailLength <= 0 {
		cfg.Audit.TrailLength = defaultTrailLength
	}
	if cfg.Rotation.WarningWindow <= 0 {
		cfg.Rotation.WarningWindow = defaultWarnWindow
	}

	return nil
}

package password

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2AlgorithmID = "pbkdf2-sha512"

	minIterations          uint32 = 10_000
	minPBKDF2SaltLength    uint32 = 16
	minPBKDF2KeyLength     uint32 = 16
	defaultIterations      uint32 = 100_000
	defaultSaltLength      uint32 = 32
	defaultPBKDF2KeyLength uint32 = 64
)

// PBKDF2Config holds the derivation parameters for the PBKDF2-SHA512 hasher.
//
// PBKDF2Config instances are intended to be configured during initialization
// and then treated as immutable.
type PBKDF2Config struct {
	Iterations uint32
	SaltLength uint32
	KeyLength  uint32
}

// DefaultPBKDF2Config returns the conservative defaults: 100000 iterations,
// a 32-byte salt, and a 64-byte derived key.
func DefaultPBKDF2Config() PBKDF2Config {
	return PBKDF2Config{
		Iterations: defaultIterations,
		SaltLength: defaultSaltLength,
		KeyLength:  defaultPBKDF2KeyLength,
	}
}

// PBKDF2 derives salted, iterated password hashes with PBKDF2-SHA512.
//
// Hashes are encoded as:
//
//	$pbkdf2-sha512$i=<iterations>$<b64 salt>$<b64 hash>
type PBKDF2 struct {
	config PBKDF2Config
}

// NewPBKDF2 validates the parameters and returns a ready hasher.
func NewPBKDF2(cfg PBKDF2Config) (*PBKDF2, error) {
	if cfg.Iterations < minIterations {
		return nil, errors.New("pbkdf2 iterations must be >= 10000")
	}
	if cfg.SaltLength < minPBKDF2SaltLength {
		return nil, errors.New("pbkdf2 salt length must be >= 16")
	}
	if cfg.KeyLength < minPBKDF2KeyLength {
		return nil, errors.New("pbkdf2 key length must be >= 16")
	}
	return &PBKDF2{config: cfg}, nil
}

// Hash implements [Hasher].
func (p *PBKDF2) Hash(password string) (string, error) {
	salt, err := newSalt(p.config.SaltLength)
	if err != nil {
		return "", err
	}
	return p.HashWithSalt(password, salt)
}

// HashWithSalt implements [Hasher].
func (p *PBKDF2) HashWithSalt(password string, salt []byte) (string, error) {
	// Password processing uses raw string bytes exactly as provided (no
	// Unicode normalization).
	if len(salt) < int(minPBKDF2SaltLength) {
		return "", errors.New("pbkdf2 salt too short")
	}

	key := pbkdf2.Key([]byte(password), salt, int(p.config.Iterations), int(p.config.KeyLength), sha512.New)

	return fmt.Sprintf(
		"$%s$i=%d$%s$%s",
		pbkdf2AlgorithmID,
		p.config.Iterations,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key),
	), nil
}

// Verify implements [Hasher].
func (p *PBKDF2) Verify(password string, encodedHash string) (bool, error) {
	parsed, err := parsePBKDF2(encodedHash)
	if err != nil {
		return false, err
	}

	computed := pbkdf2.Key([]byte(password), parsed.salt, int(parsed.iterations), len(parsed.hash), sha512.New)

	return subtle.ConstantTimeCompare(computed, parsed.hash) == 1, nil
}

// NeedsUpgrade implements [Hasher].
func (p *PBKDF2) NeedsUpgrade(encodedHash string) (bool, error) {
	parsed, err := parsePBKDF2(encodedHash)
	if err != nil {
		return false, err
	}

	if p.config.Iterations > parsed.iterations {
		return true, nil
	}
	if p.config.KeyLength != uint32(len(parsed.hash)) {
		return true, nil
	}
	if p.config.SaltLength > uint32(len(parsed.salt)) {
		return true, nil
	}

	return false, nil
}

type parsedPBKDF2 struct {
	iterations uint32
	salt       []byte
	hash       []byte
}

func parsePBKDF2(encodedHash string) (*parsedPBKDF2, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 5 || parts[0] != "" {
		return nil, ErrMalformedHash
	}
	if parts[1] != pbkdf2AlgorithmID {
		return nil, errors.New("unsupported algorithm")
	}

	if !strings.HasPrefix(parts[2], "i=") {
		return nil, errors.New("missing iteration parameter")
	}
	iterations, err := strconv.ParseUint(strings.TrimPrefix(parts[2], "i="), 10, 32)
	if err != nil || iterations < uint64(minIterations) {
		return nil, errors.New("invalid iteration parameter")
	}

	salt, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return nil, errors.New("invalid salt encoding")
	}
	if len(salt) < int(minPBKDF2SaltLength) {
		return nil, errors.New("invalid salt length")
	}

	hash, err := base64.StdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, errors.New("invalid hash encoding")
	}
	if len(hash) < int(minPBKDF2KeyLength) {
		return nil, errors.New("invalid hash length")
	}

	return &parsedPBKDF2{
		iterations: uint32(iterations),
		salt:       salt,
		hash:       hash,
	}, nil
}

package password

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"strings"
)

// Hasher derives and verifies salted password hashes. Both implementations
// ([PBKDF2], [Argon2]) emit PHC-style strings that embed the algorithm,
// parameters, and salt, so a stored hash is always self-describing.
type Hasher interface {
	// Hash derives an encoded hash under a freshly generated random salt.
	Hash(password string) (string, error)
	// HashWithSalt derives an encoded hash under the supplied salt. It is
	// used by reuse detection to re-derive a candidate under a retained
	// hash's parameters.
	HashWithSalt(password string, salt []byte) (string, error)
	// Verify re-derives the candidate under the stored salt and parameters
	// and compares in constant time.
	Verify(password string, encodedHash string) (bool, error)
	// NeedsUpgrade reports whether the stored hash was produced with weaker
	// parameters than the hasher is configured with.
	NeedsUpgrade(encodedHash string) (bool, error)
}

// ErrMalformedHash is returned when an encoded hash cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

func newSalt(length uint32) ([]byte, error) {
	salt := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// ExtractSalt returns the base64-encoded salt segment of a PHC-style hash
// produced by any Hasher in this package.
func ExtractSalt(encodedHash string) (string, error) {
	parts := strings.Split(encodedHash, "$")
	// $<alg>$...$<salt>$<hash> — salt is always the second-to-last segment.
	if len(parts) < 4 || parts[0] != "" {
		return "", ErrMalformedHash
	}
	salt := parts[len(parts)-2]
	if _, err := base64.StdEncoding.DecodeString(salt); err != nil {
		return "", ErrMalformedHash
	}
	return salt, nil
}

// Algorithm returns the algorithm identifier of a PHC-style hash, e.g.
// "pbkdf2-sha512" or "argon2id".
func Algorithm(encodedHash string) (string, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) < 4 || parts[0] != "" || parts[1] == "" {
		return "", ErrMalformedHash
	}
	return parts[1], nil
}

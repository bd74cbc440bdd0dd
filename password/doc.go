// Package password implements salted, iterated password hashing and
// constant-time verification.
//
// # Output format
//
// Both hashers emit PHC-style strings that embed the algorithm, parameters,
// and salt:
//
//	$pbkdf2-sha512$i=100000$<salt>$<hash>
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// PBKDF2-SHA512 (100000 iterations, 64-byte key, 32-byte salt) is the engine
// default; Argon2id is selectable through the engine's hasher config. Both
// support transparent parameter upgrades: if a stored hash was produced with
// weaker parameters, [Hasher.NeedsUpgrade] returns true so the caller can
// re-hash on the next successful verification.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Password policy (length,
// complexity, reuse history) is enforced by the Engine.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive hashes.
//   - Import any other goCred package.
//   - Log plaintext passwords or hash parameters at runtime.
package password

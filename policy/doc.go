// Package policy defines per-role password rule sets and the immutable
// registry the engine resolves them from.
//
// A [Password] policy covers structural requirements (length bounds, required
// character classes), lifecycle rules (reuse depth, maximum age, lockout
// threshold), and the minimum analyzer score accepted at store time. The
// [Registry] is constructed once from a closed role set and validated
// eagerly: an unknown role at runtime is integration misuse, not a state the
// registry can reach on its own.
//
// # Architecture boundaries
//
// This package owns rule definitions and lookup only. Enforcement — scoring,
// reuse scans, lockout counting — is performed by the Engine.
//
// # What this package must NOT do
//
//   - Perform I/O or hold mutable state after construction.
//   - Import any other goCred package.
package policy

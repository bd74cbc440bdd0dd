// Package goCred provides a credential security engine: policy-driven
// password generation, strength analysis, salted key-derivation hashing,
// encrypted credential storage, reuse-history enforcement, breach detection,
// and per-user audit trails.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build]. Operations that read and rewrite one user's state (Store,
// Verify, Revoke) are serialized per user internally.
//
// # Architecture boundaries
//
// goCred is the public surface. It exposes [Engine], [Builder], [Config], and
// value types (PasswordMetrics, AuditEntry, MetricsSnapshot, etc.). Role
// policies live in the policy package, hashing in password, and storage
// backends in credential; encryption and sampling helpers live under
// internal/ and are never exported.
//
// # What this package must NOT do
//
//   - Issue tokens, manage sessions, or speak any network protocol — the
//     host's authentication flow owns those.
//   - Hold or derive encryption keys. The AES-256 key is injected through
//     [Builder.WithEncryptionKey] and only kept in memory.
//   - Log or persist plaintext passwords anywhere, including audit metadata.
package goCred

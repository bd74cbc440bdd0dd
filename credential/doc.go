// Package credential defines the stored credential record, its versioned
// binary encoding, and the persistence backends for per-user credential
// state.
//
// # Record layout
//
// [Encode] serializes a [Credential] with stable field ordering: a format
// version byte, length-prefixed strings, big-endian timestamps and float
// bits. The encoded form is the plaintext input to the engine's
// authenticated encryption; nothing in this package writes it to storage
// unencrypted.
//
// # Backends
//
// [MemoryStore] keeps everything in process maps; [RedisStore] maps the
// credential blob to a string key and history/audit to trimmed lists. Both
// treat blobs as opaque bytes.
//
// # What this package must NOT do
//
//   - Encrypt, decrypt, hash, or inspect blob contents.
//   - Enforce policy or reuse semantics — the Engine owns those.
//   - Import any other goCred package.
package credential

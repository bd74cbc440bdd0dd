// Package crypt provides authenticated encryption for stored credential
// records. The key is always supplied by the host process; nothing in this
// package generates, derives, or persists key material.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
)

var (
	// ErrInvalidKeySize is returned for keys that are not 32 bytes.
	ErrInvalidKeySize = errors.New("encryption key must be 32 bytes")
	// ErrDecrypt indicates authentication failure on a stored blob: the
	// record was tampered with, corrupted, or encrypted under another key.
	ErrDecrypt = errors.New("record decryption failed")
)

// Encryptor seals and opens credential record blobs with AES-256-GCM. The
// nonce is generated per call and prefixed to the ciphertext.
type Encryptor struct {
	gcm cipher.AEAD
}

// NewEncryptor builds an AES-256-GCM encryptor from a 32-byte key.
func NewEncryptor(key []byte) (*Encryptor, error) {
	if len(key) != 32 {
		return nil, ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Encryptor{gcm: gcm}, nil
}

// Seal encrypts plaintext and returns nonce||ciphertext.
func (e *Encryptor) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return e.gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a blob produced by Seal. Any authentication failure is
// reported as [ErrDecrypt]; corrupted plaintext is never returned.
func (e *Encryptor) Open(blob []byte) ([]byte, error) {
	nonceSize := e.gcm.NonceSize()
	if len(blob) < nonceSize {
		return nil, ErrDecrypt
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	plaintext, err := e.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

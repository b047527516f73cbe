// Package domain defines key-management and envelope primitives: the master secret,
// envelope layout constants, and the typed failures of the encryption layer.
package domain

import (
	"github.com/newtonic3d/estimatevault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors so
// callers can branch on the failure class with errors.Is. None of them is
// retryable: every cryptographic failure is deterministic given its inputs.
var (
	// ErrMasterKeyNotSet indicates ENCRYPTION_MASTER_KEY is missing.
	//
	// Fatal for the estimate vault only; the rest of the service keeps running.
	//
	// HTTP Status: 503 Service Unavailable
	ErrMasterKeyNotSet = errors.Wrap(errors.ErrUnavailable, "encryption master key is not set")

	// ErrInvalidMasterKey indicates the configured master key is not valid hex,
	// cannot be unwrapped by the KMS, or does not decode to exactly 32 bytes.
	//
	// HTTP Status: 503 Service Unavailable
	ErrInvalidMasterKey = errors.Wrap(errors.ErrUnavailable, "invalid encryption master key")

	// ErrInvalidKeySize indicates a key of the wrong length reached a cipher or
	// key-derivation call.
	//
	// HTTP Status: 500 Internal Server Error
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrEncryptionFailed indicates any step of blob creation failed (RNG, cipher
	// setup). No partial blob is ever returned alongside it.
	//
	// HTTP Status: 500 Internal Server Error
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrMalformedBlob indicates a stored blob is not valid base64 or is shorter
	// than the fixed salt, nonce and tag header. Decryption is never attempted.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrMalformedBlob = errors.Wrap(errors.ErrIntegrity, "malformed encrypted blob")

	// ErrAuthenticationFailed indicates the GCM tag did not verify: the ciphertext,
	// nonce, salt or associated data was altered, or the wrong key was used.
	//
	// For security reasons the specific cause is not disclosed.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrAuthenticationFailed = errors.Wrap(errors.ErrIntegrity, "authentication failed")
)

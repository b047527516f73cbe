package domain

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// MasterSecret is the process-wide root secret of the estimate vault.
//
// It is decoded once at startup and injected into the services that need it.
// The value is immutable: Bytes returns a copy so callers can zero their copy
// after use without touching the original. It is never persisted and its
// string form is redacted so it cannot leak through logs.
type MasterSecret struct {
	key []byte
}

// NewMasterSecret creates a MasterSecret from raw key material.
//
// The input is copied, so the caller may zero its slice afterwards.
//
// Returns:
//   - ErrMasterKeyNotSet if raw is empty
//   - ErrInvalidMasterKey if raw is not exactly MasterSecretSize bytes
func NewMasterSecret(raw []byte) (*MasterSecret, error) {
	if len(raw) == 0 {
		return nil, ErrMasterKeyNotSet
	}
	if len(raw) != MasterSecretSize {
		return nil, fmt.Errorf(
			"%w: must be %d bytes, got %d",
			ErrInvalidMasterKey,
			MasterSecretSize,
			len(raw),
		)
	}

	key := make([]byte, MasterSecretSize)
	copy(key, raw)
	return &MasterSecret{key: key}, nil
}

// ParseMasterSecretHex decodes a hex-encoded master secret (64 hex characters).
//
// Surrounding whitespace is ignored. The temporary decoded buffer is zeroed
// before returning.
//
// Example:
//
//	secret, err := ParseMasterSecretHex(os.Getenv("ENCRYPTION_MASTER_KEY"))
//	if err != nil {
//	    return err // fatal for the vault
//	}
func ParseMasterSecretHex(encoded string) (*MasterSecret, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, ErrMasterKeyNotSet
	}

	raw, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: not valid hex", ErrInvalidMasterKey)
	}
	defer Zero(raw)

	return NewMasterSecret(raw)
}

// Bytes returns a copy of the secret. Callers should Zero the copy after use.
func (m *MasterSecret) Bytes() []byte {
	key := make([]byte, len(m.key))
	copy(key, m.key)
	return key
}

// String implements fmt.Stringer with a redacted value.
func (m *MasterSecret) String() string {
	return "MasterSecret(redacted)"
}

// GoString implements fmt.GoStringer with a redacted value, covering %#v.
func (m *MasterSecret) GoString() string {
	return m.String()
}

// Close zeroes the secret. The value must not be used afterwards.
func (m *MasterSecret) Close() {
	Zero(m.key)
}

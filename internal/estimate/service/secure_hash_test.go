package service

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSecureHasher(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_123)
	hasher := &secureHasher{now: func() time.Time { return fixed }}

	t.Run("GenerateSecureHash_AppendsMillis", func(t *testing.T) {
		expected := sha256.Sum256([]byte("quote-1" + "1700000000123"))
		assert.Equal(t, hex.EncodeToString(expected[:]), hasher.GenerateSecureHash("quote-1"))
	})

	t.Run("GenerateSecureHash_ChangesWithTime", func(t *testing.T) {
		later := &secureHasher{now: func() time.Time { return fixed.Add(time.Millisecond) }}
		assert.NotEqual(t, hasher.GenerateSecureHash("quote-1"), later.GenerateSecureHash("quote-1"))
	})

	t.Run("HashToken", func(t *testing.T) {
		expected := sha256.Sum256([]byte("token"))
		assert.Equal(t, hex.EncodeToString(expected[:]), NewSecureHasher().HashToken("token"))
	})
}

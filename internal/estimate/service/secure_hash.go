package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

type secureHasher struct {
	now func() time.Time
}

// NewSecureHasher creates a SecureHasher using the wall clock.
func NewSecureHasher() SecureHasher {
	return &secureHasher{now: time.Now}
}

func (h *secureHasher) GenerateSecureHash(input string) string {
	sum := sha256.Sum256([]byte(input + strconv.FormatInt(h.now().UnixMilli(), 10)))
	return hex.EncodeToString(sum[:])
}

func (h *secureHasher) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

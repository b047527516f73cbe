package domain

import (
	"time"

	"github.com/google/uuid"
)

// Quote is the persisted quote document.
//
// EstimatedPrice and EstimatedDays are the public figures shown to the
// customer. InternalEstimates holds the sealed estimate blob and is opaque to
// storage; DataSignature is its HMAC over the canonical estimate.
type Quote struct {
	ID                uuid.UUID
	EstimatedPrice    float64
	EstimatedDays     int
	InternalEstimates string
	DataSignature     string
	SecurityLevel     string
	LastCalculatedAt  *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasEncryptedEstimate reports whether the quote is tagged encrypted and
// carries a sealed estimate. Decryption is attempted only when both hold.
func (q *Quote) HasEncryptedEstimate() bool {
	return q.SecurityLevel == SecurityLevelEncrypted && q.InternalEstimates != ""
}

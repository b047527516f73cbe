package domain

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	customValidation "github.com/newtonic3d/estimatevault/internal/validation"
)

// FileDescriptor identifies an uploaded model file in object storage.
type FileDescriptor struct {
	StoragePath  string
	OriginalName string
	QuoteID      uuid.UUID
}

// Validate checks the descriptor before a reference is issued for it.
func (d FileDescriptor) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.StoragePath, validation.Required, customValidation.StoragePath),
		validation.Field(&d.OriginalName, validation.Required, customValidation.NotBlank),
		validation.Field(&d.QuoteID, customValidation.NotNilUUID),
	)
}

// FileReference is the plaintext sealed inside a file reference blob.
//
// ExpiresAt and the JSON timestamps are Unix milliseconds.
type FileReference struct {
	StoragePath  string    `json:"storagePath"`
	OriginalName string    `json:"originalName"`
	QuoteID      uuid.UUID `json:"quoteId"`
	ExpiresAt    int64     `json:"expiresAt"`
	Nonce        string    `json:"nonce"`
}

// ExpiresAtTime returns ExpiresAt as a time.Time.
func (r FileReference) ExpiresAtTime() time.Time {
	return time.UnixMilli(r.ExpiresAt).UTC()
}

// Expired reports whether the reference is no longer valid at now.
// A reference expiring exactly at now is expired.
func (r FileReference) Expired(now time.Time) bool {
	return r.ExpiresAt <= now.UnixMilli()
}

// FileAccessToken is the server-side record of an issued secure token.
//
// Only the SHA-256 of the token is stored; the token itself is returned once
// to the administrator who issued the reference. ReferenceHash is the SHA-256
// of the nonce sealed in that reference, so the token opens no other
// reference on the same quote.
type FileAccessToken struct {
	ID            uuid.UUID
	TokenHash     string
	ReferenceHash string
	QuoteID       uuid.UUID
	ExpiresAt     time.Time
	CreatedAt     time.Time
}

// IssuedFileReference is returned when a reference is issued.
type IssuedFileReference struct {
	Reference string
	Token     string
	ExpiresAt time.Time
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is a bearer token issued to a client. Only its SHA-256 is stored.
type Token struct {
	ID        uuid.UUID
	TokenHash string
	ClientID  uuid.UUID
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Usable reports whether the token is neither revoked nor expired at now.
func (t *Token) Usable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

type IssueTokenInput struct {
	ClientID     uuid.UUID
	ClientSecret string //nolint:gosec // plain secret presented by the caller
}

type IssueTokenOutput struct {
	PlainToken string //nolint:gosec // returned once to the caller
	ExpiresAt  time.Time
}

// Package usecase implements client management, bearer token authentication
// and the administrator check used by the estimate vault.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/newtonic3d/estimatevault/internal/auth/domain"
)

// ClientRepository defines persistence operations for API clients.
// Implementations must honor the transaction carried in ctx.
type ClientRepository interface {
	Create(ctx context.Context, client *authDomain.Client) error

	Update(ctx context.Context, client *authDomain.Client) error

	// Get returns ErrClientNotFound if no client has the id.
	Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error)
}

// TokenRepository defines persistence operations for bearer tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *authDomain.Token) error

	// GetByTokenHash returns ErrTokenNotFound if no token has the hash.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error)

	// Revoke marks every token with the hash as revoked at revokedAt.
	Revoke(ctx context.Context, tokenHash string, revokedAt time.Time) error

	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)

	CountExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

// ClientUseCase manages API clients.
type ClientUseCase interface {
	// Create generates a client secret and stores the client. The plain secret
	// is returned once and never stored.
	Create(ctx context.Context, input *authDomain.CreateClientInput) (*authDomain.CreateClientOutput, error)

	Update(ctx context.Context, clientID uuid.UUID, input *authDomain.UpdateClientInput) error

	Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error)

	// Delete deactivates the client; its record is kept.
	Delete(ctx context.Context, clientID uuid.UUID) error
}

// TokenUseCase issues and validates bearer tokens.
type TokenUseCase interface {
	Issue(ctx context.Context, input *authDomain.IssueTokenInput) (*authDomain.IssueTokenOutput, error)

	// Authenticate resolves a token hash to its active client.
	Authenticate(ctx context.Context, tokenHash string) (*authDomain.Client, error)

	Revoke(ctx context.Context, tokenHash string) error

	// CleanupExpired deletes tokens that expired more than days ago, or only
	// counts them when dryRun is set.
	CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error)
}

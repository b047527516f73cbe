// Package usecase orchestrates the estimate vault: sealing estimates into quote
// documents, the admin-only retrieval flow, and issuing and resolving
// time-bound file references.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	estimateDomain "github.com/newtonic3d/estimatevault/internal/estimate/domain"
)

// QuoteRepository defines the interface for quote document persistence.
type QuoteRepository interface {
	// Get returns ErrQuoteNotFound when no quote has the id.
	Get(ctx context.Context, quoteID uuid.UUID) (*estimateDomain.Quote, error)

	// Upsert inserts the quote or replaces its estimate fields.
	Upsert(ctx context.Context, quote *estimateDomain.Quote) error
}

// FileTokenRepository defines the interface for file access token persistence.
type FileTokenRepository interface {
	Create(ctx context.Context, token *estimateDomain.FileAccessToken) error

	// GetByTokenHash returns ErrFileTokenNotFound when no token has the hash.
	GetByTokenHash(ctx context.Context, tokenHash string) (*estimateDomain.FileAccessToken, error)

	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)

	CountExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

// AdminChecker reports whether a caller holds the administrator role.
type AdminChecker interface {
	IsAdmin(ctx context.Context, callerID uuid.UUID) (bool, error)
}

// EstimateUseCase defines the estimate vault operations.
//
// Every operation taking a callerID requires an administrator; the check runs
// before any decryption or write.
type EstimateUseCase interface {
	// Seal encrypts and signs an estimate and stores it on the quote,
	// creating the quote if needed. Re-sealing always writes a new blob.
	Seal(
		ctx context.Context,
		callerID, quoteID uuid.UUID,
		input *estimateDomain.SealInput,
	) (*estimateDomain.Quote, error)

	// Decrypt runs the access-controlled retrieval flow. It is read-only.
	Decrypt(ctx context.Context, callerID, quoteID uuid.UUID) (*estimateDomain.RetrievalResult, error)

	// Calculate runs the cost model without persisting anything.
	Calculate(
		ctx context.Context,
		callerID uuid.UUID,
		input *estimateDomain.CalculationInput,
	) (*estimateDomain.InternalEstimate, error)

	// IssueFileReference seals a file descriptor and issues a paired secure token.
	IssueFileReference(
		ctx context.Context,
		callerID uuid.UUID,
		descriptor *estimateDomain.FileDescriptor,
	) (*estimateDomain.IssuedFileReference, error)

	// ResolveFileReference opens a reference presented together with its token.
	ResolveFileReference(ctx context.Context, reference, token string) (*estimateDomain.FileReference, error)

	// CleanExpiredFileTokens deletes file tokens that expired more than days
	// ago, or only counts them when dryRun is set.
	CleanExpiredFileTokens(ctx context.Context, days int, dryRun bool) (int64, error)
}

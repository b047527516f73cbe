package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/newtonic3d/estimatevault/internal/database"
	apperrors "github.com/newtonic3d/estimatevault/internal/errors"
	estimateDomain "github.com/newtonic3d/estimatevault/internal/estimate/domain"
)

// PostgreSQLFileTokenRepository implements FileAccessToken persistence for PostgreSQL.
type PostgreSQLFileTokenRepository struct {
	db *sql.DB
}

// Create inserts a new FileAccessToken.
func (p *PostgreSQLFileTokenRepository) Create(ctx context.Context, token *estimateDomain.FileAccessToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO file_access_tokens (id, token_hash, reference_hash, quote_id, expires_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.TokenHash,
		token.ReferenceHash,
		token.QuoteID,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create file access token")
	}
	return nil
}

// GetByTokenHash retrieves a token by the SHA-256 of its value.
// Returns ErrFileTokenNotFound if no token matches.
func (p *PostgreSQLFileTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*estimateDomain.FileAccessToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, token_hash, reference_hash, quote_id, expires_at, created_at
			  FROM file_access_tokens WHERE token_hash = $1`

	var token estimateDomain.FileAccessToken

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.TokenHash,
		&token.ReferenceHash,
		&token.QuoteID,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, estimateDomain.ErrFileTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get file access token")
	}

	return &token, nil
}

// DeleteExpired removes tokens that expired before olderThan and returns how many were deleted.
func (p *PostgreSQLFileTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM file_access_tokens WHERE expires_at < $1`

	result, err := querier.ExecContext(ctx, query, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired file access tokens")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}

	return count, nil
}

// CountExpired counts tokens that expired before olderThan without deleting them.
func (p *PostgreSQLFileTokenRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM file_access_tokens WHERE expires_at < $1`

	var count int64
	if err := querier.QueryRowContext(ctx, query, olderThan).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired file access tokens")
	}

	return count, nil
}

// NewPostgreSQLFileTokenRepository creates a new PostgreSQL FileAccessToken repository.
func NewPostgreSQLFileTokenRepository(db *sql.DB) *PostgreSQLFileTokenRepository {
	return &PostgreSQLFileTokenRepository{db: db}
}

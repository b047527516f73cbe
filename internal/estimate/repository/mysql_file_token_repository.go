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

// MySQLFileTokenRepository implements FileAccessToken persistence for MySQL
// using BINARY(16) UUID columns.
type MySQLFileTokenRepository struct {
	db *sql.DB
}

// Create inserts a new FileAccessToken.
func (m *MySQLFileTokenRepository) Create(ctx context.Context, token *estimateDomain.FileAccessToken) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO file_access_tokens (id, token_hash, reference_hash, quote_id, expires_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal file access token id")
	}

	quoteID, err := token.QuoteID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal quote id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		token.TokenHash,
		token.ReferenceHash,
		quoteID,
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
func (m *MySQLFileTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*estimateDomain.FileAccessToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, token_hash, reference_hash, quote_id, expires_at, created_at
			  FROM file_access_tokens WHERE token_hash = ?`

	var token estimateDomain.FileAccessToken
	var idBytes, quoteIDBytes []byte

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&idBytes,
		&token.TokenHash,
		&token.ReferenceHash,
		&quoteIDBytes,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, estimateDomain.ErrFileTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get file access token")
	}

	if err := token.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal file access token id")
	}
	if err := token.QuoteID.UnmarshalBinary(quoteIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal quote id")
	}

	return &token, nil
}

// DeleteExpired removes tokens that expired before olderThan and returns how many were deleted.
func (m *MySQLFileTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM file_access_tokens WHERE expires_at < ?`, olderThan)
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
func (m *MySQLFileTokenRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM file_access_tokens WHERE expires_at < ?`, olderThan).
		Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired file access tokens")
	}

	return count, nil
}

// NewMySQLFileTokenRepository creates a new MySQL FileAccessToken repository.
func NewMySQLFileTokenRepository(db *sql.DB) *MySQLFileTokenRepository {
	return &MySQLFileTokenRepository{db: db}
}

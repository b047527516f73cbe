package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	authDomain "github.com/newtonic3d/estimatevault/internal/auth/domain"
	"github.com/newtonic3d/estimatevault/internal/database"
	apperrors "github.com/newtonic3d/estimatevault/internal/errors"
)

const tokenColumns = `id, token_hash, client_id, expires_at, revoked_at, created_at`

var errZeroCutoff = apperrors.New("olderThan timestamp cannot be zero")

// TokenRepository persists bearer token hashes in the tokens table.
type TokenRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewTokenRepository returns a token repository for the given dialect.
func NewTokenRepository(db *sql.DB, dialect database.Dialect) *TokenRepository {
	return &TokenRepository{db: db, dialect: dialect}
}

func (r *TokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	query := r.dialect.Rebind(`INSERT INTO tokens (` + tokenColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := database.GetTx(ctx, r.db).ExecContext(ctx, query,
		r.dialect.UUID(token.ID),
		token.TokenHash,
		r.dialect.UUID(token.ClientID),
		token.ExpiresAt,
		token.RevokedAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// GetByTokenHash returns ErrTokenNotFound when no row has tokenHash.
func (r *TokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error) {
	query := r.dialect.Rebind(`SELECT ` + tokenColumns + ` FROM tokens WHERE token_hash = ?`)

	var token authDomain.Token
	err := database.GetTx(ctx, r.db).QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.TokenHash,
		&token.ClientID,
		&token.ExpiresAt,
		&token.RevokedAt,
		&token.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, authDomain.ErrTokenNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get token")
	}
	return &token, nil
}

// Revoke stamps revoked_at once; an already revoked token keeps its first timestamp.
func (r *TokenRepository) Revoke(ctx context.Context, tokenHash string, revokedAt time.Time) error {
	query := r.dialect.Rebind(`UPDATE tokens SET revoked_at = ? WHERE token_hash = ? AND revoked_at IS NULL`)

	if _, err := database.GetTx(ctx, r.db).ExecContext(ctx, query, revokedAt, tokenHash); err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}
	return nil
}

func (r *TokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, errZeroCutoff
	}

	result, err := database.GetTx(ctx, r.db).ExecContext(ctx,
		r.dialect.Rebind(`DELETE FROM tokens WHERE expires_at < ?`), olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired tokens")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return count, nil
}

func (r *TokenRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, errZeroCutoff
	}

	var count int64
	err := database.GetTx(ctx, r.db).QueryRowContext(ctx,
		r.dialect.Rebind(`SELECT COUNT(*) FROM tokens WHERE expires_at < ?`), olderThan).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired tokens")
	}
	return count, nil
}

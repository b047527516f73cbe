// Package repository implements quote document and file access token
// persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/newtonic3d/estimatevault/internal/database"
	apperrors "github.com/newtonic3d/estimatevault/internal/errors"
	estimateDomain "github.com/newtonic3d/estimatevault/internal/estimate/domain"
)

// PostgreSQLQuoteRepository implements Quote persistence for PostgreSQL.
// The sealed estimate is stored as an opaque TEXT column.
type PostgreSQLQuoteRepository struct {
	db *sql.DB
}

// Get retrieves a Quote by ID. Returns ErrQuoteNotFound if the quote doesn't exist.
func (p *PostgreSQLQuoteRepository) Get(ctx context.Context, quoteID uuid.UUID) (*estimateDomain.Quote, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, estimated_price, estimated_days, internal_estimates, data_signature,
			  security_level, last_calculated_at, created_at, updated_at
			  FROM quotes WHERE id = $1`

	var quote estimateDomain.Quote

	err := querier.QueryRowContext(ctx, query, quoteID).Scan(
		&quote.ID,
		&quote.EstimatedPrice,
		&quote.EstimatedDays,
		&quote.InternalEstimates,
		&quote.DataSignature,
		&quote.SecurityLevel,
		&quote.LastCalculatedAt,
		&quote.CreatedAt,
		&quote.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, estimateDomain.ErrQuoteNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get quote")
	}

	return &quote, nil
}

// Upsert inserts the quote or, when it already exists, replaces its public
// figures and sealed estimate fields. created_at is never overwritten.
func (p *PostgreSQLQuoteRepository) Upsert(ctx context.Context, quote *estimateDomain.Quote) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO quotes (id, estimated_price, estimated_days, internal_estimates, data_signature,
			  security_level, last_calculated_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  ON CONFLICT (id) DO UPDATE SET
			  	  estimated_price = EXCLUDED.estimated_price,
			  	  estimated_days = EXCLUDED.estimated_days,
			  	  internal_estimates = EXCLUDED.internal_estimates,
			  	  data_signature = EXCLUDED.data_signature,
			  	  security_level = EXCLUDED.security_level,
			  	  last_calculated_at = EXCLUDED.last_calculated_at,
			  	  updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		quote.ID,
		quote.EstimatedPrice,
		quote.EstimatedDays,
		quote.InternalEstimates,
		quote.DataSignature,
		quote.SecurityLevel,
		quote.LastCalculatedAt,
		quote.CreatedAt,
		quote.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert quote")
	}
	return nil
}

// NewPostgreSQLQuoteRepository creates a new PostgreSQL Quote repository.
func NewPostgreSQLQuoteRepository(db *sql.DB) *PostgreSQLQuoteRepository {
	return &PostgreSQLQuoteRepository{db: db}
}

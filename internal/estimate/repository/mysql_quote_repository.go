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

// MySQLQuoteRepository implements Quote persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLQuoteRepository struct {
	db *sql.DB
}

// Get retrieves a Quote by ID. Returns ErrQuoteNotFound if the quote doesn't exist.
func (m *MySQLQuoteRepository) Get(ctx context.Context, quoteID uuid.UUID) (*estimateDomain.Quote, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, estimated_price, estimated_days, internal_estimates, data_signature,
			  security_level, last_calculated_at, created_at, updated_at
			  FROM quotes WHERE id = ?`

	id, err := quoteID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal quote id")
	}

	var quote estimateDomain.Quote
	var idBytes []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBytes,
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

	if err := quote.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal quote id")
	}

	return &quote, nil
}

// Upsert inserts the quote or replaces its estimate fields on a duplicate id.
func (m *MySQLQuoteRepository) Upsert(ctx context.Context, quote *estimateDomain.Quote) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO quotes (id, estimated_price, estimated_days, internal_estimates, data_signature,
			  security_level, last_calculated_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			  	  estimated_price = VALUES(estimated_price),
			  	  estimated_days = VALUES(estimated_days),
			  	  internal_estimates = VALUES(internal_estimates),
			  	  data_signature = VALUES(data_signature),
			  	  security_level = VALUES(security_level),
			  	  last_calculated_at = VALUES(last_calculated_at),
			  	  updated_at = VALUES(updated_at)`

	id, err := quote.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal quote id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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

// NewMySQLQuoteRepository creates a new MySQL Quote repository.
func NewMySQLQuoteRepository(db *sql.DB) *MySQLQuoteRepository {
	return &MySQLQuoteRepository{db: db}
}

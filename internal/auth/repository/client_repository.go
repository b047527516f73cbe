// Package repository stores API clients and bearer tokens. One implementation
// serves both PostgreSQL and MySQL through database.Dialect.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/newtonic3d/estimatevault/internal/auth/domain"
	"github.com/newtonic3d/estimatevault/internal/database"
	apperrors "github.com/newtonic3d/estimatevault/internal/errors"
)

const clientColumns = `id, secret, name, is_active, is_admin, created_at`

// ClientRepository persists clients in the clients table.
type ClientRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewClientRepository returns a client repository for the given dialect.
func NewClientRepository(db *sql.DB, dialect database.Dialect) *ClientRepository {
	return &ClientRepository{db: db, dialect: dialect}
}

func (r *ClientRepository) Create(ctx context.Context, client *authDomain.Client) error {
	query := r.dialect.Rebind(`INSERT INTO clients (` + clientColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := database.GetTx(ctx, r.db).ExecContext(ctx, query,
		r.dialect.UUID(client.ID),
		client.Secret,
		client.Name,
		client.IsActive,
		client.IsAdmin,
		client.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create client")
	}
	return nil
}

// Update overwrites secret, name and both flags. created_at never changes.
func (r *ClientRepository) Update(ctx context.Context, client *authDomain.Client) error {
	query := r.dialect.Rebind(
		`UPDATE clients SET secret = ?, name = ?, is_active = ?, is_admin = ? WHERE id = ?`,
	)

	_, err := database.GetTx(ctx, r.db).ExecContext(ctx, query,
		client.Secret,
		client.Name,
		client.IsActive,
		client.IsAdmin,
		r.dialect.UUID(client.ID),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update client")
	}
	return nil
}

// Get returns ErrClientNotFound when no row has clientID.
func (r *ClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	query := r.dialect.Rebind(`SELECT ` + clientColumns + ` FROM clients WHERE id = ?`)

	var client authDomain.Client
	err := database.GetTx(ctx, r.db).QueryRowContext(ctx, query, r.dialect.UUID(clientID)).Scan(
		&client.ID,
		&client.Secret,
		&client.Name,
		&client.IsActive,
		&client.IsAdmin,
		&client.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, authDomain.ErrClientNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get client")
	}
	return &client, nil
}

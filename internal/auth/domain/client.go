// Package domain defines the API clients that call the estimate vault and the
// bearer tokens they authenticate with.
//
// A client is either an administrator, allowed to seal and read confidential
// estimates, or a regular client that can only authenticate.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client is an API caller identified by an id and a hashed secret.
type Client struct {
	ID        uuid.UUID
	Secret    string //nolint:gosec // argon2id hash, never the plain secret
	Name      string
	IsActive  bool
	IsAdmin   bool
	CreatedAt time.Time
}

// Role returns "admin" for administrators and "client" otherwise.
func (c *Client) Role() string {
	if c.IsAdmin {
		return RoleAdmin
	}
	return RoleClient
}

// CanAccessEstimates reports whether the client may use estimate vault operations.
// Inactive administrators are treated as regular clients.
func (c *Client) CanAccessEstimates() bool {
	return c.IsActive && c.IsAdmin
}

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// CreateClientInput holds the fields of a new client. The secret is generated.
type CreateClientInput struct {
	Name     string
	IsActive bool
	IsAdmin  bool
}

// CreateClientOutput carries the plain secret, which is only ever returned here.
type CreateClientOutput struct {
	ID          uuid.UUID
	PlainSecret string
}

// UpdateClientInput holds the mutable fields of a client.
type UpdateClientInput struct {
	Name     string
	IsActive bool
	IsAdmin  bool
}

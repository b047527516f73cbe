package usecase

import (
	"context"

	"github.com/google/uuid"
)

// AdminChecker answers role lookups for the estimate vault from the client store.
type AdminChecker struct {
	clientRepo ClientRepository
}

// IsAdmin reports whether the client exists, is active, and holds the admin role.
// A missing client surfaces as ErrClientNotFound.
func (a *AdminChecker) IsAdmin(ctx context.Context, callerID uuid.UUID) (bool, error) {
	client, err := a.clientRepo.Get(ctx, callerID)
	if err != nil {
		return false, err
	}
	return client.CanAccessEstimates(), nil
}

// NewAdminChecker creates an AdminChecker backed by clientRepo.
func NewAdminChecker(clientRepo ClientRepository) *AdminChecker {
	return &AdminChecker{clientRepo: clientRepo}
}

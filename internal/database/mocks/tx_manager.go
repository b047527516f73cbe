// Package mocks provides mock implementations of database interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of database.TxManager.
//
// When no return value is configured for the call, WithTx runs fn with ctx
// and returns its error, so tests only need to set expectations on the
// repositories used inside the transaction.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks the WithTx method of TxManager.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if len(args) == 0 {
		return fn(ctx)
	}
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

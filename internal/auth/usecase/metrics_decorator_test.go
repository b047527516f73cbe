package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/newtonic3d/estimatevault/internal/auth/domain"
	authUsecaseMocks "github.com/newtonic3d/estimatevault/internal/auth/usecase/mocks"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *mockBusinessMetrics) RecordSecurityEvent(ctx context.Context, domain, operation, event string) {
	m.Called(ctx, domain, operation, event)
}

func expectAuthMetrics(ctx context.Context, m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", ctx, "auth", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "auth", operation, mock.AnythingOfType("time.Duration"), status).Return().Once()
}

func TestTokenUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Authenticate", func(t *testing.T) {
		next := &authUsecaseMocks.MockTokenUseCase{}
		m := &mockBusinessMetrics{}
		decorator := NewTokenUseCaseWithMetrics(next, m)
		client := &authDomain.Client{ID: uuid.Must(uuid.NewV7())}

		next.On("Authenticate", ctx, "hash").Return(client, nil).Once()
		expectAuthMetrics(ctx, m, "token_authenticate", "success")

		got, err := decorator.Authenticate(ctx, "hash")
		require.NoError(t, err)
		assert.Equal(t, client, got)
		m.AssertExpectations(t)
	})

	t.Run("Error_Issue", func(t *testing.T) {
		next := &authUsecaseMocks.MockTokenUseCase{}
		m := &mockBusinessMetrics{}
		decorator := NewTokenUseCaseWithMetrics(next, m)
		input := &authDomain.IssueTokenInput{}

		next.On("Issue", ctx, input).Return(nil, authDomain.ErrInvalidCredentials).Once()
		expectAuthMetrics(ctx, m, "token_issue", "error")

		_, err := decorator.Issue(ctx, input)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		m.AssertExpectations(t)
	})

	t.Run("Success_CleanupExpired", func(t *testing.T) {
		next := &authUsecaseMocks.MockTokenUseCase{}
		m := &mockBusinessMetrics{}
		decorator := NewTokenUseCaseWithMetrics(next, m)

		next.On("CleanupExpired", ctx, 30, true).Return(int64(9), nil).Once()
		expectAuthMetrics(ctx, m, "token_cleanup", "success")

		count, err := decorator.CleanupExpired(ctx, 30, true)
		require.NoError(t, err)
		assert.Equal(t, int64(9), count)
		m.AssertExpectations(t)
	})
}

func TestClientUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	next := &authUsecaseMocks.MockClientUseCase{}
	m := &mockBusinessMetrics{}
	decorator := NewClientUseCaseWithMetrics(next, m)
	clientID := uuid.Must(uuid.NewV7())

	next.On("Delete", ctx, clientID).Return(errors.New("boom")).Once()
	expectAuthMetrics(ctx, m, "client_delete", "error")

	assert.Error(t, decorator.Delete(ctx, clientID))
	m.AssertExpectations(t)
}

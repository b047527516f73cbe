package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/newtonic3d/estimatevault/internal/auth/domain"
	authServiceMocks "github.com/newtonic3d/estimatevault/internal/auth/service/mocks"
	authUsecaseMocks "github.com/newtonic3d/estimatevault/internal/auth/usecase/mocks"
	apperrors "github.com/newtonic3d/estimatevault/internal/errors"
)

func TestClientUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_AdminClient", func(t *testing.T) {
		clientRepo := &authUsecaseMocks.MockClientRepository{}
		secretService := &authServiceMocks.MockSecretService{}
		uc := NewClientUseCase(clientRepo, secretService)

		secretService.On("GenerateSecret").Return("plain-secret", "$argon2id$hash", nil).Once()
		clientRepo.On("Create", ctx, mock.MatchedBy(func(c *authDomain.Client) bool {
			return c.Name == "estimator" && c.IsAdmin && c.IsActive && c.Secret == "$argon2id$hash" &&
				c.ID != uuid.Nil
		})).Return(nil).Once()

		output, err := uc.Create(ctx, &authDomain.CreateClientInput{Name: "estimator", IsActive: true, IsAdmin: true})
		require.NoError(t, err)
		assert.Equal(t, "plain-secret", output.PlainSecret)
		assert.NotEqual(t, uuid.Nil, output.ID)
		clientRepo.AssertExpectations(t)
		secretService.AssertExpectations(t)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		clientRepo := &authUsecaseMocks.MockClientRepository{}
		secretService := &authServiceMocks.MockSecretService{}
		uc := NewClientUseCase(clientRepo, secretService)

		output, err := uc.Create(ctx, &authDomain.CreateClientInput{Name: "   "})
		assert.Nil(t, output)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		secretService.AssertNotCalled(t, "GenerateSecret")
	})

	t.Run("Error_RepositoryFails", func(t *testing.T) {
		clientRepo := &authUsecaseMocks.MockClientRepository{}
		secretService := &authServiceMocks.MockSecretService{}
		uc := NewClientUseCase(clientRepo, secretService)
		repoErr := errors.New("database down")

		secretService.On("GenerateSecret").Return("plain", "hash", nil).Once()
		clientRepo.On("Create", ctx, mock.Anything).Return(repoErr).Once()

		output, err := uc.Create(ctx, &authDomain.CreateClientInput{Name: "estimator"})
		assert.Nil(t, output)
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestClientUseCase_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.Must(uuid.NewV7())

	t.Run("Success_UpdatePromotesToAdmin", func(t *testing.T) {
		clientRepo := &authUsecaseMocks.MockClientRepository{}
		uc := NewClientUseCase(clientRepo, &authServiceMocks.MockSecretService{})
		existing := &authDomain.Client{ID: clientID, Name: "old", Secret: "hash", IsActive: true}

		clientRepo.On("Get", ctx, clientID).Return(existing, nil).Once()
		clientRepo.On("Update", ctx, mock.MatchedBy(func(c *authDomain.Client) bool {
			return c.Name == "new" && c.IsAdmin && c.Secret == "hash"
		})).Return(nil).Once()

		err := uc.Update(ctx, clientID, &authDomain.UpdateClientInput{Name: "new", IsActive: true, IsAdmin: true})
		require.NoError(t, err)
		clientRepo.AssertExpectations(t)
	})

	t.Run("Error_UpdateNotFound", func(t *testing.T) {
		clientRepo := &authUsecaseMocks.MockClientRepository{}
		uc := NewClientUseCase(clientRepo, &authServiceMocks.MockSecretService{})

		clientRepo.On("Get", ctx, clientID).Return(nil, authDomain.ErrClientNotFound).Once()

		err := uc.Update(ctx, clientID, &authDomain.UpdateClientInput{Name: "new"})
		assert.ErrorIs(t, err, authDomain.ErrClientNotFound)
	})

	t.Run("Success_DeleteDeactivates", func(t *testing.T) {
		clientRepo := &authUsecaseMocks.MockClientRepository{}
		uc := NewClientUseCase(clientRepo, &authServiceMocks.MockSecretService{})
		existing := &authDomain.Client{ID: clientID, Name: "admin", IsActive: true, IsAdmin: true}

		clientRepo.On("Get", ctx, clientID).Return(existing, nil).Once()
		clientRepo.On("Update", ctx, mock.MatchedBy(func(c *authDomain.Client) bool {
			return !c.IsActive && c.IsAdmin
		})).Return(nil).Once()

		require.NoError(t, uc.Delete(ctx, clientID))
		clientRepo.AssertExpectations(t)
	})
}

func TestAdminChecker_IsAdmin(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.Must(uuid.NewV7())

	tests := []struct {
		name      string
		client    *authDomain.Client
		repoErr   error
		expected  bool
		expectErr error
	}{
		{name: "Success_ActiveAdmin", client: &authDomain.Client{IsActive: true, IsAdmin: true}, expected: true},
		{name: "Success_InactiveAdmin", client: &authDomain.Client{IsAdmin: true}, expected: false},
		{name: "Success_RegularClient", client: &authDomain.Client{IsActive: true}, expected: false},
		{name: "Error_NotFound", repoErr: authDomain.ErrClientNotFound, expectErr: apperrors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clientRepo := &authUsecaseMocks.MockClientRepository{}
			checker := NewAdminChecker(clientRepo)

			if tt.repoErr != nil {
				clientRepo.On("Get", ctx, clientID).Return(nil, tt.repoErr).Once()
			} else {
				clientRepo.On("Get", ctx, clientID).Return(tt.client, nil).Once()
			}

			isAdmin, err := checker.IsAdmin(ctx, clientID)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, isAdmin)
		})
	}
}

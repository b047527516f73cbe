package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/newtonic3d/estimatevault/internal/auth/domain"
	authService "github.com/newtonic3d/estimatevault/internal/auth/service"
	customValidation "github.com/newtonic3d/estimatevault/internal/validation"
)

type clientUseCase struct {
	clientRepo    ClientRepository
	secretService authService.SecretService
}

func validateClientName(name string) error {
	err := validation.Validate(name, validation.Required, customValidation.NotBlank, validation.Length(1, 255))
	if err != nil {
		return customValidation.WrapValidationError(err)
	}
	return nil
}

// Create generates and persists a new client with a random secret.
func (c *clientUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateClientInput,
) (*authDomain.CreateClientOutput, error) {
	if err := validateClientName(input.Name); err != nil {
		return nil, err
	}

	plainSecret, hashedSecret, err := c.secretService.GenerateSecret()
	if err != nil {
		return nil, err
	}

	client := &authDomain.Client{
		ID:        uuid.Must(uuid.NewV7()),
		Secret:    hashedSecret,
		Name:      input.Name,
		IsActive:  input.IsActive,
		IsAdmin:   input.IsAdmin,
		CreatedAt: time.Now().UTC(),
	}

	if err := c.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return &authDomain.CreateClientOutput{
		ID:          client.ID,
		PlainSecret: plainSecret,
	}, nil
}

// Update changes the name, active flag and admin role. The secret is unchanged.
func (c *clientUseCase) Update(
	ctx context.Context,
	clientID uuid.UUID,
	input *authDomain.UpdateClientInput,
) error {
	if err := validateClientName(input.Name); err != nil {
		return err
	}

	client, err := c.clientRepo.Get(ctx, clientID)
	if err != nil {
		return err
	}

	client.Name = input.Name
	client.IsActive = input.IsActive
	client.IsAdmin = input.IsAdmin

	return c.clientRepo.Update(ctx, client)
}

func (c *clientUseCase) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	return c.clientRepo.Get(ctx, clientID)
}

func (c *clientUseCase) Delete(ctx context.Context, clientID uuid.UUID) error {
	client, err := c.clientRepo.Get(ctx, clientID)
	if err != nil {
		return err
	}

	client.IsActive = false
	return c.clientRepo.Update(ctx, client)
}

// NewClientUseCase creates a new ClientUseCase with the provided dependencies.
func NewClientUseCase(clientRepo ClientRepository, secretService authService.SecretService) ClientUseCase {
	return &clientUseCase{
		clientRepo:    clientRepo,
		secretService: secretService,
	}
}

package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/newtonic3d/estimatevault/internal/auth/domain"
	authService "github.com/newtonic3d/estimatevault/internal/auth/service"
	apperrors "github.com/newtonic3d/estimatevault/internal/errors"
)

type tokenUseCase struct {
	tokenExpiration time.Duration
	clientRepo      ClientRepository
	tokenRepo       TokenRepository
	secretService   authService.SecretService
	tokenService    authService.TokenService
}

// Issue verifies the client's secret and stores a new token hash.
//
// Unknown clients and wrong secrets both yield ErrInvalidCredentials.
// A known but deactivated client yields ErrClientInactive.
func (t *tokenUseCase) Issue(
	ctx context.Context,
	input *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	client, err := t.clientRepo.Get(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, authDomain.ErrClientNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !t.secretService.CompareSecret(input.ClientSecret, client.Secret) {
		return nil, authDomain.ErrInvalidCredentials
	}

	if !client.IsActive {
		return nil, authDomain.ErrClientInactive
	}

	plainToken, tokenHash, err := t.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	token := &authDomain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: tokenHash,
		ClientID:  client.ID,
		ExpiresAt: now.Add(t.tokenExpiration),
		CreatedAt: now,
	}

	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &authDomain.IssueTokenOutput{
		PlainToken: plainToken,
		ExpiresAt:  token.ExpiresAt,
	}, nil
}

// Authenticate returns ErrInvalidCredentials for unknown, expired or revoked
// tokens, and ErrClientInactive when the owning client was deactivated.
func (t *tokenUseCase) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Client, error) {
	token, err := t.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrTokenNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !token.Usable(time.Now().UTC()) {
		return nil, authDomain.ErrInvalidCredentials
	}

	client, err := t.clientRepo.Get(ctx, token.ClientID)
	if err != nil {
		if errors.Is(err, authDomain.ErrClientNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !client.IsActive {
		return nil, authDomain.ErrClientInactive
	}

	return client, nil
}

func (t *tokenUseCase) Revoke(ctx context.Context, tokenHash string) error {
	return t.tokenRepo.Revoke(ctx, tokenHash, time.Now().UTC())
}

func (t *tokenUseCase) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "days must be non-negative")
	}

	olderThan := time.Now().UTC().AddDate(0, 0, -days)
	if dryRun {
		return t.tokenRepo.CountExpired(ctx, olderThan)
	}
	return t.tokenRepo.DeleteExpired(ctx, olderThan)
}

// NewTokenUseCase creates a new TokenUseCase. Issued tokens expire after tokenExpiration.
func NewTokenUseCase(
	tokenExpiration time.Duration,
	clientRepo ClientRepository,
	tokenRepo TokenRepository,
	secretService authService.SecretService,
	tokenService authService.TokenService,
) TokenUseCase {
	return &tokenUseCase{
		tokenExpiration: tokenExpiration,
		clientRepo:      clientRepo,
		tokenRepo:       tokenRepo,
		secretService:   secretService,
		tokenService:    tokenService,
	}
}

package app

import (
	"fmt"

	authHTTP "github.com/newtonic3d/estimatevault/internal/auth/http"
	authRepository "github.com/newtonic3d/estimatevault/internal/auth/repository"
	authService "github.com/newtonic3d/estimatevault/internal/auth/service"
	authUseCase "github.com/newtonic3d/estimatevault/internal/auth/usecase"
	"github.com/newtonic3d/estimatevault/internal/database"
)

type authComponents struct {
	secretService    lazy[authService.SecretService]
	tokenService     lazy[authService.TokenService]
	clientRepository lazy[authUseCase.ClientRepository]
	tokenRepository  lazy[authUseCase.TokenRepository]
	clientUseCase    lazy[authUseCase.ClientUseCase]
	tokenUseCase     lazy[authUseCase.TokenUseCase]
	tokenHandler     lazy[*authHTTP.TokenHandler]
}

// SecretService returns the client secret hashing service.
func (c *Container) SecretService() authService.SecretService {
	svc, _ := c.secretService.get(func() (authService.SecretService, error) {
		return authService.NewSecretService(), nil
	})
	return svc
}

// TokenService returns the bearer token service.
func (c *Container) TokenService() authService.TokenService {
	svc, _ := c.tokenService.get(func() (authService.TokenService, error) {
		return authService.NewTokenService(), nil
	})
	return svc
}

// ClientRepository returns the client repository for the configured driver.
func (c *Container) ClientRepository() (authUseCase.ClientRepository, error) {
	return c.clientRepository.get(func() (authUseCase.ClientRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for client repository: %w", err)
		}
		dialect, err := database.DialectFor(c.config.DBDriver)
		if err != nil {
			return nil, err
		}
		return authRepository.NewClientRepository(db, dialect), nil
	})
}

// TokenRepository returns the token repository for the configured driver.
func (c *Container) TokenRepository() (authUseCase.TokenRepository, error) {
	return c.tokenRepository.get(func() (authUseCase.TokenRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for token repository: %w", err)
		}
		dialect, err := database.DialectFor(c.config.DBDriver)
		if err != nil {
			return nil, err
		}
		return authRepository.NewTokenRepository(db, dialect), nil
	})
}

// ClientUseCase returns the client use case, instrumented when metrics are enabled.
func (c *Container) ClientUseCase() (authUseCase.ClientUseCase, error) {
	return c.clientUseCase.get(func() (authUseCase.ClientUseCase, error) {
		clientRepo, err := c.ClientRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get client repository for client use case: %w", err)
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}
		useCase := authUseCase.NewClientUseCase(clientRepo, c.SecretService())
		return authUseCase.NewClientUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// TokenUseCase returns the token use case, instrumented when metrics are enabled.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	return c.tokenUseCase.get(func() (authUseCase.TokenUseCase, error) {
		clientRepo, err := c.ClientRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get client repository for token use case: %w", err)
		}
		tokenRepo, err := c.TokenRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get token repository for token use case: %w", err)
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}
		useCase := authUseCase.NewTokenUseCase(
			c.config.AuthTokenExpiration,
			clientRepo,
			tokenRepo,
			c.SecretService(),
			c.TokenService(),
		)
		return authUseCase.NewTokenUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// TokenHandler returns the HTTP handler for token issuance and revocation.
func (c *Container) TokenHandler() (*authHTTP.TokenHandler, error) {
	return c.tokenHandler.get(func() (*authHTTP.TokenHandler, error) {
		tokenUseCase, err := c.TokenUseCase()
		if err != nil {
			return nil, err
		}
		return authHTTP.NewTokenHandler(tokenUseCase, c.TokenService(), c.Logger()), nil
	})
}

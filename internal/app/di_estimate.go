package app

import (
	"database/sql"
	"fmt"

	authUseCase "github.com/newtonic3d/estimatevault/internal/auth/usecase"
	estimateHTTP "github.com/newtonic3d/estimatevault/internal/estimate/http"
	estimateRepository "github.com/newtonic3d/estimatevault/internal/estimate/repository"
	estimateService "github.com/newtonic3d/estimatevault/internal/estimate/service"
	estimateUseCase "github.com/newtonic3d/estimatevault/internal/estimate/usecase"
)

type estimateComponents struct {
	quoteRepository     lazy[estimateUseCase.QuoteRepository]
	fileTokenRepository lazy[estimateUseCase.FileTokenRepository]
	estimateVault       lazy[estimateService.EstimateVault]
	signer              lazy[estimateService.Signer]
	estimateUseCase     lazy[estimateUseCase.EstimateUseCase]
	estimateHandler     lazy[*estimateHTTP.EstimateHandler]
}

// QuoteRepository returns the quote repository for the configured driver.
func (c *Container) QuoteRepository() (estimateUseCase.QuoteRepository, error) {
	return c.quoteRepository.get(func() (estimateUseCase.QuoteRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for quote repository: %w", err)
		}
		return repositoryFor[estimateUseCase.QuoteRepository](c.config.DBDriver, db,
			func(db *sql.DB) estimateUseCase.QuoteRepository {
				return estimateRepository.NewPostgreSQLQuoteRepository(db)
			},
			func(db *sql.DB) estimateUseCase.QuoteRepository {
				return estimateRepository.NewMySQLQuoteRepository(db)
			},
		)
	})
}

// FileTokenRepository returns the file token repository for the configured driver.
func (c *Container) FileTokenRepository() (estimateUseCase.FileTokenRepository, error) {
	return c.fileTokenRepository.get(func() (estimateUseCase.FileTokenRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for file token repository: %w", err)
		}
		return repositoryFor[estimateUseCase.FileTokenRepository](c.config.DBDriver, db,
			func(db *sql.DB) estimateUseCase.FileTokenRepository {
				return estimateRepository.NewPostgreSQLFileTokenRepository(db)
			},
			func(db *sql.DB) estimateUseCase.FileTokenRepository {
				return estimateRepository.NewMySQLFileTokenRepository(db)
			},
		)
	})
}

// EstimateVault returns the vault that seals estimates and file references.
func (c *Container) EstimateVault() (estimateService.EstimateVault, error) {
	return c.estimateVault.get(func() (estimateService.EstimateVault, error) {
		envelope, err := c.Envelope()
		if err != nil {
			return nil, err
		}
		return estimateService.NewEstimateVault(
			envelope,
			c.config.EstimateFreshnessWindow,
			c.config.FileReferenceTTL,
		), nil
	})
}

// Signer returns the HMAC signer keyed by the master secret.
func (c *Container) Signer() (estimateService.Signer, error) {
	return c.signer.get(func() (estimateService.Signer, error) {
		secret, err := c.MasterSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to load master secret: %w", err)
		}
		return estimateService.NewSigner(secret), nil
	})
}

// EstimateUseCase returns the estimate use case, instrumented when metrics are enabled.
func (c *Container) EstimateUseCase() (estimateUseCase.EstimateUseCase, error) {
	return c.estimateUseCase.get(func() (estimateUseCase.EstimateUseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, err
		}
		quoteRepo, err := c.QuoteRepository()
		if err != nil {
			return nil, err
		}
		fileTokenRepo, err := c.FileTokenRepository()
		if err != nil {
			return nil, err
		}
		clientRepo, err := c.ClientRepository()
		if err != nil {
			return nil, err
		}
		vault, err := c.EstimateVault()
		if err != nil {
			return nil, err
		}
		signer, err := c.Signer()
		if err != nil {
			return nil, err
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		useCase := estimateUseCase.NewEstimateUseCase(
			txManager,
			quoteRepo,
			fileTokenRepo,
			authUseCase.NewAdminChecker(clientRepo),
			vault,
			signer,
			estimateService.NewSecureHasher(),
			estimateService.NewCalculator(),
			c.Logger(),
		)
		return estimateUseCase.NewEstimateUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// EstimateHandler returns the HTTP handler for the estimate routes.
func (c *Container) EstimateHandler() (*estimateHTTP.EstimateHandler, error) {
	return c.estimateHandler.get(func() (*estimateHTTP.EstimateHandler, error) {
		useCase, err := c.EstimateUseCase()
		if err != nil {
			return nil, err
		}
		return estimateHTTP.NewEstimateHandler(useCase, c.Logger()), nil
	})
}

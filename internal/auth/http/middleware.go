package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/newtonic3d/estimatevault/internal/auth/service"
	authUseCase "github.com/newtonic3d/estimatevault/internal/auth/usecase"
	apperrors "github.com/newtonic3d/estimatevault/internal/errors"
	"github.com/newtonic3d/estimatevault/internal/httputil"
)

const bearerPrefix = "bearer "

// AuthenticationMiddleware authenticates requests via a Bearer token in the
// Authorization header and stores the client in the request context.
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Unknown, expired or revoked token → 401 Unauthorized
//   - Inactive client → 403 Forbidden
//
// Role checks are not done here: estimate operations verify the administrator
// role themselves before touching any ciphertext.
func AuthenticationMiddleware(
	tokenUseCase authUseCase.TokenUseCase,
	tokenService authService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		plainToken, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		client, err := tokenUseCase.Authenticate(c.Request.Context(), tokenService.HashToken(plainToken))
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithClient(c.Request.Context(), client))

		logger.Debug("authentication successful",
			slog.String("client_id", client.ID.String()),
			slog.String("role", client.Role()))

		c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>", matching the scheme
// case-insensitively.
func bearerToken(header string) (string, bool) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

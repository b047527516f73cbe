// Package http provides HTTP handlers for the estimate vault: sealing and
// retrieving confidential estimates, running the cost model, and issuing and
// resolving file references.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/newtonic3d/estimatevault/internal/auth/http"
	apperrors "github.com/newtonic3d/estimatevault/internal/errors"
	"github.com/newtonic3d/estimatevault/internal/estimate/http/dto"
	estimateUseCase "github.com/newtonic3d/estimatevault/internal/estimate/usecase"
	"github.com/newtonic3d/estimatevault/internal/httputil"
	customValidation "github.com/newtonic3d/estimatevault/internal/validation"
)

// EstimateHandler handles HTTP requests for estimate vault operations.
//
// Handlers only resolve the caller; the administrator check is enforced by the
// use case before any decryption or write.
type EstimateHandler struct {
	estimateUseCase estimateUseCase.EstimateUseCase
	logger          *slog.Logger
}

// NewEstimateHandler creates a new estimate handler with required dependencies.
func NewEstimateHandler(
	estimateUseCase estimateUseCase.EstimateUseCase,
	logger *slog.Logger,
) *EstimateHandler {
	return &EstimateHandler{
		estimateUseCase: estimateUseCase,
		logger:          logger,
	}
}

// callerID returns the authenticated client id, or uuid.Nil when the request
// carries no client.
func callerID(c *gin.Context) uuid.UUID {
	client, ok := authHTTP.GetClient(c.Request.Context())
	if !ok || client == nil {
		return uuid.Nil
	}
	return client.ID
}

func (h *EstimateHandler) quoteID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid quote ID format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// SealHandler encrypts and signs an estimate and stores it on the quote.
// PUT /v1/quotes/:id/estimate - Requires an administrator.
// Returns 200 OK with the quote's public figures.
func (h *EstimateHandler) SealHandler(c *gin.Context) {
	quoteID, ok := h.quoteID(c)
	if !ok {
		return
	}

	var req dto.SealEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	quote, err := h.estimateUseCase.Seal(c.Request.Context(), callerID(c), quoteID, req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapQuoteToSealResponse(quote))
}

// RetrieveHandler decrypts and verifies the estimate sealed on a quote.
// GET /v1/quotes/:id/estimate - Requires an administrator.
// Returns 200 OK with the estimate, its verification status and any warnings.
func (h *EstimateHandler) RetrieveHandler(c *gin.Context) {
	quoteID, ok := h.quoteID(c)
	if !ok {
		return
	}

	result, err := h.estimateUseCase.Decrypt(c.Request.Context(), callerID(c), quoteID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.MapRetrievalToResponse(quoteID.String(), result))
}

// CalculateHandler runs the cost model without persisting anything.
// POST /v1/estimates/calculate - Requires an administrator.
func (h *EstimateHandler) CalculateHandler(c *gin.Context) {
	var req dto.CalculateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	estimate, err := h.estimateUseCase.Calculate(c.Request.Context(), callerID(c), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEstimateToResponse(*estimate))
}

// IssueFileReferenceHandler issues an encrypted, time-bound reference to a
// file attached to the quote.
// POST /v1/quotes/:id/file-references - Requires an administrator.
// Returns 201 Created with the reference and its one-time-visible token.
func (h *EstimateHandler) IssueFileReferenceHandler(c *gin.Context) {
	quoteID, ok := h.quoteID(c)
	if !ok {
		return
	}

	var req dto.IssueFileReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	issued, err := h.estimateUseCase.IssueFileReference(
		c.Request.Context(),
		callerID(c),
		req.ToDomain(quoteID),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapIssuedFileReferenceToResponse(issued))
}

// ResolveFileReferenceHandler opens a reference presented with its token.
// POST /v1/file-references/resolve - Requires authentication.
func (h *EstimateHandler) ResolveFileReferenceHandler(c *gin.Context) {
	if callerID(c) == uuid.Nil {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.ResolveFileReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ref, err := h.estimateUseCase.ResolveFileReference(c.Request.Context(), req.Reference, req.Token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFileReferenceToResponse(ref))
}

// VaultUnavailableHandler answers every estimate route while the master secret
// is missing or invalid. Auth and health routes are unaffected.
func VaultUnavailableHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger.Warn("estimate vault unavailable", slog.String("path", c.Request.URL.Path))
		c.JSON(http.StatusServiceUnavailable, httputil.ErrorResponse{
			Error:   "vault_unavailable",
			Message: "The estimate vault is not configured",
		})
	}
}

package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/newtonic3d/estimatevault/internal/auth/domain"
	authHTTP "github.com/newtonic3d/estimatevault/internal/auth/http"
	cryptoDomain "github.com/newtonic3d/estimatevault/internal/crypto/domain"
	estimateDomain "github.com/newtonic3d/estimatevault/internal/estimate/domain"
	"github.com/newtonic3d/estimatevault/internal/estimate/http/dto"
	"github.com/newtonic3d/estimatevault/internal/estimate/usecase/mocks"
)

var adminClient = &authDomain.Client{
	ID:       uuid.MustParse("0194f3a0-1111-7000-8000-000000000001"),
	Name:     "estimator",
	IsActive: true,
	IsAdmin:  true,
}

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupRouter mounts the handler the way the server does, with client
// stands in for the authentication middleware. A nil client leaves the
// request anonymous.
func setupRouter(useCase *mocks.MockEstimateUseCase, client *authDomain.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewEstimateHandler(useCase, createTestLogger())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if client != nil {
			c.Request = c.Request.WithContext(authHTTP.WithClient(c.Request.Context(), client))
		}
		c.Next()
	})
	router.PUT("/v1/quotes/:id/estimate", handler.SealHandler)
	router.GET("/v1/quotes/:id/estimate", handler.RetrieveHandler)
	router.POST("/v1/quotes/:id/file-references", handler.IssueFileReferenceHandler)
	router.POST("/v1/file-references/resolve", handler.ResolveFileReferenceHandler)
	router.POST("/v1/estimates/calculate", handler.CalculateHandler)
	return router
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleEstimate() estimateDomain.InternalEstimate {
	return estimateDomain.InternalEstimate{
		Price:        152.4,
		PrintTime:    6.5,
		Volume:       42.1,
		Weight:       50.52,
		MaterialCost: 12.63,
		LaborCost:    45,
		TotalDays:    3,
	}
}

func TestEstimateHandler_SealHandler(t *testing.T) {
	quoteID := uuid.Must(uuid.NewV7())
	path := "/v1/quotes/" + quoteID.String() + "/estimate"

	t.Run("Success_ExplicitEstimate", func(t *testing.T) {
		useCase := &mocks.MockEstimateUseCase{}
		now := time.Now().UTC()
		estimate := sampleEstimate()
		useCase.On("Seal", mock.Anything, adminClient.ID, quoteID, &estimateDomain.SealInput{Estimate: &estimate}).
			Return(&estimateDomain.Quote{
				ID:                quoteID,
				EstimatedPrice:    estimate.Price,
				EstimatedDays:     estimate.TotalDays,
				InternalEstimates: "c2VjcmV0",
				DataSignature:     "sig",
				SecurityLevel:     estimateDomain.SecurityLevelEncrypted,
				LastCalculatedAt:  &now,
				UpdatedAt:         now,
			}, nil).Once()

		w := doRequest(setupRouter(useCase, adminClient), http.MethodPut, path, map[string]any{
			"estimate": map[string]any{
				"price": 152.4, "print_time": 6.5, "volume": 42.1, "weight": 50.52,
				"material_cost": 12.63, "labor_cost": 45, "total_days": 3,
			},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.SealEstimateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, quoteID.String(), resp.QuoteID)
		assert.Equal(t, 152.4, resp.EstimatedPrice)
		assert.Equal(t, estimateDomain.SecurityLevelEncrypted, resp.SecurityLevel)
		assert.NotContains(t, w.Body.String(), "c2VjcmV0")
		assert.NotContains(t, w.Body.String(), "sig")
		useCase.AssertExpectations(t)
	})

	t.Run("Success_FromCalculation", func(t *testing.T) {
		useCase := &mocks.MockEstimateUseCase{}
		useCase.On("Seal", mock.Anything, adminClient.ID, quoteID, mock.MatchedBy(func(in *estimateDomain.SealInput) bool {
			return in.Estimate == nil && in.Calculation != nil && in.Calculation.Quantity == 2
		})).Return(&estimateDomain.Quote{ID: quoteID}, nil).Once()

		w := doRequest(setupRouter(useCase, adminClient), http.MethodPut, path, map[string]any{
			"calculation": map[string]any{"file_size_mb": 4.2, "quantity": 2, "quality": "fine"},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		useCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidQuoteID", func(t *testing.T) {
		useCase := &mocks.MockEstimateUseCase{}
		w := doRequest(setupRouter(useCase, adminClient), http.MethodPut, "/v1/quotes/nope/estimate",
			map[string]any{"estimate": map[string]any{"price": 1}})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		useCase.AssertNotCalled(t, "Seal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_BothEstimateAndCalculation", func(t *testing.T) {
		useCase := &mocks.MockEstimateUseCase{}
		w := doRequest(setupRouter(useCase, adminClient), http.MethodPut, path, map[string]any{
			"estimate":    map[string]any{"price": 1},
			"calculation": map[string]any{"file_size_mb": 1, "quantity": 1},
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_Denied", func(t *testing.T) {
		useCase := &mocks.MockEstimateUseCase{}
		useCase.On("Seal", mock.Anything, adminClient.ID, quoteID, mock.Anything).
			Return(nil, estimateDomain.ErrDenied).Once()

		w := doRequest(setupRouter(useCase, adminClient), http.MethodPut, path,
			map[string]any{"estimate": map[string]any{"price": 1}})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestEstimateHandler_RetrieveHandler(t *testing.T) {
	quoteID := uuid.Must(uuid.NewV7())
	path := "/v1/quotes/" + quoteID.String() + "/estimate"

	t.Run("Success_Verified", func(t *testing.T) {
		useCase := &mocks.MockEstimateUseCase{}
		useCase.On("Decrypt", mock.Anything, adminClient.ID, quoteID).Return(&estimateDomain.RetrievalResult{
			Estimate:      sampleEstimate(),
			SecurityLevel: estimateDomain.SecurityLevelEncrypted,
			Verified:      true,
		}, nil).Once()

		w := doRequest(setupRouter(useCase, adminClient), http.MethodGet, path, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		var resp dto.RetrieveEstimateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Verified)
		assert.Equal(t, 152.4, resp.Estimate.Price)
		assert.Equal(t, 3, resp.Estimate.TotalDays)
		assert.Empty(t, resp.Warnings)
	})

	t.Run("Success_UnsignedWithWarning", func(t *testing.T) {
		useCase := &mocks.MockEstimateUseCase{}
		useCase.On("Decrypt", mock.Anything, adminClient.ID, quoteID).Return(&estimateDomain.RetrievalResult{
			Estimate: sampleEstimate(),
			Warnings: []string{estimateDomain.WarningNoIntegrityVerification},
		}, nil).Once()

		w := doRequest(setupRouter(useCase, adminClient), http.MethodGet, path, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.RetrieveEstimateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Verified)
		assert.Equal(t, []string{estimateDomain.WarningNoIntegrityVerification}, resp.Warnings)
	})

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"Error_Unauthenticated", estimateDomain.ErrUnauthenticated, http.StatusUnauthorized, "unauthorized"},
		{"Error_Denied", estimateDomain.ErrDenied, http.StatusForbidden, "forbidden"},
		{"Error_QuoteNotFound", estimateDomain.ErrQuoteNotFound, http.StatusNotFound, "not_found"},
		{"Error_NoEncryptedEstimate", estimateDomain.ErrNoEncryptedEstimate, http.StatusNotFound, "not_found"},
		{
			"Error_AuthenticationFailed",
			cryptoDomain.ErrAuthenticationFailed,
			http.StatusUnprocessableEntity,
			"integrity_violation",
		},
		{"Error_MalformedBlob", cryptoDomain.ErrMalformedBlob, http.StatusUnprocessableEntity, "integrity_violation"},
		{
			"Error_SignatureMismatch",
			estimateDomain.ErrIntegrityCheckFailed,
			http.StatusUnprocessableEntity,
			"integrity_violation",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := &mocks.MockEstimateUseCase{}
			useCase.On("Decrypt", mock.Anything, mock.Anything, quoteID).Return(nil, tt.err).Once()

			w := doRequest(setupRouter(useCase, adminClient), http.MethodGet, path, nil)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error":"`+tt.code+`"`)
		})
	}

	t.Run("Error_AnonymousPassesNilCaller", func(t *testing.T) {
		useCase := &mocks.MockEstimateUseCase{}
		useCase.On("Decrypt", mock.Anything, uuid.Nil, quoteID).Return(nil, estimateDomain.ErrUnauthenticated).Once()

		w := doRequest(setupRouter(useCase, nil), http.MethodGet, path, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		useCase.AssertExpectations(t)
	})
}

func TestEstimateHandler_CalculateHandler(t *testing.T) {
	t.Run("Success_Calculate", func(t *testing.T) {
		useCase := &mocks.MockEstimateUseCase{}
		estimate := sampleEstimate()
		useCase.On("Calculate", mock.Anything, adminClient.ID, &estimateDomain.CalculationInput{
			FileSizeMB: 4.2,
			Quantity:   1,
			Quality:    estimateDomain.QualityStandard,
			Urgency:    estimateDomain.UrgencyExpress,
		}).Return(&estimate, nil).Once()

		w := doRequest(setupRouter(useCase, adminClient), http.MethodPost, "/v1/estimates/calculate",
			map[string]any{"file_size_mb": 4.2, "quantity": 1, "quality": "standard", "urgency": "express"})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.EstimateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 152.4, resp.Price)
		useCase.AssertExpectations(t)
	})

	t.Run("Error_UnknownQuality", func(t *testing.T) {
		useCase := &mocks.MockEstimateUseCase{}
		w := doRequest(setupRouter(useCase, adminClient), http.MethodPost, "/v1/estimates/calculate",
			map[string]any{"file_size_mb": 4.2, "quantity": 1, "quality": "glossy"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/calculate", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		setupRouter(&mocks.MockEstimateUseCase{}, adminClient).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEstimateHandler_IssueFileReferenceHandler(t *testing.T) {
	quoteID := uuid.Must(uuid.NewV7())
	path := "/v1/quotes/" + quoteID.String() + "/file-references"

	t.Run("Success_Issue", func(t *testing.T) {
		useCase := &mocks.MockEstimateUseCase{}
		expiresAt := time.Now().UTC().Add(2 * time.Hour).Truncate(time.Millisecond)
		useCase.On("IssueFileReference", mock.Anything, adminClient.ID, &estimateDomain.FileDescriptor{
			StoragePath:  "uploads/quotes/model.stl",
			OriginalName: "model.stl",
			QuoteID:      quoteID,
		}).Return(&estimateDomain.IssuedFileReference{
			Reference: "cmVm",
			Token:     "tok",
			ExpiresAt: expiresAt,
		}, nil).Once()

		w := doRequest(setupRouter(useCase, adminClient), http.MethodPost, path, map[string]any{
			"storage_path":  "uploads/quotes/model.stl",
			"original_name": "model.stl",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp dto.IssueFileReferenceResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "cmVm", resp.Reference)
		assert.Equal(t, "tok", resp.Token)
		useCase.AssertExpectations(t)
	})

	t.Run("Error_PathTraversal", func(t *testing.T) {
		useCase := &mocks.MockEstimateUseCase{}
		w := doRequest(setupRouter(useCase, adminClient), http.MethodPost, path, map[string]any{
			"storage_path":  "../etc/passwd",
			"original_name": "passwd",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		useCase.AssertNotCalled(t, "IssueFileReference", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_QuoteNotFound", func(t *testing.T) {
		useCase := &mocks.MockEstimateUseCase{}
		useCase.On("IssueFileReference", mock.Anything, adminClient.ID, mock.Anything).
			Return(nil, estimateDomain.ErrQuoteNotFound).Once()

		w := doRequest(setupRouter(useCase, adminClient), http.MethodPost, path, map[string]any{
			"storage_path":  "uploads/model.stl",
			"original_name": "model.stl",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEstimateHandler_ResolveFileReferenceHandler(t *testing.T) {
	path := "/v1/file-references/resolve"
	quoteID := uuid.Must(uuid.NewV7())

	t.Run("Success_Resolve", func(t *testing.T) {
		useCase := &mocks.MockEstimateUseCase{}
		expiresAt := time.Now().Add(time.Hour).UnixMilli()
		useCase.On("ResolveFileReference", mock.Anything, "cmVm", "tok").Return(&estimateDomain.FileReference{
			StoragePath:  "uploads/model.stl",
			OriginalName: "model.stl",
			QuoteID:      quoteID,
			ExpiresAt:    expiresAt,
			Nonce:        "abc",
		}, nil).Once()

		w := doRequest(setupRouter(useCase, adminClient), http.MethodPost, path,
			map[string]any{"reference": "cmVm", "token": "tok"})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.FileReferenceResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, quoteID.String(), resp.QuoteID)
		assert.Equal(t, expiresAt, resp.ExpiresAt.UnixMilli())
		assert.NotContains(t, w.Body.String(), "abc")
	})

	t.Run("Error_Expired", func(t *testing.T) {
		useCase := &mocks.MockEstimateUseCase{}
		useCase.On("ResolveFileReference", mock.Anything, "cmVm", "tok").
			Return(nil, estimateDomain.ErrReferenceExpired).Once()

		w := doRequest(setupRouter(useCase, adminClient), http.MethodPost, path,
			map[string]any{"reference": "cmVm", "token": "tok"})

		assert.Equal(t, http.StatusGone, w.Code)
		assert.Contains(t, w.Body.String(), `"error":"expired"`)
	})

	t.Run("Error_InvalidToken", func(t *testing.T) {
		useCase := &mocks.MockEstimateUseCase{}
		useCase.On("ResolveFileReference", mock.Anything, "cmVm", "forged").
			Return(nil, estimateDomain.ErrFileTokenInvalid).Once()

		w := doRequest(setupRouter(useCase, adminClient), http.MethodPost, path,
			map[string]any{"reference": "cmVm", "token": "forged"})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Error_Anonymous", func(t *testing.T) {
		useCase := &mocks.MockEstimateUseCase{}
		w := doRequest(setupRouter(useCase, nil), http.MethodPost, path,
			map[string]any{"reference": "cmVm", "token": "tok"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		useCase.AssertNotCalled(t, "ResolveFileReference", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_MissingToken", func(t *testing.T) {
		w := doRequest(setupRouter(&mocks.MockEstimateUseCase{}, adminClient), http.MethodPost, path,
			map[string]any{"reference": "cmVm"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestVaultUnavailableHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/v1/quotes/:id/estimate", VaultUnavailableHandler(createTestLogger()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/quotes/x/estimate", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"vault_unavailable"`)
}

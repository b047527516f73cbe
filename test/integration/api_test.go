// Package integration provides end-to-end tests for the estimate vault API
// against PostgreSQL and MySQL. Tests skip when a database is unreachable.
package integration

import (
	"bytes"
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/newtonic3d/estimatevault/internal/app"
	authDomain "github.com/newtonic3d/estimatevault/internal/auth/domain"
	"github.com/newtonic3d/estimatevault/internal/config"
	"github.com/newtonic3d/estimatevault/internal/testutil"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container   *app.Container
	db          *sql.DB
	server      *httptest.Server
	adminToken  string
	clientToken string
	dbDriver    string
}

// makeRequest performs an HTTP request with an optional bearer token and
// returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body any,
	token string,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// decode unmarshals body into a generic map.
func decode(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

// generateMasterKeyHex returns a random hex-encoded 32-byte master secret.
func generateMasterKeyHex(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return hex.EncodeToString(key)
}

// uuidArg converts id to the driver's column representation.
func uuidArg(t *testing.T, driver string, id uuid.UUID) any {
	t.Helper()
	if driver == "postgres" {
		return id
	}
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

// placeholder returns the driver's n-th positional placeholder.
func placeholder(driver string, n int) string {
	if driver == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// setupIntegrationTest migrates the database, builds the container with a
// fresh master secret and issues tokens for an admin and a regular client.
// An empty masterKey builds a server without the vault.
func setupIntegrationTest(t *testing.T, dbDriver, masterKey string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := testutil.SetupDB(t, dbDriver)
	dsn := testutil.DSN(dbDriver)

	cfg := &config.Config{
		DBDriver:                dbDriver,
		DBConnectionString:      dsn,
		DBMaxOpenConnections:    10,
		DBMaxIdleConnections:    5,
		DBConnMaxLifetime:       time.Hour,
		ServerHost:              "localhost",
		ServerPort:              8080,
		LogLevel:                "error",
		AuthTokenExpiration:     time.Hour,
		EncryptionMasterKey:     masterKey,
		EstimateFreshnessWindow: 24 * time.Hour,
		FileReferenceTTL:        2 * time.Hour,
	}

	container := app.NewContainer(cfg)

	clientUseCase, err := container.ClientUseCase()
	require.NoError(t, err, "failed to get client use case")
	tokenUseCase, err := container.TokenUseCase()
	require.NoError(t, err, "failed to get token use case")

	issue := func(name string, isAdmin bool) string {
		output, err := clientUseCase.Create(context.Background(), &authDomain.CreateClientInput{
			Name:     name,
			IsActive: true,
			IsAdmin:  isAdmin,
		})
		require.NoError(t, err, "failed to create client "+name)

		token, err := tokenUseCase.Issue(context.Background(), &authDomain.IssueTokenInput{
			ClientID:     output.ID,
			ClientSecret: output.PlainSecret,
		})
		require.NoError(t, err, "failed to issue token for "+name)
		return token.PlainToken
	}

	adminToken := issue("Integration Admin", true)
	clientToken := issue("Integration Client", false)

	httpSrv, err := container.HTTPServer(t.Context())
	require.NoError(t, err, "failed to get HTTP server")
	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	return &integrationTestContext{
		container:   container,
		db:          db,
		server:      httptest.NewServer(handler),
		adminToken:  adminToken,
		clientToken: clientToken,
		dbDriver:    dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}
	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}
}

var drivers = []struct {
	name     string
	dbDriver string
}{
	{"PostgreSQL", "postgres"},
	{"MySQL", "mysql"},
}

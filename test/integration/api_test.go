// Package integration provides end-to-end integration tests for the onboarding API.
// Tests the public registration surface and the private admin surface against both
// PostgreSQL and MySQL databases. Fleet inspection endpoints are exercised only up
// to the authentication layer since they require a live IoT registry.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/iot-onboarding/internal/app"
	bootstrapkeyDTO "github.com/allisson/iot-onboarding/internal/bootstrapkey/http/dto"
	"github.com/allisson/iot-onboarding/internal/config"
	"github.com/allisson/iot-onboarding/internal/httputil"
	registrationDTO "github.com/allisson/iot-onboarding/internal/registration/http/dto"
	"github.com/allisson/iot-onboarding/internal/testutil"
)

const integrationAdminAPIKey = "integration-test-admin-key"

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	dbDriver  string
}

// makeRequest performs an HTTP request and returns the response and body.
// Admin requests authenticate with the X-Admin-Api-Key header; registration
// requests pass the bootstrap secret via the X-Bootstrap-Key header.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	headers map[string]string,
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

	for name, value := range headers {
		req.Header.Set(name, value)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// adminHeaders returns headers carrying the operator credential.
func adminHeaders() map[string]string {
	return map[string]string{"X-Admin-Api-Key": integrationAdminAPIKey}
}

// formatKeyID renders a key ID as a path segment.
func formatKeyID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// setupIntegrationTest initializes all components for integration testing.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	// Setup database
	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	// Create configuration
	cfg := &config.Config{
		ServerHost:               "localhost",
		ServerPort:               8080,
		PublicRoutePrefix:        "/public/v1",
		PrivateRoutePrefix:       "/private/v1",
		DBDriver:                 dbDriver,
		DBConnectionString:       dsn,
		DBMaxOpenConnections:     10,
		DBMaxIdleConnections:     5,
		DBConnMaxLifetime:        time.Hour,
		LogLevel:                 "error",
		AdminAPIKey:              integrationAdminAPIKey,
		AWSRegion:                "us-east-1",
		IoTPolicyName:            "integration-test-policy",
		BootstrapKeyConsumeOnUse: true,
	}

	// Create DI container
	container := app.NewContainer(cfg)

	// Setup HTTP server
	httpSrv, err := container.HTTPServer(context.Background())
	require.NoError(t, err, "failed to get HTTP server")

	// The SetupRouter has already been called by container.HTTPServer()
	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	// Create test server with the handler
	testServer := httptest.NewServer(handler)

	t.Logf("Integration test setup complete for %s", dbDriver)

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    testServer,
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		err := ctx.container.Shutdown(context.Background())
		if err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}

	t.Logf("Integration test teardown complete for %s", ctx.dbDriver)
}

// TestIntegration_Health_BasicChecks validates infrastructure health and readiness endpoints.
func TestIntegration_Health_BasicChecks(t *testing.T) {
	// Skip if short mode (integration tests can be slow)
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Setup
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			// [1/2] Test GET /health - Health check endpoint
			t.Run("01_HealthCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil, nil)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "healthy", response["status"])
			})

			// [2/2] Test GET /ready - Readiness check endpoint
			t.Run("02_ReadinessCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/ready", nil, nil)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response struct {
					Status     string            `json:"status"`
					Components map[string]string `json:"components"`
				}
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "ready", response.Status)
				assert.Equal(t, "ok", response.Components["database"])
			})

			t.Logf("All 2 health endpoint tests passed for %s", tc.dbDriver)
		})
	}
}

// TestIntegration_AdminAuth validates that the private surface rejects requests
// without a valid operator credential before any handler runs.
func TestIntegration_AdminAuth(t *testing.T) {
	// Skip if short mode (integration tests can be slow)
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Setup
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			// [1/3] Missing credential
			t.Run("01_MissingAdminKey", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/private/v1/admin/keys", nil, nil)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

				var response httputil.ErrorResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.NotEmpty(t, response.Error)
			})

			// [2/3] Wrong credential
			t.Run("02_WrongAdminKey", func(t *testing.T) {
				headers := map[string]string{"X-Admin-Api-Key": "not-the-configured-key"}
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/private/v1/admin/keys", nil, headers)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			// [3/3] Valid credential
			t.Run("03_ValidAdminKey", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/private/v1/admin/keys", nil, adminHeaders())
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			})

			t.Logf("All 3 admin auth tests passed for %s", tc.dbDriver)
		})
	}
}

// TestIntegration_BootstrapKey_CompleteFlow tests the bootstrap key lifecycle and its
// effect on the public registration endpoint. The key is created, listed, disarmed,
// re-armed, and deleted; registration attempts are interleaved to verify that only
// the authentication outcome changes. Successful provisioning is not exercised here
// because it requires a live IoT registry.
func TestIntegration_BootstrapKey_CompleteFlow(t *testing.T) {
	// Skip if short mode (integration tests can be slow)
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Setup
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			// Variables to store created key state for later operations
			var (
				keyID        int64
				keyPlaintext string
				keyHint      string
			)

			// [1/10] Test POST /private/v1/admin/keys - Create bootstrap key
			t.Run("01_CreateKey", func(t *testing.T) {
				group := "integration-test-fleet"
				requestBody := bootstrapkeyDTO.CreateBootstrapKeyRequest{
					Group:         &group,
					ExpiresInDays: 30,
				}

				resp, body := ctx.makeRequest(
					t,
					http.MethodPost,
					"/private/v1/admin/keys",
					requestBody,
					adminHeaders(),
				)
				assert.Equal(t, http.StatusCreated, resp.StatusCode)

				var response bootstrapkeyDTO.CreateBootstrapKeyResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.NotZero(t, response.ID)
				assert.NotEmpty(t, response.Key)
				assert.NotEmpty(t, response.KeyHint)
				assert.True(t, response.IsActive)
				require.NotNil(t, response.Group)
				assert.Equal(t, group, *response.Group)
				require.NotNil(t, response.ExpiresAt)
				assert.True(t, response.ExpiresAt.After(time.Now()))

				// The hint is the tail of the plaintext
				assert.True(t, len(response.Key) > len(response.KeyHint))
				assert.Equal(
					t,
					response.Key[len(response.Key)-len(response.KeyHint):],
					response.KeyHint,
				)

				keyID = response.ID
				keyPlaintext = response.Key
				keyHint = response.KeyHint
			})

			// [2/10] Test GET /private/v1/admin/keys - List keys without exposing secrets
			t.Run("02_ListKeys", func(t *testing.T) {
				resp, body := ctx.makeRequest(
					t,
					http.MethodGet,
					"/private/v1/admin/keys",
					nil,
					adminHeaders(),
				)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response bootstrapkeyDTO.ListBootstrapKeysResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				require.NotEmpty(t, response.Data)

				found := false
				for _, key := range response.Data {
					if key.ID == keyID {
						found = true
						assert.Equal(t, keyHint, key.KeyHint)
						assert.True(t, key.IsActive)
					}
				}
				assert.True(t, found, "created key should appear in the listing")

				// The listing payload never carries the plaintext or the hash
				assert.NotContains(t, string(body), keyPlaintext)
			})

			// [3/10] Test GET /private/v1/admin/keys/:id - Fetch a single key
			t.Run("03_GetKey", func(t *testing.T) {
				resp, body := ctx.makeRequest(
					t,
					http.MethodGet,
					"/private/v1/admin/keys/"+formatKeyID(keyID),
					nil,
					adminHeaders(),
				)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response bootstrapkeyDTO.BootstrapKeyResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, keyID, response.ID)
				assert.Equal(t, keyHint, response.KeyHint)
				assert.True(t, response.IsActive)
				assert.NotContains(t, string(body), keyPlaintext)
			})

			// [4/10] Test POST /public/v1/register - Unknown secret is rejected
			t.Run("04_RegisterWithUnknownKey", func(t *testing.T) {
				requestBody := registrationDTO.RegisterDeviceRequest{DeviceID: "sensor-001"}
				headers := map[string]string{"X-Bootstrap-Key": "bsk_definitely-not-a-real-key"}

				resp, body := ctx.makeRequest(
					t,
					http.MethodPost,
					"/public/v1/register",
					requestBody,
					headers,
				)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

				var response httputil.ErrorResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.NotEmpty(t, response.Error)
			})

			// [5/10] Test POST /public/v1/register - Missing device_id fails validation
			t.Run("05_RegisterWithoutDeviceID", func(t *testing.T) {
				headers := map[string]string{"X-Bootstrap-Key": keyPlaintext}

				resp, _ := ctx.makeRequest(
					t,
					http.MethodPost,
					"/public/v1/register",
					registrationDTO.RegisterDeviceRequest{},
					headers,
				)
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			})

			// [6/10] Test PUT /private/v1/admin/keys/:id - Disarm the key
			t.Run("06_DeactivateKey", func(t *testing.T) {
				isActive := false
				requestBody := bootstrapkeyDTO.SetKeyActivationRequest{ActivationFlag: &isActive}

				resp, body := ctx.makeRequest(
					t,
					http.MethodPut,
					"/private/v1/admin/keys/"+formatKeyID(keyID),
					requestBody,
					adminHeaders(),
				)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response bootstrapkeyDTO.BootstrapKeyResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, keyID, response.ID)
				assert.False(t, response.IsActive)
			})

			// [7/10] Test POST /public/v1/register - Disarmed key is rejected like an unknown one
			t.Run("07_RegisterWithDeactivatedKey", func(t *testing.T) {
				requestBody := registrationDTO.RegisterDeviceRequest{DeviceID: "sensor-001"}
				headers := map[string]string{"X-Bootstrap-Key": keyPlaintext}

				resp, body := ctx.makeRequest(
					t,
					http.MethodPost,
					"/public/v1/register",
					requestBody,
					headers,
				)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

				// The rejection is indistinguishable from an unknown key
				var response httputil.ErrorResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.NotContains(t, response.Message, "deactivated")
				assert.NotContains(t, response.Message, "disarmed")
			})

			// [8/10] Test PUT /private/v1/admin/keys/:id - Re-arm the key
			t.Run("08_ReactivateKey", func(t *testing.T) {
				isActive := true
				requestBody := bootstrapkeyDTO.SetKeyActivationRequest{ActivationFlag: &isActive}

				resp, body := ctx.makeRequest(
					t,
					http.MethodPut,
					"/private/v1/admin/keys/"+formatKeyID(keyID),
					requestBody,
					adminHeaders(),
				)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response bootstrapkeyDTO.BootstrapKeyResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.True(t, response.IsActive)
			})

			// [9/10] Test DELETE /private/v1/admin/keys/:id - Delete the key
			t.Run("09_DeleteKey", func(t *testing.T) {
				resp, body := ctx.makeRequest(
					t,
					http.MethodDelete,
					"/private/v1/admin/keys/"+formatKeyID(keyID),
					nil,
					adminHeaders(),
				)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)
				assert.Empty(t, body)
			})

			// [10/10] Test POST /public/v1/register - Deleted key no longer authenticates
			t.Run("10_RegisterAfterDelete", func(t *testing.T) {
				requestBody := registrationDTO.RegisterDeviceRequest{DeviceID: "sensor-001"}
				headers := map[string]string{"X-Bootstrap-Key": keyPlaintext}

				resp, _ := ctx.makeRequest(
					t,
					http.MethodPost,
					"/public/v1/register",
					requestBody,
					headers,
				)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Logf("All 10 bootstrap key lifecycle tests passed for %s", tc.dbDriver)
		})
	}
}

// TestIntegration_Registration_HeaderHandling validates the public endpoint's header
// contract independent of key state.
func TestIntegration_Registration_HeaderHandling(t *testing.T) {
	// Skip if short mode (integration tests can be slow)
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Setup
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			// [1/2] Missing X-Bootstrap-Key header
			t.Run("01_MissingBootstrapKeyHeader", func(t *testing.T) {
				requestBody := registrationDTO.RegisterDeviceRequest{DeviceID: "sensor-001"}

				resp, _ := ctx.makeRequest(t, http.MethodPost, "/public/v1/register", requestBody, nil)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			// [2/2] Admin credential does not open the public surface
			t.Run("02_AdminKeyIsNotABootstrapKey", func(t *testing.T) {
				requestBody := registrationDTO.RegisterDeviceRequest{DeviceID: "sensor-001"}
				headers := map[string]string{"X-Bootstrap-Key": integrationAdminAPIKey}

				resp, _ := ctx.makeRequest(
					t,
					http.MethodPost,
					"/public/v1/register",
					requestBody,
					headers,
				)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Logf("All 2 registration header tests passed for %s", tc.dbDriver)
		})
	}
}

package scans_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/odariane19-ui/permiscard/internal/api"
	"github.com/odariane19-ui/permiscard/internal/api/router"
	"github.com/odariane19-ui/permiscard/internal/config"
	"github.com/odariane19-ui/permiscard/internal/permit/storage"
)

func newTestServer(t *testing.T) *api.Server {
	t.Helper()

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Permit.SigningKeyFile = filepath.Join(t.TempDir(), "signing_key.pem")
	cfg.Permit.CacheDatabaseFile = ""

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "authority.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, storage.AutoMigrate(db))

	s, err := api.InitNewServerWithDB(cfg, db, t)
	require.NoError(t, err)

	router.Init(s)

	return s
}

func performRequest(t *testing.T, s *api.Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	return rec
}

// createPermitURI issues a permit through the API and returns its code uri.
func createPermitURI(t *testing.T, s *api.Server, expirationDate string) string {
	t.Helper()

	rec := performRequest(t, s, http.MethodPost, "/api/v1/permits", map[string]interface{}{
		"holder_name":     "Jordan Reyes",
		"serial_number":   "SN-4471",
		"zone":            "harbor-east",
		"type":            "commercial",
		"expiration_date": expirationDate,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	credential := response["credential"].(map[string]interface{})

	return credential["code_uri"].(string)
}

func verifyScan(t *testing.T, s *api.Server, code string) map[string]interface{} {
	t.Helper()

	rec := performRequest(t, s, http.MethodPost, "/api/v1/scans", map[string]interface{}{
		"code":     code,
		"agent_id": "agent-7",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	return response
}

func TestPostVerifyScanValid(t *testing.T) {
	s := newTestServer(t)

	uri := createPermitURI(t, s, "2030-01-01T00:00:00.000Z")

	response := verifyScan(t, s, uri)
	assert.Equal(t, "valid", response["result"])

	record, ok := response["record"].(map[string]interface{})
	require.True(t, ok, "valid outcome must include the record")
	assert.Equal(t, "Jordan Reyes", record["holder_name"])
	assert.Equal(t, "harbor-east", record["zone"])
}

func TestPostVerifyScanExpired(t *testing.T) {
	s := newTestServer(t)

	uri := createPermitURI(t, s, "2020-01-01T00:00:00.000Z")

	response := verifyScan(t, s, uri)
	assert.Equal(t, "expired", response["result"])
}

func TestPostVerifyScanTamperedSignature(t *testing.T) {
	s := newTestServer(t)

	uri := createPermitURI(t, s, "2030-01-01T00:00:00.000Z")

	idx := strings.LastIndex(uri, "s=") + 2
	replacement := "A"
	if uri[idx] == 'A' {
		replacement = "B"
	}
	tampered := uri[:idx] + replacement + uri[idx+1:]

	response := verifyScan(t, s, tampered)
	assert.Equal(t, "invalid", response["result"])
	assert.Contains(t, response["message"], "signature")
}

func TestPostVerifyScanNotACredential(t *testing.T) {
	s := newTestServer(t)

	response := verifyScan(t, s, "https://example.com/something-else")
	assert.Equal(t, "invalid", response["result"])
}

func TestPostVerifyScanValidation(t *testing.T) {
	s := newTestServer(t)

	rec := performRequest(t, s, http.MethodPost, "/api/v1/scans", map[string]interface{}{
		"agent_id": "agent-7",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestGetScanLogs(t *testing.T) {
	s := newTestServer(t)

	uri := createPermitURI(t, s, "2030-01-01T00:00:00.000Z")
	verifyScan(t, s, uri)
	verifyScan(t, s, "garbage")

	rec := performRequest(t, s, http.MethodGet, "/api/v1/scans/logs", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	entries := response["entries"].([]interface{})
	require.Len(t, entries, 2)

	// filter narrows to the valid scan only
	rec = performRequest(t, s, http.MethodGet, "/api/v1/scans/logs?outcome=valid", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	entries = response["entries"].([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(t, "valid", entry["outcome"])
	assert.Equal(t, "online", entry["mode"])
	assert.Equal(t, "agent-7", entry["agent_id"])
}

func TestGetScanLogsTotalSpansPages(t *testing.T) {
	s := newTestServer(t)

	uri := createPermitURI(t, s, "2030-01-01T00:00:00.000Z")
	verifyScan(t, s, uri)
	verifyScan(t, s, uri)

	rec := performRequest(t, s, http.MethodGet, "/api/v1/scans/logs?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	entries := response["entries"].([]interface{})
	assert.Len(t, entries, 1)
	assert.EqualValues(t, 2, response["total"])
}

func TestGetScanLogsInvalidLimit(t *testing.T) {
	s := newTestServer(t)

	rec := performRequest(t, s, http.MethodGet, "/api/v1/scans/logs?limit=nope", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

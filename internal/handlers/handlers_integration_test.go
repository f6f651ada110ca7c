package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"store/internal/app"
	"store/internal/config"
	"store/internal/database"
	"store/internal/handlers"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	contentTypeJSON       = "application/json"
	contentTypeMergePatch = "application/merge-patch+json"
)

type testEnv struct {
	t   *testing.T
	app *app.App
	db  *gorm.DB
}

// setupApp sets up the full application against a private in-memory SQLite database.
func setupApp(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{AppName: "storeApp", AppPort: ":0", DBDriver: config.DriverSQLite}

	db, err := database.Open(config.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared", zerolog.Nop())
	require.NoError(t, err, "failed to connect to in-memory database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db), "failed to auto-migrate database")

	return &testEnv{t: t, app: app.New(cfg, db, nil, zerolog.Nop()), db: db}
}

// do sends a request with body marshaled to JSON (or sent as-is when it is a string).
func (e *testEnv) do(method, path string, body any, contentType string) (*http.Response, []byte) {
	e.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewBuffer(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := e.app.Fiber.Test(req, -1)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	return resp, respBody
}

func (e *testEnv) count(model any) int64 {
	e.t.Helper()

	var n int64
	require.NoError(e.t, e.db.Model(model).Count(&n).Error)
	return n
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func assertProblem(t *testing.T, resp *http.Response, body []byte, status int, errorKey string) handlers.Problem {
	t.Helper()

	require.Equal(t, status, resp.StatusCode, string(body))
	problem := decode[handlers.Problem](t, body)
	assert.Equal(t, status, problem.Status)
	assert.Equal(t, problem.Message, resp.Header.Get("X-storeApp-error"))
	if errorKey != "" {
		assert.Equal(t, errorKey, problem.ErrorKey)
	}
	return problem
}

func TestHealth(t *testing.T) {
	env := setupApp(t)

	resp, body := env.do("GET", "/health", nil, "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	health := decode[map[string]any](t, body)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "up", health["database"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestLoggingEndpoints(t *testing.T) {
	env := setupApp(t)

	tests := map[string]string{
		"/api/logging/test":        "Logs generated successfully. Check Kibana at http://localhost:5601 to view the logs.",
		"/api/logging/ecommerce":   "E-commerce logs generated. Check the Kibana dashboard.",
		"/api/logging/performance": "Performance logs generated.",
	}

	for path, expected := range tests {
		resp, body := env.do("GET", path, nil, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, expected, string(body), path)
	}
}

func TestUnknownRoute(t *testing.T) {
	env := setupApp(t)

	resp, body := env.do("GET", "/api/unknown", nil, "")

	assertProblem(t, resp, body, http.StatusNotFound, "")
}

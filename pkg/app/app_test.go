package app_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/flowershop/config"
	"github.com/shashiranjanraj/flowershop/pkg/app"
	"github.com/shashiranjanraj/flowershop/pkg/response"
	"github.com/shashiranjanraj/flowershop/pkg/router"
	"github.com/shashiranjanraj/flowershop/pkg/testkit"

	_ "github.com/shashiranjanraj/flowershop/database/migrations"
)

func ping(a *app.Application, r *router.Router) error {
	r.Get("/ping", "ping", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, "pong")
	})
	return nil
}

func serve(t *testing.T, a *app.Application, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	r, err := a.Kernel()
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	a := app.New(config.Default()).WithDB(testkit.DB(t))
	rec := serve(t, a, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = serve(t, app.New(config.Default()), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	a := app.New(config.Default()).Routes(ping)
	serve(t, a, http.MethodGet, "/ping")

	rec := serve(t, a, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "flowershop_http_requests_total")
}

func TestFallbacksUseEnvelope(t *testing.T) {
	a := app.New(config.Default()).Routes(ping)

	rec := serve(t, a, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":404,"message":"Not found"}`, rec.Body.String())

	rec = serve(t, a, http.MethodDelete, "/ping")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":405`)
}

func TestRouteList(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, app.New(config.Default()).Routes(ping).RouteList(&out))

	listing := out.String()
	assert.Contains(t, listing, "METHOD")
	assert.Contains(t, listing, "/ping")
	assert.Contains(t, listing, "/healthz")
	assert.Contains(t, listing, "metrics")
}

func TestMigrationCommands(t *testing.T) {
	a := app.New(config.Default()).WithDB(testkit.DB(t))

	var out bytes.Buffer
	require.NoError(t, a.Migrate(&out))
	assert.Contains(t, out.String(), "Nothing to migrate")

	out.Reset()
	require.NoError(t, a.MigrationStatus(&out))
	assert.Contains(t, out.String(), "create_users_table")
	assert.Contains(t, out.String(), "Ran")
}

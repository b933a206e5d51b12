package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/flowershop/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func tag(value string) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", value)
			next.ServeHTTP(w, r)
		})
	}
}

func TestGroupPrefixesAndMiddlewareOrder(t *testing.T) {
	r := router.New()
	api := r.Group("/api", tag("api"))
	api.Group("lots", tag("lots")).Delete("/{lot_id}", "lots.delete", ok, tag("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/lots/4", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"api", "lots", "route"}, rec.Header().Values("X-Chain"))

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/lots/4", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNamedRouteURL(t *testing.T) {
	r := router.New()
	r.Group("/").Patch("/lot/{lot_id}/display", "lots.display", ok)

	url, err := r.URL("lots.display", map[string]string{"lot_id": "9"})
	require.NoError(t, err)
	assert.Equal(t, "/lot/9/display", url)

	_, err = r.URL("lots.display", nil)
	assert.Error(t, err)
	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	g := r.Group("/v1")
	g.Post("/login", "auth.login", ok)
	g.Get("/lots", "", ok)
	r.Handle("/metrics", "metrics", http.HandlerFunc(ok))

	assert.Equal(t, []router.RouteInfo{
		{Method: http.MethodGet, Path: "/metrics", Name: "metrics"},
		{Method: http.MethodPost, Path: "/v1/login", Name: "auth.login"},
		{Method: http.MethodGet, Path: "/v1/lots", Name: ""},
	}, r.Routes())
}

func TestNotFoundHandler(t *testing.T) {
	r := router.New()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

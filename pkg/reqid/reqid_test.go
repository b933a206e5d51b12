package reqid_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/flowershop/pkg/reqid"
)

func run(header string) (string, string) {
	var inCtx string
	h := reqid.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inCtx = reqid.FromCtx(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(reqid.Header, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return inCtx, rec.Header().Get(reqid.Header)
}

func TestMiddlewareGeneratesID(t *testing.T) {
	ctxID, header := run("")
	assert.NotEmpty(t, ctxID)
	assert.Equal(t, ctxID, header)
}

func TestMiddlewareHonoursUpstreamID(t *testing.T) {
	ctxID, header := run("gateway-42")
	assert.Equal(t, "gateway-42", ctxID)
	assert.Equal(t, "gateway-42", header)
}

func TestMiddlewareReplacesGarbage(t *testing.T) {
	for _, bad := range []string{"has space", strings.Repeat("x", 200)} {
		ctxID, _ := run(bad)
		assert.NotEqual(t, bad, ctxID)
	}
}

package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Client fires requests at an http.Handler in-process.
//
//	c := testkit.NewClient(t, handler)
//	res := c.WithToken(token).Post("/api/new-lot", map[string]any{...})
//	res.AssertStatus(http.StatusCreated)
type Client struct {
	t       *testing.T
	handler http.Handler
	token   string
}

// NewClient returns an anonymous client.
func NewClient(t *testing.T, handler http.Handler) *Client {
	return &Client{t: t, handler: handler}
}

// WithToken returns a copy that sends "Authorization: Bearer <token>".
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Handler returns the handler requests are sent to.
func (c *Client) Handler() http.Handler { return c.handler }

func (c *Client) Get(path string) *Response    { return c.Do(http.MethodGet, path, nil) }
func (c *Client) Delete(path string) *Response { return c.Do(http.MethodDelete, path, nil) }

func (c *Client) Post(path string, body any) *Response {
	return c.Do(http.MethodPost, path, body)
}

func (c *Client) Patch(path string, body any) *Response {
	return c.Do(http.MethodPatch, path, body)
}

// Do sends one request. A []byte or string body is sent as is; anything
// else non-nil is JSON-encoded.
func (c *Client) Do(method, path string, body any) *Response {
	c.t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		r = bytes.NewReader(b)
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(c.t, err, "testkit: encode request body")
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return &Response{t: c.t, Code: rec.Code, Header: rec.Header(), Body: rec.Body.Bytes()}
}

// Response is a recorded reply.
type Response struct {
	t      *testing.T
	Code   int
	Header http.Header
	Body   []byte
}

// AssertStatus fails the test immediately on a status mismatch.
func (r *Response) AssertStatus(code int) *Response {
	r.t.Helper()
	require.Equal(r.t, code, r.Code, "unexpected status, body: %s", r.Body)
	return r
}

// JSON decodes the whole body into a generic map.
func (r *Response) JSON() map[string]any {
	r.t.Helper()
	var m map[string]any
	require.NoError(r.t, json.Unmarshal(r.Body, &m), "body is not a JSON object: %s", r.Body)
	return m
}

// Message returns the envelope's "message".
func (r *Response) Message() string {
	s, _ := r.JSON()["message"].(string)
	return s
}

// Data decodes the envelope's "data" into dest.
func (r *Response) Data(dest any) {
	r.t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(r.t, json.Unmarshal(r.Body, &env), "body is not an envelope: %s", r.Body)
	require.NoError(r.t, json.Unmarshal(env.Data, dest), "cannot decode data: %s", env.Data)
}

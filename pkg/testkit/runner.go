package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

// Run executes the scenario at path against handler as a subtest.
func Run(t *testing.T, handler http.Handler, path string, vars map[string]string) {
	t.Helper()

	s, err := LoadScenario(path, vars)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", path, err)
	}

	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, handler, s)
	})
}

// RunDir runs every *.json scenario in dir.
func RunDir(t *testing.T, handler http.Handler, dir string, vars map[string]string) {
	t.Helper()

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(paths) == 0 {
		t.Fatalf("testkit: no scenario files found in %q", dir)
	}
	for _, path := range paths {
		Run(t, handler, path, vars)
	}
}

func runScenario(t *testing.T, handler http.Handler, s *Scenario) {
	t.Helper()

	var body io.Reader
	if len(s.RequestBody) > 0 {
		body = bytes.NewReader(s.RequestBody)
	}

	req := httptest.NewRequest(s.RequestMethod, s.RequestURL, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)
	AssertJSONBody(t, s, s.ExpectedBody, rec.Body.Bytes())
}

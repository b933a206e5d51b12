// Package testkit holds the helpers the flowershop tests share: a migrated
// SQLite database per test, an in-process HTTP client and JSON-driven
// request scenarios.
//
// A scenario file describes one request and what must come back:
//
//	{
//	  "name": "customer cannot create a lot",
//	  "requestMethod": "POST",
//	  "requestUrl": "/api/new-lot",
//	  "headers": {"Authorization": "Bearer {{customer_token}}"},
//	  "requestBody": {"flower_name": "rose"},
//	  "expectedCode": 403,
//	  "expectedBody": {"message": "You do not have permission to perform this action"}
//	}
//
// Scenario files live in testdata/ next to the _test.go that runs them:
//
//	testkit.RunDir(t, handler, "testdata", map[string]string{"customer_token": tok})
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scenario describes a single REST API test case loaded from a JSON file.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod string            `json:"requestMethod"`
	RequestURL    string            `json:"requestUrl"`
	Headers       map[string]string `json:"headers"`
	RequestBody   json.RawMessage   `json:"requestBody"`

	ExpectedCode int `json:"expectedCode"`
	// ExpectedBody is matched as a subset: keys absent here are ignored.
	ExpectedBody json.RawMessage `json:"expectedBody"`
}

// LoadScenario reads a scenario file, replacing every {{key}} with
// vars[key] before parsing, so placeholders may stand for numbers too.
func LoadScenario(path string, vars map[string]string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = []byte(expand(string(data), vars))

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	return &s, nil
}

func expand(text string, vars map[string]string) string {
	if len(vars) == 0 {
		return text
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

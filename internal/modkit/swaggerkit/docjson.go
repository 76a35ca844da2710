package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
)

// DocMutator lets modules tweak the parsed OpenAPI document before it is served
type DocMutator func(map[string]any)

var (
	mu       sync.RWMutex
	mutators []DocMutator
)

// Register adds an openapi document mutator; modules call it while mounting
func Register(m DocMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	mutators = append(mutators, m)
	mu.Unlock()
}

// reset clears mutators for tests
func reset() {
	mu.Lock()
	mutators = nil
	mu.Unlock()
}

// serveDocJSON parses doc per request so mutators always see a fresh copy
func serveDocJSON(doc []byte, base string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var oas map[string]any
		if err := json.Unmarshal(doc, &oas); err != nil {
			http.Error(w, "openapi parse error", http.StatusInternalServerError)
			return
		}

		ensureServers(oas, base)
		addOpaqueError(oas)

		mu.RLock()
		for _, m := range mutators {
			m(oas)
		}
		mu.RUnlock()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(oas)
	}
}

// ensureServers pins the document to OAS 3.0.3, which the swagger UI renders,
// and defaults servers to base
func ensureServers(oas map[string]any, base string) {
	if _, hasSwagger := oas["swagger"]; hasSwagger {
		delete(oas, "swagger")
	}
	if v, ok := oas["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		oas["openapi"] = "3.0.3"
	}
	if _, ok := oas["servers"]; !ok {
		oas["servers"] = []any{map[string]any{"url": base}}
	}
}

// addOpaqueError documents the fixed plain-text 500 on every operation that lacks one
func addOpaqueError(oas map[string]any) {
	paths, ok := oas["paths"].(map[string]any)
	if !ok {
		return
	}
	errResp := map[string]any{
		"description": "Internal Server Error",
		"content": map[string]any{
			"text/plain": map[string]any{
				"schema":  map[string]any{"type": "string"},
				"example": "Internal Server Error",
			},
		},
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses, ok := op["responses"].(map[string]any)
			if !ok {
				responses = map[string]any{}
				op["responses"] = responses
			}
			if _, exists := responses["500"]; !exists {
				responses["500"] = errResp
			}
		}
	}
}

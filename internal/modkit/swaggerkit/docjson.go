// Package swaggerkit serves the OpenAPI document and the Swagger UI
package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
)

//go:embed openapi.json
var openapi string

// SpecMutator lets modules tweak the parsed spec before it is served
type SpecMutator func(map[string]any)

var (
	mu       sync.RWMutex
	mutators []SpecMutator
)

// docReader is a seam so tests can inject invalid JSON
var docReader = func() string { return openapi }

// Register adds a spec mutator; modules call it while they are built
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	mutators = append(mutators, m)
	mu.Unlock()
}

// Reset drops every registered mutator, for tests
func Reset() {
	mu.Lock()
	mutators = nil
	mu.Unlock()
}

// serveDocJSON serves the OpenAPI document with global defaults and module mutators applied
func serveDocJSON(o Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		ensureVersion(spec)
		if info, ok := spec["info"].(map[string]any); ok {
			if o.Version != "" {
				info["version"] = o.Version
			}
			if title, ok := info["title"].(string); ok && o.TitleSuffix != "" {
				info["title"] = title + " " + o.TitleSuffix
			}
		}

		ensureErrorResponseDefinition(spec)
		eachEnvelopeOp(spec, func(responses map[string]any) {
			addResponse(responses, "500", internalError)
			addResponse(responses, "400", badRequest)
		})

		mu.RLock()
		for _, m := range mutators {
			m(spec)
		}
		mu.RUnlock()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureVersion pins the document to OAS 3.0.3; the UI cannot render 3.1 yet
func ensureVersion(spec map[string]any) {
	if _, hasSwagger := spec["swagger"]; hasSwagger {
		delete(spec, "swagger")
	}
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
}

// ensureErrorResponseDefinition adds the envelope error model if missing
func ensureErrorResponseDefinition(spec map[string]any) {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error envelope",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

func errorContent(status int, text string, code int, msg string) map[string]any {
	return map[string]any{
		"description": text,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": status,
					"status":      text,
					"code":        code,
					"error":       msg,
					"request_id":  "579f33bf50b1/abc-000001",
				},
			},
		},
	}
}

var (
	internalError = errorContent(http.StatusInternalServerError, "Internal Server Error", 1, "internal server error")
	badRequest    = errorContent(http.StatusBadRequest, "Bad Request", 4, "text is a required field")
)

// eachEnvelopeOp visits the responses of every operation that uses the envelope
// operations marked x-flat-wire keep their own error shape
func eachEnvelopeOp(spec map[string]any, fn func(map[string]any)) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
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
			if flat, _ := op["x-flat-wire"].(bool); flat {
				continue
			}
			responses, ok := op["responses"].(map[string]any)
			if !ok {
				responses = map[string]any{}
				op["responses"] = responses
			}
			fn(responses)
		}
	}
}

func addResponse(responses map[string]any, status string, v map[string]any) {
	if _, exists := responses[status]; !exists {
		responses[status] = v
	}
}

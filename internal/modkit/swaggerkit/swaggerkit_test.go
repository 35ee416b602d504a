package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "sarcasm/internal/platform/net/http"
	"sarcasm/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func fetch(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var spec map[string]any
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
			t.Fatalf("decode spec: %v", err)
		}
	}
	return rec, spec
}

func responsesOf(spec map[string]any, path, method string) map[string]any {
	op := spec["paths"].(map[string]any)[path].(map[string]any)[method].(map[string]any)
	return op["responses"].(map[string]any)
}

func TestDocJSON(t *testing.T) {
	testkit.Serial(t)
	Reset()
	t.Cleanup(Reset)

	Register(func(spec map[string]any) { spec["x-mutated"] = true })
	Register(nil)

	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{Enabled: true, Version: "1.2.3", TitleSuffix: "(test)"})

	rec, spec := fetch(t, mux, "/api/docs/doc.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if spec["openapi"] != "3.0.3" || spec["x-mutated"] != true {
		t.Fatalf("version or mutator missing: %v %v", spec["openapi"], spec["x-mutated"])
	}
	info := spec["info"].(map[string]any)
	if info["version"] != "1.2.3" || info["title"] != "Sarcasm API (test)" {
		t.Fatalf("info = %v", info)
	}

	features := responsesOf(spec, "/api/v1/classify/features", "post")
	if _, ok := features["500"]; !ok {
		t.Fatalf("envelope operation should get a default 500")
	}
	predict := responsesOf(spec, "/predict", "post")
	if _, ok := predict["500"]; ok {
		t.Fatalf("flat wire operation must not get the envelope error")
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("doc should not be cached")
	}
}

func TestDocJSON_ParseError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &docReader, func() string { return "{" })

	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{Enabled: true})
	rec, _ := fetch(t, mux, "/api/docs/doc.json")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMountDisabledAndRedirect(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{})
	rec, _ := fetch(t, mux, "/api/docs/doc.json")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled docs status = %d", rec.Code)
	}

	mux = chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{Enabled: true})
	rec, _ = fetch(t, mux, "/api/docs")
	if rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect status = %d", rec.Code)
	}
}

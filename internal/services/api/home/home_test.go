package home

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	phttp "sarcasm/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestRenderDefaults(t *testing.T) {
	body, err := Render(Page{Version: "sarcasm-api dev (none)"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(body)
	for _, want := range []string{"<title>Sarcasm Detector</title>", `fetch("\/predict"`, "sarcasm-api dev (none)"} {
		if !strings.Contains(s, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	if strings.Contains(s, "/api/docs/") {
		t.Fatalf("docs link should only render when enabled")
	}
}

func TestRenderEscapes(t *testing.T) {
	body, err := Render(Page{Title: "<script>x</script>", Docs: true, Variant: "plain"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(body)
	if strings.Contains(s, "<script>x</script>") {
		t.Fatalf("title should be escaped")
	}
	if !strings.Contains(s, "/api/docs/") || !strings.Contains(s, "plain model") {
		t.Fatalf("docs link or variant missing")
	}
}

func TestMountServesHTML(t *testing.T) {
	mux := chi.NewRouter()
	if err := Mount(phttp.AdaptChi(mux), Page{}); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<textarea") {
		t.Fatalf("body is not the landing page")
	}
}

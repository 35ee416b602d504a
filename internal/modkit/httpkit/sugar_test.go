package httpkit

import (
	"net/http"
	"testing"
)

func TestSugar_MountsHandlers(t *testing.T) {
	r := &fakeRouter{}
	type req struct{ A int }

	PostJSON(r, "/features", func(_ *http.Request, _ req) (any, error) { return "ok", nil })
	Get(r, "/profile", func(_ *http.Request) (any, error) { return "ok", nil })
	Post(r, "/reload", func(_ *http.Request) (any, error) { return "ok", nil })

	want := []struct{ verb, path string }{{"POST", "/features"}, {"GET", "/profile"}, {"POST", "/reload"}}
	if len(r.calls) != len(want) {
		t.Fatalf("expected %d registrations, got %d", len(want), len(r.calls))
	}
	for i, w := range want {
		c := r.calls[i]
		if c.verb != w.verb || c.path != w.path || c.ph == nil {
			t.Fatalf("call %d = %s %s (nil=%v), want %s %s", i, c.verb, c.path, c.ph == nil, w.verb, w.path)
		}
	}
}

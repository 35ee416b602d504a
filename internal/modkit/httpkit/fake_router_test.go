package httpkit

import (
	"net/http"

	phttp "sarcasm/internal/platform/net/http"
)

type call struct {
	verb string
	path string
	ph   phttp.Handler
	h    http.Handler
}

// fakeRouter records the calls modules make against the router seam
type fakeRouter struct {
	prefixes  []string
	useCalls  int
	lastMWLen int
	calls     []call
}

func (f *fakeRouter) Mux() http.Handler { return http.NewServeMux() }

func (f *fakeRouter) Route(prefix string, fn func(Router)) {
	f.prefixes = append(f.prefixes, prefix)
	fn(f)
}

func (f *fakeRouter) Group(fn func(Router)) { fn(f) }

func (f *fakeRouter) Use(mw ...func(http.Handler) http.Handler) {
	f.useCalls++
	f.lastMWLen = len(mw)
}

func (f *fakeRouter) Handle(path string, h http.Handler) {
	f.calls = append(f.calls, call{verb: "HANDLE", path: path, h: h})
}

func (f *fakeRouter) Get(path string, h phttp.Handler) {
	f.calls = append(f.calls, call{verb: "GET", path: path, ph: h})
}

func (f *fakeRouter) Post(path string, h phttp.Handler) {
	f.calls = append(f.calls, call{verb: "POST", path: path, ph: h})
}

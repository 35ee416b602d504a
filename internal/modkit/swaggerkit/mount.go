package swaggerkit

import (
	"net/http"

	phttp "sarcasm/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Options controls the docs mount
type Options struct {
	Enabled     bool
	Version     string // replaces info.version when set
	TitleSuffix string // appended to info.title, e.g. "(staging)"
}

// Mount the Swagger UI and JSON spec if enabled
func Mount(r phttp.Router, o Options) {
	if !o.Enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON(o))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("sarcasm"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}

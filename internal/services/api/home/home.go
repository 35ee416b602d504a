// Package home serves the browser landing page at GET /
package home

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"sarcasm/internal/platform/logger"
	phttp "sarcasm/internal/platform/net/http"
)

//go:embed assets/index.html
var assets embed.FS

var page = template.Must(template.ParseFS(assets, "assets/index.html"))

// Page holds the values rendered into the landing page
type Page struct {
	Title       string
	Version     string
	Variant     string
	PredictPath string
	Docs        bool
}

// Render executes the landing page template
func Render(p Page) ([]byte, error) {
	if p.Title == "" {
		p.Title = "Sarcasm Detector"
	}
	if p.PredictPath == "" {
		p.PredictPath = "/predict"
	}
	var buf bytes.Buffer
	if err := page.Execute(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Mount renders the page once and serves it at GET /
func Mount(r phttp.Router, p Page) error {
	body, err := Render(p)
	if err != nil {
		return err
	}
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			logger.C(req.Context()).Debug().Err(err).Msg("home: write failed")
		}
	})
	return nil
}

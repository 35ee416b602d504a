// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	"sarcasm/internal/core/version"
	modkit "sarcasm/internal/modkit"
	"sarcasm/internal/modkit/httpkit"
	str "sarcasm/internal/platform/strings"
	"sarcasm/internal/services/classify/domain"

	metahttp "sarcasm/internal/services/api/meta/http"
)

// Ports is what the meta module needs from other modules
type Ports struct {
	Model domain.ModelPort
}

// Module implements the modkit.Module interface
type Module struct {
	built     modkit.Built
	model     domain.ModelPort
	startedAt time.Time
}

// New constructs a meta module; pass the model port with modkit.WithPorts(Ports{...})
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{built: b, startedAt: deps.StartedAt}
	if m.startedAt.IsZero() {
		m.startedAt = time.Now()
	}
	if p, ok := b.Ports.(Ports); ok {
		m.model = p.Model
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: version.Info().Service,
			StartedAt:   m.startedAt,
			Model:       m.model,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Prefix returns the mount prefix under the API scope
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Middlewares returns the per module middleware
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.built.Mw }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }

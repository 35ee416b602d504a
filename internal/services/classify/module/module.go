// Package module wires the classify service into the API and exposes its ports
package module

import (
	"net/http"

	"sarcasm/internal/core/features"
	"sarcasm/internal/modkit"
	"sarcasm/internal/modkit/httpkit"
	"sarcasm/internal/modkit/swaggerkit"
	perr "sarcasm/internal/platform/errors"
	str "sarcasm/internal/platform/strings"

	classifyhttp "sarcasm/internal/services/classify/http"
	"sarcasm/internal/services/classify/service"
)

// Module implements modkit.Module and modkit.RootMounter
type Module struct {
	built modkit.Built
	opts  Options
	svc   *service.Svc
	ports Ports
}

// New builds the classify service over the loaded bundle
// opts falls back to FromConfig(deps.Cfg) when nil
func New(deps modkit.Deps, opts *Options, mods ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("classify"),
		modkit.WithPrefix("/classify"),
	}, mods...)...)

	o := FromConfig(deps.Cfg)
	if opts != nil {
		o = *opts
	}

	bundle, err := deps.RequireModel()
	if err != nil {
		return nil, err
	}
	ext, err := features.Default()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeStartup, "classify: load lexicon")
	}
	svc, err := service.New(bundle, ext, o.Profile)
	if err != nil {
		return nil, err
	}

	deps.Logger("classify").Info().
		Str("variant", string(o.Profile.Variant)).
		Str("label_policy", string(o.Profile.Policy)).
		Float64("threshold", o.Profile.Threshold).
		Bool("strict_input", o.StrictInput).
		Msg("classify module ready")

	for _, fn := range b.Docs {
		swaggerkit.Register(fn)
	}
	swaggerkit.Register(profileDocs(o))

	return &Module{
		built: b,
		opts:  o,
		svc:   svc,
		ports: Ports{Classifier: svc, Model: svc},
	}, nil
}

func (m *Module) handlerDeps() classifyhttp.Deps {
	return classifyhttp.Deps{Svc: m.svc, StrictInput: m.opts.StrictInput, ExposeErrors: m.opts.ExposeErrors}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		classifyhttp.Register(rr, m.handlerDeps())
	})
}

// MountRoot mounts POST /predict outside the versioned API
func (m *Module) MountRoot(r httpkit.Router) {
	classifyhttp.MountPredict(r, m.handlerDeps())
	m.built.Root(r)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "classify") }

// Prefix returns the mount prefix under the API scope
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Middlewares returns the per module middleware
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.built.Mw }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }

// Service exposes the orchestrator for in process callers such as the CLI
func (m *Module) Service() *service.Svc { return m.svc }

// profileDocs documents the active 400 behavior of /predict
func profileDocs(o Options) swaggerkit.SpecMutator {
	return func(spec map[string]any) {
		paths, _ := spec["paths"].(map[string]any)
		node, _ := paths["/predict"].(map[string]any)
		op, _ := node["post"].(map[string]any)
		if op == nil {
			return
		}
		op["x-variant"] = string(o.Profile.Variant)
		if o.StrictInput {
			return
		}
		if resps, ok := op["responses"].(map[string]any); ok {
			delete(resps, "400")
		}
	}
}

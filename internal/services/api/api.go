// Package api provides the HTTP API for the application
package api

import (
	"time"

	"sarcasm/internal/core/artifact"
	"sarcasm/internal/core/version"
	"sarcasm/internal/platform/config"
	"sarcasm/internal/platform/logger"
	phttp "sarcasm/internal/platform/net/http"

	"sarcasm/internal/modkit"
	"sarcasm/internal/modkit/httpkit"
	"sarcasm/internal/modkit/module"
	"sarcasm/internal/modkit/swaggerkit"

	"sarcasm/internal/services/api/home"
	metamod "sarcasm/internal/services/api/meta/module"
	classifymod "sarcasm/internal/services/classify/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Model  *artifact.Bundle
	Logger *logger.Logger

	// Classify overrides CORE_CLASSIFY_* when set
	Classify *classifymod.Options

	EnableSwagger  bool
	EnableProfiler bool
	Stack          httpkit.StackOptions
}

// OptionsFromConfig reads the CORE_API_ toggles
func OptionsFromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("API_")
	return Options{
		Config:         cfg,
		EnableSwagger:  c.MayBool("SWAGGER", true),
		EnableProfiler: c.MayBool("PROFILER", false),
		Stack: httpkit.StackOptions{
			CORSOrigins: c.MayCSV("CORS_ORIGINS", nil),
			Timeout:     c.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
			Slow:        c.MayDuration("SLOW_REQUEST", time.Second),
			MaxInFlight: c.MayInt("MAX_IN_FLIGHT", 0),
			SkipLog:     []string{"/api/v1/meta/health", "/api/v1/meta/ready"},
		},
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) error {
	deps := modkit.Deps{
		Log:       opt.Logger,
		Cfg:       opt.Config,
		Model:     opt.Model,
		StartedAt: time.Now(),
	}

	classify, err := classifymod.New(deps, opt.Classify)
	if err != nil {
		return err
	}
	ports := module.MustPortsOf[classifymod.Ports](classify)
	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{Model: ports.Model}))

	mods := []modkit.Module{meta, classify}
	for _, m := range mods {
		module.Register(m.Name(), m.Ports())
	}

	stack := httpkit.CommonStack(opt.Stack)
	info := version.Info()

	var homeErr error
	r.Group(func(root phttp.Router) {
		root.Use(stack...)
		homeErr = home.Mount(root, home.Page{
			Version: info.String(),
			Variant: string(classify.Service().Profile().Variant),
			Docs:    opt.EnableSwagger,
		})
		classify.MountRoot(root)
	})
	if homeErr != nil {
		return homeErr
	}

	// versioned API with the same middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	swaggerkit.Mount(r, swaggerkit.Options{Enabled: opt.EnableSwagger, Version: info.Version})
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	return nil
}

// Command sarcasm-api serves the landing page, POST /predict and the versioned API
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sarcasm/internal/core/version"
	"sarcasm/internal/platform/config"
	"sarcasm/internal/platform/logger"
	phttp "sarcasm/internal/platform/net/http"

	"sarcasm/internal/services/api"
	classifymod "sarcasm/internal/services/classify/module"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// a local .env is optional
	_ = godotenv.Load()

	opt := logger.FromEnv()
	if opt.Service == "" {
		opt.Service = version.Info().Service
	}
	opt.StaticFields = map[string]string{"instance": uuid.NewString()}
	logger.Init(opt)
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	core := root.Prefix("CORE_")
	apiCfg := core.Prefix("API_")

	// fail fast: the process never serves without a model
	cls := classifymod.FromConfig(core)
	bundle, err := classifymod.LoadModel(ctx, classifymod.ModelPaths(core), cls.Profile)
	if err != nil {
		l.Fatal().Err(err).Msg("model load failed")
	}

	// http server (reads CORE_API_ADDR, default :5000)
	srv := phttp.NewServer(apiCfg)

	opts := api.OptionsFromConfig(core)
	opts.Model = bundle
	opts.Logger = l
	opts.Classify = &cls
	if err := api.Mount(srv.Router(), opts); err != nil {
		l.Fatal().Err(err).Msg("api mount failed")
	}

	l.Info().Str("addr", srv.Addr()).Str("build", version.Info().String()).Msg("sarcasm api starting")
	if err := srv.Run(ctx); err != nil {
		l.Fatal().Err(err).Msg("http server stopped")
	}
}

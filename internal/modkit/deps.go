// Package modkit provides module wiring and core deps
package modkit

import (
	"time"

	"sarcasm/internal/core/artifact"
	"sarcasm/internal/platform/config"
	perr "sarcasm/internal/platform/errors"
	"sarcasm/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log       *logger.Logger
	Cfg       config.Conf
	Model     *artifact.Bundle
	StartedAt time.Time
}

// RequireModel returns the bundle or a startup error when the process has none
func (d Deps) RequireModel() (*artifact.Bundle, error) {
	if d.Model == nil {
		return nil, perr.Startupf("modkit: no model bundle loaded")
	}
	return d.Model, nil
}

// Logger returns d.Log or the root logger scoped to component
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		l := d.Log.With().Str("component", component).Logger()
		return &l
	}
	return logger.Named(component)
}

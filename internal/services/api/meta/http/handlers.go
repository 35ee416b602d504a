// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"sarcasm/internal/core/artifact"
	"sarcasm/internal/core/version"
	"sarcasm/internal/modkit/httpkit"
	perr "sarcasm/internal/platform/errors"
	"sarcasm/internal/services/classify/domain"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Model       domain.ModelPort // nil when no model module is mounted
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	// mount routes
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/model", h.model)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"sarcasm-api"`
	Started string `json:"started"  example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"      example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"model"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"model not loaded"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"sarcasm-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// swagger:route GET /api/v1/meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/v1/meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /api/v1/meta/ready Meta metaReady
// @Summary Readiness probe with model checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /api/v1/meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	check := ReadyCheck{Name: "model", Status: "ok"}
	switch {
	case h.deps.Model == nil:
		check.Status, check.Error = "fail", "model not loaded"
	default:
		if err := h.deps.Model.Ready(ctx); err != nil {
			check.Status, check.Error = "fail", err.Error()
		}
	}

	resp := ReadyResponse{
		Status: check.Status,
		Checks: []ReadyCheck{check},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}
	if check.Status != "ok" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: resp}, nil
	}
	return resp, nil
}

// swagger:route GET /api/v1/meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /api/v1/meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /api/v1/meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /api/v1/meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

// ModelResponse pairs the loaded artifacts with the active profile
type ModelResponse struct {
	Model   artifact.Description `json:"model"`
	Profile *domain.Profile      `json:"profile,omitempty"`
}

// swagger:route GET /api/v1/meta/model Meta metaModel
// @Summary Loaded model artifacts
// @Tags Meta
// @Produce json
// @Success 200 {object} ModelResponse
// @Failure 503 {object} httpkit.Envelope
// @Router /api/v1/meta/model [get]
func (h *handlers) model(_ *http.Request) (any, error) {
	if h.deps.Model == nil {
		return nil, perr.Unavailablef("model not loaded")
	}
	resp := ModelResponse{Model: h.deps.Model.Model()}
	if p, ok := h.deps.Model.(interface{ Profile() domain.Profile }); ok {
		prof := p.Profile()
		resp.Profile = &prof
	}
	return resp, nil
}

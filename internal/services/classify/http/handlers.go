// Package http provides the classify endpoints
package http

import (
	"encoding/json"
	"net/http"

	"sarcasm/internal/modkit/httpkit"
	perr "sarcasm/internal/platform/errors"
	"sarcasm/internal/platform/logger"
	phttp "sarcasm/internal/platform/net/http"
	"sarcasm/internal/platform/net/http/bind"
	"sarcasm/internal/services/classify/domain"
)

// maxBody caps /predict payloads
const maxBody = 1 << 20

// genericInferenceMessage replaces inference error text when errors are not exposed
const genericInferenceMessage = "inference failed"

// Deps are the handler dependencies
type Deps struct {
	Svc domain.ServicePort

	// StrictInput answers a missing text with 400 instead of 200
	StrictInput bool
	// ExposeErrors puts the inference error message on the wire
	ExposeErrors bool
}

type handlers struct {
	deps Deps
}

// Register mounts the classify routes under the module router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	r.Post("/predict", h.Predict())
	httpkit.PostJSON(r, "/features", h.features)
	httpkit.Get(r, "/profile", h.profile)
}

// MountPredict mounts the flat POST /predict endpoint at the router root
func MountPredict(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	r.Post("/predict", h.Predict())
}

//
// Swagger DTOs and route docs
//

// PredictRequest is the /predict body
// swagger:model
type PredictRequest struct {
	Text any `json:"text" example:"Oh great, another Monday. Just what I needed."`
}

// PredictResponse is the /predict success body
type PredictResponse struct {
	Result     string  `json:"result"     example:"Sarcastic 😏"`
	Confidence float64 `json:"confidence" example:"0.87"`
}

// ErrorResponse is the /predict failure body
type ErrorResponse struct {
	Error string `json:"error" example:"No text provided"`
}

// predictBody keeps text raw so non string values can be coerced
type predictBody struct {
	Text json.RawMessage `json:"text"`
}

// swagger:route POST /predict Classify classifyPredict
// @Summary Classify one text as sarcastic or not
// @Tags Classify
// @Accept json
// @Produce json
// @Param body body PredictRequest true "text to classify"
// @Success 200 {object} PredictResponse
// @Failure 400 {object} ErrorResponse
// @Router /predict [post]
func (h *handlers) Predict() httpkit.Handler {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.C(r.Context())

		in, err := bind.ParseJSON[*predictBody](r, bind.JSONOptions{MaxBytes: maxBody, SkipValidation: true})
		if err == nil && in == nil {
			err = perr.JSONErrf("request body must be a JSON object")
		}
		if err != nil {
			log.Debug().Err(err).Msg("predict: undecodable body")
			phttp.JSON(w, http.StatusOK, ErrorResponse{Error: err.Error()})
			return
		}

		text, _ := CoerceText(in.Text)
		out, err := h.deps.Svc.Predict(r.Context(), text)
		if err != nil {
			status, body := h.predictError(err)
			phttp.JSON(w, status, body)
			return
		}
		phttp.JSON(w, http.StatusOK, PredictResponse{Result: out.Result, Confidence: out.Confidence})
	}
}

// predictError maps orchestrator errors onto the flat wire
func (h *handlers) predictError(err error) (int, ErrorResponse) {
	if perr.IsCode(err, perr.ErrorCodeValidation) {
		status := http.StatusOK
		if h.deps.StrictInput {
			status = http.StatusBadRequest
		}
		msg := err.Error()
		if pe, ok := perr.As(err); ok {
			msg = pe.Message()
		}
		return status, ErrorResponse{Error: msg}
	}
	if !h.deps.ExposeErrors {
		return http.StatusOK, ErrorResponse{Error: genericInferenceMessage}
	}
	return http.StatusOK, ErrorResponse{Error: err.Error()}
}

// swagger:route POST /api/v1/classify/features Classify classifyFeatures
// @Summary Show the normalized text and heuristic features for a text
// @Tags Classify
// @Accept json
// @Produce json
// @Param body body domain.FeaturesInput true "text to inspect"
// @Success 200 {object} domain.FeatureReport
// @Router /api/v1/classify/features [post]
func (h *handlers) features(r *http.Request, in domain.FeaturesInput) (any, error) {
	return h.deps.Svc.Features(r.Context(), in.Text)
}

// swagger:route GET /api/v1/classify/profile Classify classifyProfile
// @Summary Active pipeline profile
// @Tags Classify
// @Produce json
// @Success 200 {object} domain.Profile
// @Router /api/v1/classify/profile [get]
func (h *handlers) profile(_ *http.Request) (any, error) {
	return h.deps.Svc.Profile(), nil
}

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sarcasm/internal/modkit/httpkit"
	perr "sarcasm/internal/platform/errors"
	phttp "sarcasm/internal/platform/net/http"
	"sarcasm/internal/services/classify/domain"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type fakeSvc struct {
	got  []string
	pred domain.Prediction
	err  error
}

func (f *fakeSvc) Predict(_ context.Context, text string) (domain.Prediction, error) {
	f.got = append(f.got, text)
	if text == "" {
		return domain.Prediction{}, perr.WithField(perr.InvalidInputf("No text provided"), "text")
	}
	return f.pred, f.err
}

func (f *fakeSvc) Features(_ context.Context, text string) (domain.FeatureReport, error) {
	return domain.FeatureReport{Variant: domain.VariantHeuristic, Normalized: strings.ToLower(text), Used: true}, nil
}

func (f *fakeSvc) Profile() domain.Profile { return domain.DefaultProfile(domain.VariantHeuristic) }

func router(d Deps) http.Handler {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	MountPredict(r, d)
	r.Route("/api/v1/classify", func(rr httpkit.Router) { Register(rr, d) })
	return mux
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestPredictSuccessWire(t *testing.T) {
	svc := &fakeSvc{pred: domain.Prediction{Result: "Sarcastic 😏", Confidence: 0.87, Sarcastic: true}}
	h := router(Deps{Svc: svc, StrictInput: true, ExposeErrors: true})

	for _, path := range []string{"/predict", "/api/v1/classify/predict"} {
		rec, out := do(t, h, http.MethodPost, path, `{"text":"Oh great, another Monday."}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, map[string]any{"result": "Sarcastic 😏", "confidence": 0.87}, out)
	}
	require.Equal(t, []string{"Oh great, another Monday.", "Oh great, another Monday."}, svc.got)
}

func TestPredictMissingText(t *testing.T) {
	cases := []struct {
		name   string
		strict bool
		body   string
		status int
	}{
		{"strict empty string", true, `{"text":""}`, http.StatusBadRequest},
		{"strict absent", true, `{}`, http.StatusBadRequest},
		{"strict null", true, `{"text":null}`, http.StatusBadRequest},
		{"strict false", true, `{"text":false}`, http.StatusBadRequest},
		{"lenient absent", false, `{"other":1}`, http.StatusOK},
		{"lenient empty list", false, `{"text":[]}`, http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := router(Deps{Svc: &fakeSvc{}, StrictInput: c.strict, ExposeErrors: true})
			rec, out := do(t, h, http.MethodPost, "/predict", c.body)
			require.Equal(t, c.status, rec.Code)
			require.Equal(t, map[string]any{"error": "No text provided"}, out)
		})
	}
}

func TestPredictUndecodableBodyIs200(t *testing.T) {
	h := router(Deps{Svc: &fakeSvc{}, StrictInput: true, ExposeErrors: true})
	for _, body := range []string{``, `null`, ` null `, `{"text":`, `["a"]`, `"text"`} {
		rec, out := do(t, h, http.MethodPost, "/predict", body)
		require.Equal(t, http.StatusOK, rec.Code, body)
		require.NotEmpty(t, out["error"], body)
		require.NotContains(t, out, "result")
	}
}

func TestPredictInferenceErrors(t *testing.T) {
	svc := &fakeSvc{err: perr.Wrap(perr.Internalf("dimension mismatch"), perr.ErrorCodeInference, "predict")}

	rec, out := do(t, router(Deps{Svc: svc, ExposeErrors: true}), http.MethodPost, "/predict", `{"text":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "predict: dimension mismatch", out["error"])

	rec, out = do(t, router(Deps{Svc: svc, ExposeErrors: false}), http.MethodPost, "/predict", `{"text":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "inference failed", out["error"])
}

func TestPredictCoercesNonStrings(t *testing.T) {
	svc := &fakeSvc{pred: domain.Prediction{Result: "Not Sarcastic 🙂", Confidence: 0.2}}
	h := router(Deps{Svc: svc, ExposeErrors: true})
	for _, body := range []string{`{"text":true}`, `{"text":42}`, `{"text":["a"]}`} {
		rec, _ := do(t, h, http.MethodPost, "/predict", body)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	require.Equal(t, []string{"True", "42", `['a']`}, svc.got)
}

func TestFeaturesAndProfileUseEnvelope(t *testing.T) {
	h := router(Deps{Svc: &fakeSvc{}})

	rec, out := do(t, h, http.MethodPost, "/api/v1/classify/features", `{"text":"WOW"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := out["data"].(map[string]any)
	require.True(t, ok, rec.Body.String())
	require.Equal(t, "wow", data["normalized"])

	rec, out = do(t, h, http.MethodPost, "/api/v1/classify/features", `{"text":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotEmpty(t, out["error"])

	rec, out = do(t, h, http.MethodGet, "/api/v1/classify/profile", ``)
	require.Equal(t, http.StatusOK, rec.Code)
	data = out["data"].(map[string]any)
	require.Equal(t, "heuristic", data["variant"])
	require.Equal(t, 0.5, data["threshold"])
}

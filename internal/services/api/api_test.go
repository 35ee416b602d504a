package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sarcasm/internal/core/artifact"
	"sarcasm/internal/core/artifact/artifacttest"
	"sarcasm/internal/core/features"
	"sarcasm/internal/modkit/module"
	"sarcasm/internal/modkit/swaggerkit"
	"sarcasm/internal/platform/config"
	phttp "sarcasm/internal/platform/net/http"
	"sarcasm/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func mountAPI(t *testing.T) http.Handler {
	t.Helper()
	testkit.Serial(t)
	t.Cleanup(swaggerkit.Reset)
	t.Cleanup(module.Reset)

	files := artifacttest.Write(t, features.Size)
	b, err := artifact.Load(t.Context(), artifact.Paths{
		Vectorizer: files.Vectorizer,
		Classifier: files.Classifier,
	}, artifact.Options{ExtraFeatures: features.Size})
	require.NoError(t, err)

	opt := OptionsFromConfig(config.New().Prefix("T_API_CORE_"))
	opt.Model = b
	opt.EnableProfiler = true

	mux := chi.NewRouter()
	require.NoError(t, Mount(phttp.AdaptChi(mux), opt))
	return mux
}

func call(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

func TestMountEndToEnd(t *testing.T) {
	h := mountAPI(t)

	rec := call(h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<textarea")
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = call(h, http.MethodPost, "/predict", `{"text":"Hello world"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"result":"Not Sarcastic 🙂","confidence":0.01}`, rec.Body.String())

	rec = call(h, http.MethodPost, "/predict", `{"text":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"No text provided"}`, rec.Body.String())

	rec = call(h, http.MethodPost, "/predict", `not json`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"error"`)

	rec = call(h, http.MethodPost, "/api/v1/classify/features", `{"text":"Oh GREAT, thanks a lot"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data struct {
			Normalized string         `json:"normalized"`
			Features   map[string]int `json:"features"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, "oh great thanks a lot", env.Data.Normalized)
	require.Equal(t, 1, env.Data.Features["cue_present"])

	rec = call(h, http.MethodGet, "/api/v1/meta/ready", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(h, http.MethodGet, "/api/v1/meta/model", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"sha256"`)

	rec = call(h, http.MethodGet, "/api/docs/doc.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"x-variant":"heuristic"`)

	rec = call(h, http.MethodGet, "/debug/pprof/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	_, ok := module.PortsAs[any]("classify")
	require.True(t, ok)
}

func TestMountFailsWithoutModel(t *testing.T) {
	testkit.Serial(t)
	t.Cleanup(swaggerkit.Reset)
	mux := chi.NewRouter()
	err := Mount(phttp.AdaptChi(mux), OptionsFromConfig(config.New().Prefix("T_API_NONE_")))
	require.Error(t, err)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv("T_API_OPT_API_SWAGGER", "false")
	t.Setenv("T_API_OPT_API_CORS_ORIGINS", "https://a.test, https://b.test")
	t.Setenv("T_API_OPT_API_MAX_IN_FLIGHT", "16")

	o := OptionsFromConfig(config.New().Prefix("T_API_OPT_"))
	require.False(t, o.EnableSwagger)
	require.False(t, o.EnableProfiler)
	require.Equal(t, []string{"https://a.test", "https://b.test"}, o.Stack.CORSOrigins)
	require.Equal(t, 16, o.Stack.MaxInFlight)
}

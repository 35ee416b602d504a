package artifact_test

import (
	"context"
	"path/filepath"
	"testing"

	"sarcasm/internal/core/artifact"
	"sarcasm/internal/core/artifact/artifacttest"
	"sarcasm/internal/core/classifier"
	"sarcasm/internal/core/textvec"
	perr "sarcasm/internal/platform/errors"
	"sarcasm/internal/platform/testkit"

	"github.com/stretchr/testify/require"
)

func TestLoad_PlainJSON(t *testing.T) {
	f := artifacttest.Write(t, 6)
	b, err := artifact.Load(context.Background(), artifact.Paths{
		Vectorizer: f.Vectorizer,
		Classifier: f.Classifier,
	}, artifact.Options{ExtraFeatures: 6})
	require.NoError(t, err)

	require.Equal(t, len(artifacttest.Terms), b.Vectorizer.Dim())
	require.Equal(t, len(artifacttest.Terms)+6, b.Classifier.NumFeatures())
	require.Nil(t, b.Encoder)
	require.Len(t, b.Files, 2)
	for _, file := range b.Files {
		require.Equal(t, "json", file.Format)
		require.Len(t, file.SHA256, 64)
		require.Positive(t, file.Bytes)
	}

	d := b.Describe()
	require.Equal(t, textvec.KindCount, d.Vectorizer.Kind)
	require.Equal(t, classifier.KindLogistic, d.Classifier.Kind)
	require.True(t, d.Classifier.Probabilistic)
	require.Equal(t, 6, d.ExtraFeatures)
	require.Empty(t, d.Labels)
}

func TestLoad_GzipAndEncoder(t *testing.T) {
	dir := t.TempDir()
	paths := artifact.Paths{
		Vectorizer: artifacttest.WriteJSON(t, dir, "vectorizer.json.gz", artifacttest.Vectorizer(), true),
		Classifier: artifacttest.WriteJSON(t, dir, "model.json.gz", artifacttest.SVC(0), true),
		Encoder:    artifacttest.WriteJSON(t, dir, "label_encoder.json", artifacttest.Encoder(), false),
	}
	b, err := artifact.Load(context.Background(), paths, artifact.Options{RequireEncoder: true})
	require.NoError(t, err)
	require.NotNil(t, b.Encoder)
	require.Equal(t, "json+gzip", b.Files[0].Format)
	require.Equal(t, "json", b.Files[2].Format)

	d := b.Describe()
	require.False(t, d.Classifier.Probabilistic)
	require.Equal(t, []string{"not_sarcastic", "sarcastic"}, d.Labels)
}

func TestLoad_StartupErrors(t *testing.T) {
	ctx := context.Background()
	f := artifacttest.Write(t, 0)
	dir := t.TempDir()

	pickle := testkit.WriteFile(t, dir, "model.pkl", []byte{0x80, 0x04, 0x95, 0x00, 0x00, 0x00, 0x00, 0xff, 0xfe, 0x00})
	broken := testkit.WriteFile(t, dir, "broken.json", []byte(`{"kind": "count", "vocabulary": `))
	badEnc := artifacttest.WriteJSON(t, dir, "enc3.json", classifier.EncoderConfig{Classes: []string{"a", "b", "c"}}, false)

	cases := []struct {
		name  string
		paths artifact.Paths
		opt   artifact.Options
	}{
		{"missing paths", artifact.Paths{}, artifact.Options{}},
		{"missing file", artifact.Paths{Vectorizer: filepath.Join(dir, "nope.json"), Classifier: f.Classifier}, artifact.Options{}},
		{"binary pickle", artifact.Paths{Vectorizer: f.Vectorizer, Classifier: pickle}, artifact.Options{}},
		{"truncated json", artifact.Paths{Vectorizer: broken, Classifier: f.Classifier}, artifact.Options{}},
		{"dimension mismatch", artifact.Paths{Vectorizer: f.Vectorizer, Classifier: f.Classifier}, artifact.Options{ExtraFeatures: 6}},
		{"encoder required", artifact.Paths{Vectorizer: f.Vectorizer, Classifier: f.Classifier}, artifact.Options{RequireEncoder: true}},
		{"encoder size", artifact.Paths{Vectorizer: f.Vectorizer, Classifier: f.Classifier, Encoder: badEnc}, artifact.Options{}},
		{"too large", artifact.Paths{Vectorizer: f.Vectorizer, Classifier: f.Classifier}, artifact.Options{MaxBytes: 8}},
	}
	for _, c := range cases {
		_, err := artifact.Load(ctx, c.paths, c.opt)
		require.Error(t, err, c.name)
		require.True(t, perr.IsCode(err, perr.ErrorCodeStartup), "%s: code %v", c.name, perr.CodeOf(err))
	}
}

func TestLoad_Cancelled(t *testing.T) {
	f := artifacttest.Write(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := artifact.Load(ctx, artifact.Paths{Vectorizer: f.Vectorizer, Classifier: f.Classifier}, artifact.Options{})
	require.True(t, perr.IsCode(err, perr.ErrorCodeStartup))
}

func TestNewBundle_Validates(t *testing.T) {
	vec, err := textvec.New(artifacttest.Vectorizer())
	require.NoError(t, err)
	clf, err := classifier.New(artifacttest.Logistic(6))
	require.NoError(t, err)

	_, err = artifact.NewBundle(vec, clf, nil, 0)
	require.Error(t, err)

	b, err := artifact.NewBundle(vec, clf, nil, 6)
	require.NoError(t, err)
	require.Equal(t, 6, b.ExtraFeatures())

	_, err = artifact.NewBundle(nil, clf, nil, 6)
	require.Error(t, err)
}

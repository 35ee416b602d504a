// Package artifacttest writes small but valid model artifacts for tests
package artifacttest

import (
	"bytes"
	"encoding/json"
	"testing"

	"sarcasm/internal/core/classifier"
	"sarcasm/internal/core/textvec"
	"sarcasm/internal/platform/testkit"

	"github.com/klauspost/compress/gzip"
)

// Terms is the vocabulary used by the fixtures, index order
var Terms = []string{"great", "thanks", "lot", "love", "terrible", "hello", "world"}

// Vectorizer returns a count vectorizer config over Terms
func Vectorizer() textvec.Config {
	vocab := make(map[string]int, len(Terms))
	for i, t := range Terms {
		vocab[t] = i
	}
	return textvec.Config{Kind: textvec.KindCount, Vocabulary: vocab, NgramRange: [2]int{1, 1}}
}

// Logistic returns a binary logistic model over Terms plus extra trailing columns
// cue-like words push toward class 1, "hello" and "world" push toward class 0
func Logistic(extra int) classifier.Config {
	w := []float64{1.5, 1.0, 0.5, 1.0, 0.5, -2.0, -2.0}
	for i := 0; i < extra; i++ {
		w = append(w, 0.25)
	}
	return classifier.Config{
		Kind:      classifier.KindLogistic,
		Classes:   []int{0, 1},
		Coef:      [][]float64{w},
		Intercept: []float64{-0.5},
	}
}

// SVC is Logistic's weights as a linear SVC, which has no probabilities
func SVC(extra int) classifier.Config {
	c := Logistic(extra)
	c.Kind = classifier.KindLinearSVC
	return c
}

// Encoder returns a two label encoder
func Encoder() classifier.EncoderConfig {
	return classifier.EncoderConfig{Classes: []string{"not_sarcastic", "sarcastic"}}
}

// WriteJSON marshals v into dir/name and returns the path; gz compresses the file
func WriteJSON(t *testing.T, dir, name string, v any, gz bool) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	if gz {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			t.Fatalf("gzip %s: %v", name, err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("gzip close %s: %v", name, err)
		}
		data = buf.Bytes()
	}
	return testkit.WriteFile(t, dir, name, data)
}

// Files holds the written fixture paths
type Files struct {
	Dir        string
	Vectorizer string
	Classifier string
	Encoder    string
}

// Write writes a vectorizer, a logistic classifier sized for extra columns and an encoder
func Write(t *testing.T, extra int) Files {
	t.Helper()
	dir := t.TempDir()
	return Files{
		Dir:        dir,
		Vectorizer: WriteJSON(t, dir, "vectorizer.json", Vectorizer(), false),
		Classifier: WriteJSON(t, dir, "model.json", Logistic(extra), false),
		Encoder:    WriteJSON(t, dir, "label_encoder.json", Encoder(), false),
	}
}

// Package service implements the inference orchestrator
package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"sarcasm/internal/core/artifact"
	"sarcasm/internal/core/classifier"
	"sarcasm/internal/core/features"
	"sarcasm/internal/core/normalize"
	perr "sarcasm/internal/platform/errors"
	"sarcasm/internal/platform/logger"
	"sarcasm/internal/services/classify/domain"
)

// Service defines the classify service contract
type Service interface {
	domain.ServicePort
	domain.ModelPort
}

// Svc holds read only model state; safe for concurrent use without locking
type Svc struct {
	bundle  *artifact.Bundle
	norm    *normalize.Normalizer
	ext     *features.Extractor
	profile domain.Profile

	// sarcastic class value and its column in probability outputs
	sarcClass int
	sarcIdx   int
}

// New checks that the bundle fits the profile and resolves the sarcastic class
func New(b *artifact.Bundle, ext *features.Extractor, p domain.Profile) (*Svc, error) {
	if b == nil {
		return nil, perr.Startupf("classify: nil model bundle")
	}
	if err := p.Validate(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeStartup, "classify: invalid profile")
	}
	if ext == nil {
		var err error
		if ext, err = features.Default(); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeStartup, "classify: build feature extractor")
		}
	}

	wantExtra := 0
	if p.Heuristics() {
		wantExtra = features.Size
	}
	if got := b.ExtraFeatures(); got != wantExtra {
		return nil, perr.Startupf("classify: %s variant needs %d extra features, bundle was validated for %d",
			p.Variant, wantExtra, got)
	}

	s := &Svc{bundle: b, norm: normalize.New(), ext: ext, profile: p}
	s.sarcClass, s.sarcIdx = sarcasticColumn(b, p)
	return s, nil
}

// sarcasticColumn picks the class that means "sarcastic"
// with an encoder it is the code of the configured label, otherwise class value 1;
// when neither is present the second column wins
func sarcasticColumn(b *artifact.Bundle, p domain.Profile) (class, idx int) {
	classes := b.Classifier.Classes()
	class = 1
	if b.Encoder != nil {
		if code, ok := b.Encoder.Encode(p.SarcasticLabel); ok {
			class = code
		}
	}
	idx = slices.Index(classes, class)
	if idx < 0 {
		idx = 1
		class = classes[1]
	}
	return class, idx
}

// Profile returns the active pipeline profile
func (s *Svc) Profile() domain.Profile { return s.profile }

// Model describes the loaded bundle
func (s *Svc) Model() artifact.Description { return s.bundle.Describe() }

// Ready reports whether the service can answer; the bundle is loaded before New so this only
// fails on a cancelled context
func (s *Svc) Ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "classify: not ready")
	}
	return nil
}

// Predict runs the full pipeline for one text
// empty text is InvalidInput and never reaches the model; later failures are InferenceError
func (s *Svc) Predict(ctx context.Context, text string) (out domain.Prediction, err error) {
	if text == "" {
		return domain.Prediction{}, perr.WithField(perr.InvalidInputf("No text provided"), "text")
	}
	start := time.Now()
	log := logger.C(ctx)

	defer func() {
		if v := recover(); v != nil {
			err = perr.Inferencef("classify: %v", v)
		}
		if err != nil {
			log.Warn().Err(err).Str("variant", string(s.profile.Variant)).Msg("inference failed")
			return
		}
		log.Debug().
			Int("len", len(text)).
			Str("variant", string(s.profile.Variant)).
			Str("result", out.Result).
			Float64("confidence", out.Confidence).
			Bool("probabilistic", out.Probabilistic).
			Dur("elapsed", time.Since(start)).
			Msg("prediction")
	}()

	x, _, err := s.input(text)
	if err != nil {
		return domain.Prediction{}, perr.Wrap(err, perr.ErrorCodeInference, "vectorize")
	}

	clf := s.bundle.Classifier
	pred, err := clf.Predict(x)
	if err != nil {
		return domain.Prediction{}, perr.Wrap(err, perr.ErrorCodeInference, "predict")
	}

	raw := FallbackConfidence(pred == s.sarcClass)
	prober, probabilistic := clf.(classifier.Prober)
	if probabilistic {
		probs, err := prober.PredictProba(x)
		if err != nil {
			return domain.Prediction{}, perr.Wrap(err, perr.ErrorCodeInference, "predict_proba")
		}
		if s.sarcIdx >= len(probs) {
			return domain.Prediction{}, perr.Inferencef("predict_proba: %d columns, sarcastic column is %d", len(probs), s.sarcIdx)
		}
		raw = probs[s.sarcIdx]
	}

	result, sarcastic, err := s.label(raw, pred)
	if err != nil {
		return domain.Prediction{}, perr.Wrap(err, perr.ErrorCodeInference, "label")
	}

	return domain.Prediction{
		Result:        result,
		Confidence:    Round2(raw),
		Sarcastic:     sarcastic,
		Class:         pred,
		Probabilistic: probabilistic,
	}, nil
}

// input prepares the classifier row and returns the text the vectorizer saw
func (s *Svc) input(text string) ([]float64, string, error) {
	prepared := text
	if s.profile.Normalizes() {
		prepared = s.norm.Normalize(text)
	}
	rows, err := s.bundle.Vectorizer.Transform([]string{prepared})
	if err != nil {
		return nil, prepared, err
	}
	if len(rows) != 1 {
		return nil, prepared, fmt.Errorf("vectorizer returned %d rows for 1 document", len(rows))
	}
	x := rows[0]
	if s.profile.Heuristics() {
		x = append(x, s.ext.Extract(prepared).Floats()...)
	}
	return x, prepared, nil
}

// label applies the configured policy
func (s *Svc) label(prob float64, pred int) (string, bool, error) {
	switch s.profile.Policy {
	case domain.PolicyDiscrete:
		return DiscreteLabel(s.profile, s.bundle.Encoder, pred, s.sarcClass)
	default:
		sarcastic := ThresholdLabel(prob, s.profile.Threshold)
		return s.profile.Display(sarcastic), sarcastic, nil
	}
}

// Features reports the normalized text and heuristic vector without classifying
func (s *Svc) Features(ctx context.Context, text string) (domain.FeatureReport, error) {
	if text == "" {
		return domain.FeatureReport{}, perr.WithField(perr.InvalidInputf("No text provided"), "text")
	}
	if err := ctx.Err(); err != nil {
		return domain.FeatureReport{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "features: cancelled")
	}
	norm := s.norm.Normalize(text)
	v := s.ext.Extract(norm)
	cues := s.ext.Cues(norm)
	if cues == nil {
		cues = []string{}
	}
	return domain.FeatureReport{
		Variant:    s.profile.Variant,
		Normalized: norm,
		Vector:     v[:],
		Features:   v.Named(),
		Cues:       cues,
		Used:       s.profile.Heuristics(),
	}, nil
}

package module

import (
	"context"

	"sarcasm/internal/core/artifact"
	"sarcasm/internal/core/features"
	"sarcasm/internal/platform/config"
	"sarcasm/internal/platform/logger"
	"sarcasm/internal/services/classify/domain"
)

// ModelPaths reads artifact locations with the MODEL_ prefix, e.g. CORE_MODEL_VECTORIZER_PATH
func ModelPaths(cfg config.Conf) artifact.Paths {
	c := cfg.Prefix("MODEL_")
	return artifact.Paths{
		Vectorizer: c.MayString("VECTORIZER_PATH", "models/vectorizer.json"),
		Classifier: c.MayString("CLASSIFIER_PATH", "models/model.json"),
		Encoder:    c.MayString("ENCODER_PATH", ""),
	}
}

// LoadModel loads the bundle the profile needs
// heuristic bundles carry the six extra columns; the plain variant with discrete labels needs the encoder
func LoadModel(ctx context.Context, p artifact.Paths, prof domain.Profile) (*artifact.Bundle, error) {
	opt := artifact.Options{
		RequireEncoder: prof.Variant == domain.VariantPlain && prof.Policy == domain.PolicyDiscrete,
	}
	if prof.Heuristics() {
		opt.ExtraFeatures = features.Size
	}

	b, err := artifact.Load(ctx, p, opt)
	if err != nil {
		return nil, err
	}

	log := logger.Named("artifact")
	for _, f := range b.Files {
		log.Info().Str("role", f.Role).Str("path", f.Path).Str("format", f.Format).
			Int64("bytes", f.Bytes).Str("sha256", f.SHA256).Msg("artifact loaded")
	}
	return b, nil
}

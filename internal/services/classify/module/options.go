package module

import (
	"sarcasm/internal/platform/config"
	"sarcasm/internal/services/classify/domain"
)

// Options controls the classify pipeline and its endpoints
type Options struct {
	Profile domain.Profile

	// StrictInput answers a missing text with 400; the plain variant shipped with 200
	StrictInput bool
	// ExposeErrors puts inference error messages on the wire
	ExposeErrors bool
}

// FromConfig reads with the CLASSIFY_ prefix, e.g. CORE_CLASSIFY_VARIANT
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CLASSIFY_")

	variant := domain.Variant(c.MayEnum("VARIANT", string(domain.VariantHeuristic),
		string(domain.VariantHeuristic), string(domain.VariantPlain)))
	p := domain.DefaultProfile(variant)

	p.Policy = domain.LabelPolicy(c.MayEnum("LABEL_POLICY", string(p.Policy),
		string(domain.PolicyThreshold), string(domain.PolicyDiscrete)))
	p.Threshold = c.MayFloat64("THRESHOLD", p.Threshold)
	p.SarcasticLabel = c.MayString("SARCASTIC_LABEL", p.SarcasticLabel)
	p.Decorate = c.MayBool("DECORATE", p.Decorate)

	return Options{
		Profile:      p,
		StrictInput:  c.MayBool("STRICT_INPUT", variant == domain.VariantHeuristic),
		ExposeErrors: c.MayBool("EXPOSE_ERRORS", true),
	}
}

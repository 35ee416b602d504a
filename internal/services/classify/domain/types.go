// Package domain defines the types and ports for the classify service
package domain

import "fmt"

// Variant selects the preprocessing pipeline
type Variant string

const (
	// VariantHeuristic normalizes text and appends the six heuristic features
	VariantHeuristic Variant = "heuristic"
	// VariantPlain feeds raw text to the vectorizer and decodes labels with the encoder
	VariantPlain Variant = "plain"
)

// LabelPolicy decides how the result label is derived
type LabelPolicy string

const (
	// PolicyThreshold labels sarcastic when P(sarcastic) >= Threshold
	PolicyThreshold LabelPolicy = "threshold"
	// PolicyDiscrete uses the classifier's own predicted class
	PolicyDiscrete LabelPolicy = "discrete"
)

// Display labels for the threshold policy
const (
	LabelSarcastic    = "Sarcastic"
	LabelNotSarcastic = "Not Sarcastic"
)

// Fallback confidences when the classifier has no probability output
const (
	FallbackSarcastic    = 0.8
	FallbackNotSarcastic = 0.3
)

// Profile is the immutable per process pipeline choice
type Profile struct {
	Variant        Variant     `json:"variant"`
	Policy         LabelPolicy `json:"label_policy"`
	Threshold      float64     `json:"threshold"`
	SarcasticLabel string      `json:"sarcastic_label"`
	Decorate       bool        `json:"decorate"`
}

// DefaultProfile returns the settings each variant shipped with
func DefaultProfile(v Variant) Profile {
	p := Profile{
		Variant:        v,
		Policy:         PolicyThreshold,
		Threshold:      0.5,
		SarcasticLabel: "sarcastic",
		Decorate:       true,
	}
	if v == VariantPlain {
		p.Policy = PolicyDiscrete
	}
	return p
}

// Validate rejects unknown enums and thresholds outside [0,1]
func (p Profile) Validate() error {
	switch p.Variant {
	case VariantHeuristic, VariantPlain:
	default:
		return fmt.Errorf("unknown variant %q", p.Variant)
	}
	switch p.Policy {
	case PolicyThreshold, PolicyDiscrete:
	default:
		return fmt.Errorf("unknown label policy %q", p.Policy)
	}
	if p.Threshold < 0 || p.Threshold > 1 {
		return fmt.Errorf("threshold %v outside [0,1]", p.Threshold)
	}
	return nil
}

// Normalizes reports whether text goes through the normalizer first
func (p Profile) Normalizes() bool { return p.Variant == VariantHeuristic }

// Heuristics reports whether the six heuristic features are appended
func (p Profile) Heuristics() bool { return p.Variant == VariantHeuristic }

// Display returns the human label for the threshold policy, decorated if configured
func (p Profile) Display(sarcastic bool) string {
	switch {
	case sarcastic && p.Decorate:
		return LabelSarcastic + " 😏"
	case sarcastic:
		return LabelSarcastic
	case p.Decorate:
		return LabelNotSarcastic + " 🙂"
	default:
		return LabelNotSarcastic
	}
}

// Prediction is the result of one classification; only Result and Confidence go on the wire
type Prediction struct {
	Result     string  `json:"result"`
	Confidence float64 `json:"confidence"`

	Sarcastic     bool `json:"-"`
	Class         int  `json:"-"`
	Probabilistic bool `json:"-"`
}

// FeaturesInput is the body of the debug features endpoint
type FeaturesInput struct {
	Text string `json:"text" validate:"required,max=10000" example:"oh great, another monday"`
}

// FeatureReport explains what the heuristic stage sees for a text
type FeatureReport struct {
	Variant    Variant        `json:"variant"`
	Normalized string         `json:"normalized"`
	Vector     []int          `json:"vector"`
	Features   map[string]int `json:"features"`
	Cues       []string       `json:"cues"`
	Used       bool           `json:"used"`
}

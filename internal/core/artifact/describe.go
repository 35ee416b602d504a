package artifact

import (
	"time"

	"sarcasm/internal/core/classifier"
)

// Description is a JSON friendly summary of a loaded bundle
type Description struct {
	Vectorizer struct {
		Kind string `json:"kind"`
		Dim  int    `json:"dim"`
	} `json:"vectorizer"`
	Classifier struct {
		Kind          string `json:"kind"`
		Classes       []int  `json:"classes"`
		Features      int    `json:"features"`
		Probabilistic bool   `json:"probabilistic"`
	} `json:"classifier"`
	Labels        []string  `json:"labels,omitempty"`
	ExtraFeatures int       `json:"extra_features"`
	Files         []File    `json:"files"`
	LoadedAt      time.Time `json:"loaded_at"`
}

// Describe summarizes the bundle for meta endpoints and the CLI
func (b *Bundle) Describe() Description {
	var d Description
	d.Vectorizer.Kind = b.Vectorizer.Kind()
	d.Vectorizer.Dim = b.Vectorizer.Dim()
	d.Classifier.Kind = b.Classifier.Kind()
	d.Classifier.Classes = b.Classifier.Classes()
	d.Classifier.Features = b.Classifier.NumFeatures()
	_, d.Classifier.Probabilistic = b.Classifier.(classifier.Prober)
	if b.Encoder != nil {
		d.Labels = b.Encoder.Labels()
	}
	d.ExtraFeatures = b.extra
	d.Files = append([]File{}, b.Files...)
	d.LoadedAt = b.LoadedAt
	return d
}

// ExtraFeatures reports how many columns follow the text vector
func (b *Bundle) ExtraFeatures() int { return b.extra }

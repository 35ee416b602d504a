// Package classifier evaluates linear and naive bayes models exported from a fitted
// estimator. Models are immutable after construction and safe for concurrent use
package classifier

import (
	"fmt"
	"math"
	"strings"
)

// Classifier predicts a class value for one feature row
type Classifier interface {
	Kind() string
	// Classes lists class values in the column order used by probability outputs
	Classes() []int
	NumFeatures() int
	Predict(x []float64) (int, error)
}

// Prober is implemented by classifiers that can output class probabilities
// probabilities are aligned with Classes()
type Prober interface {
	PredictProba(x []float64) ([]float64, error)
}

// Kinds understood by New
const (
	KindLogistic      = "logistic_regression"
	KindMultinomialNB = "multinomial_nb"
	KindLinearSVC     = "linear_svc"
)

// Config is the exported state of a fitted estimator
type Config struct {
	Kind    string `json:"kind"`
	Classes []int  `json:"classes"`

	// linear models
	Coef       [][]float64 `json:"coef,omitempty"`
	Intercept  []float64   `json:"intercept,omitempty"`
	MultiClass string      `json:"multi_class,omitempty"` // multinomial (default) or ovr

	// multinomial naive bayes
	ClassLogPrior  []float64   `json:"class_log_prior,omitempty"`
	FeatureLogProb [][]float64 `json:"feature_log_prob,omitempty"`
}

// New builds the classifier described by cfg
func New(cfg Config) (Classifier, error) {
	if len(cfg.Classes) < 2 {
		return nil, fmt.Errorf("classifier: need at least 2 classes, got %d", len(cfg.Classes))
	}
	seen := make(map[int]struct{}, len(cfg.Classes))
	for _, c := range cfg.Classes {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("classifier: duplicate class %d", c)
		}
		seen[c] = struct{}{}
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case KindLogistic:
		lm, err := newLinear(cfg)
		if err != nil {
			return nil, err
		}
		ovr := strings.EqualFold(cfg.MultiClass, "ovr")
		return &Logistic{linear: lm, ovr: ovr}, nil
	case KindLinearSVC:
		lm, err := newLinear(cfg)
		if err != nil {
			return nil, err
		}
		return &LinearSVC{linear: lm}, nil
	case KindMultinomialNB:
		return newNB(cfg)
	default:
		return nil, fmt.Errorf("classifier: unsupported kind %q", cfg.Kind)
	}
}

// linear holds w and b for one-vs-rest style decision functions
// binary models carry a single row scoring the second class
type linear struct {
	classes   []int
	coef      [][]float64
	intercept []float64
	nf        int
}

func newLinear(cfg Config) (linear, error) {
	rows := len(cfg.Classes)
	if rows == 2 {
		rows = 1
	}
	if len(cfg.Coef) != rows {
		return linear{}, fmt.Errorf("classifier: coef has %d rows, want %d for %d classes", len(cfg.Coef), rows, len(cfg.Classes))
	}
	if len(cfg.Intercept) != rows {
		return linear{}, fmt.Errorf("classifier: intercept has %d values, want %d", len(cfg.Intercept), rows)
	}
	nf := len(cfg.Coef[0])
	if nf == 0 {
		return linear{}, fmt.Errorf("classifier: coef rows are empty")
	}
	for i, r := range cfg.Coef {
		if len(r) != nf {
			return linear{}, fmt.Errorf("classifier: coef row %d has %d values, want %d", i, len(r), nf)
		}
	}
	return linear{
		classes:   append([]int(nil), cfg.Classes...),
		coef:      cfg.Coef,
		intercept: cfg.Intercept,
		nf:        nf,
	}, nil
}

func (l linear) Classes() []int   { return append([]int(nil), l.classes...) }
func (l linear) NumFeatures() int { return l.nf }

// decision returns one score per coef row
func (l linear) decision(x []float64) ([]float64, error) {
	if len(x) != l.nf {
		return nil, fmt.Errorf("classifier: got %d features, model expects %d", len(x), l.nf)
	}
	out := make([]float64, len(l.coef))
	for i, w := range l.coef {
		out[i] = dot(w, x) + l.intercept[i]
	}
	return out, nil
}

func (l linear) predict(x []float64) (int, error) {
	d, err := l.decision(x)
	if err != nil {
		return 0, err
	}
	if len(d) == 1 {
		if d[0] > 0 {
			return l.classes[1], nil
		}
		return l.classes[0], nil
	}
	return l.classes[argmax(d)], nil
}

// Logistic is a fitted logistic regression; it is a Prober
type Logistic struct {
	linear
	ovr bool
}

// Kind implements Classifier
func (m *Logistic) Kind() string { return KindLogistic }

// Predict implements Classifier
func (m *Logistic) Predict(x []float64) (int, error) { return m.predict(x) }

// PredictProba implements Prober: sigmoid for binary, softmax (or normalized ovr sigmoids) otherwise
func (m *Logistic) PredictProba(x []float64) ([]float64, error) {
	d, err := m.decision(x)
	if err != nil {
		return nil, err
	}
	if len(d) == 1 {
		p := sigmoid(d[0])
		return []float64{1 - p, p}, nil
	}
	if m.ovr {
		var sum float64
		for i, z := range d {
			d[i] = sigmoid(z)
			sum += d[i]
		}
		for i := range d {
			d[i] /= sum
		}
		return d, nil
	}
	return softmax(d), nil
}

// LinearSVC only exposes a decision function, so it is not a Prober
type LinearSVC struct {
	linear
}

// Kind implements Classifier
func (m *LinearSVC) Kind() string { return KindLinearSVC }

// Predict implements Classifier
func (m *LinearSVC) Predict(x []float64) (int, error) { return m.predict(x) }

// MultinomialNB is a fitted multinomial naive bayes; it is a Prober
type MultinomialNB struct {
	classes  []int
	prior    []float64
	logProb  [][]float64
	features int
}

func newNB(cfg Config) (*MultinomialNB, error) {
	k := len(cfg.Classes)
	if len(cfg.ClassLogPrior) != k || len(cfg.FeatureLogProb) != k {
		return nil, fmt.Errorf("classifier: naive bayes needs %d priors and %d feature rows", k, k)
	}
	nf := len(cfg.FeatureLogProb[0])
	if nf == 0 {
		return nil, fmt.Errorf("classifier: feature_log_prob rows are empty")
	}
	for i, r := range cfg.FeatureLogProb {
		if len(r) != nf {
			return nil, fmt.Errorf("classifier: feature_log_prob row %d has %d values, want %d", i, len(r), nf)
		}
	}
	return &MultinomialNB{
		classes:  append([]int(nil), cfg.Classes...),
		prior:    cfg.ClassLogPrior,
		logProb:  cfg.FeatureLogProb,
		features: nf,
	}, nil
}

// Kind implements Classifier
func (m *MultinomialNB) Kind() string { return KindMultinomialNB }

// Classes implements Classifier
func (m *MultinomialNB) Classes() []int { return append([]int(nil), m.classes...) }

// NumFeatures implements Classifier
func (m *MultinomialNB) NumFeatures() int { return m.features }

// jll is the joint log likelihood per class
func (m *MultinomialNB) jll(x []float64) ([]float64, error) {
	if len(x) != m.features {
		return nil, fmt.Errorf("classifier: got %d features, model expects %d", len(x), m.features)
	}
	out := make([]float64, len(m.classes))
	for i := range m.classes {
		out[i] = m.prior[i] + dot(m.logProb[i], x)
	}
	return out, nil
}

// Predict implements Classifier
func (m *MultinomialNB) Predict(x []float64) (int, error) {
	j, err := m.jll(x)
	if err != nil {
		return 0, err
	}
	return m.classes[argmax(j)], nil
}

// PredictProba implements Prober
func (m *MultinomialNB) PredictProba(x []float64) ([]float64, error) {
	j, err := m.jll(x)
	if err != nil {
		return nil, err
	}
	return softmax(j), nil
}

func dot(w, x []float64) float64 {
	var s float64
	for i, v := range x {
		if v != 0 {
			s += w[i] * v
		}
	}
	return s
}

func argmax(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// softmax is computed in place with log-sum-exp shifting
func softmax(v []float64) []float64 {
	m := v[argmax(v)]
	var sum float64
	for i, z := range v {
		v[i] = math.Exp(z - m)
		sum += v[i]
	}
	for i := range v {
		v[i] /= sum
	}
	return v
}

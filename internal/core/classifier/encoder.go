package classifier

import (
	"fmt"
	"strings"
)

// EncoderConfig is the exported state of a fitted label encoder
type EncoderConfig struct {
	Classes []string `json:"classes"`
}

// LabelEncoder maps integer codes to labels and back; code i is Classes[i]
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder validates cfg
func NewLabelEncoder(cfg EncoderConfig) (*LabelEncoder, error) {
	if len(cfg.Classes) == 0 {
		return nil, fmt.Errorf("classifier: label encoder has no classes")
	}
	idx := make(map[string]int, len(cfg.Classes))
	for i, c := range cfg.Classes {
		if strings.TrimSpace(c) == "" {
			return nil, fmt.Errorf("classifier: label encoder class %d is blank", i)
		}
		if _, dup := idx[c]; dup {
			return nil, fmt.Errorf("classifier: label encoder class %q is duplicated", c)
		}
		idx[c] = i
	}
	return &LabelEncoder{classes: append([]string(nil), cfg.Classes...), index: idx}, nil
}

// Len is the number of known labels
func (e *LabelEncoder) Len() int { return len(e.classes) }

// Labels returns the labels in code order
func (e *LabelEncoder) Labels() []string { return append([]string(nil), e.classes...) }

// Decode maps a predicted code back to its label
func (e *LabelEncoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", fmt.Errorf("classifier: label code %d out of range [0,%d)", code, len(e.classes))
	}
	return e.classes[code], nil
}

// Encode returns the code for label
func (e *LabelEncoder) Encode(label string) (int, bool) {
	i, ok := e.index[label]
	return i, ok
}

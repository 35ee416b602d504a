package service

import (
	"math"
	"strconv"

	"sarcasm/internal/core/classifier"
	"sarcasm/internal/services/classify/domain"
)

// ThresholdLabel is the probability policy; the comparison uses the unrounded value
func ThresholdLabel(prob, threshold float64) bool { return prob >= threshold }

// DiscreteLabel is the predicted-class policy
// with an encoder the decoded label is returned verbatim, otherwise the display label
func DiscreteLabel(p domain.Profile, enc *classifier.LabelEncoder, pred, sarcClass int) (string, bool, error) {
	sarcastic := pred == sarcClass
	if enc == nil {
		return p.Display(sarcastic), sarcastic, nil
	}
	label, err := enc.Decode(pred)
	if err != nil {
		return "", false, err
	}
	return label, sarcastic, nil
}

// FallbackConfidence is used when the classifier cannot output probabilities
func FallbackConfidence(sarcastic bool) float64 {
	if sarcastic {
		return domain.FallbackSarcastic
	}
	return domain.FallbackNotSarcastic
}

// Round2 clamps to [0,1] and rounds to two decimals
// rounding works on the exact binary value, exact ties go to the even digit (0.125 -> 0.12)
func Round2(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return 0
	}
	return r
}

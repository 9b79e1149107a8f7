package detector

import (
	"math"

	"github.com/git-dariel/fake-news-detector/internal/model"
)

// Blend weights and override thresholds. The classifier dominates the blend
// because its held-out accuracy far exceeds the heuristics; heuristics move
// the label only at the extremes.
const (
	weightClassifier = 0.85
	weightSource     = 0.10
	weightPatterns   = 0.05

	credibleSourceMin      = 0.95
	uncertainClassifierMax = 0.3
	suspiciousPatternMax   = -0.4

	credibleOverrideFloor   = 0.6
	suspiciousOverrideFloor = 0.75
)

// fusionSignals is everything the decision rules may inspect.
type fusionSignals struct {
	Base     model.MemberVote
	Source   model.CredibilityAssessment
	Patterns model.PatternAssessment
}

// fusionRule may force a verdict. Rules run in declaration order and the
// first match wins; apply reports ok=false when the rule does not fire.
type fusionRule struct {
	name  string
	apply func(sig fusionSignals, blended float64) (label model.Label, confidence float64, ok bool)
}

var fusionRules = []fusionRule{
	{
		// A near-perfect source with clean patterns outranks a classifier
		// that is itself unsure.
		name: "credible-source",
		apply: func(sig fusionSignals, blended float64) (model.Label, float64, bool) {
			if sig.Source.Score >= credibleSourceMin &&
				sig.Patterns.Adjustment >= 0 &&
				sig.Base.Confidence < uncertainClassifierMax {
				return model.LabelReal, math.Max(blended, credibleOverrideFloor), true
			}
			return "", 0, false
		},
	},
	{
		name: "suspicious-patterns",
		apply: func(sig fusionSignals, blended float64) (model.Label, float64, bool) {
			if sig.Patterns.Adjustment <= suspiciousPatternMax {
				return model.LabelFake, math.Max(blended, suspiciousOverrideFloor), true
			}
			return "", 0, false
		},
	},
}

// fuse blends the classifier confidence with the heuristic scores, then runs
// the override rules in priority order. Without an override the forest label
// stands and the heuristics only nudge the confidence. The returned rule
// name is empty when no override fired.
func fuse(sig fusionSignals) (model.Label, float64, string) {
	blended := sig.Base.Confidence*weightClassifier +
		sig.Source.Score*weightSource +
		clamp01(0.5+sig.Patterns.Adjustment)*weightPatterns

	for _, rule := range fusionRules {
		if label, confidence, ok := rule.apply(sig, blended); ok {
			return label, confidence, rule.name
		}
	}
	return sig.Base.Label, blended, ""
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

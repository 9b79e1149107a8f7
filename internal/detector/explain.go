package detector

import (
	"fmt"
	"strings"

	"github.com/git-dariel/fake-news-detector/internal/model"
)

// renderExplanation produces the human-readable summary of a verdict. It is
// purely presentational: wording depends only on the label, the confidence
// band, and the signals that carried the decision.
func renderExplanation(label model.Label, confidence float64, signals []string) string {
	verdict := "fabricated or misleading"
	if label == model.LabelReal {
		verdict = "credible"
	}

	var sb strings.Builder
	switch {
	case confidence >= 0.9:
		fmt.Fprintf(&sb, "This article is very likely %s (%.1f%% confidence).", verdict, confidence*100)
	case confidence >= 0.75:
		fmt.Fprintf(&sb, "This article is likely %s (%.1f%% confidence).", verdict, confidence*100)
	default:
		fmt.Fprintf(&sb, "This article leans %s (%.1f%% confidence); the signals are mixed, so treat the result as indicative rather than conclusive.", verdict, confidence*100)
	}
	if len(signals) > 0 {
		fmt.Fprintf(&sb, " Driven by %s.", strings.Join(signals, ", "))
	}
	return sb.String()
}

// dominantSignals names the evidence that carried a fused verdict, in a
// fixed order so explanations stay deterministic.
func dominantSignals(base model.MemberVote, source model.CredibilityAssessment, patterns model.PatternAssessment, factChecks int) []string {
	var signals []string
	if base.Confidence >= 0.9 {
		signals = append(signals, "strong classifier agreement")
	}
	if source.Score < 0.3 {
		signals = append(signals, "low source credibility")
	}
	if patterns.Adjustment <= -0.2 {
		signals = append(signals, "suspicious content patterns")
	}
	if factChecks > 0 {
		signals = append(signals, "similarity to previously debunked claims")
	}
	if scientificCount(patterns) > 0 {
		signals = append(signals, "scientific language in the content")
	}
	return signals
}

func scientificCount(patterns model.PatternAssessment) int {
	n := 0
	for _, p := range patterns.Patterns {
		if strings.HasPrefix(p, "Scientific language:") {
			n++
		}
	}
	return n
}

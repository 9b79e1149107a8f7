package heuristic

import (
	"fmt"
	"strings"

	"github.com/git-dariel/fake-news-detector/internal/model"
)

// Per-match adjustments for content patterns. Suspicious families subtract,
// scientific register adds a small capped bonus.
const (
	clickbaitPenalty     = 0.2
	conspiracyPenalty    = 0.25
	fakeSciencePenalty   = 0.3
	sensationalAdjust    = 0.15
	scientificPerPhrase  = 0.02
	scientificBonusLimit = 0.05
)

// ScorePatterns scans article content for suspicious and scientific
// phrasing. Every individual match contributes its family's delta, so
// repeated families stack; the scientific bonus alone is capped. The
// returned adjustment is a signed delta around a neutral baseline, not an
// absolute score, and callers clamp after blending.
func ScorePatterns(text string) model.PatternAssessment {
	lower := strings.ToLower(text)

	patterns := []string{}
	adjustment := 0.0

	for _, phrase := range clickbaitPhrases {
		if strings.Contains(lower, phrase) {
			patterns = append(patterns, fmt.Sprintf("Clickbait language: '%s'", phrase))
			adjustment -= clickbaitPenalty
		}
	}
	for _, phrase := range conspiracyPhrases {
		if strings.Contains(lower, phrase) {
			patterns = append(patterns, fmt.Sprintf("Conspiracy language: '%s'", phrase))
			adjustment -= conspiracyPenalty
		}
	}
	for _, phrase := range fakeSciencePhrases {
		if strings.Contains(lower, phrase) {
			patterns = append(patterns, fmt.Sprintf("Fake science language: '%s'", phrase))
			adjustment -= fakeSciencePenalty
		}
	}
	for _, phrase := range sensationalPhrases {
		if strings.Contains(lower, phrase) {
			patterns = append(patterns, fmt.Sprintf("Sensational language: '%s'", phrase))
			adjustment -= sensationalAdjust
		}
	}

	scientific := 0
	for _, phrase := range scientificPhrases {
		if strings.Contains(lower, phrase) {
			patterns = append(patterns, fmt.Sprintf("Scientific language: '%s'", phrase))
			scientific++
		}
	}
	if scientific > 0 {
		bonus := float64(scientific) * scientificPerPhrase
		if bonus > scientificBonusLimit {
			bonus = scientificBonusLimit
		}
		adjustment += bonus
	}

	return model.PatternAssessment{
		Patterns:      patterns,
		Adjustment:    adjustment,
		TotalPatterns: len(patterns),
	}
}

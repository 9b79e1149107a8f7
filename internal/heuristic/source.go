// Package heuristic scores articles with rule-based credibility signals:
// source reputation, suspicious phrasing, and a static library of previously
// debunked claims. Every scorer is a total function over any string input
// and performs no I/O, keeping the prediction hot path free of network
// calls.
package heuristic

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/git-dariel/fake-news-detector/internal/model"
)

// Score deltas for source signals, applied to a neutral 0.5 baseline.
const (
	sourceBaseScore    = 0.5
	trustedBoost       = 0.3
	factCheckerBoost   = 0.4
	officialBoost      = 0.35
	agencyBoost        = 0.2
	attributionBoost   = 0.05
	sensationalPenalty = 0.2
	unverifiedPenalty  = 0.15
)

var domainPattern = regexp.MustCompile(`https?://(?:www\.)?([^/]+)`)

// ScoreSource rates the credibility of an article's sourcing from its
// title/byline text. Each extracted URL credits at most one domain tier;
// content signals (agency byline, attribution, sensational or unverified
// phrasing) apply once each. The result is clamped to [0,1].
func ScoreSource(text string) model.CredibilityAssessment {
	lower := strings.ToLower(text)

	score := sourceBaseScore
	factors := []string{}

	for _, match := range domainPattern.FindAllStringSubmatch(lower, -1) {
		domain := match[1]
		switch {
		case containsAny(domain, trustedDomains):
			score += trustedBoost
			factors = append(factors, "Trusted source: "+domain)
		case containsAny(domain, factCheckerDomains):
			score += factCheckerBoost
			factors = append(factors, "Fact-checking organization: "+domain)
		case containsAny(domain, officialDomains):
			score += officialBoost
			factors = append(factors, "Official source: "+domain)
		}
	}

	if hasAnyPrefix(lower, agencyPrefixes) {
		score += agencyBoost
		factors = append(factors, "Major news agency as source")
	}
	if containsAny(lower, attributionPhrases) {
		score += attributionBoost
		factors = append(factors, "Attribution present")
	}
	if containsAny(lower, sensationalOpeners) {
		score -= sensationalPenalty
		factors = append(factors, "Sensational language detected")
	}
	if containsAny(lower, unverifiedPhrases) {
		score -= unverifiedPenalty
		factors = append(factors, "Unverified source indicators")
	}

	score = clamp01(score)

	return model.CredibilityAssessment{
		Score:    score,
		Factors:  factors,
		Category: categoryFor(score),
	}
}

// categoryFor buckets a clamped score for display.
func categoryFor(score float64) model.CredibilityCategory {
	switch {
	case score >= 0.8:
		return model.CredibilityVeryHigh
	case score >= 0.65:
		return model.CredibilityHigh
	case score >= 0.45:
		return model.CredibilityMedium
	case score >= 0.3:
		return model.CredibilityLow
	default:
		return model.CredibilityVeryLow
	}
}

// SearchFactChecks matches the query against the static debunked-claim
// library. Purely local; a hit means similar claims were already rated
// false.
func SearchFactChecks(query string) []model.FactCheckMatch {
	lower := strings.ToLower(query)

	matches := []model.FactCheckMatch{}
	for _, phrase := range debunkedClaimPhrases {
		if strings.Contains(lower, phrase) {
			matches = append(matches, model.FactCheckMatch{
				Claim:      fmt.Sprintf("Similar claims about '%s' have been debunked", phrase),
				Rating:     "FALSE",
				Source:     "Multiple fact-checkers",
				Confidence: 0.8,
			})
		}
	}
	return matches
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
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

package model

// CredibilityCategory buckets a numeric credibility score for display.
type CredibilityCategory string

const (
	CredibilityVeryHigh CredibilityCategory = "Very High"
	CredibilityHigh     CredibilityCategory = "High"
	CredibilityMedium   CredibilityCategory = "Medium"
	CredibilityLow      CredibilityCategory = "Low"
	CredibilityVeryLow  CredibilityCategory = "Very Low"
)

// CredibilityAssessment is the outcome of scoring an article's sourcing.
type CredibilityAssessment struct {
	Score    float64             `json:"score"`
	Factors  []string            `json:"factors"`
	Category CredibilityCategory `json:"category"`
}

// PatternAssessment is the outcome of scanning content for suspicious or
// scientific phrasing. Adjustment is a signed delta applied around a neutral
// baseline, not an absolute score.
type PatternAssessment struct {
	Patterns      []string `json:"patterns"`
	Adjustment    float64  `json:"credibility_adjustment"`
	TotalPatterns int      `json:"total_patterns"`
}

// FactCheckMatch records a claim pattern already debunked by fact-checkers.
type FactCheckMatch struct {
	Claim      string  `json:"claim"`
	Rating     string  `json:"rating"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
}

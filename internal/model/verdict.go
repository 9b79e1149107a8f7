package model

// VerificationMethod names the pipeline that produced a verdict.
type VerificationMethod string

const (
	MethodEnhanced VerificationMethod = "Enhanced Multi-Source Analysis"
	MethodPureML   VerificationMethod = "Pure ML Dataset-Based Analysis"
)

const ModePureML = "pure_ml"

// MemberVote is a single ensemble member's prediction.
type MemberVote struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
}

// FeatureWeight is one vocabulary term and its learned importance.
type FeatureWeight struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// Analysis explains how a verdict was reached. Source, Patterns and
// FactChecks are only populated on the enhanced path.
type Analysis struct {
	Tree        MemberVote      `json:"decision_tree"`
	Forest      MemberVote      `json:"random_forest"`
	TopFeatures []FeatureWeight `json:"top_features"`
	TextLength  int             `json:"text_length"`
	WordCount   int             `json:"word_count"`
	Preview     string          `json:"processed_text_preview"`

	Source          *CredibilityAssessment `json:"source_credibility,omitempty"`
	Patterns        *PatternAssessment     `json:"pattern_analysis,omitempty"`
	FactChecksFound int                    `json:"fact_checks_found,omitempty"`
	FactChecks      []FactCheckMatch       `json:"fact_checks,omitempty"`

	Method      VerificationMethod `json:"verification_method"`
	Explanation string             `json:"explanation"`
}

// EnhancementDetails records how heuristic signals moved (or bypassed) the
// base model confidence.
type EnhancementDetails struct {
	Mode              string  `json:"mode,omitempty"`
	BaseConfidence    float64 `json:"base_ml_confidence"`
	SourceScore       float64 `json:"source_credibility_score"`
	PatternAdjustment float64 `json:"pattern_adjustment"`
	FinalConfidence   float64 `json:"final_confidence"`
	Bypassed          bool    `json:"enhancements_bypassed,omitempty"`
}

// Verdict is the outcome of classifying one article.
type Verdict struct {
	Label         Label                   `json:"label"`
	Confidence    float64                 `json:"confidence"`
	Probabilities map[Label]float64       `json:"probabilities"`
	Analysis      Analysis                `json:"analysis"`
	Metrics       map[string]ModelMetrics `json:"model_metrics,omitempty"`
	Enhancement   *EnhancementDetails     `json:"enhancement_details,omitempty"`
}

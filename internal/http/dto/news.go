package dto

import (
	"github.com/git-dariel/fake-news-detector/internal/model"
)

// NewsInput is the prediction request body. Subject is optional and folded
// into the text the models see.
type NewsInput struct {
	Title   string `json:"title" binding:"required"`
	Text    string `json:"text" binding:"required"`
	Subject string `json:"subject"`
}

func (in NewsInput) ToArticle() model.Article {
	return model.Article{
		Title:   in.Title,
		Text:    in.Text,
		Subject: in.Subject,
	}
}

// PredictionResponse is the public verdict shape.
type PredictionResponse struct {
	Prediction    string                        `json:"prediction"`
	Confidence    float64                       `json:"confidence"`
	Probabilities map[model.Label]float64       `json:"probabilities"`
	Analysis      AnalysisPayload               `json:"analysis"`
	ModelMetrics  map[string]model.ModelMetrics `json:"model_metrics"`
	Enhancement   EnhancementPayload            `json:"enhancement_details"`
}

// AnalysisPayload flattens the per-member votes into the keys clients
// consume. The heuristic fields are pointers so they appear on the enhanced
// path and are absent, not null, on the pure-ML path.
type AnalysisPayload struct {
	DecisionTreePrediction string                `json:"decision_tree_prediction"`
	DecisionTreeConfidence float64               `json:"decision_tree_confidence"`
	RandomForestPrediction string                `json:"random_forest_prediction"`
	RandomForestConfidence float64               `json:"random_forest_confidence"`
	TopFeatures            []model.FeatureWeight `json:"top_features"`
	TextLength             int                   `json:"text_length"`
	WordCount              int                   `json:"word_count"`
	ProcessedTextPreview   string                `json:"processed_text_preview"`

	SourceCredibility *model.CredibilityAssessment `json:"source_credibility,omitempty"`
	FactChecksFound   *int                         `json:"fact_checks_found,omitempty"`
	FactChecks        *[]model.FactCheckMatch      `json:"fact_checks,omitempty"`
	PatternAnalysis   *model.PatternAssessment     `json:"pattern_analysis,omitempty"`

	VerificationMethod string `json:"verification_method"`
	Explanation        string `json:"explanation"`
}

// EnhancementPayload mirrors how the verdict confidence was assembled. The
// blend terms only exist when the heuristics actually ran.
type EnhancementPayload struct {
	Mode                   string   `json:"mode,omitempty"`
	BaseMLConfidence       float64  `json:"base_ml_confidence"`
	SourceCredibilityScore *float64 `json:"source_credibility_score,omitempty"`
	PatternAdjustment      *float64 `json:"pattern_adjustment,omitempty"`
	FinalConfidence        *float64 `json:"final_confidence,omitempty"`
	EnhancementsBypassed   bool     `json:"enhancements_bypassed,omitempty"`
}

func ToPredictionResponse(v *model.Verdict) PredictionResponse {
	analysis := AnalysisPayload{
		DecisionTreePrediction: string(v.Analysis.Tree.Label),
		DecisionTreeConfidence: v.Analysis.Tree.Confidence,
		RandomForestPrediction: string(v.Analysis.Forest.Label),
		RandomForestConfidence: v.Analysis.Forest.Confidence,
		TopFeatures:            v.Analysis.TopFeatures,
		TextLength:             v.Analysis.TextLength,
		WordCount:              v.Analysis.WordCount,
		ProcessedTextPreview:   v.Analysis.Preview,
		SourceCredibility:      v.Analysis.Source,
		PatternAnalysis:        v.Analysis.Patterns,
		VerificationMethod:     string(v.Analysis.Method),
		Explanation:            v.Analysis.Explanation,
	}
	if v.Analysis.Source != nil {
		found := v.Analysis.FactChecksFound
		checks := v.Analysis.FactChecks
		analysis.FactChecksFound = &found
		analysis.FactChecks = &checks
	}

	resp := PredictionResponse{
		Prediction:    string(v.Label),
		Confidence:    v.Confidence,
		Probabilities: v.Probabilities,
		Analysis:      analysis,
		ModelMetrics:  v.Metrics,
	}
	if v.Enhancement != nil {
		resp.Enhancement = toEnhancementPayload(v.Enhancement)
	}
	return resp
}

func toEnhancementPayload(e *model.EnhancementDetails) EnhancementPayload {
	out := EnhancementPayload{
		Mode:                 e.Mode,
		BaseMLConfidence:     e.BaseConfidence,
		EnhancementsBypassed: e.Bypassed,
	}
	if !e.Bypassed {
		out.SourceCredibilityScore = &e.SourceScore
		out.PatternAdjustment = &e.PatternAdjustment
		out.FinalConfidence = &e.FinalConfidence
	}
	return out
}

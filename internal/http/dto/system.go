package dto

import (
	"github.com/git-dariel/fake-news-detector/internal/heuristic"
	"github.com/git-dariel/fake-news-detector/internal/model"
)

const APIVersion = "2.0.0"

type APIInfoResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Features  []string          `json:"features"`
	Endpoints map[string]string `json:"endpoints"`
}

func NewAPIInfoResponse() APIInfoResponse {
	return APIInfoResponse{
		Message: "Enhanced Fake News Detection API",
		Version: APIVersion,
		Features: []string{
			"Machine Learning Classification",
			"Source Credibility Analysis",
			"Pattern Recognition",
			"Fact-Check Integration",
			"Multi-Source Verification",
		},
		Endpoints: map[string]string{
			"predict": "/predict",
			"health":  "/health",
			"metrics": "/metrics",
		},
	}
}

type HealthResponse struct {
	Status         string   `json:"status"`
	ModelReady     bool     `json:"model_ready"`
	SnapshotID     *int64   `json:"snapshot_id,string,omitempty"`
	FeaturesActive []string `json:"features_active"`
}

func NewHealthResponse(snapshotID *int64) HealthResponse {
	return HealthResponse{
		Status:     "healthy",
		ModelReady: snapshotID != nil,
		SnapshotID: snapshotID,
		FeaturesActive: []string{
			"Enhanced ML Detection",
			"Source Credibility Scoring",
			"Pattern Analysis",
			"Fact-Check Search",
		},
	}
}

type MetricsResponse struct {
	BaseModelMetrics    map[string]model.ModelMetrics `json:"base_model_metrics"`
	EnhancementFeatures heuristic.LexiconCoverage     `json:"enhancement_features"`
	VerificationMethods []string                      `json:"verification_methods"`
}

func NewMetricsResponse(metrics map[string]model.ModelMetrics) MetricsResponse {
	return MetricsResponse{
		BaseModelMetrics:    metrics,
		EnhancementFeatures: heuristic.Coverage(),
		VerificationMethods: []string{
			"Machine Learning Classification",
			"Source Credibility Analysis",
			"Content Pattern Recognition",
			"Fact-Check Database Search",
		},
	}
}

type RetrainResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	RunID   int64  `json:"run_id,string"`
}

func NewRetrainResponse(runID int64) RetrainResponse {
	return RetrainResponse{
		Message: "full-dataset retraining started",
		Status:  "accepted",
		RunID:   runID,
	}
}

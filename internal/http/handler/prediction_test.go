package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/git-dariel/fake-news-detector/internal/detector"
	"github.com/git-dariel/fake-news-detector/internal/http/handler"
	"github.com/git-dariel/fake-news-detector/internal/model"
)

func fusedVerdict() *model.Verdict {
	source := model.CredibilityAssessment{
		Score:    0.75,
		Factors:  []string{"Major news agency as source"},
		Category: model.CredibilityHigh,
	}
	patterns := model.PatternAssessment{
		Patterns:      []string{"Scientific language: 'peer reviewed'"},
		Adjustment:    0.02,
		TotalPatterns: 0,
	}
	return &model.Verdict{
		Label:      model.LabelReal,
		Confidence: 0.93,
		Probabilities: map[model.Label]float64{
			model.LabelReal: 0.93,
			model.LabelFake: 0.07,
		},
		Analysis: model.Analysis{
			Tree:            model.MemberVote{Label: model.LabelReal, Confidence: 0.88},
			Forest:          model.MemberVote{Label: model.LabelReal, Confidence: 0.95},
			TopFeatures:     []model.FeatureWeight{{Feature: "reuters", Importance: 0.12}},
			TextLength:      420,
			WordCount:       80,
			Preview:         "reuters report market",
			Source:          &source,
			Patterns:        &patterns,
			FactChecksFound: 0,
			FactChecks:      []model.FactCheckMatch{},
			Method:          model.MethodEnhanced,
			Explanation:     "This article is very likely credible (93.0% confidence).",
		},
		Metrics: map[string]model.ModelMetrics{
			model.ModelRandomForest: {TestAccuracy: 0.99},
		},
		Enhancement: &model.EnhancementDetails{
			BaseConfidence:    0.95,
			SourceScore:       0.75,
			PatternAdjustment: 0.02,
			FinalConfidence:   0.93,
		},
	}
}

func pureVerdict() *model.Verdict {
	return &model.Verdict{
		Label:      model.LabelFake,
		Confidence: 0.97,
		Probabilities: map[model.Label]float64{
			model.LabelFake: 0.97,
			model.LabelReal: 0.03,
		},
		Analysis: model.Analysis{
			Tree:        model.MemberVote{Label: model.LabelFake, Confidence: 0.91},
			Forest:      model.MemberVote{Label: model.LabelFake, Confidence: 0.97},
			TopFeatures: []model.FeatureWeight{{Feature: "hoax", Importance: 0.2}},
			TextLength:  120,
			WordCount:   22,
			Preview:     "hoax conspiraci",
			Method:      model.MethodPureML,
			Explanation: "This article is very likely fabricated or misleading (97.0% confidence).",
		},
		Metrics: map[string]model.ModelMetrics{
			model.ModelRandomForest: {TestAccuracy: 0.99},
		},
		Enhancement: &model.EnhancementDetails{
			Mode:           model.ModePureML,
			BaseConfidence: 0.97,
			Bypassed:       true,
		},
	}
}

func postJSON(router *gin.Engine, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var _ = Describe("PredictionHandler", func() {
	var (
		router *gin.Engine
		svc    *mockDetectorService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockDetectorService{}
		h := handler.NewPredictionHandler(svc)
		router.POST("/predict", h.Predict)
		router.POST("/predict-pure-ml", h.PredictPureML)
	})

	Describe("POST /predict", func() {
		It("returns the flattened verdict on success", func() {
			var seen model.Article
			svc.predictFusedFn = func(_ context.Context, article model.Article) (*model.Verdict, error) {
				seen = article
				return fusedVerdict(), nil
			}

			body, _ := json.Marshal(map[string]string{
				"title":   "Reuters reports on markets",
				"text":    "Markets rose on Monday.",
				"subject": "business",
			})
			w := postJSON(router, "/predict", body)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(seen.Title).To(Equal("Reuters reports on markets"))
			Expect(seen.Subject).To(Equal("business"))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["prediction"]).To(Equal("REAL"))
			Expect(resp["confidence"]).To(BeNumerically("~", 0.93, 1e-9))

			probs := resp["probabilities"].(map[string]any)
			Expect(probs).To(HaveKeyWithValue("REAL", BeNumerically("~", 0.93, 1e-9)))
			Expect(probs).To(HaveKeyWithValue("FAKE", BeNumerically("~", 0.07, 1e-9)))

			analysis := resp["analysis"].(map[string]any)
			Expect(analysis["decision_tree_prediction"]).To(Equal("REAL"))
			Expect(analysis["random_forest_confidence"]).To(BeNumerically("~", 0.95, 1e-9))
			Expect(analysis["verification_method"]).To(Equal("Enhanced Multi-Source Analysis"))
			Expect(analysis).To(HaveKey("source_credibility"))
			Expect(analysis).To(HaveKey("pattern_analysis"))
			Expect(analysis["fact_checks_found"]).To(BeNumerically("==", 0))
			Expect(analysis["fact_checks"]).To(BeEmpty())
			Expect(analysis["explanation"]).To(ContainSubstring("credible"))

			enhancement := resp["enhancement_details"].(map[string]any)
			Expect(enhancement["base_ml_confidence"]).To(BeNumerically("~", 0.95, 1e-9))
			Expect(enhancement["source_credibility_score"]).To(BeNumerically("~", 0.75, 1e-9))
			Expect(enhancement["final_confidence"]).To(BeNumerically("~", 0.93, 1e-9))
			Expect(enhancement).NotTo(HaveKey("mode"))
			Expect(enhancement).NotTo(HaveKey("enhancements_bypassed"))
		})

		It("returns 400 on a malformed body", func() {
			w := postJSON(router, "/predict", []byte(`{`))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 when text is missing", func() {
			body, _ := json.Marshal(map[string]string{"title": "only a title"})
			w := postJSON(router, "/predict", body)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 503 while models are not ready", func() {
			svc.predictFusedFn = func(context.Context, model.Article) (*model.Verdict, error) {
				return nil, detector.ErrNotReady
			}

			body, _ := json.Marshal(map[string]string{"title": "t", "text": "x"})
			w := postJSON(router, "/predict", body)

			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(ContainSubstring("not ready"))
		})

		It("returns 500 when prediction fails", func() {
			svc.predictFusedFn = func(context.Context, model.Article) (*model.Verdict, error) {
				return nil, errors.New("boom")
			}

			body, _ := json.Marshal(map[string]string{"title": "t", "text": "x"})
			w := postJSON(router, "/predict", body)
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("POST /predict-pure-ml", func() {
		It("omits every heuristic field from the response", func() {
			svc.predictPureFn = func(context.Context, model.Article) (*model.Verdict, error) {
				return pureVerdict(), nil
			}

			body, _ := json.Marshal(map[string]string{"title": "t", "text": "x"})
			w := postJSON(router, "/predict-pure-ml", body)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["prediction"]).To(Equal("FAKE"))

			analysis := resp["analysis"].(map[string]any)
			Expect(analysis["verification_method"]).To(Equal("Pure ML Dataset-Based Analysis"))
			Expect(analysis).NotTo(HaveKey("source_credibility"))
			Expect(analysis).NotTo(HaveKey("pattern_analysis"))
			Expect(analysis).NotTo(HaveKey("fact_checks_found"))
			Expect(analysis).NotTo(HaveKey("fact_checks"))

			enhancement := resp["enhancement_details"].(map[string]any)
			Expect(enhancement["mode"]).To(Equal("pure_ml"))
			Expect(enhancement["enhancements_bypassed"]).To(BeTrue())
			Expect(enhancement).NotTo(HaveKey("source_credibility_score"))
			Expect(enhancement).NotTo(HaveKey("final_confidence"))
		})

		It("returns 503 while models are not ready", func() {
			svc.predictPureFn = func(context.Context, model.Article) (*model.Verdict, error) {
				return nil, detector.ErrNotReady
			}

			body, _ := json.Marshal(map[string]string{"title": "t", "text": "x"})
			w := postJSON(router, "/predict-pure-ml", body)
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		})
	})
})

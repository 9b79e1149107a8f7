package handler_test

import (
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
	"github.com/git-dariel/fake-news-detector/internal/training"
)

func getJSON(router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
	return w, resp
}

var _ = Describe("ModelHandler", func() {
	var (
		router *gin.Engine
		svc    *mockDetectorService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockDetectorService{}
		h := handler.NewModelHandler(svc)
		router.GET("/health", h.Health)
		router.GET("/metrics", h.Metrics)
		router.GET("/dataset-stats", h.DatasetStats)
		router.POST("/retrain-full-dataset", h.Retrain)
	})

	Describe("GET /health", func() {
		It("reports a ready model with its snapshot id", func() {
			svc.snapshotFn = func() *training.Snapshot {
				return &training.Snapshot{ID: 123}
			}

			w, resp := getJSON(router, "/health")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp["status"]).To(Equal("healthy"))
			Expect(resp["model_ready"]).To(BeTrue())
			Expect(resp["snapshot_id"]).To(Equal("123"))
			Expect(resp["features_active"]).To(HaveLen(4))
		})

		It("reports not ready without a snapshot", func() {
			w, resp := getJSON(router, "/health")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp["model_ready"]).To(BeFalse())
			Expect(resp).NotTo(HaveKey("snapshot_id"))
		})
	})

	Describe("GET /metrics", func() {
		It("returns model metrics with lexicon coverage", func() {
			svc.metricsFn = func() (map[string]model.ModelMetrics, error) {
				return map[string]model.ModelMetrics{
					model.ModelRandomForest: {TestAccuracy: 0.99},
					model.ModelDecisionTree: {TestAccuracy: 0.97},
				}, nil
			}

			w, resp := getJSON(router, "/metrics")
			Expect(w.Code).To(Equal(http.StatusOK))

			base := resp["base_model_metrics"].(map[string]any)
			Expect(base).To(HaveKey("random_forest"))
			Expect(base).To(HaveKey("decision_tree"))

			features := resp["enhancement_features"].(map[string]any)
			Expect(features["trusted_sources"]).To(BeNumerically(">", 0))
			Expect(features["fact_checkers"]).To(BeNumerically(">", 0))
			Expect(features["official_sources"]).To(BeNumerically(">", 0))

			Expect(resp["verification_methods"]).To(HaveLen(4))
		})

		It("returns 503 while models are not ready", func() {
			svc.metricsFn = func() (map[string]model.ModelMetrics, error) {
				return nil, detector.ErrNotReady
			}

			w, _ := getJSON(router, "/metrics")
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		})
	})

	Describe("GET /dataset-stats", func() {
		It("returns the corpus summary", func() {
			svc.statsFn = func(context.Context) (model.DatasetStats, error) {
				return model.DatasetStats{
					TotalArticles: 10,
					FakeArticles:  6,
					RealArticles:  4,
					Subjects:      map[string]int{"News": 6, "politicsNews": 4},
				}, nil
			}

			w, resp := getJSON(router, "/dataset-stats")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp["total_articles"]).To(BeNumerically("==", 10))
			Expect(resp["fake_articles"]).To(BeNumerically("==", 6))
			Expect(resp["subjects"]).To(HaveKey("politicsNews"))
		})

		It("returns 500 when the corpus cannot be loaded", func() {
			svc.statsFn = func(context.Context) (model.DatasetStats, error) {
				return model.DatasetStats{}, errors.New("data dir missing")
			}

			w, _ := getJSON(router, "/dataset-stats")
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("POST /retrain-full-dataset", func() {
		It("accepts the run and returns its id", func() {
			svc.startRetrainFn = func(_ context.Context, full bool) (int64, error) {
				Expect(full).To(BeTrue())
				return 77, nil
			}

			req := httptest.NewRequest(http.MethodPost, "/retrain-full-dataset", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusAccepted))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["status"]).To(Equal("accepted"))
			Expect(resp["run_id"]).To(Equal("77"))
		})

		It("returns 409 while another run is in flight", func() {
			svc.startRetrainFn = func(context.Context, bool) (int64, error) {
				return 0, detector.ErrTrainingInProgress
			}

			req := httptest.NewRequest(http.MethodPost, "/retrain-full-dataset", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})
})

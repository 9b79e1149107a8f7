package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/git-dariel/fake-news-detector/internal/detector"
	"github.com/git-dariel/fake-news-detector/internal/http/dto"
	"github.com/git-dariel/fake-news-detector/internal/http/handler"
)

func SetupRoutes(router *gin.Engine, svc detector.Service) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewAPIInfoResponse())
	})

	modelHandler := handler.NewModelHandler(svc)
	router.GET("/health", modelHandler.Health)
	router.GET("/metrics", modelHandler.Metrics)
	router.GET("/dataset-stats", modelHandler.DatasetStats)
	router.POST("/retrain-full-dataset", modelHandler.Retrain)

	predictionHandler := handler.NewPredictionHandler(svc)
	router.POST("/predict", predictionHandler.Predict)
	router.POST("/predict-pure-ml", predictionHandler.PredictPureML)
}

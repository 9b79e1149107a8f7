package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/git-dariel/fake-news-detector/internal/detector"
	"github.com/git-dariel/fake-news-detector/internal/http/dto"
)

// ModelHandler serves model lifecycle and introspection endpoints.
type ModelHandler struct {
	detector detector.Service
}

func NewModelHandler(detector detector.Service) *ModelHandler {
	return &ModelHandler{detector: detector}
}

func (h *ModelHandler) Health(c *gin.Context) {
	var snapshotID *int64
	if snap := h.detector.Snapshot(); snap != nil {
		snapshotID = &snap.ID
	}
	c.JSON(http.StatusOK, dto.NewHealthResponse(snapshotID))
}

func (h *ModelHandler) Metrics(c *gin.Context) {
	metrics, err := h.detector.Metrics()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMetricsResponse(metrics))
}

func (h *ModelHandler) DatasetStats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.detector.DatasetStats(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Retrain accepts a full-dataset training run and returns immediately; the
// run proceeds in the background and swaps the serving model when done.
func (h *ModelHandler) Retrain(c *gin.Context) {
	ctx := c.Request.Context()

	runID, err := h.detector.StartRetrain(ctx, true)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.NewRetrainResponse(runID))
}

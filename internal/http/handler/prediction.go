package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/git-dariel/fake-news-detector/internal/detector"
	"github.com/git-dariel/fake-news-detector/internal/http/dto"
)

type PredictionHandler struct {
	detector detector.Service
}

func NewPredictionHandler(detector detector.Service) *PredictionHandler {
	return &PredictionHandler{detector: detector}
}

// Predict classifies an article with the fused pipeline: ensemble vote
// blended with source credibility, content patterns and the debunked-claim
// lookup.
func (h *PredictionHandler) Predict(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.NewsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid prediction request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verdict, err := h.detector.PredictFused(ctx, req.ToArticle())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPredictionResponse(verdict))
}

// PredictPureML classifies an article with the raw ensemble alone, every
// heuristic bypassed.
func (h *PredictionHandler) PredictPureML(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.NewsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid prediction request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verdict, err := h.detector.PredictPure(ctx, req.ToArticle())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPredictionResponse(verdict))
}

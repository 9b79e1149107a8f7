package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/git-dariel/fake-news-detector/internal/detector"
	"github.com/git-dariel/fake-news-detector/internal/feature"
	"github.com/git-dariel/fake-news-detector/internal/training"
)

// respondServiceError translates detector failures into the API's error
// contract. Handlers discriminate with errors.Is, never by message text.
func respondServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, detector.ErrNotReady):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "models are not ready yet, please wait for initialization to complete",
		})
	case errors.Is(err, detector.ErrTrainingInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "a training run is already in progress"})
	case errors.Is(err, training.ErrCorpusTooSmall), errors.Is(err, feature.ErrDegenerateCorpus):
		slog.WarnContext(ctx, "training corpus rejected", "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		slog.ErrorContext(ctx, "request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

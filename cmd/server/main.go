package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/git-dariel/fake-news-detector/common/id"
	"github.com/git-dariel/fake-news-detector/common/logger"
	"github.com/git-dariel/fake-news-detector/common/otel"
	"github.com/git-dariel/fake-news-detector/core/config"
	"github.com/git-dariel/fake-news-detector/internal/artifact"
	"github.com/git-dariel/fake-news-detector/internal/dataset"
	"github.com/git-dariel/fake-news-detector/internal/detector"
	"github.com/git-dariel/fake-news-detector/internal/http/middleware"
	httprouter "github.com/git-dariel/fake-news-detector/internal/http/router"
	"github.com/git-dariel/fake-news-detector/internal/training"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet — OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "verdict starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	svc := newDetector(cfg)
	initModels(ctx, cfg, svc)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, svc)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port, "model_ready", svc.Ready())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func newDetector(cfg config.Config) detector.Service {
	trainCfg := training.DefaultConfig()
	trainCfg.TestFraction = cfg.Training.TestFraction

	loader := dataset.ManifestSource{
		ManifestPath: filepath.Join(cfg.Training.DataDir, dataset.DefaultManifestName),
		SampleSize:   cfg.Training.SampleSize,
		Seed:         int(trainCfg.Seed),
	}
	return detector.NewService(artifact.NewStore(cfg.ModelDir), loader, trainCfg)
}

// initModels loads the persisted snapshot, or trains a fresh one from the
// sampled corpus when artifacts are missing and TRAIN_ON_BOOT allows it.
// Without either, the API serves 503s until a retrain is requested.
func initModels(ctx context.Context, cfg config.Config, svc detector.Service) {
	err := svc.LoadArtifacts(ctx)
	if err == nil {
		return
	}
	if !errors.Is(err, artifact.ErrMissingArtifact) {
		slog.ErrorContext(ctx, "failed to load model artifacts", "error", err)
		os.Exit(1)
	}

	slog.WarnContext(ctx, "no saved model artifacts found", "model_dir", cfg.ModelDir)
	if !cfg.Training.OnBoot {
		slog.WarnContext(ctx, "serving not-ready until a model is trained")
		return
	}

	if _, err := svc.TrainAndInstall(ctx, false); err != nil {
		slog.ErrorContext(ctx, "startup training failed", "error", err)
		os.Exit(1)
	}
}

func setupRouter(cfg config.Config, svc detector.Service) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.DashboardURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	httprouter.SetupRoutes(router, svc)

	return router
}

const banner = `
██╗   ██╗ ███████╗ ██████╗  ██████╗  ██╗  ██████╗ ████████╗
██║   ██║ ██╔════╝ ██╔══██╗ ██╔══██╗ ██║ ██╔════╝ ╚══██╔══╝
██║   ██║ █████╗   ██████╔╝ ██║  ██║ ██║ ██║         ██║
╚██╗ ██╔╝ ██╔══╝   ██╔══██╗ ██║  ██║ ██║ ██║         ██║
 ╚████╔╝  ███████╗ ██║  ██║ ██████╔╝ ██║ ╚██████╗    ██║
  ╚═══╝   ╚══════╝ ╚═╝  ╚═╝ ╚═════╝  ╚═╝  ╚═════╝    ╚═╝
`

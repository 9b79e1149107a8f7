package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/git-dariel/fake-news-detector/common/id"
	"github.com/git-dariel/fake-news-detector/common/logger"
	"github.com/git-dariel/fake-news-detector/internal/artifact"
	"github.com/git-dariel/fake-news-detector/internal/dataset"
	"github.com/git-dariel/fake-news-detector/internal/detector"
	"github.com/git-dariel/fake-news-detector/internal/training"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit a new model snapshot from the labeled corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Setup(cfg)

		// Initialize snowflake ID generator (use different node ID than server)
		if err := id.Init(2); err != nil {
			return fmt.Errorf("initialize id generator: %w", err)
		}

		full, _ := cmd.Flags().GetBool("full")
		if sample, _ := cmd.Flags().GetInt("sample"); sample > 0 {
			cfg.Training.SampleSize = sample
		}

		trainCfg := training.DefaultConfig()
		trainCfg.TestFraction = cfg.Training.TestFraction

		loader := dataset.ManifestSource{
			ManifestPath: filepath.Join(cfg.Training.DataDir, dataset.DefaultManifestName),
			SampleSize:   cfg.Training.SampleSize,
			Seed:         int(trainCfg.Seed),
		}
		svc := detector.NewService(artifact.NewStore(cfg.ModelDir), loader, trainCfg)

		start := time.Now()
		snap, err := svc.TrainAndInstall(ctx, full)
		if err != nil {
			return fmt.Errorf("train: %w", err)
		}

		fmt.Printf("\nSnapshot %d trained in %s\n", snap.ID, time.Since(start).Round(time.Millisecond))
		fmt.Printf("Vocabulary: %d features\n", snap.Vectorizer.NumFeatures())
		fmt.Printf("Artifacts:  %s\n\n", cfg.ModelDir)
		printMetrics(snap.Metrics)
		return nil
	},
}

func init() {
	trainCmd.Flags().Int("sample", 0, "Per-run article cap, split across classes (0 uses TRAIN_SAMPLE_SIZE)")
	trainCmd.Flags().Bool("full", false, "Train on the full corpus, ignoring the sample cap")
}

package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/git-dariel/fake-news-detector/internal/artifact"
	"github.com/git-dariel/fake-news-detector/internal/model"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Show held-out metrics for the saved model snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		snap, err := artifact.NewStore(cfg.ModelDir).Load()
		if errors.Is(err, artifact.ErrMissingArtifact) {
			return fmt.Errorf("no saved snapshot in %s, run `trainer train` first", cfg.ModelDir)
		}
		if err != nil {
			return fmt.Errorf("load artifacts: %w", err)
		}

		fmt.Printf("Snapshot:   %d (trained %s)\n", snap.ID, snap.TrainedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Vocabulary: %d features\n\n", snap.Vectorizer.NumFeatures())
		printMetrics(snap.Metrics)
		return nil
	},
}

// printMetrics renders the per-model evaluation table followed by the
// confusion matrices. FAKE is the positive class.
func printMetrics(metrics map[string]model.ModelMetrics) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("%-16s  %9s  %9s  %9s  %9s  %9s\n",
		"Model", "Train Acc", "Test Acc", "Precision", "Recall", "F1")
	fmt.Println(strings.Repeat("─", 73))
	for _, name := range names {
		m := metrics[name]
		fmt.Printf("%-16s  %9.4f  %9.4f  %9.4f  %9.4f  %9.4f\n",
			name, m.TrainAccuracy, m.TestAccuracy, m.Precision, m.Recall, m.F1Score)
	}

	for _, name := range names {
		m := metrics[name]
		fmt.Printf("\n%s confusion matrix (rows actual, FAKE first):\n", name)
		fmt.Printf("%8s  %6s  %6s\n", "", "FAKE", "REAL")
		fmt.Printf("%8s  %6d  %6d\n", "FAKE", m.ConfusionMatrix[0][0], m.ConfusionMatrix[0][1])
		fmt.Printf("%8s  %6d  %6d\n", "REAL", m.ConfusionMatrix[1][0], m.ConfusionMatrix[1][1])
	}
}

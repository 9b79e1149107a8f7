package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/git-dariel/fake-news-detector/core/config"
)

var rootCmd = &cobra.Command{
	Use:   "trainer",
	Short: "Offline training tools for the Verdict fake news detector",
	Long:  "Trainer fits the TF-IDF vectorizer and the tree ensembles from the labeled news corpus, and inspects saved model artifacts.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Dataset directory (overrides DATA_DIR)")
	rootCmd.PersistentFlags().String("models", "", "Model artifact directory (overrides MODEL_DIR)")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the trainer environment and applies the --data and
// --models flag overrides on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(config.ServiceTypeTrainer)
	if err != nil {
		return config.Config{}, err
	}
	if dir, _ := cmd.Flags().GetString("data"); dir != "" {
		cfg.Training.DataDir = dir
	}
	if dir, _ := cmd.Flags().GetString("models"); dir != "" {
		cfg.ModelDir = dir
	}
	return cfg, nil
}

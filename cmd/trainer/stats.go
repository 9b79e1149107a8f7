package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/git-dariel/fake-news-detector/internal/dataset"
	"github.com/git-dariel/fake-news-detector/internal/training"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the training corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		full, _ := cmd.Flags().GetBool("full")
		loader := dataset.ManifestSource{
			ManifestPath: filepath.Join(cfg.Training.DataDir, dataset.DefaultManifestName),
			SampleSize:   cfg.Training.SampleSize,
			Seed:         int(training.DefaultConfig().Seed),
		}
		articles, err := loader.LoadCorpus(full)
		if err != nil {
			return fmt.Errorf("load corpus: %w", err)
		}

		stats := dataset.Stats(articles)
		fmt.Printf("Articles:   %d (%d fake / %d real)\n", stats.TotalArticles, stats.FakeArticles, stats.RealArticles)
		fmt.Printf("Avg text:   %.1f chars\n", stats.AvgTextLength)
		fmt.Printf("Avg title:  %.1f chars\n", stats.AvgTitleLength)

		if len(stats.Subjects) == 0 {
			return nil
		}

		names := make([]string, 0, len(stats.Subjects))
		for name := range stats.Subjects {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if stats.Subjects[names[i]] != stats.Subjects[names[j]] {
				return stats.Subjects[names[i]] > stats.Subjects[names[j]]
			}
			return names[i] < names[j]
		})

		fmt.Println("\nSubjects")
		fmt.Println(strings.Repeat("─", 32))
		for _, name := range names {
			fmt.Printf("%-24s  %6d\n", name, stats.Subjects[name])
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("full", false, "Summarize the full corpus instead of the training sample")
}

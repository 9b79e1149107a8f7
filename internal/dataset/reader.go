package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/git-dariel/fake-news-detector/internal/model"
)

// Load reads every source declared in the manifest at path and returns the
// combined labeled corpus in manifest order.
func Load(path string) ([]model.LabeledArticle, error) {
	manifest, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}

	var articles []model.LabeledArticle
	for _, src := range manifest.Sources {
		batch, err := readCSV(src.Path, src.Label)
		if err != nil {
			return nil, err
		}
		articles = append(articles, batch...)
	}
	return articles, nil
}

// readCSV parses one labeled article file. The header row names the columns;
// title, text, subject and date are picked up wherever they appear, and any
// column a file lacks yields empty fields.
func readCSV(path string, label model.Label) ([]model.LabeledArticle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var articles []model.LabeledArticle
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		articles = append(articles, model.LabeledArticle{
			Article: model.Article{
				Title:   field(record, cols, "title"),
				Text:    field(record, cols, "text"),
				Subject: field(record, cols, "subject"),
				Date:    field(record, cols, "date"),
			},
			Label: label,
		})
	}
	return articles, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

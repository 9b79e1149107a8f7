// Package dataset loads the labeled news corpus. A YAML manifest names the
// CSV files to read and the label applied to every row of each file, so
// swapping corpora is a config change rather than a code change.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/git-dariel/fake-news-detector/internal/model"
)

// DefaultManifestName is the manifest filename looked up inside a data
// directory.
const DefaultManifestName = "sources.yaml"

// Manifest declares the CSV sources making up the corpus.
type Manifest struct {
	Sources []Source `yaml:"sources"`
}

// Source is one labeled CSV file. Relative paths resolve against the
// manifest's own directory.
type Source struct {
	Path  string      `yaml:"path"`
	Label model.Label `yaml:"label"`
}

// LoadManifest reads and validates a corpus manifest.
func LoadManifest(path string) (Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("reading dataset manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing dataset manifest %s: %w", path, err)
	}
	if len(m.Sources) == 0 {
		return Manifest{}, fmt.Errorf("dataset manifest %s declares no sources", path)
	}

	dir := filepath.Dir(path)
	for i, src := range m.Sources {
		if src.Path == "" {
			return Manifest{}, fmt.Errorf("dataset manifest %s: source %d has no path", path, i)
		}
		if src.Label != model.LabelFake && src.Label != model.LabelReal {
			return Manifest{}, fmt.Errorf("dataset manifest %s: source %s has unknown label %q", path, src.Path, src.Label)
		}
		if !filepath.IsAbs(src.Path) {
			m.Sources[i].Path = filepath.Join(dir, src.Path)
		}
	}
	return m, nil
}

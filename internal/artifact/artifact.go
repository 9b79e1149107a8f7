// Package artifact persists trained snapshots on disk so the server can
// come back up without retraining. Each component is a gob file; a small
// JSON manifest is written last, so a directory with a manifest is always a
// complete snapshot.
package artifact

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/git-dariel/fake-news-detector/internal/ensemble"
	"github.com/git-dariel/fake-news-detector/internal/feature"
	"github.com/git-dariel/fake-news-detector/internal/model"
	"github.com/git-dariel/fake-news-detector/internal/training"
)

const (
	vectorizerFile = "vectorizer.gob"
	treeFile       = "decision_tree.gob"
	forestFile     = "random_forest.gob"
	metricsFile    = "metrics.gob"
	manifestFile   = "manifest.json"
)

// ErrMissingArtifact reports a snapshot directory without a complete set of
// model files.
var ErrMissingArtifact = errors.New("model artifact missing")

// Store reads and writes snapshots under a single directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

type manifest struct {
	SnapshotID int64     `json:"snapshot_id"`
	TrainedAt  time.Time `json:"trained_at"`
	SavedAt    time.Time `json:"saved_at"`
}

// Save writes every component of the snapshot, replacing whatever the
// directory held before. Files land via temp-file rename and the manifest
// goes last, so a crash mid-save never leaves a loadable half snapshot.
func (s *Store) Save(snap *training.Snapshot) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating artifact dir: %w", err)
	}

	if err := s.writeGob(vectorizerFile, snap.Vectorizer); err != nil {
		return err
	}
	if err := s.writeGob(treeFile, snap.Tree); err != nil {
		return err
	}
	if err := s.writeGob(forestFile, snap.Forest); err != nil {
		return err
	}
	if err := s.writeGob(metricsFile, snap.Metrics); err != nil {
		return err
	}

	m := manifest{
		SnapshotID: snap.ID,
		TrainedAt:  snap.TrainedAt,
		SavedAt:    time.Now().UTC(),
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding artifact manifest: %w", err)
	}
	return s.writeFile(manifestFile, raw)
}

// Load reads a complete snapshot back. A directory without a manifest or
// with any model file absent reports ErrMissingArtifact.
func (s *Store) Load() (*training.Snapshot, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, manifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", manifestFile, ErrMissingArtifact)
		}
		return nil, fmt.Errorf("reading artifact manifest: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing artifact manifest: %w", err)
	}

	var vec feature.Vectorizer
	if err := s.readGob(vectorizerFile, &vec); err != nil {
		return nil, err
	}
	var tree ensemble.DecisionTree
	if err := s.readGob(treeFile, &tree); err != nil {
		return nil, err
	}
	var forest ensemble.RandomForest
	if err := s.readGob(forestFile, &forest); err != nil {
		return nil, err
	}
	metrics := map[string]model.ModelMetrics{}
	if err := s.readGob(metricsFile, &metrics); err != nil {
		return nil, err
	}

	return &training.Snapshot{
		ID:         m.SnapshotID,
		TrainedAt:  m.TrainedAt,
		Vectorizer: &vec,
		Tree:       &tree,
		Forest:     &forest,
		Metrics:    metrics,
	}, nil
}

func (s *Store) writeGob(name string, v any) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("installing %s: %w", name, err)
	}
	return nil
}

func (s *Store) writeFile(name string, raw []byte) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("installing %s: %w", name, err)
	}
	return nil
}

func (s *Store) readGob(name string, out any) error {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", name, ErrMissingArtifact)
		}
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kynrd/threadloom/pkg/roster"
	"github.com/kynrd/threadloom/pkg/types"
)

// FileStore persists state and batches as JSON documents under a data
// directory. Reference data is read from YAML files when present, with the
// built-in roster as fallback.
type FileStore struct {
	dataPath string
}

// NewFileStore creates a file store rooted at dataPath.
func NewFileStore(dataPath string) *FileStore {
	return &FileStore{dataPath: dataPath}
}

// LoadState reads state.json, returning a fresh state when none exists.
func (f *FileStore) LoadState(_ context.Context) (*types.StateStore, error) {
	data, err := os.ReadFile(filepath.Join(f.dataPath, "state.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return types.NewStateStore(), nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}
	state := types.NewStateStore()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return state, nil
}

// SaveState writes state.json atomically via a temp file rename.
func (f *FileStore) SaveState(_ context.Context, state *types.StateStore) error {
	if err := os.MkdirAll(f.dataPath, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Join(f.dataPath, "state.json"), data)
}

// SaveBatch writes one batch document under batches/.
func (f *FileStore) SaveBatch(_ context.Context, batch *types.Batch) error {
	dir := filepath.Join(f.dataPath, "batches")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Join(dir, batch.ID+".json"), data)
}

// LoadBatch reads one batch document by id.
func (f *FileStore) LoadBatch(_ context.Context, id string) (*types.Batch, error) {
	data, err := os.ReadFile(filepath.Join(f.dataPath, "batches", id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("batch %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("read batch: %w", err)
	}
	batch := &types.Batch{}
	if err := json.Unmarshal(data, batch); err != nil {
		return nil, fmt.Errorf("parse batch: %w", err)
	}
	return batch, nil
}

// ListBatches returns the ids of all stored batch documents.
func (f *FileStore) ListBatches(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(f.dataPath, "batches"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".json"); ok {
			ids = append(ids, name)
		}
	}
	return ids, nil
}

// LoadPersonas reads personas.yaml, falling back to the built-in roster.
func (f *FileStore) LoadPersonas(_ context.Context) ([]types.Persona, error) {
	var out []types.Persona
	ok, err := f.loadYAML("personas.yaml", &out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return roster.DefaultPersonas(), nil
	}
	return out, nil
}

// LoadVenues reads venues.yaml, falling back to the built-in roster.
func (f *FileStore) LoadVenues(_ context.Context) ([]types.Venue, error) {
	var out []types.Venue
	ok, err := f.loadYAML("venues.yaml", &out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return roster.DefaultVenues(), nil
	}
	return out, nil
}

// LoadTags reads tags.yaml, falling back to the built-in roster.
func (f *FileStore) LoadTags(_ context.Context) ([]types.Tag, error) {
	var out []types.Tag
	ok, err := f.loadYAML("tags.yaml", &out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return roster.DefaultTags(), nil
	}
	return out, nil
}

func (f *FileStore) loadYAML(name string, dst any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(f.dataPath, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("parse %s: %w", name, err)
	}
	return true, nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kynrd/threadloom/pkg/roster"
	"github.com/kynrd/threadloom/pkg/types"
)

// MemoryStore keeps everything in process memory. Used by tests and dry
// runs. Values are deep-copied through JSON so callers cannot alias
// stored state.
type MemoryStore struct {
	mu sync.RWMutex

	state    *types.StateStore
	batches  map[string]*types.Batch
	personas []types.Persona
	venues   []types.Venue
	tags     []types.Tag
}

// NewMemoryStore creates a memory store seeded with the built-in roster.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		batches:  make(map[string]*types.Batch),
		personas: roster.DefaultPersonas(),
		venues:   roster.DefaultVenues(),
		tags:     roster.DefaultTags(),
	}
}

// SeedReferenceData replaces the reference data set.
func (m *MemoryStore) SeedReferenceData(personas []types.Persona, venues []types.Venue, tags []types.Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.personas = personas
	m.venues = venues
	m.tags = tags
}

// LoadState returns the stored state, or a fresh one if none was saved.
func (m *MemoryStore) LoadState(_ context.Context) (*types.StateStore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state == nil {
		return types.NewStateStore(), nil
	}
	out := &types.StateStore{}
	if err := deepCopy(m.state, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveState stores a copy of the state.
func (m *MemoryStore) SaveState(_ context.Context, state *types.StateStore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := &types.StateStore{}
	if err := deepCopy(state, stored); err != nil {
		return err
	}
	m.state = stored
	return nil
}

// SaveBatch stores a copy of the batch.
func (m *MemoryStore) SaveBatch(_ context.Context, batch *types.Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := &types.Batch{}
	if err := deepCopy(batch, stored); err != nil {
		return err
	}
	m.batches[batch.ID] = stored
	return nil
}

// LoadBatch returns a stored batch by id.
func (m *MemoryStore) LoadBatch(_ context.Context, id string) (*types.Batch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.batches[id]
	if !ok {
		return nil, fmt.Errorf("batch %s: %w", id, ErrNotFound)
	}
	out := &types.Batch{}
	if err := deepCopy(b, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListBatches returns all stored batch ids.
func (m *MemoryStore) ListBatches(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.batches))
	for id := range m.batches {
		ids = append(ids, id)
	}
	return ids, nil
}

// LoadPersonas returns the persona reference set.
func (m *MemoryStore) LoadPersonas(_ context.Context) ([]types.Persona, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]types.Persona(nil), m.personas...), nil
}

// LoadVenues returns the venue reference set.
func (m *MemoryStore) LoadVenues(_ context.Context) ([]types.Venue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]types.Venue(nil), m.venues...), nil
}

// LoadTags returns the tag reference set.
func (m *MemoryStore) LoadTags(_ context.Context) ([]types.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]types.Tag(nil), m.tags...), nil
}

func deepCopy(src, dst any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

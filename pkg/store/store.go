// Package store defines the persistence contract for engine state, batches
// and reference data, with memory, document-file and key-value variants.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/kynrd/threadloom/pkg/types"
)

// ErrNotFound is returned when a requested batch does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence collaborator the engine talks to. The engine is
// agnostic to the backing medium.
type Store interface {
	LoadState(ctx context.Context) (*types.StateStore, error)
	SaveState(ctx context.Context, state *types.StateStore) error

	SaveBatch(ctx context.Context, batch *types.Batch) error
	LoadBatch(ctx context.Context, id string) (*types.Batch, error)
	ListBatches(ctx context.Context) ([]string, error)

	LoadPersonas(ctx context.Context) ([]types.Persona, error)
	LoadVenues(ctx context.Context) ([]types.Venue, error)
	LoadTags(ctx context.Context) ([]types.Tag, error)
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open constructs the store variant named by backend. dataPath is the data
// directory for the file backend or the database file for sqlite; it is
// ignored by the memory backend.
func Open(backend, dataPath string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(dataPath), nil
	case BackendSQLite:
		return NewSQLiteStore(dataPath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"agentmgr/domain/core"
	"agentmgr/domain/dataset"
	"agentmgr/ports"
)

const sourceKeyPrefix = "sources/"

// sourceRepository implements ports.SourceRepository
type sourceRepository struct {
	store ports.KVStore
}

// NewSourceRepository creates a data source repository over a KV store
func NewSourceRepository(store ports.KVStore) ports.SourceRepository {
	return &sourceRepository{store: store}
}

func sourceKey(id core.SourceID) string {
	return sourceKeyPrefix + id.String()
}

// Create stores a new data source, rows included
func (r *sourceRepository) Create(ctx context.Context, ds *dataset.DataSource) error {
	value, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("failed to encode data source: %w", err)
	}
	if err := r.store.Set(ctx, sourceKey(ds.ID), value); err != nil {
		return fmt.Errorf("failed to store data source: %w", err)
	}
	return nil
}

// GetByID loads a data source by its ID
func (r *sourceRepository) GetByID(ctx context.Context, id core.SourceID) (*dataset.DataSource, error) {
	value, found, err := r.store.Get(ctx, sourceKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load data source: %w", err)
	}
	if !found {
		return nil, core.NewNotFoundError("data source", id.String())
	}

	var ds dataset.DataSource
	if err := json.Unmarshal(value, &ds); err != nil {
		return nil, fmt.Errorf("failed to decode data source %s: %w", id, err)
	}
	return &ds, nil
}

// List returns all stored data sources
func (r *sourceRepository) List(ctx context.Context) ([]*dataset.DataSource, error) {
	keys, err := r.store.Keys(ctx, sourceKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list data sources: %w", err)
	}

	sources := make([]*dataset.DataSource, 0, len(keys))
	for _, key := range keys {
		value, found, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load data source at %s: %w", key, err)
		}
		if !found {
			continue
		}
		var ds dataset.DataSource
		if err := json.Unmarshal(value, &ds); err != nil {
			return nil, fmt.Errorf("failed to decode data source at %s: %w", key, err)
		}
		sources = append(sources, &ds)
	}
	return sources, nil
}

// Delete removes a data source record
func (r *sourceRepository) Delete(ctx context.Context, id core.SourceID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.store.Delete(ctx, sourceKey(id))
}

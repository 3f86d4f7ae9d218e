// Package storage implements the repository ports over an injected KVStore,
// mirroring how the source system kept all state in browser local storage.
// Records are stored as JSON under typed key prefixes.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"agentmgr/domain/agent"
	"agentmgr/domain/core"
	"agentmgr/ports"
)

const agentKeyPrefix = "agents/"

// agentRepository implements ports.AgentRepository
type agentRepository struct {
	store ports.KVStore
}

// NewAgentRepository creates an agent repository over a KV store
func NewAgentRepository(store ports.KVStore) ports.AgentRepository {
	return &agentRepository{store: store}
}

func agentKey(id core.AgentID) string {
	return agentKeyPrefix + id.String()
}

// Create stores a new agent record
func (r *agentRepository) Create(ctx context.Context, a *agent.Agent) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return r.put(ctx, a)
}

// GetByID loads an agent by its ID
func (r *agentRepository) GetByID(ctx context.Context, id core.AgentID) (*agent.Agent, error) {
	value, found, err := r.store.Get(ctx, agentKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load agent: %w", err)
	}
	if !found {
		return nil, core.NewNotFoundError("agent", id.String())
	}

	var a agent.Agent
	if err := json.Unmarshal(value, &a); err != nil {
		return nil, fmt.Errorf("failed to decode agent %s: %w", id, err)
	}
	return &a, nil
}

// List returns all stored agents
func (r *agentRepository) List(ctx context.Context) ([]*agent.Agent, error) {
	keys, err := r.store.Keys(ctx, agentKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	agents := make([]*agent.Agent, 0, len(keys))
	for _, key := range keys {
		value, found, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load agent at %s: %w", key, err)
		}
		if !found {
			continue
		}
		var a agent.Agent
		if err := json.Unmarshal(value, &a); err != nil {
			return nil, fmt.Errorf("failed to decode agent at %s: %w", key, err)
		}
		agents = append(agents, &a)
	}
	return agents, nil
}

// Update replaces an existing agent record
func (r *agentRepository) Update(ctx context.Context, a *agent.Agent) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if _, err := r.GetByID(ctx, a.ID); err != nil {
		return err
	}
	a.UpdatedAt = core.Now()
	return r.put(ctx, a)
}

// Delete removes an agent record
func (r *agentRepository) Delete(ctx context.Context, id core.AgentID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.store.Delete(ctx, agentKey(id))
}

// UpdateStatus transitions the agent's execution status
func (r *agentRepository) UpdateStatus(ctx context.Context, id core.AgentID, status agent.Status, lastError string) error {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.Status = status
	a.LastError = lastError
	a.UpdatedAt = core.Now()
	return r.put(ctx, a)
}

func (r *agentRepository) put(ctx context.Context, a *agent.Agent) error {
	value, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode agent: %w", err)
	}
	if err := r.store.Set(ctx, agentKey(a.ID), value); err != nil {
		return fmt.Errorf("failed to store agent: %w", err)
	}
	return nil
}

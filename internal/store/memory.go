package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"gitlite.dev/gitlite/internal/repo"
)

// Memory implements repo.Store in process memory. Records are kept in their
// serialized form so callers observe the same wholesale read/write semantics
// as the sqlite store. Intended for tests.
type Memory struct {
	mu      sync.Mutex
	records map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

// Load reads the record for a project. Returns (nil, nil) when absent.
func (m *Memory) Load(ctx context.Context, projectID string) (*repo.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.records[projectID]
	if !ok {
		return nil, nil
	}

	var state repo.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("parsing repository state: %w", err)
	}
	return &state, nil
}

// Save writes the full record for a project.
func (m *Memory) Save(ctx context.Context, state *repo.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("serializing repository state: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[state.ProjectID] = raw
	return nil
}

// Dump returns the raw serialized record for a project, or nil when absent.
func (m *Memory) Dump(projectID string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.records[projectID]
	if !ok {
		return nil
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}

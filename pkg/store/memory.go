package store

import (
	"context"
	"sort"
	"sync"

	"github.com/chartkit/chartkit/pkg/chart"
	"github.com/chartkit/chartkit/pkg/errors"
)

// Memory is a map-backed store.
type Memory struct {
	mu     sync.RWMutex
	charts map[string]*chart.Definition
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{charts: make(map[string]*chart.Definition)}
}

// Get loads a definition by chart ID.
func (s *Memory) Get(ctx context.Context, id string) (*chart.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.charts[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeChartNotFound, "chart %q not found", id)
	}
	cp := *def
	return &cp, nil
}

// Put stores a definition keyed by its ID.
func (s *Memory) Put(ctx context.Context, def *chart.Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *def
	s.charts[def.ID] = &cp
	return nil
}

// Delete removes a definition.
func (s *Memory) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.charts, id)
	return nil
}

// List returns all chart IDs in lexical order.
func (s *Memory) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.charts))
	for id := range s.charts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close does nothing for the memory store.
func (s *Memory) Close(ctx context.Context) error {
	return nil
}

var _ Store = (*Memory)(nil)

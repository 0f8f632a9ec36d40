package store

import (
	"context"
	"sync"

	"github.com/nishs1729/simulation-manager/internal/model"
)

type MemoryStore struct {
	mu     sync.RWMutex
	series map[string]model.Series
	runs   map[string]model.RunMeta
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.series = make(map[string]model.Series)
	s.runs = make(map[string]model.RunMeta)
	return nil
}

func (s *MemoryStore) SaveSeries(_ context.Context, series model.Series) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.series[series.Name] = series
	return nil
}

func (s *MemoryStore) GetSeries(_ context.Context, name string) (model.Series, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series, ok := s.series[name]
	return series, ok, nil
}

func (s *MemoryStore) ListSeries(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.series))
	for name := range s.series {
		names = append(names, name)
	}
	return names, nil
}

func (s *MemoryStore) SaveRunMeta(_ context.Context, meta model.RunMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[meta.RunID] = meta
	return nil
}

func (s *MemoryStore) GetRunMeta(_ context.Context, runID string) (model.RunMeta, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meta, ok := s.runs[runID]
	return meta, ok, nil
}

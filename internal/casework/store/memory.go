package store

import (
	"context"
	"sync"
	"time"

	"immigration-engine/internal/casework"
	apperrors "immigration-engine/internal/common/errors"
	"immigration-engine/internal/common/metrics"
)

// MemoryStore is the in-process CaseStore used by tests and single-node
// deployments. Cases are deep-copied on the way in and out so callers never
// alias stored state.
type MemoryStore struct {
	mu    sync.RWMutex
	cases map[string]*casework.Case
}

// NewMemoryStore returns an empty in-memory case store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cases: make(map[string]*casework.Case)}
}

// Create stores a new case. Reusing an existing ID is rejected as an invalid
// mutation.
func (s *MemoryStore) Create(_ context.Context, c *casework.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.cases[c.ID]; exists {
		return apperrors.NewInvalidMutationError("case ID already exists: " + c.ID)
	}
	s.cases[c.ID] = c.Clone()
	return nil
}

// Get returns a copy of the stored case.
func (s *MemoryStore) Get(_ context.Context, caseID string) (*casework.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.cases[caseID]
	if !ok {
		return nil, apperrors.NewCaseNotFoundError(caseID)
	}
	return stored.Clone(), nil
}

// Update swaps in the mutated case when the stored version still matches
// expectedVersion, bumping the version. On a conflict the current stored case
// is returned alongside the error.
func (s *MemoryStore) Update(_ context.Context, c *casework.Case, expectedVersion int64) (*casework.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.cases[c.ID]
	if !ok {
		return nil, apperrors.NewCaseNotFoundError(c.ID)
	}
	if stored.Version != expectedVersion {
		metrics.CaseStoreConflicts.Inc()
		return stored.Clone(), apperrors.NewConcurrentModificationError(c.ID, expectedVersion, stored.Version)
	}

	next := c.Clone()
	next.Version = expectedVersion + 1
	next.UpdatedAt = time.Now().UTC()
	s.cases[c.ID] = next
	return next.Clone(), nil
}

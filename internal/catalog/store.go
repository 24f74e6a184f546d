package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"immigration-engine/internal/common/errors"
)

// Store resolves the catalog entry effective at a given date. Lookups are
// in-memory or cached; the assessment pipeline never blocks on a remote fetch
// mid-computation.
type Store interface {
	Get(ctx context.Context, program, country string, versionDate time.Time) (*RuleCatalogEntry, error)
}

type catalogKey struct {
	program string
	country string
}

// MemoryStore keeps published entries in memory, newest effective date first
// per program. Entries are immutable once registered.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[catalogKey][]*RuleCatalogEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[catalogKey][]*RuleCatalogEntry)}
}

// NewDefaultStore returns a memory store seeded with the built-in grids.
func NewDefaultStore() *MemoryStore {
	s := NewMemoryStore()
	s.Register(FederalSkilledWorker())
	s.Register(ProvincialNominee())
	return s
}

// Register publishes an entry. Versions for the same program are kept sorted
// newest first so lookups scan to the first effective match.
func (s *MemoryStore) Register(entry *RuleCatalogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := catalogKey{program: entry.Program, country: entry.Country}
	versions := append(s.entries[key], entry)
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].EffectiveDate.After(versions[j].EffectiveDate)
	})
	s.entries[key] = versions
}

// Get returns the entry with the latest effective date on or before
// versionDate, or CATALOG_NOT_FOUND.
func (s *MemoryStore) Get(_ context.Context, program, country string, versionDate time.Time) (*RuleCatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.entries[catalogKey{program: program, country: country}] {
		if !entry.EffectiveDate.After(versionDate) {
			return entry, nil
		}
	}
	return nil, errors.NewCatalogNotFoundError(program, country, versionDate)
}

// Programs lists the registered program identifiers for a country.
func (s *MemoryStore) Programs(country string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for key := range s.entries {
		if key.country == country {
			out = append(out, key.program)
		}
	}
	sort.Strings(out)
	return out
}

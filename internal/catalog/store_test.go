// internal/catalog/store_test.go
package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "immigration-engine/internal/common/errors"
)

func testEntry(program string, effective time.Time) *RuleCatalogEntry {
	return &RuleCatalogEntry{
		Program:       program,
		Country:       "CA",
		Category:      CategoryFederal,
		EffectiveDate: effective,
		Criteria: []Criterion{
			{ID: "age", Kind: CriterionAge, MaxPoints: 12, AgeBands: []AgeBand{{MinAge: 18, MaxAge: 35, Points: 12}}},
		},
	}
}

func TestMemoryStore_VersionResolution(t *testing.T) {
	store := NewMemoryStore()
	v2024 := testEntry("test-program", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	v2025 := testEntry("test-program", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	store.Register(v2024)
	store.Register(v2025)

	ctx := context.Background()

	tests := []struct {
		name        string
		versionDate time.Time
		expected    *RuleCatalogEntry
	}{
		{
			name:        "date after both versions resolves the newest",
			versionDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			expected:    v2025,
		},
		{
			name:        "date between versions resolves the older one",
			versionDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			expected:    v2024,
		},
		{
			name:        "date exactly on an effective date resolves that version",
			versionDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			expected:    v2025,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := store.Get(ctx, "test-program", "CA", tt.versionDate)
			require.NoError(t, err)
			assert.Same(t, tt.expected, entry)
		})
	}
}

func TestMemoryStore_RegistrationOrderIrrelevant(t *testing.T) {
	store := NewMemoryStore()
	v2025 := testEntry("test-program", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	v2024 := testEntry("test-program", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	store.Register(v2025)
	store.Register(v2024)

	entry, err := store.Get(context.Background(), "test-program", "CA", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Same(t, v2025, entry)
}

func TestMemoryStore_NotFound(t *testing.T) {
	store := NewMemoryStore()
	store.Register(testEntry("test-program", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

	ctx := context.Background()

	_, err := store.Get(ctx, "unknown-program", "CA", time.Now())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCatalogNotFound))

	// Known program, but no version effective that early.
	_, err = store.Get(ctx, "test-program", "CA", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCatalogNotFound))

	// Same program under a different country is a distinct catalog line.
	_, err = store.Get(ctx, "test-program", "AU", time.Now())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCatalogNotFound))
}

func TestDefaultStore_BuiltinGrids(t *testing.T) {
	store := NewDefaultStore()

	assert.Equal(t, []string{"express-entry-fsw", "provincial-nominee"}, store.Programs("CA"))

	fsw, err := store.Get(context.Background(), "express-entry-fsw", "CA", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 90, fsw.MaxScore())
	assert.Len(t, fsw.Gates, 6)
}

func TestRuleCatalogEntry_MaxScore(t *testing.T) {
	entry := &RuleCatalogEntry{
		Criteria: []Criterion{
			{ID: "a", MaxPoints: 10},
			{ID: "b", MaxPoints: 25},
		},
	}
	assert.Equal(t, 35, entry.MaxScore())
}

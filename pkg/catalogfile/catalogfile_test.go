// pkg/catalogfile/catalogfile_test.go
package catalogfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immigration-engine/internal/catalog"
)

const validBundle = `{
  "program": "skilled-independent",
  "country": "AU",
  "category": "federal",
  "effectiveDate": "2025-01-01T00:00:00Z",
  "policy": {"unverifiedEducationCeiling": 5},
  "criteria": [
    {
      "id": "age",
      "description": "Age at assessment",
      "kind": "age",
      "maxPoints": 30,
      "ageBands": [
        {"minAge": 25, "maxAge": 32, "points": 30},
        {"minAge": 18, "maxAge": 24, "points": 25}
      ]
    },
    {
      "id": "first-language",
      "description": "English proficiency",
      "kind": "firstLanguage",
      "maxPoints": 20,
      "clbBands": [
        {"min": 9, "points": 5},
        {"min": 7, "points": 3}
      ]
    }
  ],
  "gates": [
    {
      "id": "language-minimum",
      "description": "Competent English in every ability",
      "kind": "minLanguageClb",
      "isHardRequirement": true,
      "minClb": 7
    }
  ]
}`

func writeBundle(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidBundle(t *testing.T) {
	path := writeBundle(t, t.TempDir(), "au-skilled.json", validBundle)

	entry, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "skilled-independent", entry.Program)
	assert.Equal(t, "AU", entry.Country)
	assert.Equal(t, 50, entry.MaxScore())
	assert.Len(t, entry.Gates, 1)
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	path := writeBundle(t, t.TempDir(), "bad.json", `{"program": "x", "countryy": "AU"}`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoadInto_RegistersEntries(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "au-skilled.json", validBundle)

	store := catalog.NewDefaultStore()
	loaded, err := LoadInto(store, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded)

	entry, err := store.Get(context.Background(), "skilled-independent", "AU", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "skilled-independent", entry.Program)
}

func TestLoadInto_EmptyDirIsFine(t *testing.T) {
	loaded, err := LoadInto(catalog.NewDefaultStore(), t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, loaded)
}

func TestValidate_BuiltinGridsPass(t *testing.T) {
	assert.NoError(t, Validate(catalog.FederalSkilledWorker()))
	assert.NoError(t, Validate(catalog.ProvincialNominee()))
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	entry := &catalog.RuleCatalogEntry{
		Category: "subscription",
		Criteria: []catalog.Criterion{
			{ID: "age", Kind: catalog.CriterionAge, MaxPoints: 0},
			{ID: "age", Kind: "vibes", MaxPoints: 10},
		},
		Gates: []catalog.EligibilityGate{
			{ID: "funds", Kind: catalog.GateSettlementFunds, Hard: true},
		},
	}

	err := Validate(entry)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "program is required")
	assert.Contains(t, msg, "country is required")
	assert.Contains(t, msg, "effectiveDate is required")
	assert.Contains(t, msg, "unknown category")
	assert.Contains(t, msg, "duplicate criterion id")
	assert.Contains(t, msg, "unknown criterion kind")
	assert.Contains(t, msg, "settlementFunds gate needs minFunds")
}

func TestValidate_BandOrderingEnforced(t *testing.T) {
	entry := catalog.FederalSkilledWorker()
	entry.Criteria[2].CLBBands = []catalog.PointsBand{
		{Min: 7, Points: 4},
		{Min: 9, Points: 6}, // ascending, breaks first-match-wins
	}

	err := Validate(entry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strictly descending")
}

// Package catalogfile loads rule catalog entries from JSON bundle files on
// disk, so deployments can publish policy updates without a code change. Each
// bundle file holds one entry; a directory of bundles is loaded as a set and
// validated before registration.
package catalogfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"immigration-engine/internal/catalog"
)

// Load reads and validates a single catalog bundle file.
func Load(path string) (*catalog.RuleCatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog bundle %s: %w", path, err)
	}

	var entry catalog.RuleCatalogEntry
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&entry); err != nil {
		return nil, fmt.Errorf("parse catalog bundle %s: %w", path, err)
	}

	if err := Validate(&entry); err != nil {
		return nil, fmt.Errorf("invalid catalog bundle %s: %w", path, err)
	}
	return &entry, nil
}

// LoadDir loads every *.json bundle in dir, sorted by file name for
// deterministic registration order.
func LoadDir(dir string) ([]*catalog.RuleCatalogEntry, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan catalog dir %s: %w", dir, err)
	}
	sort.Strings(paths)

	entries := make([]*catalog.RuleCatalogEntry, 0, len(paths))
	for _, path := range paths {
		entry, err := Load(path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// LoadInto loads a bundle directory and registers every entry with the store.
// An empty directory is not an error: the built-in grids remain available.
func LoadInto(store *catalog.MemoryStore, dir string) (int, error) {
	entries, err := LoadDir(dir)
	if err != nil {
		return 0, err
	}
	for _, entry := range entries {
		store.Register(entry)
	}
	return len(entries), nil
}

// Validate checks the structural invariants a published entry must hold:
// identity fields present, ordered non-overlapping bands, parameters matching
// each kind. Validation failures list every violation found.
func Validate(entry *catalog.RuleCatalogEntry) error {
	var problems []string
	report := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if entry.Program == "" {
		report("program is required")
	}
	if entry.Country == "" {
		report("country is required")
	}
	if entry.EffectiveDate.IsZero() {
		report("effectiveDate is required")
	}
	switch entry.Category {
	case catalog.CategoryFederal, catalog.CategoryProvincial, catalog.CategoryBusiness,
		catalog.CategoryFamily, catalog.CategoryRefugee:
	default:
		report("unknown category %q", entry.Category)
	}
	if len(entry.Criteria) == 0 {
		report("at least one criterion is required")
	}
	if entry.Policy.UnverifiedEducationCeiling < 0 {
		report("policy.unverifiedEducationCeiling must not be negative")
	}

	seenCriteria := map[string]bool{}
	for i, c := range entry.Criteria {
		where := fmt.Sprintf("criteria[%d] (%s)", i, c.ID)
		if c.ID == "" {
			report("criteria[%d]: id is required", i)
		} else if seenCriteria[c.ID] {
			report("%s: duplicate criterion id", where)
		}
		seenCriteria[c.ID] = true

		if c.MaxPoints <= 0 {
			report("%s: maxPoints must be positive", where)
		}
		validateCriterionParams(c, where, report)
	}

	seenGates := map[string]bool{}
	for i, g := range entry.Gates {
		where := fmt.Sprintf("gates[%d] (%s)", i, g.ID)
		if g.ID == "" {
			report("gates[%d]: id is required", i)
		} else if seenGates[g.ID] {
			report("%s: duplicate gate id", where)
		}
		seenGates[g.ID] = true
		validateGateParams(g, where, report)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%d problem(s): %s", len(problems), strings.Join(problems, "; "))
	}
	return nil
}

func validateCriterionParams(c catalog.Criterion, where string, report func(string, ...interface{})) {
	switch c.Kind {
	case catalog.CriterionAge:
		if len(c.AgeBands) == 0 {
			report("%s: age criterion needs ageBands", where)
		}
		for j, band := range c.AgeBands {
			if band.MinAge > band.MaxAge {
				report("%s: ageBands[%d] has minAge > maxAge", where, j)
			}
			if band.Points < 0 || band.Points > c.MaxPoints {
				report("%s: ageBands[%d] points outside [0, maxPoints]", where, j)
			}
		}
	case catalog.CriterionEducation:
		if len(c.EducationPoints) == 0 {
			report("%s: education criterion needs educationPoints", where)
		}
		for level, points := range c.EducationPoints {
			if points < 0 || points > c.MaxPoints {
				report("%s: educationPoints[%s] outside [0, maxPoints]", where, level)
			}
		}
	case catalog.CriterionFirstLanguage:
		validateDescendingBands(c.CLBBands, c.MaxPoints, where, "clbBands", report)
	case catalog.CriterionSecondLanguage:
		if c.MinCLB <= 0 {
			report("%s: secondLanguage criterion needs minClb", where)
		}
		if c.Points <= 0 {
			report("%s: secondLanguage criterion needs points", where)
		}
	case catalog.CriterionWorkExperience:
		validateDescendingBands(c.MonthsBands, c.MaxPoints, where, "monthsBands", report)
	case catalog.CriterionArrangedEmployment, catalog.CriterionProvincialNomination:
		if c.Points <= 0 {
			report("%s: flat criterion needs points", where)
		}
	default:
		report("%s: unknown criterion kind %q", where, c.Kind)
	}
}

func validateGateParams(g catalog.EligibilityGate, where string, report func(string, ...interface{})) {
	switch g.Kind {
	case catalog.GateMinLanguageCLB:
		if g.MinCLB <= 0 {
			report("%s: minLanguageClb gate needs minClb", where)
		}
	case catalog.GateMinSkilledMonths:
		if g.MinMonths <= 0 {
			report("%s: minSkilledMonths gate needs minMonths", where)
		}
	case catalog.GateSettlementFunds:
		if g.MinFunds <= 0 {
			report("%s: settlementFunds gate needs minFunds", where)
		}
	case catalog.GateEducationCredential, catalog.GateAdmissibility,
		catalog.GateArrangedEmployment, catalog.GateProvincialNomination:
	default:
		report("%s: unknown gate kind %q", where, g.Kind)
	}
}

// validateDescendingBands enforces the first-match-wins ordering contract:
// thresholds strictly descending, points within the criterion maximum.
func validateDescendingBands(bands []catalog.PointsBand, maxPoints int, where, field string, report func(string, ...interface{})) {
	if len(bands) == 0 {
		report("%s: needs %s", where, field)
		return
	}
	for j, band := range bands {
		if band.Points < 0 || band.Points > maxPoints {
			report("%s: %s[%d] points outside [0, maxPoints]", where, field, j)
		}
		if j > 0 && band.Min >= bands[j-1].Min {
			report("%s: %s must be ordered by strictly descending min", where, field)
		}
	}
}

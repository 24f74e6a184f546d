package profile

import (
	"sort"
	"strings"
	"time"

	"immigration-engine/internal/common/errors"
	"immigration-engine/internal/models"
)

// daysPerMonth approximates calendar months when summing experience ranges.
const daysPerMonth = 30.4375

// Normalize converts a raw profile into the canonical scoring input. It fails
// only on an unrecognized language test type; every other missing or malformed
// optional field degrades to "not satisfied" for gates and zero points for
// scoring, because partially completed profiles are an expected steady state.
func Normalize(raw *models.RawProfile) (*NormalizedProfile, error) {
	return normalizeAt(raw, time.Now().UTC())
}

// normalizeAt pins "now" so tests stay deterministic.
func normalizeAt(raw *models.RawProfile, now time.Time) (*NormalizedProfile, error) {
	p := &NormalizedProfile{
		ClientID:        raw.ClientID,
		Age:             resolveAge(raw, now),
		MaritalStatus:   parseMaritalStatus(raw.MaritalStatus),
		SettlementFunds: raw.SettlementFunds,
		Admissible:      raw.Admissible,
	}

	for _, test := range raw.LanguageTests {
		clb, ok := resolveCLB(test.TestType, test.Listening, test.Reading, test.Writing, test.Speaking)
		if !ok {
			return nil, errors.NewUnsupportedLanguageTestError(test.TestType)
		}
		p.Languages = append(p.Languages, LanguageProficiency{
			Language: strings.ToLower(test.Language),
			TestType: strings.ToUpper(strings.TrimSpace(test.TestType)),
			CLB:      clb,
		})
	}

	for _, entry := range raw.Education {
		level := ParseEducationLevel(entry.Level)
		if level == EducationNone {
			continue
		}
		p.Education = append(p.Education, Credential{
			Level:    level,
			Field:    entry.Field,
			Verified: isVerifiedCredential(entry),
		})
	}

	p.Work = mergeWorkHistory(raw.WorkHistory, now)

	if raw.JobOffer != nil && raw.JobOffer.Employer != "" {
		p.HasJobOffer = true
		p.JobOfferLMIA = raw.JobOffer.LMIAApproved
	}
	if raw.Nomination != nil && raw.Nomination.Province != "" {
		p.HasNomination = true
	}

	return p, nil
}

func resolveAge(raw *models.RawProfile, now time.Time) int {
	if raw.Age > 0 {
		return raw.Age
	}
	birth, err := time.Parse("2006-01-02", raw.BirthDate)
	if err != nil {
		return 0
	}
	age := now.Year() - birth.Year()
	if now.YearDay() < birth.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

func parseMaritalStatus(s string) MaritalStatus {
	switch MaritalStatus(s) {
	case MaritalSingle, MaritalMarried, MaritalCommonLaw, MaritalDivorced, MaritalWidowed, MaritalSeparated:
		return MaritalStatus(s)
	default:
		return MaritalUnspecified
	}
}

// Domestic credentials are trusted as reported; foreign ones need an
// equivalency assessment to count as verified.
func isVerifiedCredential(entry models.EducationEntry) bool {
	country := strings.ToUpper(entry.Country)
	if country == "" || country == "CA" {
		return true
	}
	return entry.HasEquivalency
}

type dateRange struct {
	start time.Time
	end   time.Time
}

type workGroup struct {
	occupation   string
	country      string
	hoursPerWeek int
	skilled      bool
	ranges       []dateRange
}

// mergeWorkHistory deduplicates overlapping employment intervals per
// occupation/employer before computing cumulative duration. Overlapping but
// distinct occupations stay separate.
func mergeWorkHistory(entries []models.WorkEntry, now time.Time) []ExperiencePeriod {
	groups := make(map[string]*workGroup)
	var order []string

	for _, entry := range entries {
		start, err := time.Parse("2006-01-02", entry.StartDate)
		if err != nil {
			continue
		}
		end := now
		if entry.EndDate != "" {
			parsed, err := time.Parse("2006-01-02", entry.EndDate)
			if err != nil {
				continue
			}
			end = parsed
		}
		if !end.After(start) {
			continue
		}

		key := entry.OccupationCode + "|" + entry.Employer
		group, ok := groups[key]
		if !ok {
			group = &workGroup{
				occupation:   entry.OccupationCode,
				country:      strings.ToUpper(entry.Country),
				hoursPerWeek: entry.HoursPerWeek,
				skilled:      entry.Skilled,
				ranges:       nil,
			}
			groups[key] = group
			order = append(order, key)
		}
		if entry.HoursPerWeek > group.hoursPerWeek {
			group.hoursPerWeek = entry.HoursPerWeek
		}
		group.skilled = group.skilled || entry.Skilled
		group.ranges = append(group.ranges, dateRange{start: start, end: end})
	}

	var out []ExperiencePeriod
	for _, key := range order {
		group := groups[key]
		months := 0
		for _, r := range mergeRanges(group.ranges) {
			months += int(r.end.Sub(r.start).Hours() / 24 / daysPerMonth)
		}
		if months == 0 {
			continue
		}
		out = append(out, ExperiencePeriod{
			OccupationCode: group.occupation,
			Country:        group.country,
			Domestic:       group.country == "CA",
			Months:         months,
			HoursPerWeek:   group.hoursPerWeek,
			Skilled:        group.skilled,
		})
	}
	return out
}

// mergeRanges collapses overlapping or touching date ranges.
func mergeRanges(ranges []dateRange) []dateRange {
	if len(ranges) == 0 {
		return nil
	}
	sorted := make([]dateRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start.Before(sorted[j].start) })

	merged := []dateRange{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !r.start.After(last.end) {
			if r.end.After(last.end) {
				last.end = r.end
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

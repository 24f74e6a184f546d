// Package profile converts raw applicant profiles into the canonical scoring
// input. Normalization is deterministic and pure: the same raw profile always
// yields the same NormalizedProfile, and profiles are re-derived rather than
// mutated on change.
package profile

// MaritalStatus is the canonical marital status enum.
type MaritalStatus string

const (
	MaritalUnspecified MaritalStatus = "unspecified"
	MaritalSingle      MaritalStatus = "single"
	MaritalMarried     MaritalStatus = "married"
	MaritalCommonLaw   MaritalStatus = "commonLaw"
	MaritalDivorced    MaritalStatus = "divorced"
	MaritalWidowed     MaritalStatus = "widowed"
	MaritalSeparated   MaritalStatus = "separated"
)

// EducationLevel is a fixed ordinal scale; higher values rank higher.
type EducationLevel int

const (
	EducationNone EducationLevel = iota
	EducationHighSchool
	EducationOneYearDiploma
	EducationTwoYearDiploma
	EducationBachelors
	EducationTwoOrMoreCredentials
	EducationMasters
	EducationPhD
)

var educationNames = map[EducationLevel]string{
	EducationNone:                 "none",
	EducationHighSchool:           "highSchool",
	EducationOneYearDiploma:       "oneYearDiploma",
	EducationTwoYearDiploma:       "twoYearDiploma",
	EducationBachelors:            "bachelors",
	EducationTwoOrMoreCredentials: "twoOrMoreCredentials",
	EducationMasters:              "masters",
	EducationPhD:                  "phd",
}

func (l EducationLevel) String() string {
	if name, ok := educationNames[l]; ok {
		return name
	}
	return "none"
}

// ParseEducationLevel resolves a reported level string to the ordinal scale.
// Unrecognized values map to EducationNone so a bad credential degrades to
// zero points instead of failing normalization.
func ParseEducationLevel(s string) EducationLevel {
	for level, name := range educationNames {
		if name == s {
			return level
		}
	}
	return EducationNone
}

// SkillCLB holds the CLB-equivalent level per language ability.
type SkillCLB struct {
	Listening int `json:"listening"`
	Reading   int `json:"reading"`
	Writing   int `json:"writing"`
	Speaking  int `json:"speaking"`
}

// Min returns the lowest ability level; gates and grids key off the weakest
// skill.
func (s SkillCLB) Min() int {
	min := s.Listening
	for _, v := range []int{s.Reading, s.Writing, s.Speaking} {
		if v < min {
			min = v
		}
	}
	return min
}

// LanguageProficiency is one language's resolved CLB levels.
type LanguageProficiency struct {
	Language string   `json:"language"`
	TestType string   `json:"testType"`
	CLB      SkillCLB `json:"clb"`
}

// Credential is a normalized education credential. Verified is false for
// foreign credentials lacking an equivalency assessment; scoring applies a
// reduced ceiling to those rather than discarding them.
type Credential struct {
	Level    EducationLevel `json:"level"`
	Field    string         `json:"field,omitempty"`
	Verified bool           `json:"verified"`
}

// ExperiencePeriod is a deduplicated block of work experience for one
// occupation, with overlapping intervals already merged.
type ExperiencePeriod struct {
	OccupationCode string `json:"occupationCode"`
	Country        string `json:"country,omitempty"`
	Domestic       bool   `json:"domestic"`
	Months         int    `json:"months"`
	HoursPerWeek   int    `json:"hoursPerWeek"`
	Skilled        bool   `json:"skilled"`
}

// NormalizedProfile is the canonical applicant snapshot consumed by the
// scoring engine and eligibility evaluator. Never mutated after creation.
type NormalizedProfile struct {
	ClientID        string                `json:"clientId"`
	Age             int                   `json:"age"`
	MaritalStatus   MaritalStatus         `json:"maritalStatus"`
	Languages       []LanguageProficiency `json:"languages"`
	Education       []Credential          `json:"education"`
	Work            []ExperiencePeriod    `json:"work"`
	HasJobOffer     bool                  `json:"hasJobOffer"`
	JobOfferLMIA    bool                  `json:"jobOfferLmia"`
	HasNomination   bool                  `json:"hasProvincialNomination"`
	SettlementFunds *int                  `json:"settlementFunds,omitempty"`
	Admissible      *bool                 `json:"admissible,omitempty"`
}

// FirstLanguage returns the proficiency with the strongest weakest-skill CLB,
// or nil when no language test was normalized.
func (p *NormalizedProfile) FirstLanguage() *LanguageProficiency {
	var best *LanguageProficiency
	for i := range p.Languages {
		if best == nil || p.Languages[i].CLB.Min() > best.CLB.Min() {
			best = &p.Languages[i]
		}
	}
	return best
}

// SecondLanguage returns the strongest proficiency in a language other than
// the first language, or nil.
func (p *NormalizedProfile) SecondLanguage() *LanguageProficiency {
	first := p.FirstLanguage()
	if first == nil {
		return nil
	}
	var best *LanguageProficiency
	for i := range p.Languages {
		if p.Languages[i].Language == first.Language {
			continue
		}
		if best == nil || p.Languages[i].CLB.Min() > best.CLB.Min() {
			best = &p.Languages[i]
		}
	}
	return best
}

// BestCredential returns the highest-ranked credential, preferring verified
// ones on ties, or nil when the applicant reported no education.
func (p *NormalizedProfile) BestCredential() *Credential {
	var best *Credential
	for i := range p.Education {
		c := &p.Education[i]
		if best == nil || c.Level > best.Level || (c.Level == best.Level && c.Verified && !best.Verified) {
			best = c
		}
	}
	return best
}

// SkilledMonths sums skilled experience months, optionally restricted to
// domestic periods.
func (p *NormalizedProfile) SkilledMonths(domesticOnly bool) int {
	total := 0
	for _, w := range p.Work {
		if !w.Skilled {
			continue
		}
		if domesticOnly && !w.Domestic {
			continue
		}
		total += w.Months
	}
	return total
}

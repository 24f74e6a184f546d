// Package catalog holds the versioned, immutable rule definitions that the
// scoring engine and eligibility evaluator run against. Entries are published
// once and never edited; a policy change is a new entry with a later effective
// date. Criteria and gates are a closed set of tagged kinds with data-driven
// parameters, so new programs are new catalog data, not new dispatch code.
package catalog

import "time"

// Category groups programs by stream.
type Category string

const (
	CategoryFederal    Category = "federal"
	CategoryProvincial Category = "provincial"
	CategoryBusiness   Category = "business"
	CategoryFamily     Category = "family"
	CategoryRefugee    Category = "refugee"
)

// CriterionKind identifies which evaluator a criterion dispatches to.
type CriterionKind string

const (
	CriterionAge                  CriterionKind = "age"
	CriterionEducation            CriterionKind = "education"
	CriterionFirstLanguage        CriterionKind = "firstLanguage"
	CriterionSecondLanguage       CriterionKind = "secondLanguage"
	CriterionWorkExperience       CriterionKind = "workExperience"
	CriterionArrangedEmployment   CriterionKind = "arrangedEmployment"
	CriterionProvincialNomination CriterionKind = "provincialNomination"
)

// PointsBand awards Points when the measured quantity is at least Min. Bands
// are ordered descending by Min; the first matching band wins.
type PointsBand struct {
	Min    int `json:"min"`
	Points int `json:"points"`
}

// AgeBand awards Points when age falls within [MinAge, MaxAge].
type AgeBand struct {
	MinAge int `json:"minAge"`
	MaxAge int `json:"maxAge"`
	Points int `json:"points"`
}

// Criterion is one scored factor of a program grid. Only the parameter fields
// relevant to its Kind are populated.
type Criterion struct {
	ID          string        `json:"id"`
	Description string        `json:"description"`
	Kind        CriterionKind `json:"kind"`
	MaxPoints   int           `json:"maxPoints"`

	AgeBands        []AgeBand      `json:"ageBands,omitempty"`
	EducationPoints map[string]int `json:"educationPoints,omitempty"` // by EducationLevel name
	CLBBands        []PointsBand   `json:"clbBands,omitempty"`        // per-ability points by minimum CLB
	MinCLB          int            `json:"minClb,omitempty"`          // secondLanguage threshold
	MonthsBands     []PointsBand   `json:"monthsBands,omitempty"`     // workExperience points by minimum months
	DomesticOnly    bool           `json:"domesticOnly,omitempty"`
	Points          int            `json:"points,omitempty"` // flat award kinds
	RequireLMIA     bool           `json:"requireLmia,omitempty"`
}

// GateKind identifies which predicate an eligibility gate dispatches to.
type GateKind string

const (
	GateMinLanguageCLB       GateKind = "minLanguageClb"
	GateMinSkilledMonths     GateKind = "minSkilledMonths"
	GateEducationCredential  GateKind = "educationCredential"
	GateSettlementFunds      GateKind = "settlementFunds"
	GateAdmissibility        GateKind = "admissibility"
	GateArrangedEmployment   GateKind = "arrangedEmployment"
	GateProvincialNomination GateKind = "provincialNomination"
)

// EligibilityGate is a minimum requirement evaluated independently of score.
// Hard gates alone decide ineligibility; soft gates are informational.
type EligibilityGate struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Kind        GateKind `json:"kind"`
	Hard        bool     `json:"isHardRequirement"`

	MinCLB    int `json:"minClb,omitempty"`
	MinMonths int `json:"minMonths,omitempty"`
	MinFunds  int `json:"minFunds,omitempty"`
}

// Policy carries program-level scoring policy values.
type Policy struct {
	// UnverifiedEducationCeiling caps the education points awarded for a best
	// credential that lacks an equivalency assessment.
	UnverifiedEducationCeiling int `json:"unverifiedEducationCeiling"`
}

// RuleCatalogEntry is one published version of a program's rules. Referenced,
// never copied, by scoring calls; treat as read-only after publication.
type RuleCatalogEntry struct {
	Program       string            `json:"program"`
	Country       string            `json:"country"`
	Category      Category          `json:"category"`
	EffectiveDate time.Time         `json:"effectiveDate"`
	Policy        Policy            `json:"policy"`
	Criteria      []Criterion       `json:"criteria"`
	Gates         []EligibilityGate `json:"gates"`
}

// MaxScore sums the criterion maxima.
func (e *RuleCatalogEntry) MaxScore() int {
	total := 0
	for _, c := range e.Criteria {
		total += c.MaxPoints
	}
	return total
}

// internal/models/profile.go
package models

// RawProfile is the applicant profile as submitted through the intake API:
// possibly incomplete, mixed units, unvalidated. Normalization turns it into
// a canonical scoring input.
type RawProfile struct {
	ClientID      string           `json:"clientId"`
	BirthDate     string           `json:"birthDate,omitempty"` // ISO date; age may be given directly instead
	Age           int              `json:"age,omitempty"`
	MaritalStatus string           `json:"maritalStatus,omitempty"`
	LanguageTests []LanguageTest   `json:"languageTests,omitempty"`
	Education     []EducationEntry `json:"education,omitempty"`
	WorkHistory   []WorkEntry      `json:"workHistory,omitempty"`
	JobOffer      *JobOffer        `json:"jobOffer,omitempty"`
	Nomination    *Nomination      `json:"provincialNomination,omitempty"`
	SettlementFunds *int           `json:"settlementFunds,omitempty"` // CAD; nil when unreported
	Admissible    *bool            `json:"admissible,omitempty"`      // nil when unreported
}

// LanguageTest is one language test result with per-skill raw scores in the
// test's native scale.
type LanguageTest struct {
	TestType  string  `json:"testType"` // IELTS, CELPIP, TEF, TCF
	Language  string  `json:"language"` // en, fr
	Listening float64 `json:"listening"`
	Reading   float64 `json:"reading"`
	Writing   float64 `json:"writing"`
	Speaking  float64 `json:"speaking"`
}

// EducationEntry is one credential as reported by the applicant.
type EducationEntry struct {
	Level          string `json:"level"`
	Field          string `json:"field,omitempty"`
	Country        string `json:"country,omitempty"`
	HasEquivalency bool   `json:"hasEquivalencyAssessment,omitempty"`
}

// WorkEntry is one employment period. Dates are ISO dates; an empty end date
// means ongoing.
type WorkEntry struct {
	OccupationCode string `json:"occupationCode"` // NOC code
	Employer       string `json:"employer,omitempty"`
	Country        string `json:"country,omitempty"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate,omitempty"`
	HoursPerWeek   int    `json:"hoursPerWeek,omitempty"`
	Skilled        bool   `json:"skilled,omitempty"`
}

type JobOffer struct {
	Employer       string `json:"employer"`
	OccupationCode string `json:"occupationCode,omitempty"`
	LMIAApproved   bool   `json:"lmiaApproved,omitempty"`
}

type Nomination struct {
	Province    string `json:"province"`
	CertificateID string `json:"certificateId,omitempty"`
}

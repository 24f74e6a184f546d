package catalog

import "time"

// Built-in program grids. Point values follow the federal skilled worker
// selection grid; provincial values are representative defaults that
// deployments override with catalog bundles.

// FederalSkilledWorker returns the Express-Entry-style federal grid effective
// 2025-01-01: six factors, 100 points maximum.
func FederalSkilledWorker() *RuleCatalogEntry {
	return &RuleCatalogEntry{
		Program:       "express-entry-fsw",
		Country:       "CA",
		Category:      CategoryFederal,
		EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Policy: Policy{
			UnverifiedEducationCeiling: 5,
		},
		Criteria: []Criterion{
			{
				ID:          "age",
				Description: "Age at assessment",
				Kind:        CriterionAge,
				MaxPoints:   12,
				AgeBands: []AgeBand{
					{MinAge: 18, MaxAge: 35, Points: 12},
					{MinAge: 36, MaxAge: 36, Points: 11},
					{MinAge: 37, MaxAge: 37, Points: 10},
					{MinAge: 38, MaxAge: 38, Points: 9},
					{MinAge: 39, MaxAge: 39, Points: 8},
					{MinAge: 40, MaxAge: 40, Points: 7},
					{MinAge: 41, MaxAge: 41, Points: 6},
					{MinAge: 42, MaxAge: 42, Points: 5},
					{MinAge: 43, MaxAge: 43, Points: 4},
					{MinAge: 44, MaxAge: 44, Points: 3},
					{MinAge: 45, MaxAge: 45, Points: 2},
					{MinAge: 46, MaxAge: 46, Points: 1},
				},
			},
			{
				ID:          "education",
				Description: "Highest education credential",
				Kind:        CriterionEducation,
				MaxPoints:   25,
				EducationPoints: map[string]int{
					"phd":                  25,
					"masters":              23,
					"twoOrMoreCredentials": 22,
					"bachelors":            21,
					"twoYearDiploma":       19,
					"oneYearDiploma":       15,
					"highSchool":           5,
				},
			},
			{
				ID:          "first-language",
				Description: "First official language proficiency",
				Kind:        CriterionFirstLanguage,
				MaxPoints:   24,
				CLBBands: []PointsBand{
					{Min: 9, Points: 6},
					{Min: 8, Points: 5},
					{Min: 7, Points: 4},
				},
			},
			{
				ID:          "second-language",
				Description: "Second official language proficiency",
				Kind:        CriterionSecondLanguage,
				MaxPoints:   4,
				MinCLB:      5,
				Points:      4,
			},
			{
				ID:          "work-experience",
				Description: "Skilled work experience",
				Kind:        CriterionWorkExperience,
				MaxPoints:   15,
				MonthsBands: []PointsBand{
					{Min: 72, Points: 15},
					{Min: 48, Points: 13},
					{Min: 24, Points: 11},
					{Min: 12, Points: 9},
				},
			},
			{
				ID:          "arranged-employment",
				Description: "Valid arranged employment",
				Kind:        CriterionArrangedEmployment,
				MaxPoints:   10,
				Points:      10,
				RequireLMIA: true,
			},
		},
		Gates: []EligibilityGate{
			{
				ID:          "language-minimum",
				Description: "CLB 7 in every ability of the first official language",
				Kind:        GateMinLanguageCLB,
				Hard:        true,
				MinCLB:      7,
			},
			{
				ID:          "experience-minimum",
				Description: "At least 12 months of continuous skilled work experience",
				Kind:        GateMinSkilledMonths,
				Hard:        true,
				MinMonths:   12,
			},
			{
				ID:          "education-credential",
				Description: "A recognized education credential",
				Kind:        GateEducationCredential,
				Hard:        true,
			},
			{
				ID:          "settlement-funds",
				Description: "Sufficient settlement funds for a single applicant",
				Kind:        GateSettlementFunds,
				Hard:        true,
				MinFunds:    14690,
			},
			{
				ID:          "admissibility",
				Description: "No criminal or medical inadmissibility",
				Kind:        GateAdmissibility,
				Hard:        true,
			},
			{
				ID:          "arranged-employment",
				Description: "Valid job offer supported by an LMIA",
				Kind:        GateArrangedEmployment,
				Hard:        false,
			},
		},
	}
}

// ProvincialNominee returns a representative provincial nomination grid
// effective 2025-01-01.
func ProvincialNominee() *RuleCatalogEntry {
	return &RuleCatalogEntry{
		Program:       "provincial-nominee",
		Country:       "CA",
		Category:      CategoryProvincial,
		EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Policy: Policy{
			UnverifiedEducationCeiling: 10,
		},
		Criteria: []Criterion{
			{
				ID:          "nomination",
				Description: "Provincial nomination certificate",
				Kind:        CriterionProvincialNomination,
				MaxPoints:   60,
				Points:      60,
			},
			{
				ID:          "first-language",
				Description: "First official language proficiency",
				Kind:        CriterionFirstLanguage,
				MaxPoints:   20,
				CLBBands: []PointsBand{
					{Min: 8, Points: 5},
					{Min: 6, Points: 4},
					{Min: 4, Points: 2},
				},
			},
			{
				ID:          "work-experience",
				Description: "Skilled work experience",
				Kind:        CriterionWorkExperience,
				MaxPoints:   20,
				MonthsBands: []PointsBand{
					{Min: 48, Points: 20},
					{Min: 24, Points: 15},
					{Min: 12, Points: 10},
				},
			},
		},
		Gates: []EligibilityGate{
			{
				ID:          "nomination-certificate",
				Description: "A provincial nomination certificate",
				Kind:        GateProvincialNomination,
				Hard:        true,
			},
			{
				ID:          "language-minimum",
				Description: "CLB 4 in every ability of the first official language",
				Kind:        GateMinLanguageCLB,
				Hard:        true,
				MinCLB:      4,
			},
			{
				ID:          "admissibility",
				Description: "No criminal or medical inadmissibility",
				Kind:        GateAdmissibility,
				Hard:        true,
			},
		},
	}
}

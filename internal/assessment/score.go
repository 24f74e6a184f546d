// Package assessment evaluates normalized profiles against rule catalog
// entries: a points score with per-criterion breakdown, and an eligibility
// verdict from hard gates. Score and eligibility are orthogonal; a profile can
// score high and still be ineligible.
package assessment

import (
	"immigration-engine/internal/catalog"
	"immigration-engine/internal/profile"
)

// CriterionScore is one criterion's contribution to the total.
type CriterionScore struct {
	CriterionID   string `json:"criterionId"`
	PointsAwarded int    `json:"pointsAwarded"`
	MaxPoints     int    `json:"maxPoints"`
}

// ScoreBreakdown is the scoring engine output. TotalScore always equals the
// sum of awarded points, and every award is within [0, maxPoints].
type ScoreBreakdown struct {
	Criteria   []CriterionScore `json:"criteria"`
	TotalScore int              `json:"totalScore"`
}

// Score evaluates every criterion of the entry against the profile. Criteria
// are independent and deterministic; missing input data yields 0 points for
// that criterion rather than failing the computation, so a result exists for
// any normalized profile however incomplete.
func Score(p *profile.NormalizedProfile, entry *catalog.RuleCatalogEntry) ScoreBreakdown {
	breakdown := ScoreBreakdown{
		Criteria: make([]CriterionScore, 0, len(entry.Criteria)),
	}

	for _, criterion := range entry.Criteria {
		points := clamp(evaluateCriterion(p, criterion, entry.Policy), 0, criterion.MaxPoints)
		breakdown.Criteria = append(breakdown.Criteria, CriterionScore{
			CriterionID:   criterion.ID,
			PointsAwarded: points,
			MaxPoints:     criterion.MaxPoints,
		})
		breakdown.TotalScore += points
	}

	return breakdown
}

func evaluateCriterion(p *profile.NormalizedProfile, c catalog.Criterion, policy catalog.Policy) int {
	switch c.Kind {
	case catalog.CriterionAge:
		return ageCriterion(p.Age, c.AgeBands)
	case catalog.CriterionEducation:
		return educationCriterion(p.BestCredential(), c.EducationPoints, policy)
	case catalog.CriterionFirstLanguage:
		return firstLanguageCriterion(p.FirstLanguage(), c.CLBBands)
	case catalog.CriterionSecondLanguage:
		return secondLanguageCriterion(p.SecondLanguage(), c.MinCLB, c.Points)
	case catalog.CriterionWorkExperience:
		return bandPoints(p.SkilledMonths(c.DomesticOnly), c.MonthsBands)
	case catalog.CriterionArrangedEmployment:
		if p.HasJobOffer && (!c.RequireLMIA || p.JobOfferLMIA) {
			return c.Points
		}
		return 0
	case catalog.CriterionProvincialNomination:
		if p.HasNomination {
			return c.Points
		}
		return 0
	default:
		return 0
	}
}

func ageCriterion(age int, bands []catalog.AgeBand) int {
	if age <= 0 {
		return 0
	}
	for _, band := range bands {
		if age >= band.MinAge && age <= band.MaxAge {
			return band.Points
		}
	}
	return 0
}

func educationCriterion(best *profile.Credential, pointsByLevel map[string]int, policy catalog.Policy) int {
	if best == nil {
		return 0
	}

	points := 0
	// Fall back to the closest lower level that the grid prices, so a grid
	// that omits a level still scores the credential beneath it.
	for level := best.Level; level > profile.EducationNone; level-- {
		if p, ok := pointsByLevel[level.String()]; ok {
			points = p
			break
		}
	}

	if !best.Verified && points > policy.UnverifiedEducationCeiling {
		points = policy.UnverifiedEducationCeiling
	}
	return points
}

func firstLanguageCriterion(lang *profile.LanguageProficiency, bands []catalog.PointsBand) int {
	if lang == nil {
		return 0
	}
	total := 0
	for _, level := range []int{lang.CLB.Listening, lang.CLB.Reading, lang.CLB.Writing, lang.CLB.Speaking} {
		total += bandPoints(level, bands)
	}
	return total
}

func secondLanguageCriterion(lang *profile.LanguageProficiency, minCLB, points int) int {
	if lang == nil {
		return 0
	}
	if lang.CLB.Min() >= minCLB {
		return points
	}
	return 0
}

// bandPoints returns the award of the first band whose minimum the value
// meets; bands are ordered descending by Min.
func bandPoints(value int, bands []catalog.PointsBand) int {
	for _, band := range bands {
		if value >= band.Min {
			return band.Points
		}
	}
	return 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// internal/assessment/score_test.go
package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"immigration-engine/internal/catalog"
	"immigration-engine/internal/profile"
)

// ==========================
// Test Helper Functions
// ==========================

func allCLB(level int) profile.SkillCLB {
	return profile.SkillCLB{Listening: level, Reading: level, Writing: level, Speaking: level}
}

// createReferenceProfile is the worked federal skilled worker example: age 30,
// CLB 9 in every first-language ability, a verified bachelor's degree and 36
// months of skilled experience, no second language, no job offer.
func createReferenceProfile() *profile.NormalizedProfile {
	return &profile.NormalizedProfile{
		ClientID: "client-001",
		Age:      30,
		Languages: []profile.LanguageProficiency{
			{Language: "en", TestType: "IELTS", CLB: allCLB(9)},
		},
		Education: []profile.Credential{
			{Level: profile.EducationBachelors, Verified: true},
		},
		Work: []profile.ExperiencePeriod{
			{OccupationCode: "2171", Country: "CA", Domestic: true, Months: 36, Skilled: true},
		},
	}
}

func criterionPoints(t *testing.T, breakdown ScoreBreakdown, id string) int {
	t.Helper()
	for _, c := range breakdown.Criteria {
		if c.CriterionID == id {
			return c.PointsAwarded
		}
	}
	t.Fatalf("criterion %q not in breakdown", id)
	return 0
}

// ==========================
// Federal Grid Tests
// ==========================

func TestScore_ReferenceProfileTotals68(t *testing.T) {
	entry := catalog.FederalSkilledWorker()
	breakdown := Score(createReferenceProfile(), entry)

	assert.Equal(t, 12, criterionPoints(t, breakdown, "age"))
	assert.Equal(t, 21, criterionPoints(t, breakdown, "education"))
	assert.Equal(t, 24, criterionPoints(t, breakdown, "first-language"))
	assert.Equal(t, 0, criterionPoints(t, breakdown, "second-language"))
	assert.Equal(t, 11, criterionPoints(t, breakdown, "work-experience"))
	assert.Equal(t, 0, criterionPoints(t, breakdown, "arranged-employment"))
	assert.Equal(t, 68, breakdown.TotalScore)
}

func TestScore_TotalAlwaysEqualsSumOfCriteria(t *testing.T) {
	entry := catalog.FederalSkilledWorker()
	profiles := []*profile.NormalizedProfile{
		createReferenceProfile(),
		{ClientID: "empty"},
		{ClientID: "partial", Age: 52, Languages: []profile.LanguageProficiency{{Language: "en", CLB: allCLB(4)}}},
	}

	for _, p := range profiles {
		breakdown := Score(p, entry)
		sum := 0
		for _, c := range breakdown.Criteria {
			assert.GreaterOrEqual(t, c.PointsAwarded, 0)
			assert.LessOrEqual(t, c.PointsAwarded, c.MaxPoints)
			sum += c.PointsAwarded
		}
		assert.Equal(t, sum, breakdown.TotalScore)
		assert.LessOrEqual(t, breakdown.TotalScore, entry.MaxScore())
	}
}

func TestScore_EmptyProfileScoresZero(t *testing.T) {
	breakdown := Score(&profile.NormalizedProfile{ClientID: "empty"}, catalog.FederalSkilledWorker())
	assert.Equal(t, 0, breakdown.TotalScore)
	assert.Len(t, breakdown.Criteria, 6)
}

func TestScore_AgeBands(t *testing.T) {
	entry := catalog.FederalSkilledWorker()
	tests := []struct {
		age      int
		expected int
	}{
		{age: 18, expected: 12},
		{age: 35, expected: 12},
		{age: 36, expected: 11},
		{age: 40, expected: 7},
		{age: 46, expected: 1},
		{age: 47, expected: 0},
		{age: 17, expected: 0},
		{age: 0, expected: 0},
	}

	for _, tt := range tests {
		p := &profile.NormalizedProfile{ClientID: "c", Age: tt.age}
		breakdown := Score(p, entry)
		assert.Equal(t, tt.expected, criterionPoints(t, breakdown, "age"), "age %d", tt.age)
	}
}

func TestScore_UnverifiedCredentialCapped(t *testing.T) {
	entry := catalog.FederalSkilledWorker()

	p := &profile.NormalizedProfile{
		ClientID:  "c",
		Education: []profile.Credential{{Level: profile.EducationMasters, Verified: false}},
	}
	breakdown := Score(p, entry)
	// A masters is worth 23, but without an equivalency assessment the award
	// is capped at the policy ceiling.
	assert.Equal(t, entry.Policy.UnverifiedEducationCeiling, criterionPoints(t, breakdown, "education"))

	p.Education[0].Verified = true
	breakdown = Score(p, entry)
	assert.Equal(t, 23, criterionPoints(t, breakdown, "education"))
}

func TestScore_EducationFallsBackToPricedLevel(t *testing.T) {
	entry := catalog.FederalSkilledWorker()
	entry.Criteria[1].EducationPoints = map[string]int{
		"bachelors":  21,
		"highSchool": 5,
	}

	p := &profile.NormalizedProfile{
		ClientID:  "c",
		Education: []profile.Credential{{Level: profile.EducationMasters, Verified: true}},
	}
	breakdown := Score(p, entry)
	assert.Equal(t, 21, criterionPoints(t, breakdown, "education"))
}

func TestScore_SecondLanguageThreshold(t *testing.T) {
	entry := catalog.FederalSkilledWorker()

	p := createReferenceProfile()
	p.Languages = append(p.Languages, profile.LanguageProficiency{
		Language: "fr", TestType: "TEF", CLB: allCLB(5),
	})
	breakdown := Score(p, entry)
	assert.Equal(t, 4, criterionPoints(t, breakdown, "second-language"))

	// One ability below the threshold forfeits the award.
	p.Languages[1].CLB.Writing = 4
	breakdown = Score(p, entry)
	assert.Equal(t, 0, criterionPoints(t, breakdown, "second-language"))
}

func TestScore_ArrangedEmploymentNeedsLMIA(t *testing.T) {
	entry := catalog.FederalSkilledWorker()

	p := createReferenceProfile()
	p.HasJobOffer = true
	breakdown := Score(p, entry)
	assert.Equal(t, 0, criterionPoints(t, breakdown, "arranged-employment"))

	p.JobOfferLMIA = true
	breakdown = Score(p, entry)
	assert.Equal(t, 10, criterionPoints(t, breakdown, "arranged-employment"))
	assert.Equal(t, 78, breakdown.TotalScore)
}

func TestScore_WorkExperienceBands(t *testing.T) {
	entry := catalog.FederalSkilledWorker()
	tests := []struct {
		months   int
		expected int
	}{
		{months: 6, expected: 0},
		{months: 12, expected: 9},
		{months: 24, expected: 11},
		{months: 48, expected: 13},
		{months: 72, expected: 15},
		{months: 120, expected: 15},
	}

	for _, tt := range tests {
		p := &profile.NormalizedProfile{
			ClientID: "c",
			Work:     []profile.ExperiencePeriod{{OccupationCode: "2171", Months: tt.months, Skilled: true}},
		}
		breakdown := Score(p, entry)
		assert.Equal(t, tt.expected, criterionPoints(t, breakdown, "work-experience"), "%d months", tt.months)
	}
}

func TestScore_UnskilledWorkNotCounted(t *testing.T) {
	p := &profile.NormalizedProfile{
		ClientID: "c",
		Work:     []profile.ExperiencePeriod{{OccupationCode: "6611", Months: 60, Skilled: false}},
	}
	breakdown := Score(p, catalog.FederalSkilledWorker())
	assert.Equal(t, 0, criterionPoints(t, breakdown, "work-experience"))
}

// ==========================
// Provincial Grid Tests
// ==========================

func TestScore_ProvincialNomination(t *testing.T) {
	entry := catalog.ProvincialNominee()

	p := &profile.NormalizedProfile{
		ClientID:      "c",
		HasNomination: true,
		Languages: []profile.LanguageProficiency{
			{Language: "en", TestType: "CELPIP", CLB: allCLB(6)},
		},
		Work: []profile.ExperiencePeriod{{OccupationCode: "2171", Months: 30, Skilled: true}},
	}
	breakdown := Score(p, entry)
	assert.Equal(t, 60, criterionPoints(t, breakdown, "nomination"))
	assert.Equal(t, 16, criterionPoints(t, breakdown, "first-language"))
	assert.Equal(t, 15, criterionPoints(t, breakdown, "work-experience"))
	assert.Equal(t, 91, breakdown.TotalScore)

	p.HasNomination = false
	breakdown = Score(p, entry)
	assert.Equal(t, 0, criterionPoints(t, breakdown, "nomination"))
}

func TestScore_DeterministicForSameInput(t *testing.T) {
	entry := catalog.FederalSkilledWorker()
	p := createReferenceProfile()
	first := Score(p, entry)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Score(p, entry))
	}
}

// test/e2e/pipeline_test.go
package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immigration-engine/internal/assessment"
	"immigration-engine/internal/casework"
	casestore "immigration-engine/internal/casework/store"
	"immigration-engine/internal/catalog"
	"immigration-engine/internal/common/config"
	"immigration-engine/internal/common/logger"
)

// TestConsultingPipeline walks the full flow a consultant drives: intake
// payload through assessment, then a case opened on the result and taken
// through its lifecycle with fees and documents.
func TestConsultingPipeline(t *testing.T) {
	ctx := context.Background()
	log := logger.NewTestLogger(t)

	assessor := assessment.NewService(catalog.NewDefaultStore(), nil, log)
	cases := casework.NewService(casestore.NewMemoryStore(), config.CaseworkConfig{
		TransitionTimeout: 5000,
		ConflictRetries:   3,
		SubmittedDueDays:  14,
		InvitedDueDays:    60,
		AppliedDueDays:    180,
	}, log)

	// --- 1. Assess the intake payload ---
	result, err := assessor.Assess(ctx, &assessment.Request{
		Payload: map[string]interface{}{
			"clientId": "client-001",
			"age":      30,
			"languageTests": []interface{}{
				map[string]interface{}{
					"testType": "IELTS", "language": "en",
					"listening": 8.0, "reading": 7.0, "writing": 7.0, "speaking": 7.0,
				},
			},
			"education": []interface{}{
				map[string]interface{}{"level": "bachelors", "country": "CA"},
			},
			"workHistory": []interface{}{
				map[string]interface{}{
					"occupationCode": "2171", "employer": "Acme", "country": "CA",
					"startDate": "2021-01-01", "endDate": "2024-01-15", "skilled": true,
				},
			},
			"settlementFunds": 20000,
			"admissible":      true,
		},
		Program:     "express-entry-fsw",
		Country:     "CA",
		VersionDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 68, result.Score.TotalScore)
	assert.Equal(t, assessment.VerdictEligible, result.Verdict.Verdict)

	// --- 2. Open a case for the eligible client ---
	c, err := cases.CreateCase(ctx, result.Profile.ClientID, "consultant-001", result.Program)
	require.NoError(t, err)
	assert.Equal(t, casework.StageDraft, c.CurrentStage)

	// --- 3. Collect documents and charge fees while drafting ---
	c, err = cases.AddDocument(ctx, c.ID, "passport", c.Version)
	require.NoError(t, err)
	c, err = cases.AddDocument(ctx, c.ID, "ielts-report", c.Version)
	require.NoError(t, err)
	c, err = cases.AddFee(ctx, c.ID, casework.FeeGovernment, "Application fee", 850_00, c.Version)
	require.NoError(t, err)
	c, err = cases.AddFee(ctx, c.ID, casework.FeeConsultant, "Retainer", 350_00, c.Version)
	require.NoError(t, err)
	c, err = cases.AddPayment(ctx, c.ID, 500_00, c.Version)
	require.NoError(t, err)
	assert.Equal(t, int64(700_00), c.Fees.TotalDue)

	// --- 4. Drive the stage machine to a decision ---
	c, err = cases.Transition(ctx, c.ID, casework.StageSubmitted, "consultant-001", "Profile submitted to pool", nil, c.Version)
	require.NoError(t, err)
	c, err = cases.Transition(ctx, c.ID, casework.StageInvited, "consultant-001", "Invitation to apply received", nil, c.Version)
	require.NoError(t, err)
	c, err = cases.Transition(ctx, c.ID, casework.StageApplied, "consultant-001", "Application filed", nil, c.Version)
	require.NoError(t, err)
	c, err = cases.Transition(ctx, c.ID, casework.StageApproved, "consultant-001", "Permanent residence approved", nil, c.Version)
	require.NoError(t, err)

	require.Len(t, c.Timeline, 4)
	assert.True(t, c.CurrentStage.IsTerminal())

	// --- 5. The decided case still accepts record-keeping, nothing else ---
	c, err = cases.AddNote(ctx, c.ID, "consultant-001", "Landing scheduled; approval package sent", c.Version)
	require.NoError(t, err)

	_, err = cases.Transition(ctx, c.ID, casework.StageDraft, "consultant-001", "", nil, c.Version)
	require.Error(t, err)

	stored, err := cases.GetCase(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, casework.StageApproved, stored.CurrentStage)
	require.Len(t, stored.Notes, 1)
	assert.Len(t, stored.Timeline, 4)
}

// TestIneligibleClientStillGetsScored covers the partial-profile path:
// assessment completes with a verdict and reasons rather than failing.
func TestIneligibleClientStillGetsScored(t *testing.T) {
	ctx := context.Background()
	assessor := assessment.NewService(catalog.NewDefaultStore(), nil, logger.NewTestLogger(t))

	result, err := assessor.Assess(ctx, &assessment.Request{
		Payload: map[string]interface{}{
			"clientId": "client-002",
			"age":      44,
		},
		Program:     "express-entry-fsw",
		Country:     "CA",
		VersionDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Score.TotalScore)
	assert.Equal(t, assessment.VerdictIneligible, result.Verdict.Verdict)
	assert.NotEmpty(t, result.Verdict.FailedHardGates)
	assert.Equal(t, "low", result.Priority)
}

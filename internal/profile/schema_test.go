// internal/profile/schema_test.go
package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "immigration-engine/internal/common/errors"
)

func TestValidateRaw_ValidPayload(t *testing.T) {
	payload := map[string]interface{}{
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
		"settlementFunds": 20000,
		"admissible":      true,
	}

	assert.NoError(t, ValidateRaw(payload))
}

func TestValidateRaw_MinimalPayload(t *testing.T) {
	assert.NoError(t, ValidateRaw(map[string]interface{}{"clientId": "c"}))
}

func TestValidateRaw_MissingClientID(t *testing.T) {
	err := ValidateRaw(map[string]interface{}{"age": 30})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeProfileValidationFailed))
}

func TestValidateRaw_CollectsEveryViolation(t *testing.T) {
	payload := map[string]interface{}{
		"age":             -1,
		"settlementFunds": -100,
		"languageTests": []interface{}{
			map[string]interface{}{"testType": "IELTS"}, // language missing
		},
	}

	err := ValidateRaw(payload)
	require.Error(t, err)

	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	// One report per violation, joined; not just the first problem.
	assert.GreaterOrEqual(t, strings.Count(stdErr.Details, ";")+1, 3)
}

func TestValidateRaw_WrongFieldTypes(t *testing.T) {
	err := ValidateRaw(map[string]interface{}{
		"clientId":   "c",
		"admissible": "yes",
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeProfileValidationFailed))
}

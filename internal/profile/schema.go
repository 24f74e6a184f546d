package profile

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"immigration-engine/internal/common/errors"
)

// rawProfileSchema shape-checks the intake payload before normalization. It is
// deliberately permissive about optional fields; the incomplete-profile policy
// lives in Normalize, not here.
var rawProfileSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"clientId"},
	"properties": map[string]interface{}{
		"clientId":      map[string]interface{}{"type": "string", "minLength": 1},
		"birthDate":     map[string]interface{}{"type": "string"},
		"age":           map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 120},
		"maritalStatus": map[string]interface{}{"type": "string"},
		"languageTests": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"testType", "language"},
				"properties": map[string]interface{}{
					"testType":  map[string]interface{}{"type": "string", "minLength": 1},
					"language":  map[string]interface{}{"type": "string", "minLength": 1},
					"listening": map[string]interface{}{"type": "number", "minimum": 0},
					"reading":   map[string]interface{}{"type": "number", "minimum": 0},
					"writing":   map[string]interface{}{"type": "number", "minimum": 0},
					"speaking":  map[string]interface{}{"type": "number", "minimum": 0},
				},
			},
		},
		"education": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"level"},
				"properties": map[string]interface{}{
					"level":                    map[string]interface{}{"type": "string", "minLength": 1},
					"field":                    map[string]interface{}{"type": "string"},
					"country":                  map[string]interface{}{"type": "string"},
					"hasEquivalencyAssessment": map[string]interface{}{"type": "boolean"},
				},
			},
		},
		"workHistory": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"occupationCode", "startDate"},
				"properties": map[string]interface{}{
					"occupationCode": map[string]interface{}{"type": "string", "minLength": 1},
					"employer":       map[string]interface{}{"type": "string"},
					"country":        map[string]interface{}{"type": "string"},
					"startDate":      map[string]interface{}{"type": "string"},
					"endDate":        map[string]interface{}{"type": "string"},
					"hoursPerWeek":   map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 168},
					"skilled":        map[string]interface{}{"type": "boolean"},
				},
			},
		},
		"jobOffer": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"employer"},
			"properties": map[string]interface{}{
				"employer":       map[string]interface{}{"type": "string", "minLength": 1},
				"occupationCode": map[string]interface{}{"type": "string"},
				"lmiaApproved":   map[string]interface{}{"type": "boolean"},
			},
		},
		"provincialNomination": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"province"},
			"properties": map[string]interface{}{
				"province":      map[string]interface{}{"type": "string", "minLength": 1},
				"certificateId": map[string]interface{}{"type": "string"},
			},
		},
		"settlementFunds": map[string]interface{}{"type": "integer", "minimum": 0},
		"admissible":      map[string]interface{}{"type": "boolean"},
	},
}

// ValidateRaw shape-checks an intake payload and reports every violation at
// once so the caller can surface a complete correction list.
func ValidateRaw(payload map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(rawProfileSchema)
	documentLoader := gojsonschema.NewGoLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return errors.NewProfileValidationFailedError(fmt.Sprintf("schema evaluation failed: %v", err))
	}
	if result.Valid() {
		return nil
	}

	var details []string
	for _, desc := range result.Errors() {
		details = append(details, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return errors.NewProfileValidationFailedError(strings.Join(details, "; "))
}

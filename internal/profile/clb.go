package profile

import "strings"

// clbBand holds the per-skill minimum raw score for one CLB level in a test's
// native scale.
type clbBand struct {
	clb       int
	listening float64
	reading   float64
	writing   float64
	speaking  float64
}

// Conversion tables, highest CLB first. A skill resolves to the first band
// whose minimum it meets; below the lowest band it resolves to 0 which no
// grid or gate awards.
var clbTables = map[string][]clbBand{
	"IELTS": {
		{10, 8.5, 8.0, 7.5, 7.5},
		{9, 8.0, 7.0, 7.0, 7.0},
		{8, 7.5, 6.5, 6.5, 6.5},
		{7, 6.0, 6.0, 6.0, 6.0},
		{6, 5.5, 5.0, 5.5, 5.5},
		{5, 5.0, 4.0, 5.0, 5.0},
		{4, 4.5, 3.5, 4.0, 4.0},
	},
	// CELPIP reports CLB levels directly; the identity table keeps the
	// resolution path uniform.
	"CELPIP": {
		{10, 10, 10, 10, 10},
		{9, 9, 9, 9, 9},
		{8, 8, 8, 8, 8},
		{7, 7, 7, 7, 7},
		{6, 6, 6, 6, 6},
		{5, 5, 5, 5, 5},
		{4, 4, 4, 4, 4},
	},
	"TEF": {
		{10, 316, 263, 393, 393},
		{9, 298, 248, 371, 371},
		{8, 280, 233, 349, 349},
		{7, 249, 207, 310, 310},
		{6, 217, 181, 271, 271},
		{5, 181, 151, 226, 226},
		{4, 145, 121, 181, 181},
	},
	"TCF": {
		{10, 549, 549, 16, 16},
		{9, 523, 524, 14, 14},
		{8, 503, 499, 12, 12},
		{7, 458, 453, 10, 10},
		{6, 398, 406, 9, 9},
		{5, 369, 375, 7, 7},
		{4, 331, 342, 4, 4},
	},
}

// SupportedLanguageTests lists the recognized test type identifiers.
func SupportedLanguageTests() []string {
	return []string{"IELTS", "CELPIP", "TEF", "TCF"}
}

// resolveCLB converts per-skill raw scores to CLB levels for the given test
// type. ok is false when the test type is unrecognized.
func resolveCLB(testType string, listening, reading, writing, speaking float64) (SkillCLB, bool) {
	table, ok := clbTables[strings.ToUpper(strings.TrimSpace(testType))]
	if !ok {
		return SkillCLB{}, false
	}

	resolve := func(score float64, pick func(clbBand) float64) int {
		for _, band := range table {
			if score >= pick(band) {
				return band.clb
			}
		}
		return 0
	}

	return SkillCLB{
		Listening: resolve(listening, func(b clbBand) float64 { return b.listening }),
		Reading:   resolve(reading, func(b clbBand) float64 { return b.reading }),
		Writing:   resolve(writing, func(b clbBand) float64 { return b.writing }),
		Speaking:  resolve(speaking, func(b clbBand) float64 { return b.speaking }),
	}, true
}

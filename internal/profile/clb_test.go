// internal/profile/clb_test.go
package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCLB_IELTS(t *testing.T) {
	tests := []struct {
		name     string
		scores   [4]float64 // listening, reading, writing, speaking
		expected SkillCLB
	}{
		{
			name:     "clb 9 across every ability",
			scores:   [4]float64{8.0, 7.0, 7.0, 7.0},
			expected: SkillCLB{Listening: 9, Reading: 9, Writing: 9, Speaking: 9},
		},
		{
			name:     "clb 10 ceiling",
			scores:   [4]float64{9.0, 9.0, 9.0, 9.0},
			expected: SkillCLB{Listening: 10, Reading: 10, Writing: 10, Speaking: 10},
		},
		{
			name:     "mixed abilities resolve independently",
			scores:   [4]float64{8.0, 6.5, 6.0, 7.0},
			expected: SkillCLB{Listening: 9, Reading: 8, Writing: 7, Speaking: 9},
		},
		{
			name:     "boundary score lands in the band it meets",
			scores:   [4]float64{6.0, 6.0, 6.0, 6.0},
			expected: SkillCLB{Listening: 7, Reading: 7, Writing: 7, Speaking: 7},
		},
		{
			name:     "below the lowest band resolves to zero",
			scores:   [4]float64{2.0, 2.0, 2.0, 2.0},
			expected: SkillCLB{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clb, ok := resolveCLB("IELTS", tt.scores[0], tt.scores[1], tt.scores[2], tt.scores[3])
			assert.True(t, ok)
			assert.Equal(t, tt.expected, clb)
		})
	}
}

func TestResolveCLB_CELPIPIsIdentity(t *testing.T) {
	clb, ok := resolveCLB("CELPIP", 9, 7, 8, 10)
	assert.True(t, ok)
	assert.Equal(t, SkillCLB{Listening: 9, Reading: 7, Writing: 8, Speaking: 10}, clb)
}

func TestResolveCLB_FrenchTests(t *testing.T) {
	clb, ok := resolveCLB("TEF", 298, 248, 371, 371)
	assert.True(t, ok)
	assert.Equal(t, SkillCLB{Listening: 9, Reading: 9, Writing: 9, Speaking: 9}, clb)

	clb, ok = resolveCLB("TCF", 458, 453, 10, 10)
	assert.True(t, ok)
	assert.Equal(t, SkillCLB{Listening: 7, Reading: 7, Writing: 7, Speaking: 7}, clb)
}

func TestResolveCLB_TestTypeNormalization(t *testing.T) {
	clb, ok := resolveCLB(" ielts ", 8.0, 7.0, 7.0, 7.0)
	assert.True(t, ok)
	assert.Equal(t, 9, clb.Min())
}

func TestResolveCLB_UnknownTestType(t *testing.T) {
	_, ok := resolveCLB("TOEFL", 100, 100, 100, 100)
	assert.False(t, ok)
}

func TestSkillCLB_Min(t *testing.T) {
	assert.Equal(t, 6, SkillCLB{Listening: 9, Reading: 8, Writing: 6, Speaking: 7}.Min())
	assert.Equal(t, 0, SkillCLB{}.Min())
}

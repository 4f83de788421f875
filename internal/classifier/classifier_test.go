package classifier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleBased_Classify(t *testing.T) {
	tests := []struct {
		name       string
		answers    []int
		wantPrahar int
		wantConf   float64
	}{
		// All A: odd questions vote 1, even vote 5, five each; first max wins.
		{"all A", []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, 1, 0.5},
		{"all B", []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, 2, 0.5},
		{"all D", []int{3, 3, 3, 3, 3, 3, 3, 3, 3, 3}, 4, 0.5},
		{"mixed", []int{0, 1, 2, 3, 0, 1, 2, 3, 0, 1}, 1, 0.3},
		{"evening lean", []int{0, 0, 1, 0, 2, 0, 3, 0, 0, 0}, 5, 0.5},
		{"twilight", []int{0, 2, 1, 2, 3, 2, 0, 2, 1, 2}, 7, 0.5},
		{"scenario", []int{2, 2, 2, 2, 2, 2, 2, 2, 2, 0}, 3, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RuleBased{}.Classify(tt.answers)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrahar, out.Prahar)
			assert.InDelta(t, tt.wantConf, out.Confidence, 1e-9)

			total := 0
			for _, c := range out.Counts {
				total += c
			}
			assert.Equal(t, QuestionCount, total)
		})
	}
}

func TestRuleBased_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		answers []int
	}{
		{"empty", nil},
		{"short", []int{0, 1, 2}},
		{"long", make([]int, 11)},
		{"negative", []int{0, 0, 0, 0, 0, 0, 0, 0, 0, -1}},
		{"too large", []int{4, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RuleBased{}.Classify(tt.answers)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidAnswers))
		})
	}
}

func TestPraharFor(t *testing.T) {
	assert.Equal(t, 1, PraharFor(0, 0))
	assert.Equal(t, 4, PraharFor(0, 3))
	assert.Equal(t, 5, PraharFor(1, 0))
	assert.Equal(t, 8, PraharFor(9, 3))
}

func TestNamedCounts_SkipsZero(t *testing.T) {
	out, err := RuleBased{}.Classify([]int{2, 2, 2, 2, 2, 2, 2, 2, 2, 0})
	require.NoError(t, err)

	named := out.NamedCounts()
	assert.Equal(t, map[string]int{
		"Tritiya Prahar (Midday Prahar)":  5,
		"Saptam Prahar (Twilight Prahar)": 4,
		"Pancham Prahar (Evening Prahar)": 1,
	}, named)
}

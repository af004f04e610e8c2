package analyzer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astrolabe-dev/astrolabe/internal/config"
)

func defaultWeights() config.Weights {
	return config.Default().Weights
}

func TestMaintainabilityIndex_EmptyFileIsPerfect(t *testing.T) {
	assert.Equal(t, 100.0, maintainabilityIndex(defaultWeights(), 0, 1, 0))
}

func TestMaintainabilityIndex_Bounds(t *testing.T) {
	w := defaultWeights()
	cases := []struct {
		loc, complexity, comments int
	}{
		{1, 1, 0},
		{10, 3, 2},
		{500, 80, 0},
		{10000, 2000, 500},
		{50, 1, 50},
	}
	for _, tc := range cases {
		mi := maintainabilityIndex(w, tc.loc, tc.complexity, tc.comments)
		assert.GreaterOrEqual(t, mi, 0.0, "loc=%d cc=%d", tc.loc, tc.complexity)
		assert.LessOrEqual(t, mi, 100.0, "loc=%d cc=%d", tc.loc, tc.complexity)
	}
}

func TestMaintainabilityIndex_SmallSimpleFileScoresHigh(t *testing.T) {
	// 10 lines, no branches, well commented
	mi := maintainabilityIndex(defaultWeights(), 10, 1, 3)
	assert.Greater(t, mi, 90.0)
}

func TestMaintainabilityIndex_MonotonicInComplexity(t *testing.T) {
	w := defaultWeights()
	prev := math.Inf(1)
	for cc := 1; cc <= 200; cc += 10 {
		mi := maintainabilityIndex(w, 100, cc, 0)
		assert.LessOrEqual(t, mi, prev, "cc=%d", cc)
		prev = mi
	}
}

func TestMaintainabilityIndex_CommentCreditSaturates(t *testing.T) {
	w := defaultWeights()
	// 100 loc saturates at 30 comment lines; more comments add nothing
	atSaturation := maintainabilityIndex(w, 100, 5, 30)
	beyond := maintainabilityIndex(w, 100, 5, 90)
	assert.InDelta(t, atSaturation, beyond, 1e-9)

	below := maintainabilityIndex(w, 100, 5, 10)
	assert.Less(t, below, atSaturation)
}

func TestMaintainabilityIndex_KnownValue(t *testing.T) {
	// 100 loc, complexity 11, no comments:
	//   size       = 100 * e^(-100/250)
	//   complexity = 100 * e^(-8 * 10/100)
	//   comment    = 0
	w := defaultWeights()
	want := 0.35*100*math.Exp(-0.4) + 0.45*100*math.Exp(-0.8)
	assert.InDelta(t, want, maintainabilityIndex(w, 100, 11, 0), 1e-9)
}

func TestQualityScore_RoundsAndDeducts(t *testing.T) {
	assert.Equal(t, 87, qualityScore(86.7, 0, 10))
	assert.Equal(t, 77, qualityScore(86.7, 1, 10))
	assert.Equal(t, 57, qualityScore(86.7, 3, 10))
}

func TestQualityScore_Clamped(t *testing.T) {
	assert.Equal(t, 0, qualityScore(15.0, 5, 10))
	assert.Equal(t, 100, qualityScore(100.0, 0, 10))
	assert.Equal(t, 0, qualityScore(0.0, 0, 10))
}

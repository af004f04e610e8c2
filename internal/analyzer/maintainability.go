package analyzer

import (
	"math"

	"github.com/astrolabe-dev/astrolabe/internal/config"
)

// maintainabilityIndex combines three bounded factors into the [0,100] index:
//
//   - size: decays with lines of code (a 10-line file scores near 100, a
//     1000-line file near its floor)
//   - complexity: decays with decision-point density, not raw complexity, so
//     big files are not penalized just for holding more functions
//   - comment: rewards the comment-to-code ratio up to a saturation point
//
// A file with zero lines of code is perfectly maintainable by definition.
func maintainabilityIndex(w config.Weights, loc, aggregateComplexity, commentLines int) float64 {
	if loc == 0 {
		return 100
	}

	size := 100 * math.Exp(-float64(loc)/w.SizeDecayLines)

	density := float64(aggregateComplexity-1) / float64(loc)
	complexity := 100 * math.Exp(-w.DensityDecay*density)

	ratio := float64(commentLines) / float64(loc)
	if ratio > w.CommentSaturation {
		ratio = w.CommentSaturation
	}
	comment := 100 * ratio / w.CommentSaturation

	mi := w.Size*size + w.Complexity*complexity + w.Comment*comment
	return clamp(mi, 0, 100)
}

// qualityScore rounds the maintainability index and deducts a fixed penalty
// per error-severity issue. Penalties stack; the result is re-clamped.
func qualityScore(mi float64, errorIssues, errorPenalty int) int {
	score := int(math.Round(mi)) - errorIssues*errorPenalty
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

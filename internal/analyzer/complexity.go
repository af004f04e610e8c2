package analyzer

import (
	"github.com/astrolabe-dev/astrolabe/internal/types"
)

// Complexity returns the cyclomatic complexity of one unit: 1 plus the
// decision points counted strictly within its own body. Always >= 1.
func Complexity(u *types.FunctionUnit) int {
	return 1 + u.DecisionPoints
}

// FileComplexity returns the file aggregate: 1 plus the decision points of
// every unit including the implicit file unit. Equivalent to the sum of
// (unit complexity - 1) over all units, plus 1.
func FileComplexity(units []*types.FunctionUnit) int {
	total := 1
	for _, u := range units {
		total += u.DecisionPoints
	}
	return total
}

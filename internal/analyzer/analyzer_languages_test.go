package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrolabe-dev/astrolabe/internal/config"
	"github.com/astrolabe-dev/astrolabe/internal/lang"
	"github.com/astrolabe-dev/astrolabe/internal/parser"
)

func analyzeSource(t *testing.T, l lang.Language, name, source string) *Report {
	t.Helper()
	root, err := parser.NewTreeSitterParser().Parse(l, name, []byte(source))
	require.NoError(t, err)

	rep, err := New(config.Default()).Analyze(l, name, root, []byte(source))
	require.NoError(t, err)
	return rep
}

func TestAnalyze_JavaScript(t *testing.T) {
	rep := analyzeSource(t, lang.JavaScript, "app.js", `function classify(n) {
  if (n > 0) {
    return "pos";
  }
  for (let i = 0; i < n; i++) {
    n--;
  }
  try {
    risky();
  } catch (e) {
    return "err";
  }
  return n > 5 ? "big" : "small";
}
`)

	fn := findUnit(t, rep, "classify")
	// if + for + catch + ternary
	assert.Equal(t, 4, fn.DecisionPoints)
	assert.Equal(t, 5, fn.Complexity)
}

func TestAnalyze_JavaScriptTopLevelCode(t *testing.T) {
	rep := analyzeSource(t, lang.JavaScript, "top.js", `if (process.env.DEBUG) {
  console.log("on");
}
`)

	require.NotEmpty(t, rep.Metrics.Functions)
	fileUnit := rep.Metrics.Functions[0]
	require.True(t, fileUnit.FileScope)
	assert.Equal(t, "top.js", fileUnit.Name)
	assert.Equal(t, 1, fileUnit.DecisionPoints, "top-level branches land on the file unit")
}

func TestAnalyze_JavaScriptArrowFunctionIsolated(t *testing.T) {
	rep := analyzeSource(t, lang.JavaScript, "arrow.js", `const pick = (n) => {
  if (n > 0) {
    return n;
  }
  return -n;
};
`)

	require.Len(t, rep.Metrics.Functions, 2)
	arrow, file := rep.Metrics.Functions[1], rep.Metrics.Functions[0]
	if !file.FileScope {
		arrow, file = file, arrow
	}
	assert.Equal(t, 1, arrow.DecisionPoints)
	assert.Equal(t, 0, file.DecisionPoints)
}

func TestAnalyze_Rust(t *testing.T) {
	rep := analyzeSource(t, lang.Rust, "lib.rs", `fn grade(n: i32) -> char {
    match n {
        90..=100 => 'A',
        80..=89 => 'B',
        _ => 'C',
    }
}
`)

	fn := findUnit(t, rep, "grade")
	assert.Equal(t, 3, fn.DecisionPoints, "each match arm is a branch")
	assert.Equal(t, 4, fn.Complexity)
}

func TestAnalyze_RustTryOperator(t *testing.T) {
	rep := analyzeSource(t, lang.Rust, "io.rs", `fn read_pair(src: &str) -> Result<(u8, u8), Error> {
    let a = parse_first(src)?;
    let b = parse_second(src)?;
    Ok((a, b))
}
`)

	fn := findUnit(t, rep, "read_pair")
	assert.Equal(t, 2, fn.DecisionPoints, "each ? operator hides a branch")
}

func TestAnalyze_RustLoops(t *testing.T) {
	rep := analyzeSource(t, lang.Rust, "loops.rs", `fn spin(n: u32) -> u32 {
    let mut total = 0;
    for i in 0..n {
        total += i;
    }
    while total > 100 {
        total /= 2;
    }
    total
}
`)

	fn := findUnit(t, rep, "spin")
	assert.Equal(t, 2, fn.DecisionPoints)
	assert.Equal(t, 1, fn.MaxNesting)
}

package lang

import (
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/astrolabe-dev/astrolabe/internal/errors"
)

// Language identifies one supported grammar. Parsing is available for every
// language here; the metrics pipeline only runs for languages that carry a
// classifier table (see tables.go).
type Language string

const (
	Go         Language = "go"
	JavaScript Language = "javascript"
	Rust       Language = "rust"
	TypeScript Language = "typescript"
	Python     Language = "python"
	Java       Language = "java"
	C          Language = "c"
	Cpp        Language = "cpp"
	CSharp     Language = "csharp"
	PHP        Language = "php"
	Zig        Language = "zig"
)

// All lists every language with a grammar, in display order
var All = []Language{
	Go, JavaScript, Rust, TypeScript, Python, Java, C, Cpp, CSharp, PHP, Zig,
}

// byExtension maps file extensions to languages. C headers go to the C++
// grammar; it parses both and keeps the extension table unambiguous.
var byExtension = map[string]Language{
	".go":    Go,
	".js":    JavaScript,
	".jsx":   JavaScript,
	".mjs":   JavaScript,
	".rs":    Rust,
	".ts":    TypeScript,
	".tsx":   TypeScript,
	".py":    Python,
	".java":  Java,
	".c":     C,
	".h":     C,
	".cpp":   Cpp,
	".cc":    Cpp,
	".cxx":   Cpp,
	".hpp":   Cpp,
	".hxx":   Cpp,
	".cs":    CSharp,
	".php":   PHP,
	".phtml": PHP,
	".zig":   Zig,
}

// FromExtension infers the language from a file extension (with or without
// the leading dot). Returns false when the extension is unknown.
func FromExtension(ext string) (Language, bool) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	l, ok := byExtension[ext]
	return l, ok
}

// FromPath infers the language from a file path
func FromPath(path string) (Language, bool) {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return "", false
	}
	return FromExtension(path[idx:])
}

// Parse resolves a user-supplied language name. Unknown names produce an
// UnsupportedLanguageError carrying a nearest-match suggestion.
func Parse(name string) (Language, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "c++":
		normalized = "cpp"
	case "c#":
		normalized = "csharp"
	case "js":
		normalized = "javascript"
	case "ts":
		normalized = "typescript"
	}
	for _, l := range All {
		if string(l) == normalized {
			return l, nil
		}
	}
	return "", errors.NewUnsupportedLanguageError(name, suggest(normalized))
}

// suggest returns the closest known language name, or empty when nothing is
// plausibly close
func suggest(name string) string {
	best := ""
	bestScore := float32(0)
	for _, l := range All {
		score, err := edlib.StringsSimilarity(name, string(l), edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = string(l)
		}
	}
	if bestScore < 0.7 {
		return ""
	}
	return best
}

// Analyzable reports whether the metrics pipeline supports the language.
// Languages without a classifier table are parse-only.
func (l Language) Analyzable() bool {
	_, ok := tables[l]
	return ok
}

// String returns the canonical language name
func (l Language) String() string {
	return string(l)
}

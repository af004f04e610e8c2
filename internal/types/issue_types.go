package types

// IssueKind identifies the threshold rule that produced an issue
type IssueKind string

const (
	IssueHighComplexity     IssueKind = "high_complexity"
	IssueLowMaintainability IssueKind = "low_maintainability"
	IssueDeepNesting        IssueKind = "deep_nesting"
	IssueLongFunction       IssueKind = "long_function"
	IssueSyntaxError        IssueKind = "syntax_error"
)

// Severity orders issues from most to least important
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

// String returns the lowercase severity name
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// MarshalText implements encoding.TextMarshaler so severities serialize as
// names rather than numbers
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Issue is one threshold breach derived from a FileMetrics. Issues are never
// persisted independently of the metrics that produced them.
type Issue struct {
	Kind       IssueKind `json:"kind"`
	Severity   Severity  `json:"severity"`
	Path       string    `json:"path"`
	Line       int       `json:"line"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion,omitempty"`
}

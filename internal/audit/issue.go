package audit

// Issue represents a leftover palette class in golangci-lint format
type Issue struct {
	FromLinter  string       `json:"FromLinter"`  // "palette"
	Text        string       `json:"Text"`        // "hardcoded palette class \"bg-zinc-950\" should use bg-primary"
	Severity    string       `json:"Severity"`    // "", "warning", "error"
	SourceLines []string     `json:"SourceLines"` // Lines of code with the issue
	Pos         IssuePos     `json:"Pos"`         // File location
	Replacement *Replacement `json:"Replacement"` // Semantic token, when a mapping exists
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "components/badge.tsx"
	Line     int    `json:"Line"`     // 35
	Column   int    `json:"Column"`   // 15 (1-based, start of the class including variants)
}

// Replacement is the suggested class
type Replacement struct {
	NewText      string // "hover:bg-background"
	InlineLength int    // Length of the class being replaced
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Linter is the FromLinter value of every audit issue
const Linter = "palette"

// Issue texts
const (
	IssueHardcodedPalette        = "hardcoded palette class %q"
	IssueHardcodedPaletteSuggest = "hardcoded palette class %q should use %s"
)

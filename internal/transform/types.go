// Package transform defines the contract shared by every source rewrite.
//
// A Unit is a pure function over text: it receives the current content of a
// file (and optionally its name) and returns a Result. Units never touch the
// filesystem, which keeps dry runs, per-file isolation and revert generation
// free of locking.
package transform

// Category groups units for logging, ordering and selective exclusion
type Category string

// Unit categories
const (
	CategorySemantic Category = "semantic"
	CategoryFormat   Category = "format"
	CategoryQuality  Category = "quality"
	CategoryImport   Category = "import"
	CategoryAST      Category = "ast"
)

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategorySemantic, CategoryFormat, CategoryQuality, CategoryImport, CategoryAST:
		return true
	}
	return false
}

// Metadata identifies a unit
type Metadata struct {
	Name        string   `json:"name"`        // "semantic-colors" (unique)
	Description string   `json:"description"` // Human readable summary
	Category    Category `json:"category"`
}

// ChangeSpan is a single localized substitution
type ChangeSpan struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Type    string `json:"type"`              // "color-token", "rename", "insert", ...
	Context string `json:"context,omitempty"` // Mapping description or node kind
}

// Result is returned by every unit.
//
// Changed=false with warnings is a no-op report ("did not apply, here is
// why"), not an error.
type Result struct {
	Content  string
	Changed  bool
	Warnings []string
	Changes  []ChangeSpan
}

// Unchanged builds a no-op result that carries the given reasons
func Unchanged(content string, warnings ...string) Result {
	return Result{Content: content, Warnings: warnings}
}

// Unit is the atomic rewrite primitive
type Unit interface {
	Metadata() Metadata
	Apply(content, filename string) (Result, error)
}

// Func adapts a plain function into a Unit
type Func struct {
	Meta Metadata
	Fn   func(content, filename string) (Result, error)
}

// Metadata returns the unit metadata
func (f Func) Metadata() Metadata { return f.Meta }

// Apply runs the wrapped function
func (f Func) Apply(content, filename string) (Result, error) {
	return f.Fn(content, filename)
}

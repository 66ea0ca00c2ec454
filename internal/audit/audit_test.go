package audit

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanSource(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string // Issue texts
		wantCol []int
	}{
		{
			name:    "single class",
			line:    `<div className="bg-zinc-950">`,
			want:    []string{`hardcoded palette class "bg-zinc-950"`},
			wantCol: []int{17},
		},
		{
			name: "variants and opacity",
			line: `<div className="p-2 data-hover:bg-zinc-950/5 dark:text-white">`,
			want: []string{
				`hardcoded palette class "data-hover:bg-zinc-950/5"`,
				`hardcoded palette class "dark:text-white"`,
			},
			wantCol: []int{21, 46},
		},
		{
			name: "semantic tokens are fine",
			line: `<div className="bg-primary text-muted-foreground ring-border">`,
		},
		{
			name: "arbitrary values are not classes",
			line: `<div className="[--btn-bg:var(--color-zinc-900)]">`,
		},
		{
			name: "comments are skipped",
			line: `// bg-zinc-950 used to be here`,
		},
		{
			name: "partial words",
			line: `const background = "mybg-white bg-whitesmoke"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := ScanSource(tt.line, "a.tsx", Options{})
			var texts []string
			var cols []int
			for _, is := range issues {
				texts = append(texts, is.Text)
				cols = append(cols, is.Pos.Column)
				assert.Equal(t, Linter, is.FromLinter)
				assert.Equal(t, SeverityWarning, is.Severity)
				assert.Equal(t, []string{tt.line}, is.SourceLines)
			}
			require.Equal(t, tt.want, texts)
			require.Equal(t, tt.wantCol, cols)
		})
	}
}

func TestScanSourceSkipsProtectedRegions(t *testing.T) {
	content := `const colors = {
  zinc: 'bg-zinc-600/10 text-zinc-700',
}

export function Badge() {
  return <span className="text-zinc-900" />
}
`
	issues := ScanSource(content, "badge.tsx", Options{})
	require.Len(t, issues, 1)
	assert.Equal(t, IssuePos{Filename: "badge.tsx", Line: 6, Column: 27}, issues[0].Pos)

	all := ScanSource(content, "badge.tsx", Options{IncludeProtected: true})
	assert.Len(t, all, 3)
}

func TestScanSourceSuggestions(t *testing.T) {
	opts := Options{Suggestions: map[string]string{"bg-white": "bg-background"}}
	issues := ScanSource(`<a className="hover:bg-white bg-black" />`, "a.tsx", opts)
	require.Len(t, issues, 2)

	assert.Equal(t, `hardcoded palette class "hover:bg-white" should use hover:bg-background`, issues[0].Text)
	assert.Equal(t, &Replacement{NewText: "hover:bg-background", InlineLength: len("hover:bg-white")}, issues[0].Replacement)
	assert.Nil(t, issues[1].Replacement)
}

func TestScan(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p/src/b.tsx", []byte("x\n<b className='text-zinc-500' />"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/p/src/a.tsx", []byte("<a className='bg-white' />"), 0o644))

	res := Scan(fs, "/p/src", []string{"b.tsx", "a.tsx", "missing.tsx"}, Options{})
	assert.Equal(t, 2, res.FilesScanned)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "skipped missing.tsx")

	require.Len(t, res.Issues, 2)
	assert.Equal(t, "a.tsx", res.Issues[0].Pos.Filename)
	assert.Equal(t, IssuePos{Filename: "b.tsx", Line: 2, Column: 15}, res.Issues[1].Pos)
}

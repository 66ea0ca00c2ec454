package uitheme

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/yacobolo/uitheme/internal/pipeline"
	"github.com/yacobolo/uitheme/internal/report"
	"github.com/yacobolo/uitheme/internal/transform"
	"github.com/yacobolo/uitheme/internal/translog"
)

const badgeSource = `import clsx from 'clsx'

const colors = {
  zinc: 'bg-zinc-600/10 text-zinc-700',
}

type BadgeProps = { color?: keyof typeof colors }

export function Badge({ color = 'zinc', className }: BadgeProps & { className?: string }) {
  return <span className={clsx(className, 'text-zinc-900', colors[color])} />
}
`

func testConfig() Config {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	config := DefaultConfig()
	config.SrcDir = "/p/src"
	config.LogDir = "/p/.uitheme"
	config.LogOptions = []translog.Option{
		translog.WithClock(func() time.Time { return at }),
		translog.WithIDs(func() string { return "s1" }),
	}
	return config
}

func TestRunAndRevert(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p/src/badge.tsx", []byte(badgeSource), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/p/src/done.ts", []byte(DefaultConfig().Header+"\nexport const x = 1\n"), 0o644))

	result, err := Run(context.Background(), fs, testConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.False(t, result.Summary.Failed())

	changed, unchanged, _ := result.Summary.Counts()
	assert.Equal(t, 1, changed)
	assert.Equal(t, 1, unchanged)

	out, err := afero.ReadFile(fs, "/p/src/badge.tsx")
	require.NoError(t, err)
	assert.Contains(t, string(out), "export function CatalystBadge(")
	assert.True(t, strings.HasPrefix(string(out), DefaultConfig().Header))

	assert.Equal(t, "/p/.uitheme/sessions/s1.json", result.SessionPath)
	assert.Equal(t, "/p/.uitheme/revert/revert-s1.sh", result.RevertScript)
	info, err := fs.Stat(result.RevertScript)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	assert.True(t, result.Session.Ended())

	reverted, err := Revert(fs, "/p/.uitheme", "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"/p/src/badge.tsx"}, reverted.Restored)
	assert.Empty(t, reverted.Modified)

	out, err = afero.ReadFile(fs, "/p/src/badge.tsx")
	require.NoError(t, err)
	assert.Equal(t, badgeSource, string(out))
}

func TestRunDryRunWritesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p/src/badge.tsx", []byte(badgeSource), 0o644))

	config := testConfig()
	config.DryRun = true
	config.Diff = true
	result, err := Run(context.Background(), fs, config, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, result.Session.Records)
	assert.Empty(t, result.SessionPath)
	assert.Empty(t, result.RevertScript)
	assert.Contains(t, result.Summary.Files[0].Diff, "+export function CatalystBadge(")

	exists, err := afero.Exists(fs, "/p/.uitheme")
	require.NoError(t, err)
	assert.False(t, exists)

	out, err := afero.ReadFile(fs, "/p/src/badge.tsx")
	require.NoError(t, err)
	assert.Equal(t, badgeSource, string(out))
}

func TestRunConfigErrors(t *testing.T) {
	config := testConfig()
	config.Mappings = []transform.MappingSpec{{Pattern: "(", Replacement: "x"}}
	_, err := Run(context.Background(), afero.NewMemMapFs(), config, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid color mapping")

	config = testConfig()
	config.ExcludeTransforms = []string{"file-header", "nope"}
	_, warnings, err := config.Registry()
	require.NoError(t, err)
	assert.Equal(t, []string{`unknown transform "nope" in exclude list`}, warnings)
}

func TestTransformSource(t *testing.T) {
	config := DefaultConfig()
	config.ExcludeTransforms = []string{"file-header"}

	res, err := TransformSource(badgeSource, "badge.tsx", config)
	require.NoError(t, err)
	assert.True(t, res.Changed())
	assert.True(t, strings.HasPrefix(res.Content, "import { cn } from '@/lib/utils'\n"))

	config.Mappings = []transform.MappingSpec{{Pattern: "["}}
	_, err = TransformSource(badgeSource, "badge.tsx", config)
	require.Error(t, err)
}

func TestTransformSourceTypeScriptCast(t *testing.T) {
	config := DefaultConfig()
	config.ExcludeTransforms = []string{"file-header"}

	input := "export const base = 'text-zinc-900 bg-white'\nexport function asString(v: unknown) { return <string>v }\n"
	res, err := TransformSource(input, "lib/classes.ts", config)
	require.NoError(t, err)
	assert.True(t, res.Changed())
	assert.Contains(t, res.Content, "return <string>v")
	assert.Contains(t, res.Content, "'text-foreground ")
	for unit, reasons := range res.NoOps {
		for _, r := range reasons {
			assert.NotContains(t, r, "syntax error", unit)
		}
	}
}

func TestAudit(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p/src/badge.tsx", []byte(badgeSource), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/p/src/clean.tsx", []byte(`export const A = () => <div className="bg-primary" />`), 0o644))

	res, err := Audit(fs, testConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, res.FilesScanned)
	require.Len(t, res.Issues, 1, "the colors object is protected")
	assert.Equal(t, "badge.tsx", res.Issues[0].Pos.Filename)
	assert.Equal(t, 10, res.Issues[0].Pos.Line)

	_, err = Audit(fs, Config{SrcDir: "/p/missing"})
	require.Error(t, err)
}

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		flag  string
		quiet bool
		want  OutputFormat
	}{
		{flag: "", want: OutputText},
		{flag: "summary", want: OutputSummary},
		{flag: "full", want: OutputFull},
		{flag: "json", want: OutputJSON},
		{flag: "md", want: OutputMarkdown},
		{flag: "markdown", want: OutputMarkdown},
		{flag: "json", quiet: true, want: OutputText},
		{flag: "bogus", want: OutputText},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineOutputFormat(tt.flag, tt.quiet))
		})
	}
}

func fixtureResult() *Result {
	return &Result{
		Summary: &pipeline.Summary{
			SessionID: "s1",
			Stats:     pipeline.DiscoverStats{FilesDiscovered: 3, FilesSelected: 2, FilesSkipped: 1},
			Files: []pipeline.FileOutcome{
				{Path: "a.tsx", Target: "src/a.tsx", Applied: []string{"clsx-to-cn", "file-header"}, Changes: 3, Written: true},
				{
					Path:   "b.tsx",
					Target: "src/b.tsx",
					Err:    &transform.Error{Code: transform.CodeTransform, Transform: "semantic-colors", File: "b.tsx", Message: "boom", Recoverable: true},
					NoOps:  map[string][]string{},
				},
			},
		},
		RevertScript: ".uitheme/revert/revert-s1.sh",
		Warnings:     []string{"w"},
	}
}

func TestBuildJSONOutput(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	out := buildJSONOutput(fixtureResult(), at)

	assert.Equal(t, "2026-03-14T09:26:53Z", out.Timestamp)
	assert.Equal(t, "s1", out.SessionID)
	assert.Equal(t, JSONSummary{FilesDiscovered: 3, FilesSkipped: 1, FilesChanged: 1, FilesFailed: 1, Changes: 3, Failed: true}, out.Summary)
	assert.Equal(t, map[string]int{"clsx-to-cn": 1, "file-header": 1}, out.Transforms)

	require.Len(t, out.Files, 2)
	assert.Equal(t, "changed", out.Files[0].Status)
	assert.Nil(t, out.Files[0].Error)
	assert.Equal(t, "failed", out.Files[1].Status)
	assert.Nil(t, out.Files[1].Skipped)
	assert.Equal(t, &JSONError{Code: "TRANSFORM_ERROR", Transform: "semantic-colors", Message: "boom"}, out.Files[1].Error)

	assert.Equal(t, &JSONError{Message: "plain"}, jsonError(errors.New("plain")))
}

func TestWriteOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		format OutputFormat
		want   []string
	}{
		{format: OutputText, want: []string{"a.tsx: transformed", "2 files (1 changed, 0 unchanged, 1 failed):", "Revert with: sh .uitheme/revert/revert-s1.sh"}},
		{format: OutputSummary, want: []string{"Files Discovered:"}},
		{format: OutputFull, want: []string{"a.tsx: transformed", "Files Discovered:"}},
		{format: OutputMarkdown, want: []string{"# Theme Migration Report", "## Failures"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteOutput(&buf, fixtureResult(), tt.format, report.Config{}))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, fixtureResult(), OutputJSON, report.Config{}))
	var decoded JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, ".uitheme/revert/revert-s1.sh", decoded.RevertScript)

	require.Error(t, WriteOutput(&buf, fixtureResult(), OutputFormat("xml"), report.Config{}))
}

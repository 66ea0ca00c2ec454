package pipeline

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/yacobolo/uitheme/internal/transform"
	"github.com/yacobolo/uitheme/internal/translog"
)

func testSession() *translog.Session {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	return translog.NewSession("test", nil, func() time.Time { return at })
}

func testRegistry() *Registry {
	return NewRegistry().
		MustRegister(PhaseStructural, panicUnit("fragile", "BROKEN")).
		MustRegister(PhaseColor, replaceUnit("zinc", "zinc", "primary")).
		MustRegister(PhaseFormat, appendUnit("newline", "\n"))
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestRunnerIsolatesFailures(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/p/src/a.tsx": "export const a = 'zinc'",
		"/p/src/b.tsx": "export const b = 'zinc' // BROKEN",
		"/p/src/c.tsx": "export const c = 'slate'\n",
	})

	r := &Runner{
		FS:       fs,
		Registry: testRegistry(),
		Logger:   zaptest.NewLogger(t),
		Options:  Options{SrcDir: "/p/src"},
	}
	session := testSession()
	summary, err := r.Run(context.Background(), session)
	require.NoError(t, err)

	changed, unchanged, failed := summary.Counts()
	assert.Equal(t, [3]int{1, 1, 1}, [3]int{changed, unchanged, failed})
	assert.True(t, summary.Failed())
	require.Len(t, summary.Errors(), 1)
	assert.Equal(t, "b.tsx", summary.Errors()[0].Path)
	assert.True(t, transform.IsRecoverable(summary.Errors()[0].Err))

	assert.Equal(t, "export const a = 'primary'\n", readFile(t, fs, "/p/src/a.tsx"))
	assert.Equal(t, "export const b = 'zinc' // BROKEN", readFile(t, fs, "/p/src/b.tsx"), "failed file is left untouched")
	assert.Equal(t, "export const c = 'slate'\n", readFile(t, fs, "/p/src/c.tsx"))

	assert.Equal(t, []string{"/p/src/a.tsx"}, session.Files(), "only succeeded files are logged")
	assert.Equal(t, "test", summary.SessionID)
	assert.Equal(t, map[string]int{"zinc": 1, "newline": 1}, summary.UnitCounts())
	assert.Equal(t, []string{"newline", "zinc"}, summary.UnitNames())
}

func TestRunnerValidationFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/p/src/a.tsx": "export function A() { return null }",
	})

	r := &Runner{
		FS:       fs,
		Registry: NewRegistry().MustRegister(PhaseColor, replaceUnit("breaks", "}", "")),
		Options:  Options{SrcDir: "/p/src"},
	}
	summary, err := r.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ValidationFailures())
	assert.False(t, summary.Files[0].Written)
	assert.Equal(t, "export function A() { return null }", readFile(t, fs, "/p/src/a.tsx"))
}

// A dry run produces the records a live run would, without writing
func TestRunnerDryRunMatchesLiveRun(t *testing.T) {
	files := map[string]string{
		"/p/src/a.tsx":       "export const a = 'zinc'",
		"/p/src/forms/b.tsx": "export const b = 'zinc zinc'\n",
		"/p/src/c.tsx":       "export const c = 1\n",
	}
	dryFS, liveFS := afero.NewMemMapFs(), afero.NewMemMapFs()
	writeFiles(t, dryFS, files)
	writeFiles(t, liveFS, files)

	dry := &Runner{FS: dryFS, Registry: testRegistry(), Options: Options{SrcDir: "/p/src", DryRun: true, Diff: true}}
	live := &Runner{FS: liveFS, Registry: testRegistry(), Options: Options{SrcDir: "/p/src"}}

	drySession, liveSession := testSession(), testSession()
	drySummary, err := dry.Run(context.Background(), drySession)
	require.NoError(t, err)
	_, err = live.Run(context.Background(), liveSession)
	require.NoError(t, err)

	if diff := cmp.Diff(liveSession.Records, drySession.Records); diff != "" {
		t.Errorf("dry run records differ (-live +dry):\n%s", diff)
	}
	assert.True(t, drySummary.DryRun)

	for path, content := range files {
		assert.Equal(t, content, readFile(t, dryFS, path), "dry run must not write %s", path)
	}

	byPath := map[string]FileOutcome{}
	for _, f := range drySummary.Files {
		byPath[f.Path] = f
		assert.False(t, f.Written)
	}
	assert.Contains(t, byPath["a.tsx"].Diff, "-export const a = 'zinc'")
	assert.Contains(t, byPath["a.tsx"].Diff, "+export const a = 'primary'")
	assert.Contains(t, byPath["a.tsx"].Diff, "--- a/a.tsx")
	assert.Empty(t, byPath["c.tsx"].Diff)
	assert.Equal(t, readFile(t, liveFS, "/p/src/forms/b.tsx"), byPath["forms/b.tsx"].Content)
}

func TestRunnerOutDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/p/src/a.tsx":       "export const a = 'zinc'\n",
		"/p/src/forms/b.tsx": "export const b = 1\n",
	})

	r := &Runner{FS: fs, Registry: testRegistry(), Options: Options{SrcDir: "/p/src", OutDir: "/p/out"}}
	session := testSession()
	summary, err := r.Run(context.Background(), session)
	require.NoError(t, err)
	assert.False(t, summary.Failed())

	assert.Equal(t, "export const a = 'primary'\n", readFile(t, fs, "/p/out/a.tsx"))
	assert.Equal(t, "export const b = 1\n", readFile(t, fs, "/p/out/forms/b.tsx"), "unchanged files are mirrored")
	assert.Equal(t, "export const a = 'zinc'\n", readFile(t, fs, "/p/src/a.tsx"))
	assert.Equal(t, []string{"/p/out/a.tsx"}, session.Files())
}

func TestRunnerMergesInPathOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]string{}
	for i := 0; i < 40; i++ {
		files[fmt.Sprintf("/p/src/c%02d.tsx", i)] = fmt.Sprintf("export const c%d = 'zinc'", i)
	}
	writeFiles(t, fs, files)

	r := &Runner{FS: fs, Registry: testRegistry(), Options: Options{SrcDir: "/p/src", Concurrency: 4}}
	session := testSession()
	summary, err := r.Run(context.Background(), session)
	require.NoError(t, err)
	require.Len(t, summary.Files, 40)

	var paths []string
	for _, rec := range session.Records {
		paths = append(paths, rec.FilePath)
	}
	require.Len(t, paths, 80)
	assert.True(t, sort.StringsAreSorted(paths))
	for i, rec := range session.Records {
		assert.Equal(t, i+1, rec.Seq)
	}
}

func TestRunnerCancelled(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"/p/src/a.tsx": "export const a = 'zinc'"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{FS: fs, Registry: testRegistry(), Options: Options{SrcDir: "/p/src"}}
	_, err := r.RunFiles(ctx, nil, []string{"a.tsx"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "export const a = 'zinc'", readFile(t, fs, "/p/src/a.tsx"))
}

func TestRunnerErrors(t *testing.T) {
	r := &Runner{FS: afero.NewMemMapFs(), Options: Options{SrcDir: "/p/src"}}
	_, err := r.RunFiles(context.Background(), nil, nil)
	require.Error(t, err)

	r.Registry = testRegistry()
	_, err = r.Run(context.Background(), nil)
	require.Error(t, err, "missing source directory stops the run")

	summary, err := r.RunFiles(context.Background(), nil, []string{"gone.tsx"})
	require.NoError(t, err)
	require.Len(t, summary.Errors(), 1)
	assert.Contains(t, summary.Errors()[0].Err.Error(), "read gone.tsx")
}

func TestRunnerEndedSession(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"/p/src/a.tsx": "export const a = 'zinc'"})

	session := testSession()
	require.NoError(t, session.End())

	r := &Runner{FS: fs, Registry: testRegistry(), Options: Options{SrcDir: "/p/src"}}
	summary, err := r.Run(context.Background(), session)
	require.ErrorIs(t, err, translog.ErrSessionEnded)
	require.NotNil(t, summary)
	require.Len(t, summary.Files, 1)
	assert.Equal(t, "a.tsx", summary.Files[0].Path)
}

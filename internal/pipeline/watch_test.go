package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yacobolo/uitheme/internal/translog"
)

func TestWatchRerunsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	target := filepath.Join(src, "badge.tsx")
	require.NoError(t, os.WriteFile(target, []byte("export const a = 1\n"), 0o644))

	r := &Runner{
		FS:       afero.NewOsFs(),
		Registry: testRegistry(),
		Options:  Options{SrcDir: src},
	}

	type run struct {
		summary *Summary
		session *translog.Session
	}
	runs := make(chan run, 16)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, r, WatchOptions{
			Debounce:   20 * time.Millisecond,
			NewSession: testSession,
			OnRun: func(summary *Summary, session *translog.Session, err error) {
				if err != nil {
					return
				}
				select {
				case runs <- run{summary, session}:
				default:
				}
			},
		})
	}()

	// The watcher registers asynchronously; keep touching the file until a
	// run that rewrote it is observed.
	var got run
	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
wait:
	for {
		select {
		case got = <-runs:
			if len(got.summary.Files) == 1 && got.summary.Files[0].Written {
				break wait
			}
		case <-tick.C:
			_ = os.WriteFile(target, []byte("export const a = 'zinc'\n"), 0o644)
		case <-deadline:
			cancel()
			t.Fatal("no watch run observed")
		}
	}

	assert.Equal(t, "badge.tsx", got.summary.Files[0].Path)
	assert.Equal(t, []string{target}, got.session.Files())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchMissingSource(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	r := &Runner{
		FS:       afero.NewOsFs(),
		Registry: testRegistry(),
		Options:  Options{SrcDir: filepath.Join(t.TempDir(), "missing")},
	}
	err := Watch(context.Background(), r, WatchOptions{})
	require.Error(t, err)
}

package translog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// DefaultDir is where sessions and revert scripts are kept
const DefaultDir = ".uitheme"

// Logger creates, persists and reloads sessions under one directory
type Logger struct {
	fs    afero.Fs
	dir   string
	now   func() time.Time
	newID func() string
}

// Option configures a Logger
type Option func(*Logger)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// WithIDs overrides session id generation
func WithIDs(newID func() string) Option {
	return func(l *Logger) { l.newID = newID }
}

// NewLogger returns a Logger rooted at dir on fs
func NewLogger(fs afero.Fs, dir string, opts ...Option) *Logger {
	if dir == "" {
		dir = DefaultDir
	}
	l := &Logger{
		fs:    fs,
		dir:   dir,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dir returns the log directory
func (l *Logger) Dir() string {
	return l.dir
}

// Start opens a new session
func (l *Logger) Start(metadata map[string]string) *Session {
	return NewSession(l.newID(), metadata, l.now)
}

// SessionPath is where Save writes the session with id
func (l *Logger) SessionPath(id string) string {
	return filepath.Join(l.dir, "sessions", id+".json")
}

// ScriptPath is where GenerateRevertScript writes the script for id
func (l *Logger) ScriptPath(id string) string {
	return filepath.Join(l.dir, "revert", "revert-"+id+".sh")
}

// Save writes the session as JSON via a temp file and rename
func (l *Logger) Save(s *Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to persist session %s: %w", s.ID, err)
	}
	if err := writeAtomic(l.fs, l.SessionPath(s.ID), data, 0o644); err != nil {
		return fmt.Errorf("failed to persist session %s: %w", s.ID, err)
	}
	return nil
}

// Load reads a persisted session. Returns ErrNoSession if it does not exist.
func (l *Logger) Load(id string) (*Session, error) {
	data, err := afero.ReadFile(l.fs, l.SessionPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", id, ErrNoSession)
		}
		return nil, fmt.Errorf("failed to read session %s: %w", id, err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", id, err)
	}
	s.now = l.now
	return &s, nil
}

// List loads every persisted session, newest first
func (l *Logger) List() ([]*Session, error) {
	entries, err := afero.ReadDir(l.fs, filepath.Join(l.dir, "sessions"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var sessions []*Session
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		s, err := l.Load(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})
	return sessions, nil
}

// GenerateRevertScript writes the revert script of an ended session and
// returns its path. The script is executable (0755).
func (l *Logger) GenerateRevertScript(s *Session) (string, error) {
	script, err := RevertScript(s)
	if err != nil {
		return "", err
	}
	path := l.ScriptPath(s.ID)
	if err := writeAtomic(l.fs, path, []byte(script), 0o755); err != nil {
		return "", fmt.Errorf("failed to write revert script: %w", err)
	}
	return path, nil
}

// writeAtomic writes data to a temp file in the target directory and renames
// it over path.
func writeAtomic(fs afero.Fs, path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := afero.TempFile(fs, dir, filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = fs.Chmod(tmpName, perm); err != nil {
		return err
	}
	return fs.Rename(tmpName, path)
}

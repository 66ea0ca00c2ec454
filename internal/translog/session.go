// Package translog records the changes of a pipeline run and turns them back
// into a revert script.
//
// A Session is an explicit value owned by the caller. Nothing in this package
// keeps a process wide "active" session, and a Session is not safe for
// concurrent use: concurrent file workers log into their own Buffer, and the
// buffers are merged into the session once the workers are done.
package translog

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/yacobolo/uitheme/internal/transform"
)

var (
	// ErrSessionEnded is returned when logging into a finished session
	ErrSessionEnded = errors.New("session already ended")
	// ErrSessionOpen is returned when a revert is requested for a session
	// that is still accumulating records
	ErrSessionOpen = errors.New("session still open")
	// ErrNoSession is returned by Load when no session with the id exists
	ErrNoSession = errors.New("no such session")
)

// FileTransformRecord is one (file, unit) application that changed content
type FileTransformRecord struct {
	Seq           int                    `json:"seq"`
	FilePath      string                 `json:"file_path"`
	TransformName string                 `json:"transform_name"`
	Description   string                 `json:"description"`
	Category      transform.Category     `json:"category"`
	Before        string                 `json:"before"`
	After         string                 `json:"after"`
	Changes       []transform.ChangeSpan `json:"changes,omitempty"`
	LoggedAt      time.Time              `json:"logged_at"`
}

// Session is the change log of one pipeline run
type Session struct {
	ID        string                `json:"id"`
	StartedAt time.Time             `json:"started_at"`
	EndedAt   *time.Time            `json:"ended_at,omitempty"`
	Metadata  map[string]string     `json:"metadata,omitempty"`
	Records   []FileTransformRecord `json:"file_transforms"`

	now func() time.Time
}

// NewSession creates an open session. Most callers use Logger.Start.
func NewSession(id string, metadata map[string]string, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &Session{
		ID:        id,
		StartedAt: now().UTC(),
		Metadata:  metadata,
		now:       now,
	}
}

func (s *Session) clock() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}

// Ended reports whether End was called
func (s *Session) Ended() bool {
	return s.EndedAt != nil
}

// LogFileTransform appends a record. Records are append only; their order is
// the application order.
func (s *Session) LogFileTransform(filePath, name, description string, category transform.Category, before, after string, changes []transform.ChangeSpan) error {
	if s.Ended() {
		return fmt.Errorf("log %s on %s: %w", name, filePath, ErrSessionEnded)
	}
	s.Records = append(s.Records, FileTransformRecord{
		Seq:           len(s.Records) + 1,
		FilePath:      filePath,
		TransformName: name,
		Description:   description,
		Category:      category,
		Before:        before,
		After:         after,
		Changes:       changes,
		LoggedAt:      s.clock(),
	})
	return nil
}

// Merge appends the records of each buffer, in argument order
func (s *Session) Merge(buffers ...*Buffer) error {
	for _, b := range buffers {
		for _, r := range b.records {
			if err := s.LogFileTransform(b.FilePath, r.TransformName, r.Description, r.Category, r.Before, r.After, r.Changes); err != nil {
				return err
			}
		}
	}
	return nil
}

// End closes the session. After End no more records are accepted and a
// revert script can be generated.
func (s *Session) End() error {
	if s.Ended() {
		return ErrSessionEnded
	}
	t := s.clock()
	s.EndedAt = &t
	return nil
}

// Files returns the distinct file paths touched by the session, sorted
func (s *Session) Files() []string {
	seen := map[string]bool{}
	var files []string
	for _, r := range s.Records {
		if !seen[r.FilePath] {
			seen[r.FilePath] = true
			files = append(files, r.FilePath)
		}
	}
	sort.Strings(files)
	return files
}

// Buffer collects the records of a single file while it is processed. It is
// owned by one worker and merged into the session afterwards.
type Buffer struct {
	FilePath string
	records  []FileTransformRecord
}

// NewBuffer returns an empty buffer for filePath
func NewBuffer(filePath string) *Buffer {
	return &Buffer{FilePath: filePath}
}

// Log appends a record to the buffer
func (b *Buffer) Log(name, description string, category transform.Category, before, after string, changes []transform.ChangeSpan) {
	b.records = append(b.records, FileTransformRecord{
		FilePath:      b.FilePath,
		TransformName: name,
		Description:   description,
		Category:      category,
		Before:        before,
		After:         after,
		Changes:       changes,
	})
}

// Len returns the number of buffered records
func (b *Buffer) Len() int {
	return len(b.records)
}

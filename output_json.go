package uitheme

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/yacobolo/uitheme/internal/audit"
	"github.com/yacobolo/uitheme/internal/pipeline"
	"github.com/yacobolo/uitheme/internal/transform"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version      string         `json:"version"`
	Timestamp    string         `json:"timestamp"`
	SessionID    string         `json:"session_id,omitempty"`
	DryRun       bool           `json:"dry_run"`
	RevertScript string         `json:"revert_script,omitempty"`
	Summary      JSONSummary    `json:"summary"`
	Transforms   map[string]int `json:"transforms"`
	Files        []JSONFile     `json:"files"`
	Warnings     []string       `json:"warnings,omitempty"`
}

// JSONSummary contains file counts
type JSONSummary struct {
	FilesDiscovered    int  `json:"files_discovered"`
	FilesSkipped       int  `json:"files_skipped"`
	FilesChanged       int  `json:"files_changed"`
	FilesUnchanged     int  `json:"files_unchanged"`
	FilesFailed        int  `json:"files_failed"`
	ValidationFailures int  `json:"validation_failures"`
	Changes            int  `json:"changes"`
	Failed             bool `json:"failed"`
}

// JSONFile is the outcome of one file
type JSONFile struct {
	Path    string              `json:"path"`
	Target  string              `json:"target"`
	Status  string              `json:"status"` // changed, unchanged, failed
	Applied []string            `json:"applied,omitempty"`
	Changes int                 `json:"changes"`
	Written bool                `json:"written"`
	Skipped map[string][]string `json:"skipped,omitempty"`
	Error   *JSONError          `json:"error,omitempty"`
	Diff    string              `json:"diff,omitempty"`
}

// JSONError describes a failed file
type JSONError struct {
	Code      string `json:"code,omitempty"`
	Transform string `json:"transform,omitempty"`
	Message   string `json:"message"`
}

// WriteJSON writes the run result as JSON
func WriteJSON(w io.Writer, result *Result) error {
	output := buildJSONOutput(result, time.Now())
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts a Result to JSONOutput
func buildJSONOutput(result *Result, now time.Time) JSONOutput {
	s := result.Summary
	changed, unchanged, failed := s.Counts()

	files := make([]JSONFile, len(s.Files))
	changes := 0
	for i, f := range s.Files {
		files[i] = JSONFile{
			Path:    f.Path,
			Target:  f.Target,
			Status:  fileStatus(f),
			Applied: f.Applied,
			Changes: f.Changes,
			Written: f.Written,
			Skipped: f.NoOps,
			Diff:    f.Diff,
		}
		if len(files[i].Skipped) == 0 {
			files[i].Skipped = nil
		}
		if f.Err != nil {
			files[i].Error = jsonError(f.Err)
			continue
		}
		changes += f.Changes
	}

	return JSONOutput{
		Version:      "1.0",
		Timestamp:    now.Format(time.RFC3339),
		SessionID:    s.SessionID,
		DryRun:       s.DryRun,
		RevertScript: result.RevertScript,
		Summary: JSONSummary{
			FilesDiscovered:    s.Stats.FilesDiscovered,
			FilesSkipped:       s.Stats.FilesSkipped,
			FilesChanged:       changed,
			FilesUnchanged:     unchanged,
			FilesFailed:        failed,
			ValidationFailures: s.ValidationFailures(),
			Changes:            changes,
			Failed:             s.Failed(),
		},
		Transforms: s.UnitCounts(),
		Files:      files,
		Warnings:   result.Warnings,
	}
}

func fileStatus(f pipeline.FileOutcome) string {
	switch {
	case f.Err != nil:
		return "failed"
	case len(f.Applied) > 0:
		return "changed"
	default:
		return "unchanged"
	}
}

func jsonError(err error) *JSONError {
	var te *transform.Error
	if errors.As(err, &te) {
		msg := te.Message
		if msg == "" && te.Err != nil {
			msg = te.Err.Error()
		}
		return &JSONError{Code: te.Code, Transform: te.Transform, Message: msg}
	}
	return &JSONError{Message: err.Error()}
}

// AuditJSON mirrors golangci-lint's JSON output so editors can consume it
type AuditJSON struct {
	Issues []audit.Issue   `json:"Issues"`
	Report AuditJSONReport `json:"Report"`
}

// AuditJSONReport carries scan totals
type AuditJSONReport struct {
	FilesScanned int      `json:"FilesScanned"`
	Warnings     []string `json:"Warnings,omitempty"`
}

// WriteAuditJSON writes audit issues as JSON
func WriteAuditJSON(w io.Writer, res audit.Result) error {
	issues := res.Issues
	if issues == nil {
		issues = []audit.Issue{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(AuditJSON{
		Issues: issues,
		Report: AuditJSONReport{FilesScanned: res.FilesScanned, Warnings: res.Warnings},
	})
}

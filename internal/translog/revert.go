package translog

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// MetaWorkDir is the metadata key holding the directory record paths are
// relative to. The revert script changes into it before restoring files.
const MetaWorkDir = "workdir"

const heredocMarker = "UITHEME_EOF"

const scriptPrelude = `set -eu

uitheme_hash() {
	if command -v sha256sum >/dev/null 2>&1; then
		sha256sum "$1" | cut -d' ' -f1
	elif command -v shasum >/dev/null 2>&1; then
		shasum -a 256 "$1" | cut -d' ' -f1
	fi
}

uitheme_check() {
	actual=$(uitheme_hash "$1" 2>/dev/null || true)
	if [ -n "$actual" ] && [ "$actual" != "$2" ]; then
		echo "warning: $1 was modified after the transform, restoring anyway" >&2
	fi
	mkdir -p "$(dirname "$1")"
}
`

// RevertScript renders the POSIX shell script that undoes every record of s
// in reverse application order. Each block checks that the file still holds
// the record's After content and then writes its Before content byte for
// byte, so running the whole script restores every file to its original.
func RevertScript(s *Session) (string, error) {
	if !s.Ended() {
		return "", fmt.Errorf("revert %s: %w", s.ID, ErrSessionOpen)
	}

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "# Revert uitheme session %s\n", s.ID)
	fmt.Fprintf(&b, "# Started %s, %d records over %d files\n", s.StartedAt.Format("2006-01-02T15:04:05Z07:00"), len(s.Records), len(s.Files()))
	b.WriteString(scriptPrelude)

	if dir := s.Metadata[MetaWorkDir]; dir != "" {
		fmt.Fprintf(&b, "\ncd %s\n", shellQuote(dir))
	}

	for i := len(s.Records) - 1; i >= 0; i-- {
		r := s.Records[i]
		path := shellQuote(r.FilePath)
		fmt.Fprintf(&b, "\n# [%d] %s: %s\n", r.Seq, r.FilePath, r.TransformName)
		fmt.Fprintf(&b, "uitheme_check %s %s\n", path, Hash(r.After))
		fmt.Fprintf(&b, "base64 -d > %s <<'%s'\n", path, heredocMarker)
		writeWrapped(&b, base64.StdEncoding.EncodeToString([]byte(r.Before)), 76)
		b.WriteString(heredocMarker + "\n")
	}

	fmt.Fprintf(&b, "\necho \"reverted %d changes from session %s\"\n", len(s.Records), s.ID)
	return b.String(), nil
}

// RevertResult summarizes an in-process revert
type RevertResult struct {
	Restored []string // Files written, in revert order
	Modified []string // Files whose content no longer matched the logged After
}

// Revert replays the session backwards on fs, exactly like the generated
// script. Relative record paths are resolved against the session workdir.
func Revert(fs afero.Fs, s *Session) (RevertResult, error) {
	var res RevertResult
	if !s.Ended() {
		return res, fmt.Errorf("revert %s: %w", s.ID, ErrSessionOpen)
	}

	restored := map[string]bool{}
	modified := map[string]bool{}
	for i := len(s.Records) - 1; i >= 0; i-- {
		r := s.Records[i]
		path := r.FilePath
		if dir := s.Metadata[MetaWorkDir]; dir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}

		if current, err := afero.ReadFile(fs, path); err == nil && string(current) != r.After && !modified[r.FilePath] {
			modified[r.FilePath] = true
			res.Modified = append(res.Modified, r.FilePath)
		}

		if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return res, fmt.Errorf("revert %s: %w", r.FilePath, err)
		}
		if err := afero.WriteFile(fs, path, []byte(r.Before), 0o644); err != nil {
			return res, fmt.Errorf("revert %s: %w", r.FilePath, err)
		}
		if !restored[r.FilePath] {
			restored[r.FilePath] = true
			res.Restored = append(res.Restored, r.FilePath)
		}
	}
	return res, nil
}

// Hash is the hex sha256 of content, as printed by sha256sum
func Hash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func writeWrapped(b *strings.Builder, s string, width int) {
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteByte('\n')
		s = s[width:]
	}
	if s != "" {
		b.WriteString(s)
		b.WriteByte('\n')
	}
}

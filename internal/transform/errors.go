package transform

import (
	"errors"
	"fmt"
)

// Error codes surfaced by the transform engine
const (
	CodeTransform  = "TRANSFORM_ERROR"
	CodeParse      = "PARSE_ERROR"
	CodeValidation = "VALIDATION_ERROR"
)

// Error is the structured failure of a unit or of a post-transform check.
//
// Recoverable errors only affect the file being processed; callers skip the
// file and continue with the rest of the batch.
type Error struct {
	Code        string
	Transform   string
	File        string
	Message     string
	Recoverable bool
	Err         error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	switch {
	case e.Transform != "" && e.File != "":
		return fmt.Sprintf("%s: %s: %s: %s", e.Code, e.File, e.Transform, msg)
	case e.Transform != "":
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Transform, msg)
	case e.File != "":
		return fmt.Sprintf("%s: %s: %s", e.Code, e.File, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a post-condition failure ("we broke
// it") as opposed to a failure while transforming ("we couldn't touch it").
func IsValidation(err error) bool {
	var te *Error
	return errors.As(err, &te) && te.Code == CodeValidation
}

// IsRecoverable reports whether err only affects a single file
func IsRecoverable(err error) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Recoverable
	}
	return false
}

// ParseError builds a recoverable parse failure for AST based units
func ParseError(name, filename string, err error) *Error {
	return &Error{
		Code:        CodeParse,
		Transform:   name,
		File:        filename,
		Message:     fmt.Sprintf("failed to parse %s: %v", displayName(filename), err),
		Recoverable: true,
		Err:         err,
	}
}

// ValidationError builds a post-condition failure for a file
func ValidationError(filename, message string) *Error {
	return &Error{
		Code:        CodeValidation,
		File:        filename,
		Message:     message,
		Recoverable: true,
	}
}

func displayName(filename string) string {
	if filename == "" {
		return "source"
	}
	return filename
}

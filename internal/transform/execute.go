package transform

import (
	"errors"
	"fmt"
)

// Execute runs fn and converts any panic or plain error into a recoverable
// *Error. It never lets a failure escape as a panic, so the runner's per-file
// isolation cannot be bypassed by a lower level throw.
//
// On failure the returned Result is the zero value; callers keep their own
// copy of the input content.
func Execute(meta Metadata, fn func() (Result, error)) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = &Error{
				Code:        CodeTransform,
				Transform:   meta.Name,
				Message:     fmt.Sprintf("panic: %v", r),
				Recoverable: true,
			}
		}
	}()

	res, err = fn()
	if err == nil {
		return res, nil
	}

	var te *Error
	if errors.As(err, &te) {
		if te.Transform == "" {
			te.Transform = meta.Name
		}
		return res, te
	}
	return Result{}, &Error{
		Code:        CodeTransform,
		Transform:   meta.Name,
		Message:     err.Error(),
		Recoverable: true,
		Err:         err,
	}
}

// Apply runs a unit through Execute and stamps the filename on errors
func Apply(u Unit, content, filename string) (Result, error) {
	meta := u.Metadata()
	res, err := Execute(meta, func() (Result, error) {
		return u.Apply(content, filename)
	})
	if err != nil {
		var te *Error
		if errors.As(err, &te) && te.File == "" {
			te.File = filename
		}
		return res, err
	}
	if !res.Changed {
		// A no-op never carries edits.
		res.Content = content
		res.Changes = nil
	}
	return res, nil
}

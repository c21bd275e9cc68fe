package main

import (
	"errors"

	intesErrors "github.com/odvcencio/intes/pkg/errors"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type exitCoder interface {
	ExitCode() int
}

type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e exitError) Unwrap() error {
	return e.err
}

func (e exitError) ExitCode() int {
	if e.code == 0 {
		return exitFailure
	}
	return e.code
}

func withExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return exitError{code: code, err: err}
}

// exitCodeForError maps configuration problems to a usage exit so scripts
// can tell a bad invocation from a runtime failure.
func exitCodeForError(err error) int {
	if err == nil {
		return exitOK
	}
	var coded exitCoder
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	switch intesErrors.GetCode(err) {
	case intesErrors.ErrCodeConfigLoad, intesErrors.ErrCodeConfigParse, intesErrors.ErrCodeConfigInvalid:
		return exitUsage
	}
	return exitFailure
}

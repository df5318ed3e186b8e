package lexer

import "fmt"

// RawError is a lexing failure that has not been tied to a location yet.
// Recognizers only see the character cursor, so they produce RawErrors and
// the driver loop attaches the file and line.
type RawError struct {
	Msg string
}

func (e *RawError) Error() string {
	return e.Msg
}

// at promotes the error to a PointError.
func (e *RawError) at(file string, line int) *PointError {
	return &PointError{Msg: e.Msg, File: file, Line: line}
}

// PointError is a lexing failure pinned to a file and a 0-based line.
type PointError struct {
	Msg  string
	File string
	Line int
}

func (e *PointError) Error() string {
	return fmt.Sprintf("%s:%d - %s", e.File, e.Line+1, e.Msg)
}

const emptySourceMsg = "file is empty"

// ErrEmptySource matches, via errors.Is, the *RawError returned when the
// source contains no tokens at all. Each call returns its own error value,
// so the sentinel is only compared against and never handed out.
var ErrEmptySource error = &RawError{Msg: emptySourceMsg}

func errEmptySource() *RawError {
	return &RawError{Msg: emptySourceMsg}
}

// Is reports whether e is an empty-source error and target is ErrEmptySource.
func (e *RawError) Is(target error) bool {
	return target == ErrEmptySource && e.Msg == emptySourceMsg
}

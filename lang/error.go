package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrInvalidExpr         = NewError("invalid expression node")
	ErrEmptyInput          = NewError("empty input")
	ErrMaxDepthExceeded    = NewError("maximum expression depth exceeded")
	ErrIntegerExpected     = NewError("expected an integer, but got a list")
	ErrListExpected        = NewError("expected a list, but got an integer")
	ErrEmptyFaces          = NewError("cannot roll dice with an empty face set")
	ErrUnsupportedFunction = NewError("function calls are not supported")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is matches Errors by message so that sentinel comparisons survive
// the copies made by [Error.With] and [Error.Wrap].
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && e.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// SyntaxError is a single positioned parse error.
// Start and End are byte offsets into the source text.
type SyntaxError struct {
	Start int
	End   int
	Msg   string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d..%d: %s", e.Start, e.End, e.Msg)
}

// LogValue implements slog.LogValuer.
func (e *SyntaxError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("start", e.Start),
		slog.Int("end", e.End),
		slog.String("error", e.Msg),
	)
}

// ParseError aggregates the syntax errors collected during one parse
// attempt. A failed parse always carries at least one error; multiple
// independent errors may be reported because the grammar recovers from
// integer overflow and malformed brace contents instead of failing fast.
type ParseError struct {
	Errors []*SyntaxError
	Source string // The original source input
}

// NewParseError creates a ParseError from collected syntax errors.
func NewParseError(errs []*SyntaxError, source string) *ParseError {
	return &ParseError{Errors: errs, Source: source}
}

// Error implements the error interface.
// When the source is available the first error is rendered with a source
// snippet and a caret marking the offending position.
func (e *ParseError) Error() string {
	if len(e.Errors) == 0 {
		return "parse error"
	}

	if e.Source == "" {
		return e.Errors[0].Error()
	}

	return e.formatWithContext()
}

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.Errors))
	for i, se := range e.Errors {
		attrs = append(attrs, slog.Any("error_"+strconv.Itoa(i), se))
	}

	return slog.GroupValue(attrs...)
}

// formatWithContext formats the first parse error with source context.
func (e *ParseError) formatWithContext() string {
	first := e.Errors[0]
	line, col := offsetToLineCol(e.Source, first.Start)
	lines := strings.Split(e.Source, "\n")

	var buf strings.Builder

	// Write error location and description
	buf.WriteString("parse error at line ")
	buf.WriteString(strconv.Itoa(line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(col))
	buf.WriteString(": ")
	buf.WriteString(first.Msg)
	buf.WriteString("\n")

	// Show the offending line if within bounds
	if line > 0 && line <= len(lines) {
		lineText := lines[line-1]

		// Print the line with line number
		buf.WriteString("  ")
		buf.WriteString(strconv.Itoa(line))
		buf.WriteString(" | ")
		buf.WriteString(lineText)
		buf.WriteByte('\n')

		// Print marker pointing to the column
		// +5 accounts for: 2 leading spaces + " | " (3 chars)
		padding := strings.Repeat(" ", len(strconv.Itoa(line))+5)
		if col > 0 {
			padding += strings.Repeat(" ", col-1)
		}

		buf.WriteString(padding + "^\n")
	}

	return buf.String()
}

// offsetToLineCol converts a byte offset into 1-based line and column.
func offsetToLineCol(source string, offset int) (line, col int) {
	if offset > len(source) {
		offset = len(source)
	}

	line, col = 1, 1

	for _, b := range []byte(source[:offset]) {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return line, col
}

// KeepTooManyError reports a keep operation requesting more elements than
// the list holds.
type KeepTooManyError struct {
	Available int
	Requested int64
}

// Error implements the error interface.
func (e *KeepTooManyError) Error() string {
	return fmt.Sprintf(
		"cannot keep %d elements from a list of %d elements",
		e.Requested, e.Available,
	)
}

// LogValue implements slog.LogValuer.
func (e *KeepTooManyError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("available", e.Available),
		slog.Int64("requested", e.Requested),
	)
}

// DropTooManyError reports a drop operation requesting more elements than
// the list holds.
type DropTooManyError struct {
	Available int
	Requested int64
}

// Error implements the error interface.
func (e *DropTooManyError) Error() string {
	return fmt.Sprintf(
		"cannot drop %d elements from a list of %d elements",
		e.Requested, e.Available,
	)
}

// LogValue implements slog.LogValuer.
func (e *DropTooManyError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("available", e.Available),
		slog.Int64("requested", e.Requested),
	)
}

// KeepTooFewError reports a keep operation with a negative count.
type KeepTooFewError struct {
	Requested int64
}

// Error implements the error interface.
func (e *KeepTooFewError) Error() string {
	return fmt.Sprintf(
		"cannot keep %d elements (must be non-negative)", e.Requested,
	)
}

// LogValue implements slog.LogValuer.
func (e *KeepTooFewError) LogValue() slog.Value {
	return slog.GroupValue(slog.Int64("requested", e.Requested))
}

// DropTooFewError reports a drop operation with a negative count.
type DropTooFewError struct {
	Requested int64
}

// Error implements the error interface.
func (e *DropTooFewError) Error() string {
	return fmt.Sprintf(
		"cannot drop %d elements (must be non-negative)", e.Requested,
	)
}

// LogValue implements slog.LogValuer.
func (e *DropTooFewError) LogValue() slog.Value {
	return slog.GroupValue(slog.Int64("requested", e.Requested))
}

// ListMismatchError reports an elementwise operation on two strong lists
// of different lengths.
type ListMismatchError struct {
	LeftLen  int
	RightLen int
}

// Error implements the error interface.
func (e *ListMismatchError) Error() string {
	return fmt.Sprintf(
		"list length mismatch: left has %d elements, right has %d elements",
		e.LeftLen, e.RightLen,
	)
}

// LogValue implements slog.LogValuer.
func (e *ListMismatchError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("left_len", e.LeftLen),
		slog.Int("right_len", e.RightLen),
	)
}

package parser

import (
	"errors"
	"fmt"
)

var ErrUnknownStartRule = errors.New("unknown start rule")

// LexError reports a run of characters that cannot start any token.
type LexError struct {
	Line    int
	Column  int
	Offset  int
	Length  int
	Message string
}

func (e LexError) Error() string {
	return e.Message
}

// ParseError is recorded for every recovery event. Line and Column are zero
// when the offending token is the virtual end of input.
type ParseError struct {
	Message  string
	Token    Token
	Line     int
	Column   int
	Expected []TokenKind
}

func (e ParseError) Error() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s at line: %d, column: %d", e.Message, e.Line, e.Column)
}

// ValidationError is returned by Parse when the CST violates a naming or
// value constraint.
type ValidationError struct {
	Message string
	Line    int
	Column  int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s\n\tat line: %d, column: %d", e.Message, e.Line, e.Column)
}

func newValidationError(tok Token, format string, args ...any) *ValidationError {
	return &ValidationError{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Span.Start.Line,
		Column:  tok.Span.Start.Column,
	}
}

func expectingMessage(expected []TokenKind, found Token) string {
	if len(expected) == 1 {
		return fmt.Sprintf("Expecting token of type %s but found %s", expected[0], found)
	}
	msg := "Expecting one of "
	for i, kind := range expected {
		if i > 0 {
			msg += ", "
		}
		msg += kind.String()
	}
	return fmt.Sprintf("%s but found %s", msg, found)
}

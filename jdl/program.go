package jdl

import (
	"fmt"

	"github.com/dhamidi/jdl/jdl/parser"
)

// SyntaxError collects the lex and parse errors of a document that
// ParseProgram refused to build.
type SyntaxError struct {
	LexErrors   []parser.LexError
	ParseErrors []parser.ParseError
}

func (e *SyntaxError) Count() int {
	return len(e.LexErrors) + len(e.ParseErrors)
}

// First returns the earliest error in source order. Errors at the end of
// input come last.
func (e *SyntaxError) First() error {
	switch {
	case len(e.LexErrors) == 0 && len(e.ParseErrors) == 0:
		return nil
	case len(e.LexErrors) == 0:
		return e.ParseErrors[0]
	case len(e.ParseErrors) == 0:
		return e.LexErrors[0]
	}
	lex, parse := e.LexErrors[0], e.ParseErrors[0]
	if parse.Line == 0 || lex.Line < parse.Line || (lex.Line == parse.Line && lex.Column <= parse.Column) {
		return lex
	}
	return parse
}

func (e *SyntaxError) Error() string {
	first := e.First()
	if first == nil {
		return "syntax error"
	}
	if n := e.Count(); n > 1 {
		return fmt.Sprintf("%s (and %d more syntax errors)", first, n-1)
	}
	return first.Error()
}

// Unwrap exposes every collected error to errors.Is and errors.As.
func (e *SyntaxError) Unwrap() []error {
	errs := make([]error, 0, e.Count())
	for _, err := range e.LexErrors {
		errs = append(errs, err)
	}
	for _, err := range e.ParseErrors {
		errs = append(errs, err)
	}
	return errs
}

// ParseProgram is the strict pipeline: it parses src and builds a Program
// only when there are no lex or parse errors. Syntax problems are returned as
// a *SyntaxError; validation failures are returned unchanged as a
// *parser.ValidationError.
func ParseProgram(src string, opts ...parser.Option) (*Program, error) {
	result, err := parser.Parse(src, opts...)
	if result == nil {
		return nil, err
	}
	if len(result.LexErrors) > 0 || len(result.ParseErrors) > 0 {
		return nil, &SyntaxError{LexErrors: result.LexErrors, ParseErrors: result.ParseErrors}
	}
	if err != nil {
		return nil, err
	}
	return Build(result.CST), nil
}

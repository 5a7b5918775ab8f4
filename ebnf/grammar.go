// Package ebnf holds the JDL grammar as an EBNF document. The document is
// checked with golang.org/x/exp/ebnf and its lexical productions can be
// matched against input.
package ebnf

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"sync"
	"unicode"
	"unicode/utf8"

	xebnf "golang.org/x/exp/ebnf"
)

// Start is the production every other production is reachable from.
const Start = "Prog"

//go:embed jdl.ebnf
var source []byte

var (
	loadOnce sync.Once
	grammar  xebnf.Grammar
	loadErr  error
)

// Load parses and verifies the embedded grammar. The result is shared and
// must not be modified.
func Load() (xebnf.Grammar, error) {
	loadOnce.Do(func() {
		grammar, loadErr = Check("jdl.ebnf", bytes.NewReader(source), Start)
	})
	return grammar, loadErr
}

// Source returns a copy of the embedded grammar document.
func Source() []byte {
	return append([]byte(nil), source...)
}

// Check parses the grammar read from r. With a non-empty start it also
// verifies that every production is defined and reachable from start.
func Check(filename string, r io.Reader, start string) (xebnf.Grammar, error) {
	g, err := xebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if start == "" {
		return g, nil
	}
	if err := xebnf.Verify(g, start); err != nil {
		return g, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}

// Errors splits an error returned by Check into the individual problems
// x/exp/ebnf reported.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() != reflect.Slice {
			continue
		}
		list := make([]error, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			if item, ok := v.Index(i).Interface().(error); ok {
				list = append(list, item)
			}
		}
		return list
	}
	return []error{err}
}

// IsLexical reports whether name is a lexical production. Like x/exp/ebnf,
// productions starting with a lower-case letter are lexical.
func IsLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}

// Rules returns the names of the syntactic productions of g, sorted.
func Rules(g xebnf.Grammar) []string {
	return names(g, false)
}

// Lexical returns the names of the lexical productions of g, sorted.
func Lexical(g xebnf.Grammar) []string {
	return names(g, true)
}

func names(g xebnf.Grammar, lexical bool) []string {
	var result []string
	for name := range g {
		if IsLexical(name) == lexical {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}

// Literals returns the tokens of a production that is a plain alternation
// of literals, such as a keyword category. It returns nil otherwise.
func Literals(g xebnf.Grammar, name string) []string {
	prod, ok := g[name]
	if !ok || prod.Expr == nil {
		return nil
	}
	switch e := prod.Expr.(type) {
	case *xebnf.Token:
		return []string{e.String}
	case xebnf.Alternative:
		result := make([]string, 0, len(e))
		for _, alt := range e {
			tok, ok := alt.(*xebnf.Token)
			if !ok {
				return nil
			}
			result = append(result, tok.String)
		}
		return result
	}
	return nil
}

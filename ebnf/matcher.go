package ebnf

import (
	"fmt"
	"strings"
	"unicode/utf8"

	xebnf "golang.org/x/exp/ebnf"
)

// TokenProductions are the lexical productions a Scanner tries, in tie-break
// order. A comment and a regex can span the same text; the comment wins.
var TokenProductions = []string{"comment", "decimal", "integer", "name", "regex", "string"}

const punctuation = "{}()[],=.@*"

type memoKey struct {
	name   string
	offset int
}

// Matcher matches lexical productions of a grammar against input. Results
// are memoized per production and offset.
type Matcher struct {
	grammar  xebnf.Grammar
	input    []byte
	memo     map[memoKey]int
	visiting map[memoKey]bool
}

func NewMatcher(g xebnf.Grammar, input []byte) *Matcher {
	return &Matcher{
		grammar:  g,
		input:    input,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

// Match returns the length in bytes of the text production name derives at
// offset, or -1 if it derives none. Repetitions are greedy and never give
// input back.
func (m *Matcher) Match(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := m.memo[key]; ok {
		return n
	}
	// left recursion
	if m.visiting[key] {
		return -1
	}
	prod, ok := m.grammar[name]
	if !ok || prod.Expr == nil {
		m.memo[key] = -1
		return -1
	}
	m.visiting[key] = true
	n := m.match(prod.Expr, offset)
	delete(m.visiting, key)
	m.memo[key] = n
	return n
}

// Longest returns the candidate with the longest non-empty match at offset.
// Ties go to the earlier candidate.
func (m *Matcher) Longest(offset int, candidates ...string) (string, int) {
	best, bestLen := "", 0
	for _, name := range candidates {
		if n := m.Match(name, offset); n > bestLen {
			best, bestLen = name, n
		}
	}
	return best, bestLen
}

func (m *Matcher) match(expr xebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *xebnf.Token:
		return m.matchToken(e.String, offset)

	case *xebnf.Range:
		return m.matchRange(e.Begin.String, e.End.String, offset)

	case xebnf.Sequence:
		pos := offset
		for _, item := range e {
			n := m.match(item, pos)
			if n < 0 {
				return -1
			}
			pos += n
		}
		return pos - offset

	case xebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := m.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *xebnf.Repetition:
		pos := offset
		for {
			n := m.match(e.Body, pos)
			if n <= 0 {
				break
			}
			pos += n
		}
		return pos - offset

	case *xebnf.Option:
		if n := m.match(e.Body, offset); n > 0 {
			return n
		}
		return 0

	case *xebnf.Group:
		return m.match(e.Body, offset)

	case *xebnf.Name:
		return m.Match(e.String, offset)
	}
	return -1
}

func (m *Matcher) matchToken(s string, offset int) int {
	if offset+len(s) > len(m.input) {
		return -1
	}
	if string(m.input[offset:offset+len(s)]) == s {
		return len(s)
	}
	return -1
}

func (m *Matcher) matchRange(begin, end string, offset int) int {
	if offset >= len(m.input) {
		return -1
	}
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	r, size := utf8.DecodeRune(m.input[offset:])
	if r >= lo && r <= hi {
		return size
	}
	return -1
}

// Token is a piece of input matched by a Scanner. Kind is the production
// name, the punctuation character itself, or "ERROR".
type Token struct {
	Kind    string
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Kind, t.Literal)
}

// Scan splits input into tokens using the lexical productions of g named in
// TokenProductions. Whitespace and line comments are skipped. A character
// nothing matches becomes a one-character ERROR token.
func Scan(g xebnf.Grammar, input []byte) []Token {
	m := NewMatcher(g, input)
	var tokens []Token
	line, column := 1, 1
	advance := func(text []byte) {
		for _, r := range string(text) {
			if r == '\n' {
				line++
				column = 1
			} else {
				column++
			}
		}
	}

	for pos := 0; pos < len(input); {
		switch ch := input[pos]; {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			advance(input[pos : pos+1])
			pos++
			continue
		case ch == '/' && pos+1 < len(input) && input[pos+1] == '/':
			end := pos
			for end < len(input) && input[end] != '\n' {
				end++
			}
			advance(input[pos:end])
			pos = end
			continue
		}

		tok := Token{Line: line, Column: column}
		kind, n := m.Longest(pos, TokenProductions...)
		switch {
		case n > 0:
			tok.Kind = kind
		case strings.IndexByte(punctuation, input[pos]) >= 0:
			tok.Kind, n = string(input[pos]), 1
		default:
			_, n = utf8.DecodeRune(input[pos:])
			tok.Kind = "ERROR"
		}
		tok.Literal = string(input[pos : pos+n])
		advance(input[pos : pos+n])
		pos += n
		tokens = append(tokens, tok)
	}
	return tokens
}

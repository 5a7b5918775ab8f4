package parser

import (
	"fmt"
	"sort"
)

type Option func(*Parser)

// WithStartRule parses the input as the named grammar rule instead of prog.
func WithStartRule(name string) Option {
	return func(p *Parser) {
		p.startRule = name
	}
}

type parseFunc func(*Parser) *Node

var startRules = map[string]parseFunc{
	"prog":                       (*Parser).parseProg,
	"constantDeclaration":        (*Parser).parseConstantDeclaration,
	"entityDeclaration":          (*Parser).parseEntityDeclaration,
	"annotationDeclaration":      (*Parser).parseAnnotationDeclaration,
	"entityTableNameDeclaration": (*Parser).parseEntityTableNameDeclaration,
	"entityBody":                 (*Parser).parseEntityBody,
	"fieldDeclaration":           (*Parser).parseFieldDeclaration,
	"validation":                 (*Parser).parseValidation,
	"minMaxValidation":           (*Parser).parseMinMaxValidation,
	"pattern":                    (*Parser).parsePattern,
	"relationDeclaration":        (*Parser).parseRelationDeclaration,
	"relationshipBody":           (*Parser).parseRelationshipBody,
	"relationshipSide":           (*Parser).parseRelationshipSide,
	"enumDeclaration":            (*Parser).parseEnumDeclaration,
	"enumPropList":               (*Parser).parseEnumPropList,
	"enumProp":                   (*Parser).parseEnumProp,
	"unaryOptionDeclaration":     (*Parser).parseUnaryOptionDeclaration,
	"binaryOptionDeclaration":    (*Parser).parseBinaryOptionDeclaration,
	"entityList":                 (*Parser).parseEntityList,
	"exclusion":                  (*Parser).parseExclusion,
	"applicationDeclaration":     (*Parser).parseApplicationDeclaration,
	"applicationSubConfig":       (*Parser).parseApplicationSubConfig,
	"configProperty":             (*Parser).parseConfigProperty,
	"applicationSubEntities":     (*Parser).parseApplicationSubEntities,
	"deploymentDeclaration":      (*Parser).parseDeploymentDeclaration,
	"deploymentProperty":         (*Parser).parseDeploymentProperty,
	"optionValue":                (*Parser).parseOptionValue,
	"qualifiedName":              (*Parser).parseQualifiedName,
	"list":                       (*Parser).parseList,
	"listItem":                   (*Parser).parseListItem,
}

// StartRules returns the rule names accepted by WithStartRule, sorted.
func StartRules() []string {
	names := make([]string, 0, len(startRules))
	for name := range startRules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func IsStartRule(name string) bool {
	_, ok := startRules[name]
	return ok
}

type Result struct {
	CST         *Node
	Tokens      []Token
	ParseErrors []ParseError
	LexErrors   []LexError
}

// Parser holds the cursor state of a single parse. It is not reused.
type Parser struct {
	startRule string
	tokens    []Token
	eof       int
	pos       int

	errors      []ParseError
	lastErrorAt int
	syncStack   [][]TokenKind

	completing  bool
	stalled     bool
	suggestions []TokenKind
	suggested   map[TokenKind]bool
}

func newParser(tokens []Token, opts ...Option) *Parser {
	p := &Parser{
		startRule: "prog",
		// The virtual EOF has no position.
		tokens:      append(tokens[:len(tokens):len(tokens)], Token{Kind: TokenEOF}),
		eof:         len(tokens),
		errors:      []ParseError{},
		lastErrorAt: -1,
		suggested:   map[TokenKind]bool{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) entry() (parseFunc, error) {
	entry, ok := startRules[p.startRule]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStartRule, p.startRule)
	}
	return entry, nil
}

func (p *Parser) run(entry parseFunc) *Node {
	node := entry(p)
	if !p.atEOF() {
		p.report([]TokenKind{TokenEOF}, p.peek())
	}
	return node
}

// Parse lexes and parses src, then validates the resulting CST. Lex and parse
// errors are recovered and returned as data in the Result. A validation
// failure is returned as a *ValidationError alongside the Result.
func Parse(src string, opts ...Option) (*Result, error) {
	tokens, lexErrors := Tokenize(src)
	p := newParser(tokens, opts...)
	entry, err := p.entry()
	if err != nil {
		return nil, err
	}
	result := &Result{
		CST:         p.run(entry),
		Tokens:      tokens,
		ParseErrors: p.errors,
		LexErrors:   lexErrors,
	}
	if err := Validate(result.CST); err != nil {
		return result, err
	}
	return result, nil
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[p.eof]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < p.eof {
		p.pos++
	}
	return tok
}

func (p *Parser) atEOF() bool {
	return p.pos >= p.eof
}

// la reports whether the token n positions ahead matches one of kinds. In
// completion mode every test made against the end of input is recorded as a
// suggestion.
func (p *Parser) la(n int, kinds ...TokenKind) bool {
	if p.completing && !p.stalled && p.pos+n == p.eof {
		for _, kind := range kinds {
			if kind != TokenEOF && !p.suggested[kind] {
				p.suggested[kind] = true
				p.suggestions = append(p.suggestions, kind)
			}
		}
	}
	return isAny(p.peekN(n).Kind, kinds)
}

func (p *Parser) check(kind TokenKind) bool {
	return p.la(0, kind)
}

// peekIs tests the current token without recording suggestions.
func (p *Parser) peekIs(kinds ...TokenKind) bool {
	return isAny(p.peek().Kind, kinds)
}

func isAny(kind TokenKind, kinds []TokenKind) bool {
	for _, k := range kinds {
		if kind.Is(k) {
			return true
		}
	}
	return false
}

// mustProgress returns a function that checks if the parser has advanced.
// Call it at the start of a loop iteration, then call the returned function
// at the end to break if no progress was made.
func (p *Parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			if !p.atEOF() {
				p.advance()
			}
			return false
		}
		return true
	}
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{
		Kind: kind,
		Span: Span{Start: p.peek().Span.Start},
	}
}

func (p *Parser) finishNode(n *Node) *Node {
	if p.pos > 0 {
		n.Span.End = p.tokens[p.pos-1].Span.End
	}
	if n.Span.End.Offset < n.Span.Start.Offset {
		n.Span.End = n.Span.Start
	}
	return n
}

// abandon marks n as given up by re-sync recovery.
func (p *Parser) abandon(n *Node) *Node {
	n.Recovered = true
	return p.finishNode(n)
}

func (p *Parser) consume(n *Node) Token {
	tok := p.advance()
	n.addToken(tok)
	return tok
}

func (p *Parser) expect(n *Node, kind TokenKind, follow ...TokenKind) bool {
	return p.expectOneOf(n, []TokenKind{kind}, follow...)
}

// expectOneOf consumes a token matching one of kinds into n. When the
// current token does not match, a missing token is inserted if the current
// one is in follow, or the current token is deleted if the next one matches.
// Otherwise the error is recorded and false is returned; the caller
// abandons its rule.
func (p *Parser) expectOneOf(n *Node, kinds []TokenKind, follow ...TokenKind) bool {
	if p.la(0, kinds...) {
		p.consume(n)
		return true
	}
	if p.completing && p.atEOF() {
		p.stalled = true
	}

	tok := p.peek()
	if p.atEOF() {
		p.report(kinds, tok)
		return false
	}
	if isAny(tok.Kind, follow) {
		p.report(kinds, tok)
		n.addToken(Token{Kind: kinds[0], Inserted: true})
		return true
	}
	if isAny(p.peekN(1).Kind, kinds) {
		p.report(kinds, tok)
		p.advance()
		p.consume(n)
		return true
	}
	p.report(kinds, tok)
	return false
}

// report records a parse error at the current token. Only the first error
// at a given token is kept.
func (p *Parser) report(expected []TokenKind, found Token) {
	if p.pos == p.lastErrorAt {
		return
	}
	p.lastErrorAt = p.pos
	p.errors = append(p.errors, ParseError{
		Message:  expectingMessage(expected, found),
		Token:    found,
		Line:     found.Span.Start.Line,
		Column:   found.Span.Start.Column,
		Expected: append([]TokenKind(nil), expected...),
	})
}

// pushSync adds a set of kinds at which re-sync stops. The returned function
// pops it.
func (p *Parser) pushSync(kinds []TokenKind) func() {
	p.syncStack = append(p.syncStack, kinds)
	depth := len(p.syncStack)
	return func() {
		p.syncStack = p.syncStack[:depth-1]
	}
}

func (p *Parser) inSync(frames [][]TokenKind) bool {
	kind := p.peek().Kind
	for _, frame := range frames {
		if isAny(kind, frame) {
			return true
		}
	}
	return false
}

// inOuterSync reports whether the current token belongs to a repetition
// enclosing the innermost one.
func (p *Parser) inOuterSync() bool {
	if len(p.syncStack) < 2 {
		return false
	}
	return p.inSync(p.syncStack[:len(p.syncStack)-1])
}

// resync discards tokens until one in the union of the sync sets or EOF.
func (p *Parser) resync() {
	for !p.atEOF() && !p.inSync(p.syncStack) {
		p.advance()
	}
}

// skipTo discards tokens until one matching kinds or EOF.
func (p *Parser) skipTo(kinds []TokenKind) {
	for !p.atEOF() && !p.peekIs(kinds...) {
		p.advance()
	}
}

// parseItems parses elements until closer. An element is parsed whenever the
// current token is in starts; a token that fits neither an element, the
// closer nor an enclosing repetition is reported and skipped. When sep is
// not EOF it may follow each element.
func (p *Parser) parseItems(n *Node, starts []TokenKind, closer, sep TokenKind, elem parseFunc) {
	sync := concat(starts, []TokenKind{closer})
	if sep != TokenEOF {
		sync = append(sync, sep)
	}
	pop := p.pushSync(sync)
	defer pop()

	for {
		progress := p.mustProgress()
		switch {
		case p.la(0, starts...):
			child := elem(p)
			n.AddChild(child)
			if child.Recovered {
				p.resync()
			}
			if sep != TokenEOF && p.check(sep) {
				p.consume(n)
			}
		case p.check(closer), p.atEOF(), p.inOuterSync():
			return
		default:
			p.report(concat(starts, []TokenKind{closer}), p.peek())
			p.advance()
			p.resync()
		}
		if !progress() {
			return
		}
	}
}

// parseSeparated parses elem { sep elem } into n. A missing separator
// between two elements is inserted.
func (p *Parser) parseSeparated(n *Node, starts []TokenKind, closer, sep TokenKind, elem parseFunc) {
	pop := p.pushSync(concat(starts, []TokenKind{sep, closer}))
	defer pop()

	for {
		progress := p.mustProgress()
		child := elem(p)
		n.AddChild(child)
		if child.Recovered {
			p.resync()
		}
		switch {
		case p.check(sep):
			p.consume(n)
		case !p.atEOF() && p.peekIs(starts...) && !p.peekIs(closer):
			p.report([]TokenKind{sep}, p.peek())
			n.addToken(Token{Kind: sep, Inserted: true})
		default:
			return
		}
		if !progress() {
			return
		}
	}
}

func concat(sets ...[]TokenKind) []TokenKind {
	var out []TokenKind
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

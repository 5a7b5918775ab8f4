package parser

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

type Lexer struct {
	input  []byte
	pos    int
	line   int
	column int

	// Offsets below which an opening quote or slash is known not to close on
	// its line. Escapes align the same way from any later opener on that line,
	// so one failed scan covers all of them.
	stringFailEnd int
	regexFailEnd  int
	// Set once a "/*" was found with no "*/" anywhere after it.
	noCommentEnd bool
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{
		input:  input,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// advance consumes one rune. Columns count runes, not bytes.
func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	ch := l.input[l.pos]
	if ch < utf8.RuneSelf {
		l.pos++
	} else {
		_, size := utf8.DecodeRune(l.input[l.pos:])
		l.pos += size
	}
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

func (l *Lexer) advanceTo(offset int) {
	for l.pos < offset {
		l.advance()
	}
}

func (l *Lexer) NextToken() Token {
	startPos := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()
	switch {
	case isWhitespace(ch):
		return l.scanWhitespace(startPos)
	case ch == '/' && l.peekN(1) == '/':
		return l.scanLineComment(startPos)
	case isLetter(ch):
		return l.scanNameOrKeyword(startPos)
	case isDigit(ch), ch == '-' && isDigit(l.peekN(1)):
		return l.scanNumber(startPos)
	}

	if kind, ok := punctuation[ch]; ok {
		l.advance()
		return l.token(kind, startPos)
	}

	if kind, end := l.delimited(); end > 0 {
		l.advanceTo(end)
		return l.token(kind, startPos)
	}

	return l.scanInvalid(startPos)
}

var punctuation = map[byte]TokenKind{
	'{': TokenLBrace,
	'}': TokenRBrace,
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	',': TokenComma,
	'=': TokenEquals,
	'.': TokenDot,
	'@': TokenAt,
	'*': TokenStar,
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for isWhitespace(l.peek()) {
		l.advance()
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanLineComment(start Position) Token {
	for l.pos < len(l.input) && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

func (l *Lexer) scanNameOrKeyword(start Position) Token {
	for isNameChar(l.peek()) {
		l.advance()
	}
	tok := l.token(TokenName, start)
	tok.Kind = LookupKeyword(tok.Literal)
	return tok
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '-' {
		l.advance()
	}
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
		return l.token(TokenDecimal, start)
	}
	return l.token(TokenInteger, start)
}

// scanInvalid consumes a run of characters that cannot start a token and
// returns it as a single TokenError.
func (l *Lexer) scanInvalid(start Position) Token {
	l.advance()
	for l.pos < len(l.input) && !l.canStartToken() {
		l.advance()
	}
	return l.token(TokenError, start)
}

func (l *Lexer) canStartToken() bool {
	ch := l.peek()
	switch {
	case isWhitespace(ch), isLetter(ch), isDigit(ch):
		return true
	case ch == '-':
		return isDigit(l.peekN(1))
	case ch == '/' && l.peekN(1) == '/':
		return true
	}
	if _, ok := punctuation[ch]; ok {
		return true
	}
	_, end := l.delimited()
	return end > 0
}

// delimited returns the kind and end offset of the string, block comment or
// regex starting at the current position. The end is 0 when there is none.
func (l *Lexer) delimited() (TokenKind, int) {
	switch l.peek() {
	case '"':
		return TokenString, l.delimitedEnd('"', &l.stringFailEnd)
	case '/':
		if l.peekN(1) == '*' {
			if end := l.blockCommentEnd(); end > 0 {
				return TokenComment, end
			}
		}
		if end := l.delimitedEnd('/', &l.regexFailEnd); end > l.pos+2 {
			return TokenRegex, end
		}
	}
	return TokenError, 0
}

// delimitedEnd scans a single-line token enclosed by delim in which a
// backslash escapes the following character.
func (l *Lexer) delimitedEnd(delim byte, failEnd *int) int {
	if l.pos < *failEnd {
		return 0
	}
	i := l.pos + 1
	for i < len(l.input) {
		switch l.input[i] {
		case delim:
			return i + 1
		case '\n':
			*failEnd = i
			return 0
		case '\\':
			if i+1 < len(l.input) && l.input[i+1] != '\n' {
				i++
			}
		}
		i++
	}
	*failEnd = len(l.input)
	return 0
}

func (l *Lexer) blockCommentEnd() int {
	if l.noCommentEnd {
		return 0
	}
	idx := bytes.Index(l.input[l.pos+2:], []byte("*/"))
	if idx < 0 {
		l.noCommentEnd = true
		return 0
	}
	return l.pos + 2 + idx + 2
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isNameChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '-'
}

// Tokenize lexes src completely. Whitespace and line comments are dropped,
// block comments are kept as COMMENT tokens and runs of invalid characters are
// reported as LexErrors. The returned tokens do not include EOF.
func Tokenize(src string) ([]Token, []LexError) {
	l := NewLexer([]byte(src))
	tokens := []Token{}
	lexErrors := []LexError{}
	for {
		tok := l.NextToken()
		switch tok.Kind {
		case TokenEOF:
			return tokens, lexErrors
		case TokenWhitespace, TokenLineComment:
			continue
		case TokenError:
			lexErrors = append(lexErrors, newLexError(tok))
			continue
		}
		tokens = append(tokens, tok)
	}
}

func newLexError(tok Token) LexError {
	first, _ := utf8.DecodeRuneInString(tok.Literal)
	length := utf8.RuneCountInString(tok.Literal)
	return LexError{
		Line:   tok.Span.Start.Line,
		Column: tok.Span.Start.Column,
		Offset: tok.Span.Start.Offset,
		Length: length,
		Message: fmt.Sprintf("unexpected character: ->%c<- at line: %d, column: %d, skipped %d characters",
			first, tok.Span.Start.Line, tok.Span.Start.Column, length),
	}
}

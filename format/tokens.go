package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jdl/jdl/parser"
)

// TokenEncoder writes one tab-separated line per token: position, kind and
// quoted literal. Lex errors follow as "error" lines.
type TokenEncoder struct {
	w io.Writer
}

func NewTokenEncoder(w io.Writer) *TokenEncoder {
	return &TokenEncoder{w: w}
}

func (e *TokenEncoder) Encode(tokens []parser.Token, lexErrors []parser.LexError) error {
	_, err := io.WriteString(e.w, e.MarshalText(tokens, lexErrors))
	return err
}

func (e *TokenEncoder) MarshalText(tokens []parser.Token, lexErrors []parser.LexError) string {
	var sb strings.Builder
	for _, tok := range tokens {
		fmt.Fprintf(&sb, "%s\t%s\t%q\n", tok.Span.Start, tok.Kind, tok.Literal)
	}
	for _, e := range lexErrors {
		fmt.Fprintf(&sb, "%d:%d\terror\t%s\n", e.Line, e.Column, e.Message)
	}
	return sb.String()
}

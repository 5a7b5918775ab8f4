package parser

// Suggest returns the token kinds that may follow partial, in the order the
// grammar tests them. The partial text is parsed in completion mode: every
// kind tested against the end of input is recorded until the first mandatory
// token fails there. Categories such as MIN_MAX_KEYWORD are returned as
// categories; use ExpandCategory for their concrete keywords.
func Suggest(partial string, opts ...Option) ([]TokenKind, error) {
	tokens, _ := Tokenize(partial)
	p := newParser(tokens, opts...)
	entry, err := p.entry()
	if err != nil {
		return nil, err
	}
	p.completing = true
	p.run(entry)
	if p.suggestions == nil {
		return []TokenKind{}, nil
	}
	return p.suggestions, nil
}

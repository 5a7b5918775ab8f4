// Package parser provides an error-tolerant lexer and parser for JDL, the
// domain modeling language describing entities, relationships, enums,
// options, applications and deployments.
//
// # Overview
//
// Parsing produces a concrete syntax tree (CST) that keeps every rule and
// token, including tokens synthesized by error recovery. It is designed for
// editor tooling where incomplete or malformed input is common: lex and
// parse errors are returned as data and never abort the parse.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Source    │────▶│   Lexer     │────▶│   Parser    │────▶│  Validator  │
//	│  (string)   │     │  (tokens)   │     │   (CST)     │     │  (names,    │
//	└─────────────┘     └─────────────┘     └─────────────┘     │   values)   │
//	                           │                   │            └─────────────┘
//	                           ▼                   ▼
//	                    ┌─────────────┐     ┌─────────────┐
//	                    │  LexErrors  │     │ ParseErrors │
//	                    └─────────────┘     └─────────────┘
//
// # Tokens
//
// Every token has a single concrete TokenKind. Some kinds are categories
// that group concrete kinds:
//
//	MIN_MAX_KEYWORD    min max minlength maxlength minbytes maxbytes
//	RELATIONSHIP_TYPE  OneToOne OneToMany ManyToOne ManyToMany
//	BOOLEAN            true false
//	UNARY_OPTION       skipClient skipServer noFluentMethod filter readOnly embedded
//	BINARY_OPTION      dto paginate service search microservice angularSuffix clientRootFolder
//	CONFIG_KEY         application config property keywords
//	DEPLOYMENT_KEY     deployment property keywords
//
// Keywords that may also be used as identifiers belong to the NAME category,
// so kind.Is(TokenName) holds for "service" or "baseName".
//
// # Error Recovery
//
// When a mandatory token is missing the parser tries, in order:
//
//  1. Insertion: the current token is one the rule accepts right after the
//     missing one. A token with Inserted set and an empty literal is added.
//  2. Deletion: the next token is the expected one. The current token is
//     skipped.
//  3. Re-sync: the rule is abandoned and marked Recovered. The innermost
//     enclosing repetition discards tokens until one that can start its
//     next element or close an enclosing block.
//
// Each event records a ParseError. Only the first error at a given token is
// kept, so a truncated input reports a single error at end of input.
//
// # Auto-Complete
//
// Suggest parses a partial input in completion mode. Every lookahead test
// made against the end of input is recorded, which yields the kinds that may
// come next in the order the grammar tries them.
//
// # Concurrency
//
// Keyword, category and validation tables are built at init and only read
// afterwards. Every call to Parse, Tokenize or Suggest uses its own lexer
// and parser, so they are safe for concurrent use.
package parser

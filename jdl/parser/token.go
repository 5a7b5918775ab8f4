package parser

import (
	"fmt"

	"github.com/iancoleman/strcase"
)

type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenLineComment
	TokenComment

	// Literals
	TokenName
	TokenInteger
	TokenDecimal
	TokenString
	TokenRegex

	// Punctuation
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenEquals
	TokenDot
	TokenAt
	TokenStar

	// Categories have no pattern of their own; they group concrete kinds.
	TokenMinMaxKeyword
	TokenRelationshipType
	TokenBoolean
	TokenUnaryOption
	TokenBinaryOption
	TokenConfigKey
	TokenDeploymentKey

	// Keywords
	TokenApplication
	TokenConfig
	TokenEntities
	TokenDeployment
	TokenEntity
	TokenRelationship
	TokenEnum
	TokenTo
	TokenWith
	TokenExcept
	TokenAll
	TokenRequired
	TokenUnique
	TokenPattern
	TokenMin
	TokenMax
	TokenMinLength
	TokenMaxLength
	TokenMinBytes
	TokenMaxBytes
	TokenOneToOne
	TokenOneToMany
	TokenManyToOne
	TokenManyToMany
	TokenTrue
	TokenFalse

	// Option keywords
	TokenSkipClient
	TokenSkipServer
	TokenNoFluentMethod
	TokenFilter
	TokenReadOnly
	TokenEmbedded
	TokenDto
	TokenPaginate
	TokenService
	TokenSearch
	TokenMicroservice
	TokenAngularSuffix
	TokenClientRootFolder

	// Application and deployment property keywords are numbered from here,
	// in the order of propertyKeywords.
	tokenPropertyBase
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:              "EOF",
	TokenError:            "ERROR",
	TokenWhitespace:       "WHITESPACE",
	TokenLineComment:      "LINE_COMMENT",
	TokenComment:          "COMMENT",
	TokenName:             "NAME",
	TokenInteger:          "INTEGER",
	TokenDecimal:          "DECIMAL",
	TokenString:           "STRING",
	TokenRegex:            "REGEX",
	TokenLBrace:           "LCURLY",
	TokenRBrace:           "RCURLY",
	TokenLParen:           "LPAREN",
	TokenRParen:           "RPAREN",
	TokenLBracket:         "LSQUARE",
	TokenRBracket:         "RSQUARE",
	TokenComma:            "COMMA",
	TokenEquals:           "EQUALS",
	TokenDot:              "DOT",
	TokenAt:               "AT",
	TokenStar:             "STAR",
	TokenMinMaxKeyword:    "MIN_MAX_KEYWORD",
	TokenRelationshipType: "RELATIONSHIP_TYPE",
	TokenBoolean:          "BOOLEAN",
	TokenUnaryOption:      "UNARY_OPTION",
	TokenBinaryOption:     "BINARY_OPTION",
	TokenConfigKey:        "CONFIG_KEY",
	TokenDeploymentKey:    "DEPLOYMENT_KEY",
}

var punctuationLiterals = map[TokenKind]string{
	TokenLBrace:   "{",
	TokenRBrace:   "}",
	TokenLParen:   "(",
	TokenRParen:   ")",
	TokenLBracket: "[",
	TokenRBracket: "]",
	TokenComma:    ",",
	TokenEquals:   "=",
	TokenDot:      ".",
	TokenAt:       "@",
	TokenStar:     "*",
}

type keyword struct {
	literal    string
	kind       TokenKind
	categories []TokenKind
}

// Keywords that also belong to NAME stay usable as identifiers (a field may
// be called "filter", "min" or "pattern"). The rest are reserved.
var fixedKeywords = []keyword{
	{"application", TokenApplication, nil},
	{"config", TokenConfig, []TokenKind{TokenName}},
	{"entities", TokenEntities, []TokenKind{TokenName}},
	{"deployment", TokenDeployment, nil},
	{"entity", TokenEntity, nil},
	{"relationship", TokenRelationship, nil},
	{"enum", TokenEnum, nil},
	{"to", TokenTo, nil},
	{"with", TokenWith, nil},
	{"except", TokenExcept, nil},
	{"all", TokenAll, nil},
	{"required", TokenRequired, nil},
	{"unique", TokenUnique, nil},
	{"pattern", TokenPattern, []TokenKind{TokenName}},
	{"min", TokenMin, []TokenKind{TokenMinMaxKeyword, TokenName}},
	{"max", TokenMax, []TokenKind{TokenMinMaxKeyword, TokenName}},
	{"minlength", TokenMinLength, []TokenKind{TokenMinMaxKeyword, TokenName}},
	{"maxlength", TokenMaxLength, []TokenKind{TokenMinMaxKeyword, TokenName}},
	{"minbytes", TokenMinBytes, []TokenKind{TokenMinMaxKeyword, TokenName}},
	{"maxbytes", TokenMaxBytes, []TokenKind{TokenMinMaxKeyword, TokenName}},
	{"OneToOne", TokenOneToOne, []TokenKind{TokenRelationshipType}},
	{"OneToMany", TokenOneToMany, []TokenKind{TokenRelationshipType}},
	{"ManyToOne", TokenManyToOne, []TokenKind{TokenRelationshipType}},
	{"ManyToMany", TokenManyToMany, []TokenKind{TokenRelationshipType}},
	{"true", TokenTrue, []TokenKind{TokenBoolean}},
	{"false", TokenFalse, []TokenKind{TokenBoolean}},
	{"skipClient", TokenSkipClient, []TokenKind{TokenUnaryOption, TokenConfigKey, TokenName}},
	{"skipServer", TokenSkipServer, []TokenKind{TokenUnaryOption, TokenConfigKey, TokenName}},
	{"noFluentMethod", TokenNoFluentMethod, []TokenKind{TokenUnaryOption, TokenName}},
	{"filter", TokenFilter, []TokenKind{TokenUnaryOption, TokenName}},
	{"readOnly", TokenReadOnly, []TokenKind{TokenUnaryOption, TokenName}},
	{"embedded", TokenEmbedded, []TokenKind{TokenUnaryOption, TokenName}},
	{"dto", TokenDto, []TokenKind{TokenBinaryOption, TokenName}},
	{"paginate", TokenPaginate, []TokenKind{TokenBinaryOption, TokenName}},
	{"service", TokenService, []TokenKind{TokenBinaryOption, TokenName}},
	{"search", TokenSearch, []TokenKind{TokenBinaryOption, TokenName}},
	{"microservice", TokenMicroservice, []TokenKind{TokenBinaryOption, TokenName}},
	{"angularSuffix", TokenAngularSuffix, []TokenKind{TokenBinaryOption, TokenName}},
	{"clientRootFolder", TokenClientRootFolder, []TokenKind{TokenBinaryOption, TokenName}},
}

var (
	configKey     = []TokenKind{TokenConfigKey, TokenName}
	deploymentKey = []TokenKind{TokenDeploymentKey, TokenName}
)

var propertyKeywords = []keyword{
	{literal: "applicationType", categories: configKey},
	{literal: "authenticationType", categories: configKey},
	{literal: "baseName", categories: configKey},
	{literal: "blueprint", categories: configKey},
	{literal: "blueprints", categories: configKey},
	{literal: "buildTool", categories: configKey},
	{literal: "cacheProvider", categories: configKey},
	{literal: "clientFramework", categories: configKey},
	{literal: "clientPackageManager", categories: configKey},
	{literal: "clientTheme", categories: configKey},
	{literal: "clientThemeVariant", categories: configKey},
	{literal: "databaseType", categories: configKey},
	{literal: "devDatabaseType", categories: configKey},
	{literal: "dtoSuffix", categories: configKey},
	{literal: "embeddableLaunchScript", categories: configKey},
	{literal: "enableHibernateCache", categories: configKey},
	{literal: "enableSwaggerCodegen", categories: configKey},
	{literal: "enableTranslation", categories: configKey},
	{literal: "entitySuffix", categories: configKey},
	{literal: "frontendBuilder", categories: configKey},
	{literal: "jhiPrefix", categories: configKey},
	{literal: "jhipsterVersion", categories: configKey},
	{literal: "jwtSecretKey", categories: configKey},
	{literal: "languages", categories: configKey},
	{literal: "messageBroker", categories: configKey},
	{literal: "nativeLanguage", categories: configKey},
	{literal: "packageFolder", categories: configKey},
	{literal: "packageName", categories: configKey},
	{literal: "prodDatabaseType", categories: configKey},
	{literal: "reactive", categories: configKey},
	{literal: "rememberMeKey", categories: configKey},
	{literal: "searchEngine", categories: configKey},
	{literal: "serverPort", categories: configKey},
	{literal: "serviceDiscoveryType", categories: []TokenKind{TokenConfigKey, TokenDeploymentKey, TokenName}},
	{literal: "skipUserManagement", categories: configKey},
	{literal: "testFrameworks", categories: configKey},
	{literal: "uaaBaseName", categories: configKey},
	{literal: "useSass", categories: configKey},
	{literal: "websocket", categories: configKey},

	{literal: "deploymentType", categories: deploymentKey},
	{literal: "appsFolders", categories: deploymentKey},
	{literal: "clusteredDbApps", categories: deploymentKey},
	{literal: "consoleOptions", categories: deploymentKey},
	{literal: "directoryPath", categories: deploymentKey},
	{literal: "dockerPushCommand", categories: deploymentKey},
	{literal: "dockerRepositoryName", categories: deploymentKey},
	{literal: "gatewayType", categories: deploymentKey},
	{literal: "ingressDomain", categories: deploymentKey},
	{literal: "ingressType", categories: deploymentKey},
	{literal: "istio", categories: deploymentKey},
	{literal: "kubernetesNamespace", categories: deploymentKey},
	{literal: "kubernetesServiceType", categories: deploymentKey},
	{literal: "monitoring", categories: deploymentKey},
	{literal: "openshiftNamespace", categories: deploymentKey},
	{literal: "registryReplicas", categories: deploymentKey},
	{literal: "storageType", categories: deploymentKey},
}

// The tables below are filled once at init and only read afterwards.
var (
	keywords        = map[string]TokenKind{}
	keywordLiterals = map[TokenKind]string{}
	categories      = map[TokenKind][]TokenKind{}
	categoryMembers = map[TokenKind][]TokenKind{}
)

func init() {
	register := func(kw keyword) {
		keywords[kw.literal] = kw.kind
		keywordLiterals[kw.kind] = kw.literal
		tokenKindNames[kw.kind] = strcase.ToScreamingSnake(kw.literal)
		categories[kw.kind] = kw.categories
		for _, c := range kw.categories {
			categoryMembers[c] = append(categoryMembers[c], kw.kind)
		}
	}
	for _, kw := range fixedKeywords {
		register(kw)
	}
	for i, kw := range propertyKeywords {
		kw.kind = tokenPropertyBase + TokenKind(i)
		register(kw)
	}
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Literal returns the source spelling of keyword and punctuation kinds, or ""
// for kinds whose image varies.
func (k TokenKind) Literal() string {
	if lit, ok := keywordLiterals[k]; ok {
		return lit
	}
	return punctuationLiterals[k]
}

// Is reports whether k is kind itself or belongs to the category kind.
func (k TokenKind) Is(kind TokenKind) bool {
	if k == kind {
		return true
	}
	for _, c := range categories[k] {
		if c == kind {
			return true
		}
	}
	return false
}

// IsCategory reports whether k only exists to group other kinds.
func (k TokenKind) IsCategory() bool {
	return k >= TokenMinMaxKeyword && k <= TokenDeploymentKey
}

// Categories returns the categories k belongs to.
func Categories(k TokenKind) []TokenKind {
	return categories[k]
}

// ExpandCategory returns the concrete kinds grouped by a category, in keyword
// table order. A concrete kind expands to itself.
func ExpandCategory(k TokenKind) []TokenKind {
	if !k.IsCategory() {
		return []TokenKind{k}
	}
	return append([]TokenKind(nil), categoryMembers[k]...)
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenName
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
	// Inserted marks tokens synthesized by error recovery. They have no
	// position and an empty literal.
	Inserted bool
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", t.Literal)
}

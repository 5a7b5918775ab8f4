package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryConstants(t *testing.T) {
	result, err := Parse("myConst1 = 1\nmyConst2 = 3,\nmyConst3 9")
	require.NoError(t, err)

	require.Len(t, result.ParseErrors, 2)
	first, second := result.ParseErrors[0], result.ParseErrors[1]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, 13, first.Column)
	assert.Equal(t, TokenComma, first.Token.Kind)
	assert.Equal(t, 3, second.Line)
	assert.Equal(t, 10, second.Column)
	assert.Equal(t, "Expecting token of type EQUALS but found '9'", second.Message)

	constants := result.CST.Rules(KindConstantDeclaration)
	require.Len(t, constants, 3)
	want := [][2]string{{"myConst1", "1"}, {"myConst2", "3"}, {"myConst3", "9"}}
	for i, c := range constants {
		assert.Equal(t, want[i][0], c.FirstToken(TokenName).Literal)
		assert.Equal(t, want[i][1], c.FirstToken(TokenInteger).Literal)
	}

	equals := constants[2].FirstToken(TokenEquals)
	require.NotNil(t, equals)
	assert.True(t, equals.Inserted)
	assert.Equal(t, "", equals.Literal)
	assert.False(t, constants[0].FirstToken(TokenEquals).Inserted)
}

func TestRecoverySingleTokenDeletion(t *testing.T) {
	result, err := Parse("a = = 3")
	require.NoError(t, err)
	require.Len(t, result.ParseErrors, 1)
	assert.Equal(t, "Expecting one of INTEGER, DECIMAL but found '='", result.ParseErrors[0].Message)

	constant := result.CST.FirstChildOfKind(KindConstantDeclaration)
	require.NotNil(t, constant)
	assert.False(t, constant.Recovered)
	assert.Len(t, constant.Children, 3)
	assert.Equal(t, "3", constant.FirstToken(TokenInteger).Literal)
}

func TestRecoveryMissingTokenAtEndOfInput(t *testing.T) {
	result, err := Parse("entity A {\n  name String\n")
	require.NoError(t, err)
	require.Len(t, result.ParseErrors, 1)

	got := result.ParseErrors[0]
	assert.Equal(t, "Expecting token of type RCURLY but found end of input", got.Message)
	assert.Equal(t, 0, got.Line)
	assert.Equal(t, 0, got.Column)
	assert.Equal(t, TokenEOF, got.Token.Kind)
	assert.Equal(t, got.Message, got.Error())

	entity := result.CST.FirstChildOfKind(KindEntityDeclaration)
	require.NotNil(t, entity)
	assert.True(t, entity.Recovered)
	assert.Len(t, entity.FirstChildOfKind(KindEntityBody).Rules(KindFieldDeclaration), 1)
}

func TestRecoveryResyncKeepsSiblings(t *testing.T) {
	src := "entity A {\n  a String required\n  b Integer min(\n}\nentity B {\n  c String\n}"
	result, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, result.ParseErrors, 1)
	assert.Equal(t, "Expecting one of INTEGER, DECIMAL, NAME but found '}'", result.ParseErrors[0].Message)
	assert.Equal(t, 4, result.ParseErrors[0].Line)

	entities := result.CST.Rules(KindEntityDeclaration)
	require.Len(t, entities, 2)
	assert.False(t, entities[0].Recovered)

	fields := entities[0].FirstChildOfKind(KindEntityBody).Rules(KindFieldDeclaration)
	require.Len(t, fields, 2)
	assert.False(t, fields[0].Recovered)
	assert.True(t, fields[1].Recovered)
	assert.Equal(t, "b", fields[1].FirstToken(TokenName).Literal)

	assert.Equal(t, "B", entities[1].FirstToken(TokenName).Literal)
	assert.False(t, entities[1].Recovered)
}

func TestRecoveryUnexpectedTokenInBody(t *testing.T) {
	result, err := Parse("entity A {\n  a String\n  42\n  b String\n}")
	require.NoError(t, err)
	require.Len(t, result.ParseErrors, 1)
	assert.Equal(t, "Expecting one of COMMENT, AT, NAME, RCURLY but found '42'", result.ParseErrors[0].Message)

	fields := result.CST.FirstChildOfKind(KindEntityDeclaration).
		FirstChildOfKind(KindEntityBody).Rules(KindFieldDeclaration)
	assert.Len(t, fields, 2)
}

func TestRecoveryInsertedFieldType(t *testing.T) {
	result, err := Parse("entity A {\n  name\n}")
	require.NoError(t, err)
	require.Len(t, result.ParseErrors, 1)

	field := result.CST.FirstChildOfKind(KindEntityDeclaration).
		FirstChildOfKind(KindEntityBody).FirstChildOfKind(KindFieldDeclaration)
	names := field.Tokens(TokenName)
	require.Len(t, names, 2)
	assert.True(t, names[1].Inserted)
}

func TestRecoveryMissingEnumComma(t *testing.T) {
	result, err := Parse("enum Color { RED GREEN, BLUE }")
	require.NoError(t, err)
	require.Len(t, result.ParseErrors, 1)
	assert.Equal(t, "Expecting token of type COMMA but found 'GREEN'", result.ParseErrors[0].Message)

	list := result.CST.FirstChildOfKind(KindEnumDeclaration).FirstChildOfKind(KindEnumPropList)
	require.NotNil(t, list)
	assert.Len(t, list.Rules(KindEnumProp), 3)
	commas := list.Tokens(TokenComma)
	require.Len(t, commas, 2)
	assert.True(t, commas[0].Inserted)
}

func TestRecoveryContinuesAfterBrokenDeclaration(t *testing.T) {
	src := "application {\n  config {\n    baseName [\n  }\n}\nentity A\nenum B { X }"
	result, err := Parse(src)
	require.NoError(t, err)
	assert.NotEmpty(t, result.ParseErrors)
	assert.Len(t, result.CST.Rules(KindEntityDeclaration), 1)
	assert.Len(t, result.CST.Rules(KindEnumDeclaration), 1)
}

func TestRecoveryErrorsInSourceOrder(t *testing.T) {
	src := "entity A {\n  a\n}\nx = \nentity B {\n  b String min(\n}"
	result, err := Parse(src)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(result.ParseErrors), 3)
	for i := 1; i < len(result.ParseErrors); i++ {
		prev, cur := result.ParseErrors[i-1], result.ParseErrors[i]
		if cur.Line == 0 {
			continue
		}
		assert.True(t, prev.Line < cur.Line || (prev.Line == cur.Line && prev.Column < cur.Column),
			"error %d at %d:%d precedes error %d at %d:%d", i, cur.Line, cur.Column, i-1, prev.Line, prev.Column)
	}
}

func TestRecoveryOneErrorPerToken(t *testing.T) {
	result, err := Parse("application { config { baseName")
	require.NoError(t, err)
	require.Len(t, result.ParseErrors, 1)
	assert.Equal(t, 0, result.ParseErrors[0].Line)
}

func TestRecoveryLexErrorsDoNotStopParsing(t *testing.T) {
	result, err := Parse("entity A {\n  name String ### required\n}")
	require.NoError(t, err)
	assert.Len(t, result.LexErrors, 1)
	assert.Empty(t, result.ParseErrors)
	field := result.CST.FirstChildOfKind(KindEntityDeclaration).
		FirstChildOfKind(KindEntityBody).FirstChildOfKind(KindFieldDeclaration)
	assert.Len(t, field.Rules(KindValidation), 1)
}

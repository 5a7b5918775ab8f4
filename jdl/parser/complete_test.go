package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestEmptyInput(t *testing.T) {
	got, err := Suggest("")
	require.NoError(t, err)

	want := []TokenKind{
		TokenComment, TokenAt, TokenEntity, TokenRelationship, TokenEnum,
		TokenApplication, TokenDeployment,
	}
	want = append(want, ExpandCategory(TokenUnaryOption)...)
	want = append(want, ExpandCategory(TokenBinaryOption)...)
	want = append(want, TokenName)
	assert.Equal(t, want, got)
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name    string
		partial string
		opts    []Option
		want    []TokenKind
	}{
		{
			name:    "after field type",
			partial: "name String ",
			opts:    []Option{WithStartRule("fieldDeclaration")},
			want:    []TokenKind{TokenRequired, TokenUnique, TokenMinMaxKeyword, TokenPattern, TokenComment},
		},
		{
			name:    "inside entity body",
			partial: "entity A {\n  name String ",
			want: []TokenKind{
				TokenRequired, TokenUnique, TokenMinMaxKeyword, TokenPattern, TokenComment,
				TokenComma, TokenAt, TokenName, TokenRBrace,
			},
		},
		{
			name:    "relationship type",
			partial: "relationship ",
			want:    []TokenKind{TokenRelationshipType},
		},
		{
			name:    "empty entity body",
			partial: "entity A {",
			want:    []TokenKind{TokenComment, TokenAt, TokenName, TokenRBrace},
		},
		{
			name:    "after min keyword",
			partial: "entity A { a Integer min",
			want:    []TokenKind{TokenLParen},
		},
		{
			name:    "min max argument",
			partial: "entity A { a Integer min(",
			want:    []TokenKind{TokenInteger, TokenDecimal, TokenName},
		},
		{
			name:    "config block",
			partial: "application { config {",
			want:    []TokenKind{TokenComment, TokenConfigKey, TokenRBrace},
		},
		{
			name:    "option value",
			partial: "deployment { istio ",
			want:    []TokenKind{TokenName, TokenLBracket, TokenInteger, TokenString, TokenBoolean},
		},
		{
			name:    "entity list",
			partial: "dto ",
			want:    []TokenKind{TokenEquals, TokenStar, TokenAll, TokenName},
		},
		{
			name:    "binary option value",
			partial: "dto * ",
			want:    []TokenKind{TokenWith},
		},
		{
			name:    "validation start rule",
			partial: "",
			opts:    []Option{WithStartRule("validation")},
			want:    []TokenKind{TokenRequired, TokenUnique, TokenMinMaxKeyword, TokenPattern},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Suggest(tt.partial, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestAfterEntityName(t *testing.T) {
	got, err := Suggest("entity A")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(got), 3)
	assert.Equal(t, []TokenKind{TokenLParen, TokenLBrace, TokenComment}, got[:3])
}

func TestSuggestNeverIncludesEOF(t *testing.T) {
	for _, partial := range []string{"", "a = 1", "entity A {}", "name String"} {
		got, err := Suggest(partial)
		require.NoError(t, err)
		assert.NotContains(t, got, TokenEOF, partial)
		assert.NotNil(t, got)
	}
}

func TestSuggestUnknownStartRule(t *testing.T) {
	_, err := Suggest("", WithStartRule("missing"))
	assert.ErrorIs(t, err, ErrUnknownStartRule)
}

func TestSuggestIsDeterministic(t *testing.T) {
	first, err := Suggest("entity A {\n  name String ")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Suggest("entity A {\n  name String ")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

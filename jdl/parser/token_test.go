package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{TokenEOF, "EOF"},
		{TokenName, "NAME"},
		{TokenLBrace, "LCURLY"},
		{TokenMinMaxKeyword, "MIN_MAX_KEYWORD"},
		{TokenEntity, "ENTITY"},
		{TokenMinLength, "MINLENGTH"},
		{TokenOneToMany, "ONE_TO_MANY"},
		{TokenNoFluentMethod, "NO_FLUENT_METHOD"},
		{LookupKeyword("baseName"), "BASE_NAME"},
		{LookupKeyword("kubernetesServiceType"), "KUBERNETES_SERVICE_TYPE"},
		{TokenKind(-1), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestTokenKindIs(t *testing.T) {
	tests := []struct {
		kind     TokenKind
		category TokenKind
		want     bool
	}{
		{TokenMin, TokenMinMaxKeyword, true},
		{TokenMaxBytes, TokenMinMaxKeyword, true},
		{TokenRequired, TokenMinMaxKeyword, false},
		{TokenMin, TokenName, true},
		{TokenPattern, TokenName, true},
		{TokenRequired, TokenName, false},
		{TokenTo, TokenName, false},
		{TokenManyToMany, TokenRelationshipType, true},
		{TokenFalse, TokenBoolean, true},
		{TokenSkipClient, TokenUnaryOption, true},
		{TokenSkipClient, TokenConfigKey, true},
		{TokenSkipClient, TokenName, true},
		{TokenDto, TokenBinaryOption, true},
		{TokenDto, TokenUnaryOption, false},
		{TokenEntity, TokenName, false},
		{TokenConfig, TokenName, true},
		{LookupKeyword("serviceDiscoveryType"), TokenConfigKey, true},
		{LookupKeyword("serviceDiscoveryType"), TokenDeploymentKey, true},
		{LookupKeyword("baseName"), TokenDeploymentKey, false},
		{LookupKeyword("istio"), TokenDeploymentKey, true},
		{TokenName, TokenName, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.category.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Is(tt.category))
		})
	}
}

func TestExpandCategory(t *testing.T) {
	assert.Equal(t,
		[]TokenKind{TokenMin, TokenMax, TokenMinLength, TokenMaxLength, TokenMinBytes, TokenMaxBytes},
		ExpandCategory(TokenMinMaxKeyword))
	assert.Equal(t,
		[]TokenKind{TokenOneToOne, TokenOneToMany, TokenManyToOne, TokenManyToMany},
		ExpandCategory(TokenRelationshipType))
	assert.Equal(t, []TokenKind{TokenTrue, TokenFalse}, ExpandCategory(TokenBoolean))
	assert.Equal(t, []TokenKind{TokenEntity}, ExpandCategory(TokenEntity))
	assert.Len(t, ExpandCategory(TokenUnaryOption), 6)
	assert.Len(t, ExpandCategory(TokenBinaryOption), 7)
	assert.Len(t, ExpandCategory(TokenDeploymentKey), 18)

	configKeys := ExpandCategory(TokenConfigKey)
	assert.Contains(t, configKeys, TokenSkipClient)
	assert.Contains(t, configKeys, LookupKeyword("applicationType"))
}

func TestExpandCategoryReturnsCopy(t *testing.T) {
	expanded := ExpandCategory(TokenBoolean)
	expanded[0] = TokenName
	assert.Equal(t, []TokenKind{TokenTrue, TokenFalse}, ExpandCategory(TokenBoolean))
}

func TestTokenKindLiteral(t *testing.T) {
	assert.Equal(t, "entity", TokenEntity.Literal())
	assert.Equal(t, "{", TokenLBrace.Literal())
	assert.Equal(t, "clientThemeVariant", LookupKeyword("clientThemeVariant").Literal())
	assert.Equal(t, "", TokenName.Literal())
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []TokenKind{TokenUnaryOption, TokenConfigKey, TokenName}, Categories(TokenSkipClient))
	assert.Empty(t, Categories(TokenEntity))
	assert.True(t, TokenConfigKey.IsCategory())
	assert.False(t, TokenName.IsCategory())
}

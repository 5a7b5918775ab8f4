package parser

import (
	"regexp"
	"strings"
)

type valueType int

const (
	valueName valueType = iota
	// valueNameOrBoolean accepts a name or a boolean literal.
	valueNameOrBoolean
	valueQualifiedName
	valueBoolean
	valueInteger
	valueString
	// valueList accepts names and strings.
	valueList
	valueNameList
)

type propertyRule struct {
	typ     valueType
	pattern *regexp.Regexp
}

var (
	lowerNamePattern    = regexp.MustCompile(`^[a-z]+$`)
	alphanumericPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
	dashedNamePattern   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)
	baseNamePattern     = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	npmPackagePattern   = regexp.MustCompile(`^@?([a-z0-9-][a-z0-9._-]*/)?[a-z0-9-][a-z0-9._-]*$`)

	hostnamePattern = regexp.MustCompile(`^"[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?(\.[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?)*"$`)

	entityNamePattern   = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	tableNamePattern    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	fieldNamePattern    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
	enumValuePattern    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	relationshipPattern = entityNamePattern
	enumNamePattern     = entityNamePattern
)

var configRules = map[string]propertyRule{
	"applicationType":        {valueName, lowerNamePattern},
	"authenticationType":     {valueName, lowerNamePattern},
	"baseName":               {valueName, baseNamePattern},
	"blueprint":              {valueName, npmPackagePattern},
	"blueprints":             {valueList, npmPackagePattern},
	"buildTool":              {valueName, lowerNamePattern},
	"cacheProvider":          {valueName, alphanumericPattern},
	"clientFramework":        {valueName, alphanumericPattern},
	"clientPackageManager":   {valueName, lowerNamePattern},
	"clientTheme":            {valueName, alphanumericPattern},
	"clientThemeVariant":     {valueName, alphanumericPattern},
	"databaseType":           {valueName, alphanumericPattern},
	"devDatabaseType":        {valueName, alphanumericPattern},
	"prodDatabaseType":       {valueName, alphanumericPattern},
	"dtoSuffix":              {valueName, alphanumericPattern},
	"entitySuffix":           {valueName, alphanumericPattern},
	"embeddableLaunchScript": {valueBoolean, nil},
	"enableHibernateCache":   {valueBoolean, nil},
	"enableSwaggerCodegen":   {valueBoolean, nil},
	"enableTranslation":      {valueBoolean, nil},
	"reactive":               {valueBoolean, nil},
	"skipClient":             {valueBoolean, nil},
	"skipServer":             {valueBoolean, nil},
	"skipUserManagement":     {valueBoolean, nil},
	"useSass":                {valueBoolean, nil},
	"frontendBuilder":        {valueName, lowerNamePattern},
	"jhiPrefix":              {valueName, baseNamePattern},
	"jhipsterVersion":        {valueString, regexp.MustCompile(`^"\d+\.\d+\.\d+"$`)},
	"jwtSecretKey":           {valueString, nil},
	"rememberMeKey":          {valueString, nil},
	"languages":              {valueList, regexp.MustCompile(`^[A-Za-z]+(-[A-Za-z]+)*$`)},
	"messageBroker":          {valueNameOrBoolean, dashedNamePattern},
	"searchEngine":           {valueNameOrBoolean, dashedNamePattern},
	"serviceDiscoveryType":   {valueNameOrBoolean, dashedNamePattern},
	"websocket":              {valueNameOrBoolean, dashedNamePattern},
	"nativeLanguage":         {valueName, regexp.MustCompile(`^[a-z]+(-[A-Za-z]+)*$`)},
	"packageFolder":          {valueString, regexp.MustCompile(`^"[a-z0-9_]+(/[a-z0-9_]+)*"$`)},
	"packageName":            {valueQualifiedName, regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)},
	"serverPort":             {valueInteger, nil},
	"testFrameworks":         {valueList, lowerNamePattern},
	"uaaBaseName":            {valueString, regexp.MustCompile(`^"[A-Za-z][A-Za-z0-9_-]*"$`)},
}

var deploymentRules = map[string]propertyRule{
	"deploymentType":        {valueName, regexp.MustCompile(`^[a-z]+(-[a-z]+)*$`)},
	"gatewayType":           {valueName, alphanumericPattern},
	"monitoring":            {valueName, alphanumericPattern},
	"serviceDiscoveryType":  {valueNameOrBoolean, dashedNamePattern},
	"storageType":           {valueName, alphanumericPattern},
	"ingressType":           {valueName, alphanumericPattern},
	"kubernetesServiceType": {valueName, alphanumericPattern},
	"consoleOptions":        {valueNameList, nil},
	"appsFolders":           {valueNameList, nil},
	"clusteredDbApps":       {valueNameList, nil},
	"directoryPath":         {valueString, regexp.MustCompile(`^"(\.\.?/|/)?[A-Za-z0-9_./-]*"$`)},
	"dockerRepositoryName":  {valueString, nil},
	"dockerPushCommand":     {valueString, nil},
	"ingressDomain":         {valueString, hostnamePattern},
	"kubernetesNamespace":   {valueName, regexp.MustCompile(`^[a-z0-9-]+$`)},
	"openshiftNamespace":    {valueName, regexp.MustCompile(`^[a-z0-9-]+$`)},
	"istio":                 {valueBoolean, nil},
	"registryReplicas":      {valueInteger, nil},
}

type syntaxValidator struct {
	err *ValidationError
}

// Validate checks declaration names and option values in the tree rooted at
// root and returns the first violation in source order. Tokens inserted by
// error recovery are not checked.
func Validate(root *Node) error {
	if root == nil {
		return nil
	}
	v := &syntaxValidator{}
	root.Walk(v.enter)
	if v.err != nil {
		return v.err
	}
	return nil
}

func (v *syntaxValidator) enter(n *Node) {
	if v.err != nil {
		return
	}
	switch n.Kind {
	case KindEntityDeclaration:
		v.checkName(n.FirstToken(TokenName), "entity", entityNamePattern)
	case KindEntityTableNameDeclaration:
		v.checkName(n.FirstToken(TokenName), "table", tableNamePattern)
	case KindFieldDeclaration:
		v.checkName(n.FirstToken(TokenName), "field", fieldNamePattern)
	case KindEnumDeclaration:
		v.checkName(n.FirstToken(TokenName), "enum", enumNamePattern)
	case KindEnumProp:
		v.checkName(n.FirstToken(TokenName), "enum value", enumValuePattern)
	case KindRelationshipSide:
		v.checkName(n.FirstToken(TokenName), "relationship entity", relationshipPattern)
	case KindConfigProperty:
		v.checkProperty(n, configRules)
	case KindDeploymentProperty:
		v.checkProperty(n, deploymentRules)
	}
}

func (v *syntaxValidator) checkName(tok *Token, what string, pattern *regexp.Regexp) {
	if tok == nil || tok.Inserted {
		return
	}
	if !pattern.MatchString(tok.Literal) {
		v.err = newValidationError(*tok, "The %s name must match: %s", what, pattern)
	}
}

func (v *syntaxValidator) checkProperty(n *Node, rules map[string]propertyRule) {
	key := n.FirstToken(TokenName)
	value := n.FirstChildOfKind(KindOptionValue)
	if key == nil || key.Inserted || value == nil || n.Recovered {
		return
	}
	rule, ok := rules[key.Literal]
	if !ok {
		return
	}
	v.err = checkValue(key.Literal, rule, value)
}

func checkValue(property string, rule propertyRule, value *Node) *ValidationError {
	tok := firstToken(value)
	if tok == nil || tok.Inserted {
		return nil
	}
	image := nodeImage(value)
	qualified := value.FirstChildOfKind(KindQualifiedName)
	list := value.FirstChildOfKind(KindList)

	switch rule.typ {
	case valueNameOrBoolean:
		if tok.Kind.Is(TokenBoolean) && list == nil {
			return nil
		}
		fallthrough
	case valueName:
		if qualified == nil {
			return newValidationError(*tok, `A name is expected, but found: "%s"`, image)
		}
		if len(qualified.Tokens(TokenName)) > 1 {
			return newValidationError(*tok, "A single name is expected, but found a fully qualified name")
		}
		return checkPattern(property, rule, *tok, tok.Literal)
	case valueQualifiedName:
		if qualified == nil {
			return newValidationError(*tok, `A fully qualified name is expected, but found: "%s"`, image)
		}
		for _, segment := range qualified.Tokens(TokenName) {
			if err := checkPattern(property, rule, segment, segment.Literal); err != nil {
				return err
			}
		}
	case valueBoolean:
		if !tok.Kind.Is(TokenBoolean) || list != nil {
			return newValidationError(*tok, `A boolean literal is expected, but found: "%s"`, image)
		}
	case valueInteger:
		if tok.Kind != TokenInteger {
			return newValidationError(*tok, `An integer literal is expected, but found: "%s"`, image)
		}
	case valueString:
		if tok.Kind != TokenString {
			return newValidationError(*tok, `A string literal is expected, but found: "%s"`, image)
		}
		return checkPattern(property, rule, *tok, tok.Literal)
	case valueList, valueNameList:
		if list == nil {
			return newValidationError(*tok, `An array of names is expected, but found: "%s"`, image)
		}
		for _, item := range list.Rules(KindListItem) {
			itemTok := firstToken(item)
			if itemTok == nil || itemTok.Inserted {
				continue
			}
			name := item.FirstChildOfKind(KindQualifiedName)
			switch {
			case itemTok.Kind == TokenString && rule.typ == valueList:
				if err := checkPattern(property, rule, *itemTok, strings.Trim(itemTok.Literal, `"`)); err != nil {
					return err
				}
			case name == nil || len(name.Tokens(TokenName)) > 1:
				return newValidationError(*itemTok, `An array of names is expected, but found: "%s"`, image)
			default:
				if err := checkPattern(property, rule, *itemTok, itemTok.Literal); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkPattern(property string, rule propertyRule, tok Token, text string) *ValidationError {
	if rule.pattern == nil || rule.pattern.MatchString(text) {
		return nil
	}
	return newValidationError(tok, "The %s property name must match: %s", property, rule.pattern)
}

func firstToken(n *Node) *Token {
	var found *Token
	n.Walk(func(child *Node) {
		if found == nil && child.Token != nil {
			found = child.Token
		}
	})
	return found
}

// nodeImage concatenates the literals of all tokens under n.
func nodeImage(n *Node) string {
	var sb strings.Builder
	n.Walk(func(child *Node) {
		if child.Token != nil {
			sb.WriteString(child.Token.Literal)
		}
	})
	return sb.String()
}

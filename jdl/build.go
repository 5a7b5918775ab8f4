package jdl

import (
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/dhamidi/jdl/jdl/parser"
)

// Build converts a CST into a Program. The root is normally a prog node; any
// top-level declaration node yields a program holding just that declaration.
// Use BuildEntity and BuildField for narrower start rules. Nodes abandoned by
// error recovery contribute whatever they contain.
func Build(cst *parser.Node) *Program {
	prog := newProgram()
	if cst == nil {
		return prog
	}
	if cst.Kind != parser.KindProg {
		prog.addDeclaration(cst)
		return prog
	}
	for _, child := range cst.Children {
		prog.addDeclaration(child)
	}
	return prog
}

func (p *Program) addDeclaration(n *parser.Node) {
	switch n.Kind {
	case parser.KindConstantDeclaration:
		p.Constants = append(p.Constants, buildConstant(n))
	case parser.KindEntityDeclaration:
		p.Entities = append(p.Entities, BuildEntity(n))
	case parser.KindEnumDeclaration:
		p.Enums = append(p.Enums, buildEnum(n))
	case parser.KindRelationDeclaration:
		p.Relationships = append(p.Relationships, buildRelationships(n)...)
	case parser.KindUnaryOptionDeclaration, parser.KindBinaryOptionDeclaration:
		p.Options = append(p.Options, buildOption(n))
	case parser.KindApplicationDeclaration:
		p.Applications = append(p.Applications, buildApplication(n))
	case parser.KindDeploymentDeclaration:
		p.Deployments = append(p.Deployments, buildDeployment(n))
	}
}

func buildConstant(n *parser.Node) Constant {
	c := Constant{Name: literal(n.FirstToken(parser.TokenName))}
	for _, kind := range []parser.TokenKind{parser.TokenInteger, parser.TokenDecimal} {
		if tok := n.FirstToken(kind); tok != nil {
			c.Value, _ = strconv.ParseFloat(tok.Literal, 64)
			break
		}
	}
	return c
}

// BuildEntity converts an entityDeclaration node. The table name defaults to
// the entity name.
func BuildEntity(n *parser.Node) Entity {
	e := Entity{
		Name:        literal(n.FirstToken(parser.TokenName)),
		Javadoc:     leadingJavadoc(n),
		Annotations: buildAnnotations(n),
		Fields:      []Field{},
	}
	e.TableName = e.Name
	if table := n.FirstChildOfKind(parser.KindEntityTableNameDeclaration); table != nil {
		if name := table.FirstToken(parser.TokenName); name != nil && name.Literal != "" {
			e.TableName = name.Literal
		}
	}
	if body := n.FirstChildOfKind(parser.KindEntityBody); body != nil {
		for _, field := range body.Rules(parser.KindFieldDeclaration) {
			e.Fields = append(e.Fields, BuildField(field))
		}
	}
	return e
}

// BuildField converts a fieldDeclaration node. A javadoc before the field
// wins over a trailing comment on the same line.
func BuildField(n *parser.Node) Field {
	f := Field{
		Javadoc:     leadingJavadoc(n),
		Annotations: buildAnnotations(n),
		Validations: []Validation{},
	}
	names := n.Tokens(parser.TokenName)
	if len(names) > 0 {
		f.Name = names[0].Literal
	}
	if len(names) > 1 {
		f.Type = names[1].Literal
	}
	if f.Javadoc == "" {
		if comments := n.Tokens(parser.TokenComment); len(comments) > 0 {
			f.Javadoc = stripJavadoc(comments[len(comments)-1].Literal)
		}
	}
	for _, v := range n.Rules(parser.KindValidation) {
		if validation, ok := buildValidation(v); ok {
			f.Validations = append(f.Validations, validation)
		}
	}
	return f
}

func buildValidation(n *parser.Node) (Validation, bool) {
	if len(n.Children) == 0 {
		return Validation{}, false
	}
	child := n.Children[0]
	switch child.Kind {
	case parser.KindToken:
		return Validation{Type: child.Token.Literal}, true
	case parser.KindMinMaxValidation:
		v := Validation{Type: literal(child.FirstToken(parser.TokenMinMaxKeyword))}
		if tok := limitToken(child); tok != nil && tok.Kind.Is(parser.TokenName) {
			v.Limit, v.LimitKind = tok.Literal, LimitConstant
		} else if tok := numberToken(child); tok != nil {
			v.Limit, v.LimitKind = tok.Literal, LimitLiteral
		}
		return v, true
	case parser.KindPattern:
		v := Validation{Type: literal(child.FirstToken(parser.TokenPattern)), LimitKind: LimitLiteral}
		if tok := child.FirstToken(parser.TokenRegex); tok != nil {
			v.Limit = unquote(tok.Literal, '/')
		}
		return v, true
	}
	return Validation{}, false
}

// limitToken returns the token inside the parentheses of a min/max
// validation. The keyword itself also counts as a name.
func limitToken(n *parser.Node) *parser.Token {
	for i, child := range n.Children {
		if child.Token != nil && child.Token.Kind == parser.TokenLParen && i+1 < len(n.Children) {
			return n.Children[i+1].Token
		}
	}
	return nil
}

func numberToken(n *parser.Node) *parser.Token {
	if tok := n.FirstToken(parser.TokenInteger); tok != nil {
		return tok
	}
	return n.FirstToken(parser.TokenDecimal)
}

func buildAnnotations(n *parser.Node) []Annotation {
	annotations := []Annotation{}
	for _, a := range n.Rules(parser.KindAnnotationDeclaration) {
		annotations = append(annotations, buildAnnotation(a))
	}
	return annotations
}

func buildAnnotation(n *parser.Node) Annotation {
	a := Annotation{Type: AnnotationUnary}
	names := n.Tokens(parser.TokenName)
	if len(names) > 0 {
		a.Option = strcase.ToLowerCamel(names[0].Literal)
	}
	if n.FirstToken(parser.TokenLParen) == nil {
		return a
	}
	a.Type = AnnotationBinary
	switch {
	case len(names) > 1:
		a.Method = names[1].Literal
	case n.FirstToken(parser.TokenString) != nil:
		a.Method = unquote(n.FirstToken(parser.TokenString).Literal, '"')
	case n.FirstToken(parser.TokenInteger) != nil:
		a.Method = n.FirstToken(parser.TokenInteger).Literal
	}
	return a
}

func buildEnum(n *parser.Node) Enum {
	e := Enum{
		Name:    literal(n.FirstToken(parser.TokenName)),
		Javadoc: leadingJavadoc(n),
		Values:  []EnumValue{},
	}
	list := n.FirstChildOfKind(parser.KindEnumPropList)
	if list == nil {
		return e
	}
	for _, prop := range list.Rules(parser.KindEnumProp) {
		v := EnumValue{Javadoc: leadingJavadoc(prop)}
		names := prop.Tokens(parser.TokenName)
		if len(names) > 0 {
			v.Name = names[0].Literal
		}
		if len(names) > 1 {
			v.Value = names[1].Literal
		} else if tok := prop.FirstToken(parser.TokenString); tok != nil {
			v.Value = unquote(tok.Literal, '"')
		}
		e.Values = append(e.Values, v)
	}
	return e
}

func buildRelationships(n *parser.Node) []Relationship {
	cardinality := literal(n.FirstToken(parser.TokenRelationshipType))
	var result []Relationship
	for _, body := range n.Rules(parser.KindRelationshipBody) {
		r := Relationship{Cardinality: cardinality}
		annotations := []Annotation{}
		sides := 0
		for _, child := range body.Children {
			switch child.Kind {
			case parser.KindAnnotationDeclaration:
				annotations = append(annotations, buildAnnotation(child))
			case parser.KindRelationshipSide:
				side := buildRelationshipSide(child, annotations)
				annotations = []Annotation{}
				if sides == 0 {
					r.From = side
				} else {
					r.To = side
				}
				sides++
			}
		}
		r.With = tokenAfter(body, parser.TokenWith)
		if sides < 2 {
			r.To.Annotations = annotations
		}
		if r.From.Annotations == nil {
			r.From.Annotations = []Annotation{}
		}
		result = append(result, r)
	}
	return result
}

func buildRelationshipSide(n *parser.Node, annotations []Annotation) RelationshipSide {
	side := RelationshipSide{
		Javadoc:     leadingJavadoc(n),
		Annotations: annotations,
		Required:    n.FirstToken(parser.TokenRequired) != nil,
	}
	names := n.Tokens(parser.TokenName)
	if len(names) > 0 {
		side.Entity = names[0].Literal
	}
	if len(names) > 1 {
		side.InjectedField = names[1].Literal
	}
	if len(names) > 2 {
		side.DisplayField = names[2].Literal
	}
	return side
}

func buildOption(n *parser.Node) Option {
	o := Option{Entities: []string{}, Excluded: []string{}}
	if len(n.Children) > 0 {
		o.Name = n.Children[0].TokenLiteral()
	}
	o.Value = tokenAfter(n, parser.TokenWith)
	if list := n.FirstChildOfKind(parser.KindEntityList); list != nil {
		o.Entities = entityNames(list)
	}
	if exclusion := n.FirstChildOfKind(parser.KindExclusion); exclusion != nil {
		o.Excluded = entityNames(exclusion)
	}
	return o
}

func entityNames(n *parser.Node) []string {
	names := []string{}
	if n.FirstToken(parser.TokenStar) != nil || n.FirstToken(parser.TokenAll) != nil {
		return append(names, "*")
	}
	for _, tok := range n.Tokens(parser.TokenName) {
		names = append(names, tok.Literal)
	}
	return names
}

func buildApplication(n *parser.Node) Application {
	app := Application{
		Config:   map[string]any{},
		Entities: []string{},
		Excluded: []string{},
		Options:  []Option{},
	}
	for _, child := range n.Children {
		switch child.Kind {
		case parser.KindApplicationSubConfig:
			addProperties(app.Config, child.Rules(parser.KindConfigProperty))
		case parser.KindApplicationSubEntities:
			if list := child.FirstChildOfKind(parser.KindEntityList); list != nil {
				app.Entities = append(app.Entities, entityNames(list)...)
			}
			if exclusion := child.FirstChildOfKind(parser.KindExclusion); exclusion != nil {
				app.Excluded = append(app.Excluded, entityNames(exclusion)...)
			}
		case parser.KindUnaryOptionDeclaration, parser.KindBinaryOptionDeclaration:
			app.Options = append(app.Options, buildOption(child))
		}
	}
	return app
}

func buildDeployment(n *parser.Node) Deployment {
	d := Deployment{Properties: map[string]any{}}
	addProperties(d.Properties, n.Rules(parser.KindDeploymentProperty))
	return d
}

func addProperties(dst map[string]any, properties []*parser.Node) {
	for _, property := range properties {
		if len(property.Children) == 0 {
			continue
		}
		key := property.Children[0].TokenLiteral()
		value := property.FirstChildOfKind(parser.KindOptionValue)
		if key == "" || value == nil {
			continue
		}
		dst[key] = optionValue(value)
	}
}

// optionValue converts an optionValue node to string, bool, int64 or
// []string.
func optionValue(n *parser.Node) any {
	if len(n.Children) == 0 {
		return ""
	}
	child := n.Children[0]
	switch child.Kind {
	case parser.KindQualifiedName:
		return qualifiedName(child)
	case parser.KindList:
		items := []string{}
		for _, item := range child.Rules(parser.KindListItem) {
			items = append(items, listItem(item))
		}
		return items
	}
	tok := child.Token
	if tok == nil {
		return ""
	}
	switch {
	case tok.Kind.Is(parser.TokenBoolean):
		return tok.Kind == parser.TokenTrue
	case tok.Kind == parser.TokenInteger:
		if i, err := strconv.ParseInt(tok.Literal, 10, 64); err == nil {
			return i
		}
		return tok.Literal
	case tok.Kind == parser.TokenString:
		return unquote(tok.Literal, '"')
	}
	return tok.Literal
}

func listItem(n *parser.Node) string {
	if qn := n.FirstChildOfKind(parser.KindQualifiedName); qn != nil {
		return qualifiedName(qn)
	}
	if tok := n.FirstToken(parser.TokenString); tok != nil {
		return unquote(tok.Literal, '"')
	}
	return literal(n.FirstToken(parser.TokenInteger))
}

func qualifiedName(n *parser.Node) string {
	var sb strings.Builder
	for _, child := range n.Children {
		sb.WriteString(child.TokenLiteral())
	}
	return sb.String()
}

func leadingJavadoc(n *parser.Node) string {
	if len(n.Children) == 0 || !n.Children[0].IsToken() || n.Children[0].Token.Kind != parser.TokenComment {
		return ""
	}
	return stripJavadoc(n.Children[0].Token.Literal)
}

// tokenAfter returns the literal of the terminal following the first child
// of the given kind.
func tokenAfter(n *parser.Node, kind parser.TokenKind) string {
	for i, child := range n.Children {
		if child.IsToken() && child.Token.Kind == kind && i+1 < len(n.Children) {
			return n.Children[i+1].TokenLiteral()
		}
	}
	return ""
}

func literal(tok *parser.Token) string {
	if tok == nil {
		return ""
	}
	return tok.Literal
}

// unquote removes the delimiter around s and unescapes delimiters inside it.
func unquote(s string, delim byte) string {
	if len(s) >= 2 && s[0] == delim && s[len(s)-1] == delim {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, `\`+string(delim), string(delim))
}

package parser

import "strings"

type NodeKind int

const (
	// KindToken is a terminal; its Token field is set.
	KindToken NodeKind = iota

	KindProg
	KindConstantDeclaration

	// Entities
	KindEntityDeclaration
	KindAnnotationDeclaration
	KindEntityTableNameDeclaration
	KindEntityBody
	KindFieldDeclaration
	KindValidation
	KindMinMaxValidation
	KindPattern

	// Relationships
	KindRelationDeclaration
	KindRelationshipBody
	KindRelationshipSide

	// Enums
	KindEnumDeclaration
	KindEnumPropList
	KindEnumProp

	// Options
	KindUnaryOptionDeclaration
	KindBinaryOptionDeclaration
	KindEntityList
	KindExclusion

	// Applications and deployments
	KindApplicationDeclaration
	KindApplicationSubConfig
	KindConfigProperty
	KindApplicationSubEntities
	KindDeploymentDeclaration
	KindDeploymentProperty
	KindOptionValue
	KindQualifiedName
	KindList
	KindListItem
)

// Rule names follow the grammar so they double as start rule names.
var nodeKindNames = map[NodeKind]string{
	KindToken:                      "Token",
	KindProg:                       "prog",
	KindConstantDeclaration:        "constantDeclaration",
	KindEntityDeclaration:          "entityDeclaration",
	KindAnnotationDeclaration:      "annotationDeclaration",
	KindEntityTableNameDeclaration: "entityTableNameDeclaration",
	KindEntityBody:                 "entityBody",
	KindFieldDeclaration:           "fieldDeclaration",
	KindValidation:                 "validation",
	KindMinMaxValidation:           "minMaxValidation",
	KindPattern:                    "pattern",
	KindRelationDeclaration:        "relationDeclaration",
	KindRelationshipBody:           "relationshipBody",
	KindRelationshipSide:           "relationshipSide",
	KindEnumDeclaration:            "enumDeclaration",
	KindEnumPropList:               "enumPropList",
	KindEnumProp:                   "enumProp",
	KindUnaryOptionDeclaration:     "unaryOptionDeclaration",
	KindBinaryOptionDeclaration:    "binaryOptionDeclaration",
	KindEntityList:                 "entityList",
	KindExclusion:                  "exclusion",
	KindApplicationDeclaration:     "applicationDeclaration",
	KindApplicationSubConfig:       "applicationSubConfig",
	KindConfigProperty:             "configProperty",
	KindApplicationSubEntities:     "applicationSubEntities",
	KindDeploymentDeclaration:      "deploymentDeclaration",
	KindDeploymentProperty:         "deploymentProperty",
	KindOptionValue:                "optionValue",
	KindQualifiedName:              "qualifiedName",
	KindList:                       "list",
	KindListItem:                   "listItem",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	// Recovered is set when re-sync recovery abandoned the rule; children
	// after the failure point are missing.
	Recovered bool
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) addToken(tok Token) {
	n.Children = append(n.Children, &Node{Kind: KindToken, Span: tok.Span, Token: &tok})
}

func (n *Node) IsToken() bool {
	return n.Kind == KindToken
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

// Rules returns the rule children of the given kind in source order.
func (n *Node) Rules(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// Tokens returns the terminal children matching kind, which may be a
// category, in source order.
func (n *Node) Tokens(kind TokenKind) []Token {
	var result []Token
	for _, child := range n.Children {
		if child.Token != nil && child.Token.Kind.Is(kind) {
			result = append(result, *child.Token)
		}
	}
	return result
}

// FirstToken returns the first terminal child matching kind.
func (n *Node) FirstToken(kind TokenKind) *Token {
	for _, child := range n.Children {
		if child.Token != nil && child.Token.Kind.Is(kind) {
			return child.Token
		}
	}
	return nil
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Walk visits n and its descendants depth-first in source order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0, false)
	return sb.String()
}

func (n *Node) StringWithPositions() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0, true)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int, showPositions bool) {
	sb.WriteString(strings.Repeat("  ", indent))
	if n.Token != nil {
		sb.WriteString(n.Token.Kind.String())
	} else {
		sb.WriteString(n.Kind.String())
	}
	if showPositions {
		sb.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Token != nil {
		if n.Token.Inserted {
			sb.WriteString(" <inserted>")
		} else {
			sb.WriteString(" " + n.Token.Literal)
		}
	}
	if n.Recovered {
		sb.WriteString(" <recovered>")
	}
	sb.WriteString("\n")

	for _, child := range n.Children {
		child.writeIndent(sb, indent+1, showPositions)
	}
}

// Package jdl turns JDL concrete syntax trees into a plain semantic model
// for code generators.
package jdl

// Program is the semantic tree of a JDL document. Every slice and map is
// non-nil, even when empty.
type Program struct {
	Constants     []Constant
	Entities      []Entity
	Enums         []Enum
	Relationships []Relationship
	Options       []Option
	Applications  []Application
	Deployments   []Deployment
}

func newProgram() *Program {
	return &Program{
		Constants:     []Constant{},
		Entities:      []Entity{},
		Enums:         []Enum{},
		Relationships: []Relationship{},
		Options:       []Option{},
		Applications:  []Application{},
		Deployments:   []Deployment{},
	}
}

// Entity returns the entity with the given name, or nil.
func (p *Program) Entity(name string) *Entity {
	for i := range p.Entities {
		if p.Entities[i].Name == name {
			return &p.Entities[i]
		}
	}
	return nil
}

type Constant struct {
	Name string
	// Value is zero when the literal was synthesized by error recovery.
	Value float64
}

type AnnotationType string

const (
	AnnotationUnary  AnnotationType = "UNARY"
	AnnotationBinary AnnotationType = "BINARY"
)

// Annotation is an `@Option` or `@Option(method)` attached to a declaration.
// Option is the annotation name with its first letter lowered.
type Annotation struct {
	Option string
	Type   AnnotationType
	Method string
}

type Entity struct {
	Name        string
	TableName   string
	Javadoc     string
	Annotations []Annotation
	Fields      []Field
}

// Field returns the field with the given name, or nil.
func (e *Entity) Field(name string) *Field {
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			return &e.Fields[i]
		}
	}
	return nil
}

type Field struct {
	Name        string
	Type        string
	Javadoc     string
	Annotations []Annotation
	Validations []Validation
}

type LimitKind string

const (
	LimitNone     LimitKind = ""
	LimitLiteral  LimitKind = "literal"
	LimitConstant LimitKind = "constant"
)

// Validation is a field constraint. Type is the keyword as written
// (required, unique, min, maxlength, pattern, ...). For min/max validations
// Limit is the number or the name of a constant; for patterns it is the
// regular expression without its delimiters.
type Validation struct {
	Type      string
	Limit     string
	LimitKind LimitKind
}

type Enum struct {
	Name    string
	Javadoc string
	Values  []EnumValue
}

type EnumValue struct {
	Name string
	// Value is the custom value in parentheses with quotes removed.
	Value   string
	Javadoc string
}

type Relationship struct {
	Cardinality string
	From        RelationshipSide
	To          RelationshipSide
	// With names the built-in entity given by `with NAME`.
	With string
}

type RelationshipSide struct {
	Entity        string
	InjectedField string
	DisplayField  string
	Required      bool
	Javadoc       string
	Annotations   []Annotation
}

// Option is a unary or binary option declaration such as `dto * with
// mapstruct except A`. Entities holds "*" for both `*` and `all`.
type Option struct {
	Name     string
	Value    string
	Entities []string
	Excluded []string
}

// Application holds the config block, the `entities` selection and the
// options declared inside an application block. Config values are string,
// bool, int64 or []string.
type Application struct {
	Config   map[string]any
	Entities []string
	Excluded []string
	Options  []Option
}

// BaseName returns the baseName config value, if any.
func (a *Application) BaseName() string {
	name, _ := a.Config["baseName"].(string)
	return name
}

type Deployment struct {
	Properties map[string]any
}

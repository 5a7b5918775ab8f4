package format

import "github.com/dhamidi/jdl/jdl"

// The document types mirror jdl.Program with stable field names. Empty
// top-level collections are written as empty lists, never omitted.

type programDoc struct {
	Constants     []constantDoc     `json:"constants" yaml:"constants"`
	Entities      []entityDoc       `json:"entities" yaml:"entities"`
	Enums         []enumDoc         `json:"enums" yaml:"enums"`
	Relationships []relationshipDoc `json:"relationships" yaml:"relationships"`
	Options       []optionDoc       `json:"options" yaml:"options"`
	Applications  []applicationDoc  `json:"applications" yaml:"applications"`
	Deployments   []map[string]any  `json:"deployments" yaml:"deployments"`
}

type constantDoc struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

type annotationDoc struct {
	Option string `json:"optionName" yaml:"optionName"`
	Type   string `json:"type" yaml:"type"`
	Method string `json:"optionValue,omitempty" yaml:"optionValue,omitempty"`
}

type entityDoc struct {
	Name        string          `json:"name" yaml:"name"`
	TableName   string          `json:"tableName" yaml:"tableName"`
	Javadoc     string          `json:"javadoc,omitempty" yaml:"javadoc,omitempty"`
	Annotations []annotationDoc `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Fields      []fieldDoc      `json:"fields" yaml:"fields"`
}

type fieldDoc struct {
	Name        string          `json:"name" yaml:"name"`
	Type        string          `json:"type" yaml:"type"`
	Javadoc     string          `json:"javadoc,omitempty" yaml:"javadoc,omitempty"`
	Annotations []annotationDoc `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Validations []validationDoc `json:"validations,omitempty" yaml:"validations,omitempty"`
}

type validationDoc struct {
	Type      string `json:"type" yaml:"type"`
	Limit     string `json:"value,omitempty" yaml:"value,omitempty"`
	LimitKind string `json:"valueKind,omitempty" yaml:"valueKind,omitempty"`
}

type enumDoc struct {
	Name    string         `json:"name" yaml:"name"`
	Javadoc string         `json:"javadoc,omitempty" yaml:"javadoc,omitempty"`
	Values  []enumValueDoc `json:"values" yaml:"values"`
}

type enumValueDoc struct {
	Name    string `json:"key" yaml:"key"`
	Value   string `json:"value,omitempty" yaml:"value,omitempty"`
	Javadoc string `json:"javadoc,omitempty" yaml:"javadoc,omitempty"`
}

type relationshipDoc struct {
	Cardinality string  `json:"cardinality" yaml:"cardinality"`
	From        sideDoc `json:"from" yaml:"from"`
	To          sideDoc `json:"to" yaml:"to"`
	With        string  `json:"with,omitempty" yaml:"with,omitempty"`
}

type sideDoc struct {
	Entity        string          `json:"entity" yaml:"entity"`
	InjectedField string          `json:"injectedField,omitempty" yaml:"injectedField,omitempty"`
	DisplayField  string          `json:"displayField,omitempty" yaml:"displayField,omitempty"`
	Required      bool            `json:"required,omitempty" yaml:"required,omitempty"`
	Javadoc       string          `json:"javadoc,omitempty" yaml:"javadoc,omitempty"`
	Annotations   []annotationDoc `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

type optionDoc struct {
	Name     string   `json:"name" yaml:"name"`
	Value    string   `json:"value,omitempty" yaml:"value,omitempty"`
	Entities []string `json:"entityList" yaml:"entityList"`
	Excluded []string `json:"excludedEntityList,omitempty" yaml:"excludedEntityList,omitempty"`
}

type applicationDoc struct {
	Config   map[string]any `json:"config" yaml:"config"`
	Entities []string       `json:"entities,omitempty" yaml:"entities,omitempty"`
	Excluded []string       `json:"excludedEntities,omitempty" yaml:"excludedEntities,omitempty"`
	Options  []optionDoc    `json:"options,omitempty" yaml:"options,omitempty"`
}

func buildProgramDoc(p *jdl.Program) programDoc {
	doc := programDoc{
		Constants:     make([]constantDoc, 0, len(p.Constants)),
		Entities:      make([]entityDoc, 0, len(p.Entities)),
		Enums:         make([]enumDoc, 0, len(p.Enums)),
		Relationships: make([]relationshipDoc, 0, len(p.Relationships)),
		Options:       buildOptionDocs(p.Options),
		Applications:  make([]applicationDoc, 0, len(p.Applications)),
		Deployments:   make([]map[string]any, 0, len(p.Deployments)),
	}

	for _, c := range p.Constants {
		doc.Constants = append(doc.Constants, constantDoc{Name: c.Name, Value: c.Value})
	}

	for _, e := range p.Entities {
		ed := entityDoc{
			Name:        e.Name,
			TableName:   e.TableName,
			Javadoc:     e.Javadoc,
			Annotations: buildAnnotationDocs(e.Annotations),
			Fields:      make([]fieldDoc, 0, len(e.Fields)),
		}
		for _, f := range e.Fields {
			fd := fieldDoc{
				Name:        f.Name,
				Type:        f.Type,
				Javadoc:     f.Javadoc,
				Annotations: buildAnnotationDocs(f.Annotations),
			}
			for _, v := range f.Validations {
				fd.Validations = append(fd.Validations, validationDoc{
					Type:      v.Type,
					Limit:     v.Limit,
					LimitKind: string(v.LimitKind),
				})
			}
			ed.Fields = append(ed.Fields, fd)
		}
		doc.Entities = append(doc.Entities, ed)
	}

	for _, e := range p.Enums {
		ed := enumDoc{Name: e.Name, Javadoc: e.Javadoc, Values: make([]enumValueDoc, 0, len(e.Values))}
		for _, v := range e.Values {
			ed.Values = append(ed.Values, enumValueDoc{Name: v.Name, Value: v.Value, Javadoc: v.Javadoc})
		}
		doc.Enums = append(doc.Enums, ed)
	}

	for _, r := range p.Relationships {
		doc.Relationships = append(doc.Relationships, relationshipDoc{
			Cardinality: r.Cardinality,
			From:        buildSideDoc(r.From),
			To:          buildSideDoc(r.To),
			With:        r.With,
		})
	}

	for _, a := range p.Applications {
		ad := applicationDoc{
			Config:   a.Config,
			Entities: a.Entities,
			Excluded: a.Excluded,
		}
		if ad.Config == nil {
			ad.Config = map[string]any{}
		}
		if len(a.Options) > 0 {
			ad.Options = buildOptionDocs(a.Options)
		}
		doc.Applications = append(doc.Applications, ad)
	}

	for _, d := range p.Deployments {
		props := d.Properties
		if props == nil {
			props = map[string]any{}
		}
		doc.Deployments = append(doc.Deployments, props)
	}

	return doc
}

func buildSideDoc(s jdl.RelationshipSide) sideDoc {
	return sideDoc{
		Entity:        s.Entity,
		InjectedField: s.InjectedField,
		DisplayField:  s.DisplayField,
		Required:      s.Required,
		Javadoc:       s.Javadoc,
		Annotations:   buildAnnotationDocs(s.Annotations),
	}
}

func buildAnnotationDocs(annotations []jdl.Annotation) []annotationDoc {
	if len(annotations) == 0 {
		return nil
	}
	result := make([]annotationDoc, 0, len(annotations))
	for _, a := range annotations {
		result = append(result, annotationDoc{Option: a.Option, Type: string(a.Type), Method: a.Method})
	}
	return result
}

func buildOptionDocs(options []jdl.Option) []optionDoc {
	result := make([]optionDoc, 0, len(options))
	for _, o := range options {
		entities := o.Entities
		if entities == nil {
			entities = []string{}
		}
		result = append(result, optionDoc{
			Name:     o.Name,
			Value:    o.Value,
			Entities: entities,
			Excluded: o.Excluded,
		})
	}
	return result
}

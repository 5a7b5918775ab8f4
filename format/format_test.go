package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/jdl/jdl"
	"github.com/dhamidi/jdl/jdl/parser"
)

func sampleProgram() *jdl.Program {
	return &jdl.Program{
		Constants: []jdl.Constant{{Name: "MAX", Value: 42}},
		Entities: []jdl.Entity{{
			Name:      "A",
			TableName: "a",
			Fields: []jdl.Field{{
				Name:        "name",
				Type:        "String",
				Validations: []jdl.Validation{{Type: "maxlength", Limit: "MAX", LimitKind: jdl.LimitConstant}},
			}},
		}},
		Enums:         []jdl.Enum{},
		Relationships: []jdl.Relationship{},
		Options:       []jdl.Option{{Name: "dto", Value: "mapstruct", Entities: []string{"*"}}},
		Applications: []jdl.Application{{
			Config:   map[string]any{"baseName": "app", "serverPort": int64(8080)},
			Entities: []string{"A"},
		}},
		Deployments: []jdl.Deployment{},
	}
}

const sampleJSON = `{
  "constants": [{"name": "MAX", "value": 42}],
  "entities": [{
    "name": "A",
    "tableName": "a",
    "fields": [{
      "name": "name",
      "type": "String",
      "validations": [{"type": "maxlength", "value": "MAX", "valueKind": "constant"}]
    }]
  }],
  "enums": [],
  "relationships": [],
  "options": [{"name": "dto", "value": "mapstruct", "entityList": ["*"]}],
  "applications": [{
    "config": {"baseName": "app", "serverPort": 8080},
    "entities": ["A"]
  }],
  "deployments": []
}`

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(sampleProgram()))
	assert.JSONEq(t, sampleJSON, buf.String())
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"constants\": ["))
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
}

func TestYAMLEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLEncoder(&buf).Encode(sampleProgram()))

	want := `constants:
  - name: MAX
    value: 42
entities:
  - name: A
    tableName: a
    fields:
      - name: name
        type: String
        validations:
          - type: maxlength
            value: MAX
            valueKind: constant
enums: []
relationships: []
options:
  - name: dto
    value: mapstruct
    entityList:
      - '*'
applications:
  - config:
      baseName: app
      serverPort: 8080
    entities:
      - A
deployments: []
`
	assert.YAMLEq(t, want, buf.String())
}

func TestEncodersAgree(t *testing.T) {
	program, err := jdl.ParseProgram(`
/** People */
@paginate(pager)
entity Person { name String required }
enum Color { RED("red"), BLUE }
relationship ManyToOne { Person{color} to Color }
deployment { deploymentType kubernetes }
`)
	require.NoError(t, err)

	var jsonBuf, yamlBuf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&jsonBuf).Encode(program))
	require.NoError(t, NewYAMLEncoder(&yamlBuf).Encode(program))
	assert.YAMLEq(t, jsonBuf.String(), yamlBuf.String())

	var doc map[string]any
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &doc))
	entities := doc["entities"].([]any)
	require.Len(t, entities, 1)
	person := entities[0].(map[string]any)
	assert.Equal(t, "People", person["javadoc"])
	assert.Equal(t, []any{map[string]any{"optionName": "paginate", "type": "BINARY", "optionValue": "pager"}}, person["annotations"])
	assert.Equal(t, []any{map[string]any{"deploymentType": "kubernetes"}}, doc["deployments"])
}

func TestEncodeEmptyProgram(t *testing.T) {
	program, err := jdl.ParseProgram("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(program))
	assert.JSONEq(t, `{"constants":[],"entities":[],"enums":[],"relationships":[],"options":[],"applications":[],"deployments":[]}`, buf.String())
}

func TestNewEncoder(t *testing.T) {
	for _, name := range Formats {
		enc, err := NewEncoder(name, &bytes.Buffer{})
		require.NoError(t, err, name)
		assert.NotNil(t, enc)
	}
	_, err := NewEncoder("xml", &bytes.Buffer{})
	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestCSTJSONEncoder(t *testing.T) {
	result, err := parser.Parse("entity A {\n  name\n}")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewCSTJSONEncoder(&buf).Encode(result.CST))

	var tree map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &tree))
	assert.Equal(t, "prog", tree["kind"])
	assert.Contains(t, buf.String(), `"inserted": true`)

	text, err := NewCSTJSONEncoder(nil).MarshalText(nil)
	require.NoError(t, err)
	assert.Equal(t, "null\n", string(text))
}

func TestTreeEncoder(t *testing.T) {
	result, err := parser.Parse("a = 1")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewTreeEncoder(&buf, false).Encode(result.CST))
	assert.Equal(t, "prog\n  constantDeclaration\n    NAME a\n    EQUALS =\n    INTEGER 1\n", buf.String())

	buf.Reset()
	require.NoError(t, NewTreeEncoder(&buf, true).Encode(result.CST))
	assert.Contains(t, buf.String(), "NAME [1:1-1:2] a\n")
}

func TestTokenEncoder(t *testing.T) {
	tokens, lexErrors := parser.Tokenize("entity A ###")

	var buf bytes.Buffer
	require.NoError(t, NewTokenEncoder(&buf).Encode(tokens, lexErrors))
	assert.Equal(t, "1:1\tENTITY\t\"entity\"\n"+
		"1:8\tNAME\t\"A\"\n"+
		"1:10\terror\tunexpected character: ->#<- at line: 1, column: 10, skipped 3 characters\n", buf.String())
}

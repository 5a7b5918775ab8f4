package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/jdl/ebnf"
	"github.com/dhamidi/jdl/jdl"
	"github.com/dhamidi/jdl/jdl/parser"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestTokenize(t *testing.T) {
	out, _, err := run(t, "entity A", "tokenize")
	require.NoError(t, err)
	assert.Equal(t, "1:1\tENTITY\t\"entity\"\n1:8\tNAME\t\"A\"\n", out)

	out, _, err = run(t, "a ~", "tokenize", "-")
	assert.EqualError(t, err, "1 lex errors")
	assert.Contains(t, out, "1:3\terror\t")
}

func TestTokenizeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.jdl")
	require.NoError(t, os.WriteFile(path, []byte("enum Color"), 0o644))

	out, _, err := run(t, "", "tokenize", path)
	require.NoError(t, err)
	assert.Equal(t, "1:1\tENUM\t\"enum\"\n1:6\tNAME\t\"Color\"\n", out)

	_, _, err = run(t, "", "tokenize", filepath.Join(t.TempDir(), "missing.jdl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse(t *testing.T) {
	out, stderr, err := run(t, "a = 1", "parse")
	require.NoError(t, err)
	assert.Equal(t, "prog\n  constantDeclaration\n    NAME a\n    EQUALS =\n    INTEGER 1\n", out)
	assert.Empty(t, stderr)

	out, _, err = run(t, "name String", "parse", "--start-rule", "fieldDeclaration")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "fieldDeclaration\n"), out)

	out, _, err = run(t, "a = 1", "parse", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "prog"`)
}

func TestParseReportsErrors(t *testing.T) {
	out, stderr, err := run(t, "entity A {", "parse")
	assert.EqualError(t, err, "1 syntax errors")
	assert.True(t, strings.HasPrefix(out, "prog\n"))
	assert.Equal(t, "Expecting token of type RCURLY but found end of input\n", stderr)

	_, stderr, err = run(t, "entity a", "parse")
	var verr *parser.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 8, verr.Column)
	assert.Contains(t, stderr, "The entity name must match")
}

func TestParseRejectsBadOptions(t *testing.T) {
	_, _, err := run(t, "", "parse", "--format", "yaml")
	assert.EqualError(t, err, `invalid --format "yaml": must be one of tree json`)

	_, _, err = run(t, "", "parse", "--start-rule", "nope")
	assert.ErrorIs(t, err, parser.ErrUnknownStartRule)
	assert.ErrorContains(t, err, "--start-rule")
}

func TestAST(t *testing.T) {
	out, _, err := run(t, "entity Person { name String required }", "ast", "--format", "yaml")
	require.NoError(t, err)

	var doc struct {
		Entities []struct {
			Name   string `yaml:"name"`
			Fields []struct {
				Name string `yaml:"name"`
			} `yaml:"fields"`
		} `yaml:"entities"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Entities, 1)
	assert.Equal(t, "Person", doc.Entities[0].Name)
	require.Len(t, doc.Entities[0].Fields, 1)
	assert.Equal(t, "name", doc.Entities[0].Fields[0].Name)

	out, _, err = run(t, "MAX = 3", "ast")
	require.NoError(t, err)
	assert.Contains(t, out, `"constants": [`)

	_, _, err = run(t, "", "ast", "--format", "tree")
	assert.ErrorContains(t, err, "must be one of json yaml")

	_, _, err = run(t, "entity {", "ast")
	var syntaxErr *jdl.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestComplete(t *testing.T) {
	out, _, err := run(t, "relationship ", "complete")
	require.NoError(t, err)
	assert.Equal(t, "RELATIONSHIP_TYPE\n", out)

	out, _, err = run(t, "relationship ", "complete", "--expand")
	require.NoError(t, err)
	assert.Equal(t, "RELATIONSHIP_TYPE\tONE_TO_ONE\tOneToOne\n"+
		"RELATIONSHIP_TYPE\tONE_TO_MANY\tOneToMany\n"+
		"RELATIONSHIP_TYPE\tMANY_TO_ONE\tManyToOne\n"+
		"RELATIONSHIP_TYPE\tMANY_TO_MANY\tManyToMany\n", out)

	out, _, err = run(t, "dto * ", "complete")
	require.NoError(t, err)
	assert.Equal(t, "WITH\twith\n", out)

	out, _, err = run(t, "", "complete", "--start-rule", "validation")
	require.NoError(t, err)
	assert.Equal(t, "REQUIRED\trequired\nUNIQUE\tunique\nMIN_MAX_KEYWORD\nPATTERN\tpattern\n", out)
}

func TestGrammar(t *testing.T) {
	g, err := ebnf.Load()
	require.NoError(t, err)

	out, _, err := run(t, "", "grammar", "check")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("jdl.ebnf: %d rules, %d lexical productions\n",
		len(parser.StartRules()), len(ebnf.Lexical(g))), out)

	out, _, err = run(t, "", "grammar", "print")
	require.NoError(t, err)
	assert.Equal(t, string(ebnf.Source()), out)

	out, _, err = run(t, "a = 1", "grammar", "scan")
	require.NoError(t, err)
	assert.Equal(t, "1:1 name \"a\"\n1:3 = \"=\"\n1:5 integer \"1\"\n", out)
}

func TestGrammarCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ebnf")
	require.NoError(t, os.WriteFile(path, []byte("A = b .\n"), 0o644))

	_, stderr, err := run(t, "", "grammar", "check", path, "--start", "A")
	require.Error(t, err)
	assert.Contains(t, stderr, "b")

	out, _, err := run(t, "", "grammar", "check", path, "--start", "")
	require.NoError(t, err)
	assert.Equal(t, path+": 1 rules, 0 lexical productions\n", out)
}

package codebase

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func newTestServer(t *testing.T) (*LSPServer, string) {
	t.Helper()
	root := t.TempDir()
	ls := NewLSPServer("test")
	result, err := ls.initialize(nil, &protocol.InitializeParams{RootPath: &root})
	require.NoError(t, err)

	init, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	require.NotNil(t, init.Capabilities.CompletionProvider)
	assert.Equal(t, lsName, init.ServerInfo.Name)
	return ls, root
}

func TestLSPPublishesDiagnosticsOnOpen(t *testing.T) {
	ls, root := newTestServer(t)
	path := filepath.Join(root, "a.jdl")

	var published []protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{Notify: func(method string, params any) {
		assert.Equal(t, "textDocument/publishDiagnostics", method)
		published = append(published, params.(protocol.PublishDiagnosticsParams))
	}}

	err := ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        "file://" + path,
			LanguageID: "jdl",
			Text:       "entity A {\n  name String ###\n}",
		},
	})
	require.NoError(t, err)
	require.Len(t, published, 1)

	diags := published[0].Diagnostics
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 1, Character: 14},
		End:   protocol.Position{Line: 1, Character: 17},
	}, diags[0].Range)
	require.NotNil(t, diags[0].Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)

	require.NoError(t, ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file://" + path},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "entity A"}},
	}))
	require.Len(t, published, 2)
	assert.Empty(t, published[1].Diagnostics)
}

func TestLSPCompletion(t *testing.T) {
	ls, root := newTestServer(t)
	path := filepath.Join(root, "a.jdl")
	require.NoError(t, ls.codebase.UpdateFile(path, []byte("entity A {\n  name String req")))

	result, err := ls.textDocumentCompletion(nil, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file://" + path},
			Position:     protocol.Position{Line: 1, Character: 17},
		},
	})
	require.NoError(t, err)

	items, ok := result.([]protocol.CompletionItem)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "required", items[0].Label)
	require.NotNil(t, items[0].Kind)
	assert.Equal(t, protocol.CompletionItemKindKeyword, *items[0].Kind)
}

func TestToProtocolDiagnosticsAtEndOfInput(t *testing.T) {
	got := toProtocolDiagnostics([]Diagnostic{{Line: 3, Column: 1, Severity: SeverityError, Message: "m"}})
	require.Len(t, got, 1)
	assert.Equal(t, protocol.Position{Line: 2, Character: 0}, got[0].Range.Start)
	assert.Equal(t, got[0].Range.Start, got[0].Range.End)
	assert.Equal(t, "m", got[0].Message)
}

func TestURIToPath(t *testing.T) {
	path, err := uriToPath("file:///tmp/models/a.jdl")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/models/a.jdl", path)

	path, err = uriToPath("untitled:1")
	require.NoError(t, err)
	assert.Equal(t, "untitled:1", path)
}

// Package codebase keeps the JDL documents of a workspace parsed and serves
// diagnostics and completions for them.
package codebase

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/jdl/jdl"
	"github.com/dhamidi/jdl/jdl/parser"
)

const fileExt = ".jdl"

var log = commonlog.GetLogger("jdl.codebase")

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path    string
	Content []byte
	Result  *parser.Result
	// Program is built from the CST even when the document has syntax
	// errors, so completions can still see its entities.
	Program       *jdl.Program
	ValidationErr *parser.ValidationError
}

func New(rootDir string) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll parses every *.jdl file under the root directory, skipping hidden
// directories.
func (c *Codebase) ScanAll() error {
	files := jdlFiles(c.rootDir)
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if err := c.ScanFile(path); err != nil {
			log.Warningf("scan %s: %s", path, err)
		}
	}
	return nil
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return c.UpdateFile(path, content)
}

// UpdateFile replaces the content of path and reparses it.
func (c *Codebase) UpdateFile(path string, content []byte) error {
	result, err := parser.Parse(string(content))
	var verr *parser.ValidationError
	if err != nil && !errors.As(err, &verr) {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	info := &FileInfo{
		Path:          path,
		Content:       content,
		Result:        result,
		Program:       jdl.Build(result.CST),
		ValidationErr: verr,
	}
	log.Debugf("updated %s: %d lex errors, %d parse errors, valid=%t",
		path, len(result.LexErrors), len(result.ParseErrors), verr == nil)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = info
	return nil
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths returns the known document paths in sorted order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// EntityNames returns the names of all entities declared in the codebase,
// sorted and without duplicates.
func (c *Codebase) EntityNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := map[string]bool{}
	var names []string
	for _, f := range c.files {
		for _, e := range f.Program.Entities {
			if e.Name != "" && !seen[e.Name] {
				seen[e.Name] = true
				names = append(names, e.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}

type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

// Diagnostic is a problem in a document. Line and Column are 1-based;
// Length counts characters.
type Diagnostic struct {
	Line     int
	Column   int
	Length   int
	Severity Severity
	Message  string
}

// Diagnostics returns the lex, parse and validation errors of path in that
// order. Errors at the end of input are placed after the last character.
func (c *Codebase) Diagnostics(path string) []Diagnostic {
	f := c.GetFile(path)
	if f == nil {
		return nil
	}
	diags := []Diagnostic{}
	for _, e := range f.Result.LexErrors {
		diags = append(diags, Diagnostic{
			Line:     e.Line,
			Column:   e.Column,
			Length:   e.Length,
			Severity: SeverityError,
			Message:  e.Message,
		})
	}
	endLine, endColumn := endPosition(f.Content)
	for _, e := range f.Result.ParseErrors {
		d := Diagnostic{
			Line:     e.Line,
			Column:   e.Column,
			Length:   utf8.RuneCountInString(e.Token.Literal),
			Severity: SeverityError,
			Message:  e.Message,
		}
		if d.Line == 0 {
			d.Line, d.Column, d.Length = endLine, endColumn, 0
		}
		diags = append(diags, d)
	}
	if v := f.ValidationErr; v != nil {
		diags = append(diags, Diagnostic{
			Line:     v.Line,
			Column:   v.Column,
			Length:   wordLength(f.Content, v.Line, v.Column),
			Severity: SeverityError,
			Message:  v.Message,
		})
	}
	return diags
}

type CompletionKind int

const (
	CompletionKindKeyword CompletionKind = iota
	CompletionKindPunctuation
	CompletionKindEntity
)

type CompletionItem struct {
	Label      string
	Kind       CompletionKind
	Detail     string
	InsertText string
}

// CompletionsAtPoint suggests what may be typed at line (1-based) after
// column characters. The word being typed under the cursor is excluded from
// the parse and used to filter the labels. Categories are expanded to their
// keywords and NAME is offered as the entity names of the codebase.
func (c *Codebase) CompletionsAtPoint(path string, line, column int) []CompletionItem {
	f := c.GetFile(path)
	if f == nil {
		return nil
	}
	offset := offsetAt(f.Content, line, column)
	start := wordStart(f.Content, offset)
	typed := string(f.Content[start:offset])

	kinds, err := parser.Suggest(string(f.Content[:start]))
	if err != nil {
		log.Errorf("suggest %s: %s", path, err)
		return nil
	}
	log.Debugf("completion %s at %d:%d: %d kinds", path, line, column, len(kinds))

	var items []CompletionItem
	seen := map[string]bool{}
	add := func(item CompletionItem) {
		if seen[item.Label] || !strings.HasPrefix(item.Label, typed) {
			return
		}
		seen[item.Label] = true
		items = append(items, item)
	}
	for _, kind := range kinds {
		for _, concrete := range parser.ExpandCategory(kind) {
			if concrete == parser.TokenName {
				for _, name := range c.EntityNames() {
					add(CompletionItem{Label: name, Kind: CompletionKindEntity, Detail: "entity", InsertText: name})
				}
				continue
			}
			lit := concrete.Literal()
			if lit == "" {
				continue
			}
			item := CompletionItem{Label: lit, Kind: CompletionKindKeyword, Detail: kind.String(), InsertText: lit}
			if !isNameStart(lit[0]) {
				item.Kind = CompletionKindPunctuation
			}
			add(item)
		}
	}
	return items
}

// offsetAt returns the byte offset of the position column characters into
// the 1-based line, clamped to the line.
func offsetAt(content []byte, line, column int) int {
	offset := 0
	for l := 1; l < line; l++ {
		i := strings.IndexByte(string(content[offset:]), '\n')
		if i < 0 {
			return len(content)
		}
		offset += i + 1
	}
	for n := 0; n < column && offset < len(content) && content[offset] != '\n'; n++ {
		_, size := utf8.DecodeRune(content[offset:])
		offset += size
	}
	return offset
}

func wordStart(content []byte, offset int) int {
	for offset > 0 && isNameChar(content[offset-1]) {
		offset--
	}
	return offset
}

func wordLength(content []byte, line, column int) int {
	start := offsetAt(content, line, column-1)
	end := start
	for end < len(content) && isNameChar(content[end]) {
		end++
	}
	return end - start
}

func endPosition(content []byte) (line, column int) {
	line, column = 1, 1
	for _, r := range string(content) {
		if r == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}

func isNameStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || (ch >= '0' && ch <= '9') || ch == '-'
}

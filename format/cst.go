package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/jdl/jdl/parser"
)

// CSTJSONEncoder writes a concrete syntax tree as indented JSON, including
// inserted tokens and recovered rules.
type CSTJSONEncoder struct {
	w io.Writer
}

func NewCSTJSONEncoder(w io.Writer) *CSTJSONEncoder {
	return &CSTJSONEncoder{w: w}
}

func (e *CSTJSONEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *CSTJSONEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	if node == nil {
		return []byte("null\n"), nil
	}
	text, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

// TreeEncoder writes a concrete syntax tree one node per line, indented by
// depth.
type TreeEncoder struct {
	w         io.Writer
	positions bool
}

func NewTreeEncoder(w io.Writer, positions bool) *TreeEncoder {
	return &TreeEncoder{w: w, positions: positions}
}

func (e *TreeEncoder) Encode(node *parser.Node) error {
	if node == nil {
		return nil
	}
	text := node.String()
	if e.positions {
		text = node.StringWithPositions()
	}
	_, err := io.WriteString(e.w, text)
	return err
}

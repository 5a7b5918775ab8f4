package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/jdl/jdl"
)

type JSONEncoder struct {
	w       io.Writer
	program *jdl.Program
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(program *jdl.Program) error {
	e.program = program
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	text, err := json.MarshalIndent(buildProgramDoc(e.program), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

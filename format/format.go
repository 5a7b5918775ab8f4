// Package format renders JDL programs, syntax trees and token streams for
// people and tools.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/jdl/jdl"
)

// Encoder writes a program. MarshalText returns the bytes of the program
// given to the last Encode call.
type Encoder interface {
	encoding.TextMarshaler
	Encode(program *jdl.Program) error
}

// Formats lists the names accepted by NewEncoder.
var Formats = []string{"json", "yaml"}

// NewEncoder returns the program encoder registered under name.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}

package fsmtool

import (
	"io"

	"github.com/aretw0/fsmtool/internal/compiler"
	"github.com/aretw0/fsmtool/internal/generator"
	"github.com/aretw0/fsmtool/internal/validator"
	"github.com/aretw0/fsmtool/pkg/fsm"
)

// Version is the fsmtool release version.
const Version = "0.1.0"

// Output format identifiers accepted by Render, re-exported for embedders.
const (
	FormatPlantUML  = generator.FormatPlantUML
	FormatStateflow = generator.FormatStateflow
	FormatYAML      = generator.FormatYAML
)

// Parse reads a state machine definition from a file.
func Parse(path string) (*fsm.Fsm, error) {
	return compiler.NewParser().ParseFile(path)
}

// ParseReader reads a state machine definition from a stream.
func ParseReader(r io.Reader) (*fsm.Fsm, error) {
	return compiler.NewParser().ParseReader(r)
}

// ParseBytes reads a state machine definition from raw bytes.
func ParseBytes(data []byte) (*fsm.Fsm, error) {
	return compiler.NewParser().ParseBytes(data)
}

// Render writes m to w in the named output format.
func Render(m *fsm.Fsm, format string, w io.Writer) error {
	gen, err := generator.ForFormat(format)
	if err != nil {
		return err
	}
	return gen.Render(m, w)
}

// Validate runs the structural pass over a built machine: unique state
// names, resolvable transition targets, exactly one initial state. Returns
// nil when the machine is sound.
func Validate(m *fsm.Fsm) error {
	return validator.Check(m)
}

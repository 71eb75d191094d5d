package generator

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/fsmtool/pkg/fsm"
)

// timestampFormat is used for the generation timestamps embedded in
// header/footer comments. The timestamp is the only non-deterministic part
// of any output and never leaves comment lines, so structural content stays
// diffable across runs.
const timestampFormat = "2006-01-02 15:04:05"

// Generator renders a state machine into one target notation. Each
// implementation is a pure function of its Fsm argument (plus the clock for
// comment timestamps): generators share no state and cannot affect each
// other.
type Generator interface {
	// Name is the human-readable name of the target notation.
	Name() string
	// Render writes the full output for m to w, or fails without writing
	// a partial trailer. It must not mutate m.
	Render(m *fsm.Fsm, w io.Writer) error
}

// Format identifiers accepted by ForFormat.
const (
	FormatPlantUML  = "plantuml"
	FormatStateflow = "stateflow"
	FormatYAML      = "yaml"
	FormatAutosarC  = "autosar-c"
	FormatHppCpp    = "hpp-cpp"
	FormatAnalyze   = "analyze"
)

// ForFormat selects a generator by explicit dispatch over the fixed variant
// set. Unknown formats are an error, not a fallback.
func ForFormat(format string) (Generator, error) {
	switch format {
	case FormatPlantUML:
		return NewPlantUML(), nil
	case FormatStateflow:
		return NewStateflow(), nil
	case FormatYAML:
		return NewYAML(), nil
	case FormatAutosarC:
		return NewStub("AUTOSAR C code"), nil
	case FormatHppCpp:
		return NewStub("HPP C++ code"), nil
	case FormatAnalyze:
		return NewStub("FSM analysis"), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Formats lists every known format identifier in dispatch order.
func Formats() []string {
	return []string{FormatPlantUML, FormatStateflow, FormatYAML, FormatAutosarC, FormatHppCpp, FormatAnalyze}
}

// WriteOutput renders m with g to dest. An empty dest or "-" streams to
// stdout; otherwise the destination file is created, flushed and closed on
// every exit path, and a confirmation line is printed on success.
func WriteOutput(g Generator, m *fsm.Fsm, dest string) error {
	if dest == "" || dest == "-" {
		return g.Render(m, os.Stdout)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", dest, err)
	}
	renderErr := g.Render(m, f)
	closeErr := f.Close()
	if renderErr != nil {
		return fmt.Errorf("%s generation failed: %w", g.Name(), renderErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to flush %q: %w", dest, closeErr)
	}
	fmt.Printf("Generated %s file: %s\n", g.Name(), dest)
	return nil
}

// lineWriter emits indented lines and remembers the first write error, so
// render loops stay free of per-line error plumbing.
type lineWriter struct {
	w      io.Writer
	indent int
	unit   string
	err    error
}

func newLineWriter(w io.Writer) *lineWriter {
	return &lineWriter{w: w, unit: "    "}
}

func (lw *lineWriter) line(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, "%s%s\n", strings.Repeat(lw.unit, lw.indent), s)
}

func (lw *lineWriter) linef(format string, args ...any) {
	lw.line(fmt.Sprintf(format, args...))
}

func (lw *lineWriter) blank() {
	lw.line("")
}

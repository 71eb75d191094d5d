package generator

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/fsmtool/pkg/fsm"
)

// bannerWidth is the column every decorative comment banner runs out to.
const bannerWidth = 80

// YAML renders the machine back into its own source notation, reproducing
// every IR field in data-model order. The output is re-parseable by the
// compiler: modulo the timestamp comment, render-then-parse yields a
// field-identical IR (the round-trip law the tests pin down).
type YAML struct {
	Now func() time.Time
}

// NewYAML creates a YAML generator with the wall clock.
func NewYAML() *YAML {
	return &YAML{Now: time.Now}
}

func (g *YAML) Name() string { return "YAML" }

func (g *YAML) Render(m *fsm.Fsm, w io.Writer) error {
	lw := newLineWriter(w)

	g.header(lw, m)
	g.machine(lw, m)
	g.footer(lw, m)

	return lw.err
}

func (g *YAML) header(lw *lineWriter, m *fsm.Fsm) {
	lw.line(strings.Repeat("#", bannerWidth))
	lw.linef("# Generated on %s", g.Now().Format(timestampFormat))
	lw.line(strings.Repeat("#", bannerWidth))
	lw.blank()
	lw.line("%YAML 1.2")
	lw.line("---")
	lw.blank()
	lw.line(strings.Repeat("#", bannerWidth))
	lw.linef("# Start of Finite State Machine: %s", m.Name)
	lw.line(strings.Repeat("#", bannerWidth))
}

func (g *YAML) footer(lw *lineWriter, m *fsm.Fsm) {
	lw.line(strings.Repeat("#", bannerWidth))
	lw.linef("# End of Finite State Machine: %s", m.Name)
	lw.line(strings.Repeat("#", bannerWidth))
}

func (g *YAML) machine(lw *lineWriter, m *fsm.Fsm) {
	lw.line("statemachine:")
	lw.indent++
	lw.linef("name: %s", m.Name)
	lw.linef("version: %s", m.Version)
	lw.linef("description: %s", m.Description)
	lw.linef("initial_state: %s", m.InitialState)

	// Always emitted, even when empty, so the output re-parses.
	lw.line("states:")
	for i := range m.States {
		lw.blank()
		g.state(lw, &m.States[i])
	}
	lw.indent--
}

// banner writes a full-width comment line: a leading "#" padded with fill
// characters out to bannerWidth, accounting for the current indentation.
func (g *YAML) banner(lw *lineWriter, fill string) {
	lw.line("#" + strings.Repeat(fill, bannerWidth-len(lw.unit)*lw.indent-1))
}

func (g *YAML) state(lw *lineWriter, st *fsm.State) {
	g.banner(lw, "#")
	lw.linef("# State %s", st.Name)
	g.banner(lw, "#")
	lw.linef("-   name: %s", st.Name)
	lw.indent++
	lw.linef("description: %s", st.Description)
	lw.linef("is_initial: %s", strconv.FormatBool(st.IsInitial))
	lw.linef("is_final: %s", strconv.FormatBool(st.IsFinal))
	g.actionList(lw, "on_entry", st.OnEntry)
	g.actionList(lw, "do", st.Do)
	g.actionList(lw, "on_exit", st.OnExit)
	if len(st.Transitions) > 0 {
		lw.line("transitions:")
		for i := range st.Transitions {
			lw.blank()
			g.transition(lw, &st.Transitions[i], st.Name)
		}
	}
	lw.blank()
	lw.indent--
}

func (g *YAML) actionList(lw *lineWriter, key string, actions []string) {
	if len(actions) == 0 {
		return
	}
	lw.line(key + ":")
	for _, action := range actions {
		lw.linef("- %s", action)
	}
}

func (g *YAML) transition(lw *lineWriter, tr *fsm.Transition, source string) {
	g.banner(lw, "-")
	lw.linef("# Transition %s --> %s", source, tr.TargetState)
	g.banner(lw, "-")
	lw.linef("-   target_state: %s", tr.TargetState)
	lw.indent++
	lw.linef("condition: %s", tr.Condition)
	lw.linef("description: %s", tr.Description)
	lw.linef("priority: %d", tr.Priority)
	if len(tr.OnTransition) > 0 {
		lw.line("on_transition:")
		for _, action := range tr.OnTransition {
			lw.linef("-   %s", action)
		}
	}
	lw.blank()
	lw.indent--
}

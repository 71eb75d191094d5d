package generator

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/fsmtool/pkg/fsm"
)

// PlantUML renders a state machine as a PlantUML state diagram. One block
// per state: the start pseudo-edge for the initial state, the outgoing
// edges, the final pseudo-edge, then the state's description and action
// commentary.
type PlantUML struct {
	// Now supplies the header timestamp. Overridable for deterministic tests.
	Now func() time.Time
}

// NewPlantUML creates a PlantUML generator with the wall clock.
func NewPlantUML() *PlantUML {
	return &PlantUML{Now: time.Now}
}

func (g *PlantUML) Name() string { return "PlantUML" }

func (g *PlantUML) Render(m *fsm.Fsm, w io.Writer) error {
	lw := newLineWriter(w)

	g.header(lw, m)

	lw.linef("title State diagram for %s, version %s", m.Name, m.Version)
	lw.blank()
	for i := range m.States {
		g.state(lw, &m.States[i])
	}

	g.footer(lw, m)
	return lw.err
}

func (g *PlantUML) header(lw *lineWriter, m *fsm.Fsm) {
	lw.line("/'" + strings.Repeat("'", 80))
	lw.line("PlantUML description of FSM.")
	lw.linef("State machine: %s", m.Name)
	lw.linef("Version: %s", m.Version)
	lw.linef("Description: %s", m.Description)
	lw.linef("Generated on: %s", g.Now().Format(timestampFormat))
	lw.line(strings.Repeat("'", 80) + "'/")
	lw.blank()
	lw.line("@startuml")
	lw.line("hide empty description")
	lw.blank()
}

func (g *PlantUML) footer(lw *lineWriter, m *fsm.Fsm) {
	lw.line("/'" + strings.Repeat("'", 80))
	lw.linef(" End of Finite State Machine: %s", m.Name)
	lw.line(strings.Repeat("'", 80) + "'/")
	lw.blank()
	lw.line("@enduml")
}

func (g *PlantUML) state(lw *lineWriter, st *fsm.State) {
	lw.line("/'" + strings.Repeat("'", 80))
	lw.linef(" State: %s", st.Name)
	lw.line(strings.Repeat("'", 80) + "'/")

	// Edges first: start pseudostate, outgoing transitions, final pseudostate.
	if st.IsInitial {
		lw.linef("[*] --> %s", st.Name)
	}
	for i := range st.Transitions {
		g.transition(lw, &st.Transitions[i], st.Name)
	}
	if st.IsFinal {
		lw.linef("%s --> [*]", st.Name)
	}

	if st.Description != "" && st.Description != fsm.NoDescription {
		lw.linef("%s : %s", st.Name, st.Description)
		lw.blank()
	}

	g.actionBlock(lw, st.Name, "On entry actions:", st.OnEntry)
	g.actionBlock(lw, st.Name, "Do actions:", st.Do)
	g.actionBlock(lw, st.Name, "On exit actions:", st.OnExit)

	lw.blank()
}

func (g *PlantUML) actionBlock(lw *lineWriter, stateName, heading string, actions []string) {
	if len(actions) == 0 {
		return
	}
	lw.linef(`%s : \n%s`, stateName, heading)
	for _, action := range actions {
		lw.linef("%s : %s", stateName, action)
	}
	lw.blank()
}

// transition emits one labeled edge. Label parts appear in fixed order,
// each on its own visual line: condition, optional description, priority,
// optional joined action list.
func (g *PlantUML) transition(lw *lineWriter, tr *fsm.Transition, source string) {
	var label strings.Builder
	label.WriteString("Condition: " + tr.Condition)
	if tr.Description != "" && tr.Description != fsm.NoDescription {
		label.WriteString(`\n Description: ` + tr.Description)
	}
	label.WriteString(`\n Priority: `)
	label.WriteString(strconv.Itoa(tr.Priority))
	if len(tr.OnTransition) > 0 {
		label.WriteString(`\n Actions: ` + strings.Join(tr.OnTransition, ", "))
	}
	lw.linef("%s --> %s : %s", source, tr.TargetState, label.String())
	lw.blank()
}

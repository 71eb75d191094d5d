package generator

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/fsmtool/pkg/fsm"
)

// Grid layout constants for state placement in the generated chart.
const (
	stateflowCols     = 3
	stateflowXStart   = 50
	stateflowYStart   = 50
	stateflowWidth    = 150
	stateflowHeight   = 120
	stateflowXSpacing = 200
	stateflowYSpacing = 180
)

// Stateflow renders a MATLAB script that recreates the machine as a
// Simulink/Stateflow chart: tear down and recreate the model, one
// Stateflow.State per state on a fixed-column grid, one
// Stateflow.Transition per edge, a synthetic default transition into the
// initial state, then save.
//
// Object names are derived from enumeration order (state_<name>,
// trans_<ordinal>) so repeated runs over the same machine produce
// byte-identical scripts modulo the timestamp comment.
type Stateflow struct {
	Now func() time.Time
}

// NewStateflow creates a Stateflow generator with the wall clock.
func NewStateflow() *Stateflow {
	return &Stateflow{Now: time.Now}
}

func (g *Stateflow) Name() string { return "Matlab" }

func (g *Stateflow) Render(m *fsm.Fsm, w io.Writer) error {
	lw := newLineWriter(w)

	g.header(lw, m)
	g.modelCreation(lw, m)
	g.states(lw, m)
	g.transitions(lw, m)
	g.initialState(lw, m)
	g.footer(lw, m)

	return lw.err
}

func (g *Stateflow) header(lw *lineWriter, m *fsm.Fsm) {
	lw.line(strings.Repeat("%", 80))
	lw.line("%% Stateflow Chart Generation Script")
	lw.linef("%%%% State Machine: %s", m.Name)
	lw.linef("%%%% Version: %s", m.Version)
	lw.linef("%%%% Generated on: %s", g.Now().Format(timestampFormat))
	lw.line(strings.Repeat("%", 80))
	lw.blank()
	lw.line("% Clean up workspace")
	lw.line("close all;")
	lw.line("bdclose all;")
	lw.blank()
}

func (g *Stateflow) modelCreation(lw *lineWriter, m *fsm.Fsm) {
	lw.line("%% Create new Simulink model")
	lw.linef("modelName = '%s';", m.Name)
	lw.line("if bdIsLoaded(modelName)")
	lw.indent++
	lw.line("close_system(modelName, 0);")
	lw.indent--
	lw.line("end")
	lw.line("new_system(modelName);")
	lw.line("open_system(modelName);")
	lw.blank()

	lw.line("%% Add Stateflow chart")
	lw.line("chart = add_block('sflib/Chart', [modelName '/StateChart']);")
	lw.line("set_param(chart, 'Position', [100 100 600 500]);")
	lw.blank()

	lw.line("%% Get chart object")
	lw.line("rt = sfroot;")
	lw.line("model = rt.find('-isa', 'Simulink.BlockDiagram', 'Name', modelName);")
	lw.line("chartObj = model.find('-isa', 'Stateflow.Chart');")
	lw.blank()
}

func (g *Stateflow) states(lw *lineWriter, m *fsm.Fsm) {
	lw.line("%% Create states")

	for i := range m.States {
		st := &m.States[i]
		row := i / stateflowCols
		col := i % stateflowCols
		x := stateflowXStart + col*stateflowXSpacing
		y := stateflowYStart + row*stateflowYSpacing

		lw.linef("%%%% State: %s", st.Name)

		stateVar := "state_" + st.Name
		lw.linef("%s = Stateflow.State(chartObj);", stateVar)
		lw.linef("%s.Name = '%s';", stateVar, st.Name)
		lw.linef("%s.Position = [%d %d %d %d];", stateVar, x, y, stateflowWidth, stateflowHeight)

		var parts []string
		if len(st.OnEntry) > 0 {
			parts = append(parts, "entry: "+formatActions(st.OnEntry))
		}
		if len(st.Do) > 0 {
			parts = append(parts, "during: "+formatActions(st.Do))
		}
		if len(st.OnExit) > 0 {
			parts = append(parts, "exit: "+formatActions(st.OnExit))
		}
		if len(parts) > 0 {
			label := escapeMatlab(strings.Join(parts, `\n`))
			lw.linef("%s.LabelString = '%s';", stateVar, label)
		}

		lw.blank()
	}

	lw.blank()
}

func (g *Stateflow) transitions(lw *lineWriter, m *fsm.Fsm) {
	lw.line("%% Create transitions")

	transID := 0
	for i := range m.States {
		st := &m.States[i]
		stateVar := "state_" + st.Name

		for j := range st.Transitions {
			tr := &st.Transitions[j]
			transID++
			transVar := fmt.Sprintf("trans_%d", transID)
			targetVar := "state_" + tr.TargetState

			lw.linef("%%%% Transition: %s -> %s", st.Name, tr.TargetState)
			lw.linef("%s = Stateflow.Transition(chartObj);", transVar)
			lw.linef("%s.Source = %s;", transVar, stateVar)
			lw.linef("%s.Destination = %s;", transVar, targetVar)

			var parts []string
			if tr.Condition != "" && tr.Condition != "true" {
				parts = append(parts, "["+convertCondition(tr.Condition)+"]")
			}
			if len(tr.OnTransition) > 0 {
				actions := formatActions(tr.OnTransition)
				if len(parts) > 0 {
					parts = append(parts, "/"+actions)
				} else {
					parts = append(parts, actions)
				}
			}
			if len(parts) > 0 {
				lw.linef("%s.LabelString = '%s';", transVar, escapeMatlab(strings.Join(parts, "")))
			}

			lw.blank()
		}
	}

	lw.blank()
}

func (g *Stateflow) initialState(lw *lineWriter, m *fsm.Fsm) {
	stateVar := "state_" + m.InitialState
	lw.line("%% Set initial state")
	lw.line("defaultTrans = Stateflow.Transition(chartObj);")
	lw.linef("defaultTrans.Destination = %s;", stateVar)
	lw.line("defaultTrans.DestinationOClock = 9;")
	lw.linef("defaultTrans.SourceEndpoint = [%s.Position(1)-50, %s.Position(2)+60];", stateVar, stateVar)
	lw.linef("defaultTrans.MidPoint = [%s.Position(1)-25, %s.Position(2)+60];", stateVar, stateVar)
	lw.blank()
}

func (g *Stateflow) footer(lw *lineWriter, m *fsm.Fsm) {
	lw.line("%% Arrange chart layout")
	lw.line("Stateflow.Root;")
	lw.blank()
	lw.line("%% Save model")
	lw.linef("save_system('%s');", m.Name)
	lw.blank()
	lw.linef("disp('Stateflow model created: %s.slx');", m.Name)
	lw.line("disp('Open the model and double-click the Chart block to view.');")
	lw.blank()
	lw.line(strings.Repeat("%", 80))
	lw.linef("%% End of Finite State Machine: %s", m.Name)
	lw.line(strings.Repeat("%", 80))
}

// formatActions joins actions with semicolons for a Stateflow label,
// stripping trailing semicolons from each action first.
func formatActions(actions []string) string {
	formatted := make([]string, 0, len(actions))
	for _, action := range actions {
		action = strings.TrimSpace(action)
		action = strings.TrimSuffix(action, ";")
		formatted = append(formatted, action)
	}
	return strings.Join(formatted, "; ")
}

// convertCondition maps C-style guard operators and boolean literals to
// their MATLAB equivalents. Equality stays as-is.
var conditionReplacer = strings.NewReplacer(
	"&&", "&",
	"||", "|",
	"True", "true",
	"False", "false",
)

func convertCondition(condition string) string {
	return conditionReplacer.Replace(condition)
}

// escapeMatlab doubles single quotes inside a MATLAB string literal.
func escapeMatlab(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

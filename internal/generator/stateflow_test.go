package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fsmtool/pkg/fsm"
)

func renderStateflow(t *testing.T, m *fsm.Fsm) string {
	t.Helper()
	g := NewStateflow()
	g.Now = testClock

	var sb strings.Builder
	require.NoError(t, g.Render(m, &sb))
	return sb.String()
}

func fourStateMachine() *fsm.Fsm {
	return &fsm.Fsm{
		Name:         "Conveyor",
		Version:      "2.1",
		Description:  fsm.NoDescription,
		InitialState: "Stopped",
		States: []fsm.State{
			{
				Name:        "Stopped",
				Description: fsm.NoDescription,
				IsInitial:   true,
				OnEntry:     []string{"motor_off;"},
				Transitions: []fsm.Transition{
					{TargetState: "Starting", Condition: "start_cmd && !fault", Description: fsm.NoDescription, Priority: 1},
				},
			},
			{
				Name:        "Starting",
				Description: fsm.NoDescription,
				Do:          []string{"ramp_up"},
				Transitions: []fsm.Transition{
					{TargetState: "Running", Condition: "at_speed || override", Description: fsm.NoDescription, Priority: 1, OnTransition: []string{"log_start;"}},
				},
			},
			{
				Name:        "Running",
				Description: fsm.NoDescription,
				OnExit:      []string{"brake"},
				Transitions: []fsm.Transition{
					{TargetState: "Stopped", Condition: "true", Description: fsm.NoDescription, Priority: 1},
				},
			},
			{Name: "Fault", Description: fsm.NoDescription, IsFinal: true},
		},
	}
}

func TestStateflow_ModelLifecycle(t *testing.T) {
	out := renderStateflow(t, fourStateMachine())

	assert.Contains(t, out, "modelName = 'Conveyor';")
	assert.Contains(t, out, "bdclose all;")
	assert.Contains(t, out, "chart = add_block('sflib/Chart', [modelName '/StateChart']);")
	assert.Contains(t, out, "save_system('Conveyor');")
	assert.Contains(t, out, "disp('Stateflow model created: Conveyor.slx');")
}

func TestStateflow_GridLayout(t *testing.T) {
	out := renderStateflow(t, fourStateMachine())

	// 3 columns: the fourth state wraps to the second row.
	assert.Contains(t, out, "state_Stopped.Position = [50 50 150 120];")
	assert.Contains(t, out, "state_Starting.Position = [250 50 150 120];")
	assert.Contains(t, out, "state_Running.Position = [450 50 150 120];")
	assert.Contains(t, out, "state_Fault.Position = [50 230 150 120];")
}

func TestStateflow_StateLabels(t *testing.T) {
	out := renderStateflow(t, fourStateMachine())

	// Trailing semicolons are stripped from action summaries.
	assert.Contains(t, out, "state_Stopped.LabelString = 'entry: motor_off';")
	assert.Contains(t, out, "state_Starting.LabelString = 'during: ramp_up';")
	assert.Contains(t, out, "state_Running.LabelString = 'exit: brake';")
	assert.NotContains(t, out, "state_Fault.LabelString", "states without actions get no label")
}

func TestStateflow_TransitionNumbering(t *testing.T) {
	out := renderStateflow(t, fourStateMachine())

	assert.Contains(t, out, "trans_1.Source = state_Stopped;")
	assert.Contains(t, out, "trans_1.Destination = state_Starting;")
	assert.Contains(t, out, "trans_2.Source = state_Starting;")
	assert.Contains(t, out, "trans_3.Source = state_Running;")
}

func TestStateflow_GuardConversion(t *testing.T) {
	out := renderStateflow(t, fourStateMachine())

	assert.Contains(t, out, "trans_1.LabelString = '[start_cmd & !fault]';")
	assert.Contains(t, out, "trans_2.LabelString = '[at_speed | override]/log_start';")
	assert.NotContains(t, out, "trans_3.LabelString", `a bare "true" guard gets no label`)
}

func TestStateflow_BooleanLiteralsAndQuotes(t *testing.T) {
	m := &fsm.Fsm{
		Name:         "M",
		Version:      "1",
		Description:  fsm.NoDescription,
		InitialState: "A",
		States: []fsm.State{
			{
				Name:        "A",
				Description: fsm.NoDescription,
				IsInitial:   true,
				OnEntry:     []string{"set mode to 'manual'"},
				Transitions: []fsm.Transition{
					{TargetState: "A", Condition: "armed == True || forced == False", Description: fsm.NoDescription, Priority: 1},
				},
			},
		},
	}

	out := renderStateflow(t, m)
	assert.Contains(t, out, "trans_1.LabelString = '[armed == true | forced == false]';")
	assert.Contains(t, out, "state_A.LabelString = 'entry: set mode to ''manual''';")
}

func TestStateflow_DefaultTransition(t *testing.T) {
	out := renderStateflow(t, fourStateMachine())

	assert.Contains(t, out, "defaultTrans = Stateflow.Transition(chartObj);")
	assert.Contains(t, out, "defaultTrans.Destination = state_Stopped;")
	assert.Contains(t, out, "defaultTrans.DestinationOClock = 9;")
	assert.Contains(t, out, "defaultTrans.SourceEndpoint = [state_Stopped.Position(1)-50, state_Stopped.Position(2)+60];")
}

func TestStateflow_Deterministic(t *testing.T) {
	m := fourStateMachine()
	assert.Equal(t, renderStateflow(t, m), renderStateflow(t, m))
}

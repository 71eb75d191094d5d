package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	m := &Fsm{
		Name:         "M",
		InitialState: "A",
		States: []State{
			{Name: "A", Transitions: []Transition{{TargetState: "B", Condition: "go", Priority: 1}}},
			{Name: "B", Transitions: []Transition{{TargetState: "B", Condition: "stay", Priority: 1}}},
		},
	}

	idx := Index(m)
	require.Len(t, idx, 2)
	assert.Same(t, &m.States[0], idx["A"])
	assert.Same(t, &m.States[1], idx["B"])

	// Self-transitions resolve through the same table.
	assert.Same(t, idx["B"], idx[m.States[1].Transitions[0].TargetState])
}

func TestIndex_DuplicateNamesLastWins(t *testing.T) {
	m := &Fsm{
		States: []State{
			{Name: "Idle", Description: "first"},
			{Name: "Idle", Description: "second"},
		},
	}

	idx := Index(m)
	require.Len(t, idx, 1)
	assert.Equal(t, "second", idx["Idle"].Description)
}

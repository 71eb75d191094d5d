package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The native strategy must be interchangeable with the tree strategy:
// same document, same IR.
func TestNativeDecoding_MatchesTreeStrategy(t *testing.T) {
	tree, err := NewParser().ParseBytes([]byte(sampleDoc))
	require.NoError(t, err)

	native, err := NewParser(WithNativeDecoding()).ParseBytes([]byte(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, tree, native)
}

func TestNativeDecoding_Coercions(t *testing.T) {
	doc := `
statemachine:
  name: M
  version: 2
  initial_state: A
  states:
    - name: A
      on_entry: single_action
      transitions:
        - target_state: A
          condition: tick
          priority: 3
`
	m, err := NewParser(WithNativeDecoding()).ParseBytes([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "2", m.Version, "numeric version coerces to string")
	assert.Equal(t, []string{"single_action"}, m.States[0].OnEntry)
	assert.Equal(t, 3, m.States[0].Transitions[0].Priority)
}

func TestNativeDecoding_Errors(t *testing.T) {
	t.Run("Missing Statemachine Key", func(t *testing.T) {
		_, err := NewParser(WithNativeDecoding()).ParseBytes([]byte("other: 1\n"))
		assert.ErrorIs(t, err, ErrStructure)
	})

	t.Run("Missing Transition Priority", func(t *testing.T) {
		doc := `
statemachine:
  name: M
  version: "1"
  initial_state: A
  states:
    - name: A
      transitions:
        - target_state: A
          condition: c
`
		_, err := NewParser(WithNativeDecoding()).ParseBytes([]byte(doc))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingField)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Msg, "priority")
	})
}

package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsmtool/pkg/fsm"
)

// Validate runs the post-build structural pass over a machine and returns
// every finding, in a stable order:
//   - duplicate state names,
//   - transitions whose target_state matches no known state,
//   - an initial_state that matches zero states or, via duplicate names,
//     more than one.
//
// The build pipeline deliberately accepts all of these (rendering permissive
// input is allowed); callers that want strictness run this pass and abort on
// a non-empty result.
func Validate(m *fsm.Fsm) []error {
	var errs []error

	seen := make(map[string]int, len(m.States))
	for _, st := range m.States {
		seen[st.Name]++
	}
	for _, st := range m.States {
		if seen[st.Name] > 1 {
			errs = append(errs, fmt.Errorf("duplicate state name %q (%d occurrences)", st.Name, seen[st.Name]))
			seen[st.Name] = 1 // report each duplicate group once
		}
	}

	idx := fsm.Index(m)
	for _, st := range m.States {
		for _, tr := range st.Transitions {
			if _, ok := idx[tr.TargetState]; !ok {
				errs = append(errs, fmt.Errorf("transition %s --> %s: target state %q does not exist", st.Name, tr.TargetState, tr.TargetState))
			}
		}
	}

	matches := 0
	for _, st := range m.States {
		if st.Name == m.InitialState {
			matches++
		}
	}
	switch {
	case matches == 0:
		errs = append(errs, fmt.Errorf("initial_state %q matches no state", m.InitialState))
	case matches > 1:
		errs = append(errs, fmt.Errorf("initial_state %q matches %d states, want exactly one", m.InitialState, matches))
	}

	return errs
}

// Check wraps Validate into a single error suitable for CLI reporting,
// or nil when the machine is structurally sound.
func Check(m *fsm.Fsm) error {
	errs := Validate(m)
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return fmt.Errorf("found %d structural errors:\n- %s", len(errs), strings.Join(msgs, "\n- "))
}

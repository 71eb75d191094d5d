package fsm

// NoDescription is the sentinel value applied wherever an optional
// description is absent from the source document. Renderers compare against
// it to decide whether a description block should be emitted at all.
const NoDescription = "No description"

// Fsm is the top-level intermediate representation of a state machine.
// It is built once by the compiler and read-only afterwards: generators
// receive the same instance and must not mutate it.
type Fsm struct {
	Name         string `json:"name" yaml:"name"`
	Version      string `json:"version" yaml:"version"`
	Description  string `json:"description" yaml:"description"`
	InitialState string `json:"initial_state" yaml:"initial_state"`

	// States preserves document order. Order is significant: it drives
	// layout and emission order in every generator.
	States []State `json:"states" yaml:"states"`
}

// State is a single node of the machine. A state exclusively owns its
// outgoing transitions; the transition back-reference to its source is
// implicit from containment.
type State struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`

	// IsInitial is derived: the compiler forces it to true exactly when
	// Name matches the machine's InitialState, overriding the input value.
	IsInitial bool `json:"is_initial" yaml:"is_initial"`
	IsFinal   bool `json:"is_final" yaml:"is_final"`

	// Action lists are never nil after construction; absent fields become
	// empty slices and bare scalars become singleton slices.
	OnEntry []string `json:"on_entry,omitempty" yaml:"on_entry,omitempty"`
	Do      []string `json:"do,omitempty" yaml:"do,omitempty"`
	OnExit  []string `json:"on_exit,omitempty" yaml:"on_exit,omitempty"`

	Transitions []Transition `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// Transition is one directed edge. The destination is a name-based
// reference, never a *State: states can transition to each other and to
// themselves, and a direct link would make the graph cyclic at build time.
// Resolution happens at render time via Index.
type Transition struct {
	TargetState string `json:"target_state" yaml:"target_state"`

	// Condition is the guard expression. Free-form text, carried through
	// verbatim; this system never evaluates it.
	Condition   string `json:"condition" yaml:"condition"`
	Description string `json:"description" yaml:"description"`

	// Priority disambiguates among transitions from the same state when
	// more than one guard could hold. Advisory data only.
	Priority int `json:"priority" yaml:"priority"`

	OnTransition []string `json:"on_transition,omitempty" yaml:"on_transition,omitempty"`
}

// Index builds a name-to-state lookup for one render pass. Generators that
// need to resolve a TargetState build this locally; it is never stored back
// on the Fsm. With duplicate names the last occurrence wins, matching the
// leniency of the build pipeline (the validator reports duplicates).
func Index(f *Fsm) map[string]*State {
	idx := make(map[string]*State, len(f.States))
	for i := range f.States {
		idx[f.States[i].Name] = &f.States[i]
	}
	return idx
}

package compiler

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/fsmtool/pkg/fsm"
)

// The native strategy decodes the document into nested maps first and then
// converts them with mapstructure. WeaklyTypedInput gives us the same
// leniencies the tree strategy applies by hand: numbers coerce to strings
// and bare scalars coerce to singleton slices.

type machineDoc struct {
	Name         *string `mapstructure:"name"`
	Version      *string `mapstructure:"version"`
	Description  *string `mapstructure:"description"`
	InitialState *string `mapstructure:"initial_state"`
	States       *[]any  `mapstructure:"states"`
}

type stateDoc struct {
	Name        *string  `mapstructure:"name"`
	Description *string  `mapstructure:"description"`
	IsInitial   bool     `mapstructure:"is_initial"`
	IsFinal     bool     `mapstructure:"is_final"`
	OnEntry     []string `mapstructure:"on_entry"`
	Do          []string `mapstructure:"do"`
	OnExit      []string `mapstructure:"on_exit"`
	Transitions []any    `mapstructure:"transitions"`
}

type transitionDoc struct {
	TargetState  *string  `mapstructure:"target_state"`
	Condition    *string  `mapstructure:"condition"`
	Description  *string  `mapstructure:"description"`
	Priority     *int     `mapstructure:"priority"`
	OnTransition []string `mapstructure:"on_transition"`
}

func decodeWeak(input, result any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           result,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func (p *Parser) parseNative(data []byte) (*fsm.Fsm, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, sourceReadErr("malformed YAML", err)
	}
	if len(raw) == 0 {
		return nil, structureErr("empty state machine document")
	}

	if v, ok := raw["fsmformat"]; ok {
		p.formatVersion = fmt.Sprint(v)
	} else {
		p.formatVersion = DefaultFormatVersion
	}

	body, ok := raw["statemachine"]
	if !ok {
		return nil, structureErr("state machine definition must start with the 'statemachine' key")
	}
	bodyMap, ok := body.(map[string]any)
	if !ok {
		return nil, structureErr("the 'statemachine' value must be a mapping")
	}

	var doc machineDoc
	if err := decodeWeak(bodyMap, &doc); err != nil {
		return nil, structureErr("invalid state machine body: %v", err)
	}
	if doc.Name == nil {
		return nil, missingFieldErr("name", "the state machine")
	}
	if doc.Version == nil {
		return nil, missingFieldErr("version", "the state machine")
	}
	if doc.InitialState == nil {
		return nil, missingFieldErr("initial_state", "the state machine")
	}
	if doc.States == nil {
		return nil, missingFieldErr("states", "the state machine")
	}

	out := &fsm.Fsm{
		Name:         *doc.Name,
		Version:      *doc.Version,
		Description:  orSentinel(doc.Description),
		InitialState: *doc.InitialState,
	}

	for i, elem := range *doc.States {
		if _, ok := elem.(map[string]any); !ok {
			continue // same stray-item leniency as the tree strategy
		}
		st, err := p.buildNativeState(elem, i)
		if err != nil {
			return nil, err
		}
		out.States = append(out.States, st)
	}

	for i := range out.States {
		out.States[i].IsInitial = out.States[i].Name == out.InitialState
	}

	return out, nil
}

func (p *Parser) buildNativeState(elem any, ordinal int) (fsm.State, error) {
	var doc stateDoc
	if err := decodeWeak(elem, &doc); err != nil {
		return fsm.State{}, structureErr("invalid state %d: %v", ordinal+1, err)
	}
	if doc.Name == nil {
		return fsm.State{}, missingFieldErr("name", fmt.Sprintf("state %d", ordinal+1))
	}

	st := fsm.State{
		Name:        *doc.Name,
		Description: orSentinel(doc.Description),
		IsFinal:     doc.IsFinal,
		OnEntry:     orEmpty(doc.OnEntry),
		Do:          orEmpty(doc.Do),
		OnExit:      orEmpty(doc.OnExit),
	}

	for i, raw := range doc.Transitions {
		if _, ok := raw.(map[string]any); !ok {
			continue
		}
		tr, err := p.buildNativeTransition(raw, st.Name, i)
		if err != nil {
			return fsm.State{}, err
		}
		st.Transitions = append(st.Transitions, tr)
	}

	return st, nil
}

func (p *Parser) buildNativeTransition(raw any, stateName string, ordinal int) (fsm.Transition, error) {
	context := fmt.Sprintf("transition %d of state %q", ordinal+1, stateName)

	var doc transitionDoc
	if err := decodeWeak(raw, &doc); err != nil {
		return fsm.Transition{}, structureErr("invalid %s: %v", context, err)
	}
	if doc.TargetState == nil {
		return fsm.Transition{}, missingFieldErr("target_state", context)
	}
	if doc.Condition == nil {
		return fsm.Transition{}, missingFieldErr("condition", context)
	}
	if doc.Priority == nil {
		return fsm.Transition{}, missingFieldErr("priority", context)
	}

	return fsm.Transition{
		TargetState:  *doc.TargetState,
		Condition:    *doc.Condition,
		Description:  orSentinel(doc.Description),
		Priority:     *doc.Priority,
		OnTransition: orEmpty(doc.OnTransition),
	}, nil
}

func orSentinel(s *string) string {
	if s == nil {
		return fsm.NoDescription
	}
	return *s
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

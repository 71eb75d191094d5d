package compiler

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/fsmtool/pkg/fsm"
)

// DefaultFormatVersion is assumed when a document carries no fsmformat key.
// The marker is informational metadata today; it is retained so a future
// format revision can branch on it.
const DefaultFormatVersion = "0.1"

// Parser converts a YAML state machine definition into the fsm IR.
// It validates required fields, applies defaults, and normalizes
// scalar-or-list fields. The diagnostics (last parsed source, detected
// format version) are the only state kept across calls.
type Parser struct {
	lastSource    string
	formatVersion string
	native        bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithNativeDecoding switches the Parser from walking the YAML syntax tree
// to decoding into native maps first. Both strategies produce the same IR;
// the tree strategy is the default because it reads scalars as their raw
// source text (so "version: 1.0" survives as the string "1.0").
func WithNativeDecoding() Option {
	return func(p *Parser) {
		p.native = true
	}
}

// NewParser creates a new parser instance.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LastSource reports the source of the most recent parse. Diagnostic only.
func (p *Parser) LastSource() string { return p.lastSource }

// FormatVersion reports the fsmformat marker detected by the most recent
// parse, or DefaultFormatVersion when the document carried none.
func (p *Parser) FormatVersion() string { return p.formatVersion }

// ParseFile parses a state machine definition from a file.
func (p *Parser) ParseFile(path string) (*fsm.Fsm, error) {
	p.lastSource = path
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, sourceReadErr(fmt.Sprintf("failed to read %q", path), err)
	}
	return p.parse(data)
}

// ParseReader parses a state machine definition from a stream (e.g. stdin).
func (p *Parser) ParseReader(r io.Reader) (*fsm.Fsm, error) {
	p.lastSource = "<stream>"
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, sourceReadErr("failed to read input stream", err)
	}
	return p.parse(data)
}

// ParseBytes parses a state machine definition from raw bytes.
func (p *Parser) ParseBytes(data []byte) (*fsm.Fsm, error) {
	if p.lastSource == "" {
		p.lastSource = "<bytes>"
	}
	return p.parse(data)
}

func (p *Parser) parse(data []byte) (*fsm.Fsm, error) {
	data = stripVersionDirective(data)
	if p.native {
		return p.parseNative(data)
	}
	return p.parseTree(data)
}

// stripVersionDirective blanks a leading "%YAML x.y" directive line. The
// YAML serialization (like the documents this tool has always consumed)
// declares 1.2, but yaml.v3 rejects any version directive other than 1.1.
// The directive carries no information the pipeline acts on, so it is
// dropped; the line itself stays so error positions keep their numbers.
func stripVersionDirective(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 || trimmed[0] == '#' {
			continue
		}
		if bytes.HasPrefix(trimmed, []byte("%YAML")) {
			lines[i] = nil
			return bytes.Join(lines, []byte("\n"))
		}
		break
	}
	return data
}

// parseTree is the default strategy: it walks the generic YAML syntax tree
// (scalar/sequence/mapping nodes) produced by yaml.v3.
func (p *Parser) parseTree(data []byte) (*fsm.Fsm, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, sourceReadErr("malformed YAML", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, structureErr("empty state machine document")
	}

	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, structureErr("state machine document must contain a mapping at root")
	}

	if v := mappingValue(root, "fsmformat"); v != nil {
		p.formatVersion = v.Value
	} else {
		p.formatVersion = DefaultFormatVersion
	}

	body := mappingValue(root, "statemachine")
	if body == nil {
		return nil, structureErr("state machine definition must start with the 'statemachine' key")
	}
	if body.Kind != yaml.MappingNode {
		return nil, structureErr("the 'statemachine' value must be a mapping")
	}

	return p.buildMachine(body)
}

func (p *Parser) buildMachine(body *yaml.Node) (*fsm.Fsm, error) {
	name := mappingValue(body, "name")
	if name == nil {
		return nil, missingFieldErr("name", "the state machine")
	}
	version := mappingValue(body, "version")
	if version == nil {
		return nil, missingFieldErr("version", "the state machine")
	}
	initial := mappingValue(body, "initial_state")
	if initial == nil {
		return nil, missingFieldErr("initial_state", "the state machine")
	}
	states := mappingValue(body, "states")
	if states == nil {
		return nil, missingFieldErr("states", "the state machine")
	}

	out := &fsm.Fsm{
		Name:         name.Value,
		Version:      version.Value, // raw scalar text, so numeric versions stay verbatim
		Description:  scalarOr(mappingValue(body, "description"), fsm.NoDescription),
		InitialState: initial.Value,
	}

	// Stray non-mapping list items are skipped rather than rejected, a
	// deliberate leniency for hand-authored documents. The same applies to
	// a 'states' value that is not a sequence at all.
	if states.Kind == yaml.SequenceNode {
		for i, elem := range states.Content {
			elem = resolve(elem)
			if elem.Kind != yaml.MappingNode {
				continue
			}
			st, err := p.buildState(elem, i)
			if err != nil {
				return nil, err
			}
			out.States = append(out.States, st)
		}
	}

	// Derived, never trusted from input: a state is initial exactly when
	// its name matches the machine's initial_state.
	for i := range out.States {
		out.States[i].IsInitial = out.States[i].Name == out.InitialState
	}

	return out, nil
}

func (p *Parser) buildState(node *yaml.Node, ordinal int) (fsm.State, error) {
	name := mappingValue(node, "name")
	if name == nil {
		return fsm.State{}, missingFieldErr("name", fmt.Sprintf("state %d", ordinal+1))
	}

	st := fsm.State{
		Name:        name.Value,
		Description: scalarOr(mappingValue(node, "description"), fsm.NoDescription),
		IsFinal:     boolOr(mappingValue(node, "is_final"), false),
		OnEntry:     toList(mappingValue(node, "on_entry")),
		Do:          toList(mappingValue(node, "do")),
		OnExit:      toList(mappingValue(node, "on_exit")),
	}

	if transitions := mappingValue(node, "transitions"); transitions != nil && transitions.Kind == yaml.SequenceNode {
		for i, elem := range transitions.Content {
			elem = resolve(elem)
			if elem.Kind != yaml.MappingNode {
				continue
			}
			tr, err := p.buildTransition(elem, st.Name, i)
			if err != nil {
				return fsm.State{}, err
			}
			st.Transitions = append(st.Transitions, tr)
		}
	}

	return st, nil
}

func (p *Parser) buildTransition(node *yaml.Node, stateName string, ordinal int) (fsm.Transition, error) {
	context := fmt.Sprintf("transition %d of state %q", ordinal+1, stateName)

	target := mappingValue(node, "target_state")
	if target == nil {
		return fsm.Transition{}, missingFieldErr("target_state", context)
	}
	condition := mappingValue(node, "condition")
	if condition == nil {
		return fsm.Transition{}, missingFieldErr("condition", context)
	}
	priorityNode := mappingValue(node, "priority")
	if priorityNode == nil {
		return fsm.Transition{}, missingFieldErr("priority", context)
	}
	var priority int
	if err := priorityNode.Decode(&priority); err != nil {
		return fsm.Transition{}, structureErr("%s: 'priority' must be an integer, got %q", context, priorityNode.Value)
	}

	return fsm.Transition{
		TargetState:  target.Value,
		Condition:    condition.Value,
		Description:  scalarOr(mappingValue(node, "description"), fsm.NoDescription),
		Priority:     priority,
		OnTransition: toList(mappingValue(node, "on_transition")),
	}, nil
}

// mappingValue finds the value node for key in a mapping, or nil.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		k := m.Content[i]
		if k.Kind == yaml.ScalarNode && k.Value == key {
			return resolve(m.Content[i+1])
		}
	}
	return nil
}

// resolve follows YAML anchors so aliased nodes read like their targets.
func resolve(n *yaml.Node) *yaml.Node {
	if n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		return n.Alias
	}
	return n
}

func scalarOr(n *yaml.Node, fallback string) string {
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return fallback
	}
	return n.Value
}

func boolOr(n *yaml.Node, fallback bool) bool {
	if n == nil {
		return fallback
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		return fallback
	}
	return b
}

// toList is the single normalization point for every scalar-or-list field:
// absent becomes an empty slice, a bare scalar becomes a singleton, and a
// sequence keeps its scalar elements in order.
func toList(n *yaml.Node) []string {
	if n == nil {
		return []string{}
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return []string{}
		}
		return []string{n.Value}
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, elem := range n.Content {
			if elem = resolve(elem); elem.Kind == yaml.ScalarNode {
				items = append(items, elem.Value)
			}
		}
		return items
	default:
		return []string{}
	}
}

package compiler

import (
	"errors"
	"fmt"
)

// Kind sentinels for the parse error taxonomy. Every failure surfaced by the
// Parser is a *ParseError wrapping exactly one of these, so callers catch the
// whole family with errors.As and branch on kind with errors.Is.
var (
	// ErrStructure marks an empty document, or a root/body that is not a mapping.
	ErrStructure = errors.New("invalid document structure")
	// ErrMissingField marks a required field absent at machine, state or transition level.
	ErrMissingField = errors.New("missing required field")
	// ErrSourceRead marks input that could not be read or tokenized as YAML.
	ErrSourceRead = errors.New("source could not be read")
)

// ParseError is the single error type raised by the build pipeline. The first
// violation aborts parsing; no partial Fsm is ever returned alongside one.
type ParseError struct {
	Kind error  // one of ErrStructure, ErrMissingField, ErrSourceRead
	Msg  string // names the offending field and its state/transition context
	Err  error  // underlying cause, if any (I/O or YAML tokenizer failure)
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func structureErr(format string, args ...any) error {
	return &ParseError{Kind: ErrStructure, Msg: fmt.Sprintf(format, args...)}
}

func missingFieldErr(field, context string) error {
	return &ParseError{Kind: ErrMissingField, Msg: fmt.Sprintf("%s must have a %q field", context, field)}
}

func sourceReadErr(msg string, err error) error {
	return &ParseError{Kind: ErrSourceRead, Msg: msg, Err: err}
}

package generator

import (
	"fmt"
	"io"

	"github.com/aretw0/fsmtool/pkg/fsm"
)

// Stub stands in for native-code backends that are planned but not built
// yet. It keeps the variant set (and the CLI flags) stable while the real
// generators land.
type Stub struct {
	subject string
}

// NewStub creates a placeholder generator for the named backend.
func NewStub(subject string) *Stub {
	return &Stub{subject: subject}
}

func (s *Stub) Name() string { return s.subject }

func (s *Stub) Render(_ *fsm.Fsm, w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s generation not supported yet.\n", s.subject)
	return err
}

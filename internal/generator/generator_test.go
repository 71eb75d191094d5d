package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fsmtool/pkg/fsm"
)

func TestForFormat(t *testing.T) {
	for _, format := range Formats() {
		gen, err := ForFormat(format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, gen.Name())
	}

	_, err := ForFormat("svg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"svg"`)
}

func TestWriteOutput_File(t *testing.T) {
	m := &fsm.Fsm{
		Name:         "M",
		Version:      "1",
		Description:  fsm.NoDescription,
		InitialState: "A",
		States:       []fsm.State{{Name: "A", Description: fsm.NoDescription, IsInitial: true}},
	}

	g := NewPlantUML()
	g.Now = testClock

	dest := filepath.Join(t.TempDir(), "out.puml")
	require.NoError(t, WriteOutput(g, m, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@startuml")
	assert.Contains(t, string(data), "@enduml", "file is fully flushed and closed")
}

func TestWriteOutput_BadDestination(t *testing.T) {
	m := &fsm.Fsm{Name: "M", Version: "1", Description: fsm.NoDescription}

	err := WriteOutput(NewPlantUML(), m, filepath.Join(t.TempDir(), "missing", "out.puml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create")
}

func TestStub_Render(t *testing.T) {
	gen, err := ForFormat(FormatAutosarC)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, gen.Render(&fsm.Fsm{Name: "M"}, &sb))
	assert.Equal(t, "AUTOSAR C code generation not supported yet.\n", sb.String())
}

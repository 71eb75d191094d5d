package fsmtool_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fsmtool"
)

func TestParseAndRender(t *testing.T) {
	m, err := fsmtool.Parse(filepath.Join("testdata", "traffic_light.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "TrafficLight", m.Name)
	require.Len(t, m.States, 4)
	assert.True(t, m.States[0].IsInitial)
	require.NoError(t, fsmtool.Validate(m))

	for _, format := range []string{fsmtool.FormatPlantUML, fsmtool.FormatStateflow, fsmtool.FormatYAML} {
		var buf bytes.Buffer
		require.NoError(t, fsmtool.Render(m, format, &buf), format)
		assert.Contains(t, buf.String(), "TrafficLight", format)
	}
}

func TestParseBytesMatchesParse(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "traffic_light.yaml"))
	require.NoError(t, err)

	fromBytes, err := fsmtool.ParseBytes(data)
	require.NoError(t, err)

	fromFile, err := fsmtool.Parse(filepath.Join("testdata", "traffic_light.yaml"))
	require.NoError(t, err)

	assert.Equal(t, fromFile, fromBytes)
}

func TestRenderUnknownFormat(t *testing.T) {
	m, err := fsmtool.Parse(filepath.Join("testdata", "traffic_light.yaml"))
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, fsmtool.Render(m, "svg", &buf))
}

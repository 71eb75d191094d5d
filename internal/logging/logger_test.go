package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_NormalizesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, DefaultLevel)

	logger.Error("render failed", "error", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "err=boom")
	assert.NotContains(t, out, "error=boom")
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, DefaultLevel)

	logger.Debug("noisy detail")
	assert.Empty(t, buf.String())

	logger.Info("worth keeping")
	assert.Contains(t, buf.String(), "worth keeping")
}

func TestNewNop_DiscardsEverything(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop().Error("dropped", "error", errors.New("unseen"))
	})
}

package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		_ = SetLevel("info")
	})

	require.NoError(t, SetLevel("warn"))
	Info("hidden %d", 1)
	assert.Empty(t, buf.String())

	Warn("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")

	require.NoError(t, SetLevel("debug"))
	Debug("details")
	assert.Contains(t, buf.String(), "details")
}

func TestSetLevelRejectsUnknownName(t *testing.T) {
	assert.Error(t, SetLevel("loud"))
}

func TestPlainPrefix(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	Warn("prefix check")
	line := buf.String()
	assert.Contains(t, line, "aviator")
	assert.Contains(t, line, "prefix check")
	assert.NotContains(t, line, "✈")
}

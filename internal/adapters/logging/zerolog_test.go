package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/rigup/internal/ports"
)

func TestZerologLogger_EmitsStructuredFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewZerologLogger(WithOutput(&buf), WithLevel(ports.LevelInfo))

	logger.Info(context.Background(), "step applied", ports.F("step", "brew:formula:git"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "step applied", entry["message"])
	assert.Equal(t, "brew:formula:git", entry["step"])
	assert.Equal(t, "info", entry["level"])
}

func TestZerologLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewZerologLogger(WithOutput(&buf), WithLevel(ports.LevelWarn))

	logger.Debug(context.Background(), "hidden")
	logger.Info(context.Background(), "hidden too")
	assert.Empty(t, buf.String())

	logger.Error(context.Background(), "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestZerologLogger_WithAddsPersistentFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewZerologLogger(WithOutput(&buf)).With(ports.F("run", "abc123"))

	logger.Info(context.Background(), "started")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc123", entry["run"])
}

func TestNopLogger_DoesNothing(t *testing.T) {
	t.Parallel()

	logger := NewNopLogger()
	logger.Info(context.Background(), "ignored", ports.F("k", "v"))
	assert.Same(t, logger, logger.With(ports.F("k", "v")))
}

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONWithLevel(t *testing.T) {
	t.Setenv("PRETTY", "")
	t.Setenv("DEBUG", "")

	var buf bytes.Buffer
	l := New(Options{Level: "warn", Out: &buf})

	l.Info().Msg("dropped")
	require.Zero(t, buf.Len())

	l.Warn().Str("table", "users").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "users", entry["table"])
	assert.Equal(t, "kept", entry["message"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "caller")
}

// DEBUG=1 lowers the level when Options.Level is empty.
func TestNew_DebugEnv(t *testing.T) {
	t.Setenv("PRETTY", "")
	t.Setenv("DEBUG", "1")

	var buf bytes.Buffer
	l := New(Options{Out: &buf})
	l.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, line []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(line, &entry))
	return entry
}

func TestNew_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := New("tui", &buf)

	l.Info().Str("op", "add").Msg("hello")

	entry := decode(t, buf.Bytes())
	assert.Equal(t, "tui", entry["role"])
	assert.Equal(t, "add", entry["op"])
	assert.Equal(t, "hello", entry["message"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
}

func TestNew_InfoLevelByDefault(t *testing.T) {
	var buf bytes.Buffer
	l := New("cli", &buf)

	l.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	l.SetDebug(true)
	l.Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	l.SetDebug(false)
	l.Debug().Msg("hidden again")
	assert.Empty(t, buf.String())
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New("cli", &buf).Component("manager")

	l.Warn().Msg("careful")

	entry := decode(t, buf.Bytes())
	assert.Equal(t, "manager", entry["component"])
	assert.Equal(t, "cli", entry["role"])
	assert.Equal(t, zerolog.LevelWarnValue, entry["level"])
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "exelaunch.log")

	l, err := NewFileLogger("tui", path)
	require.NoError(t, err)
	l.Info().Msg("first")
	require.NoError(t, l.Close())

	l, err = NewFileLogger("tui", path)
	require.NoError(t, err)
	l.Info().Msg("second")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "second", decode(t, []byte(lines[1]))["message"])
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
	assert.NoError(t, l.Close())
}

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(Config{})

	Info().Str("component", "test").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "info", entry["level"])
}

func TestInit_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "error", Output: &buf})
	defer Init(Config{})

	Warn().Msg("dropped")
	assert.Zero(t, buf.Len())
}

func TestCtx_FallsBackToGlobal(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Output: &buf})
	defer Init(Config{})

	Ctx(context.Background()).Info().Msg("global")
	assert.Contains(t, buf.String(), "global")

	var scoped bytes.Buffer
	ctx := WithContext(context.Background(), zerolog.New(&scoped))
	Ctx(ctx).Info().Msg("scoped")
	assert.Contains(t, scoped.String(), "scoped")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, parseLevel("WARNING"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("bogus"))
	assert.Equal(t, zerolog.Disabled, parseLevel("disabled"))
}

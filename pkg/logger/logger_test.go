package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo, "restaurant", func(context.Context) string { return "abc123" })

	log.Info(context.Background(), "order created", "order_id", 1)
	log.Debug(context.Background(), "hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "order created", rec["msg"])
	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "restaurant", rec["service"])
	assert.Equal(t, "abc123", rec["trace_id"])
	assert.EqualValues(t, 1, rec["order_id"])
}

func TestLoggerWithoutTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelDebug, "restaurant", func(context.Context) string { return "" })
	log.Warn(context.Background(), "rejected", "error", "bad input")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	_, ok := rec["trace_id"]
	assert.False(t, ok)
	assert.Equal(t, "warn", rec["level"])
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

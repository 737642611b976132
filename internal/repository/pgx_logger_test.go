package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgxLogger_LiftsKnownFields(t *testing.T) {
	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))

	l.Log(context.Background(), tracelog.LogLevelError, "Query", map[string]any{
		"sql":  "SELECT 1",
		"args": []any{1},
		"time": 1500 * time.Millisecond,
		"err":  errors.New("boom"),
		"pid":  uint32(42),
	})

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "pgx", got["component"])
	assert.Equal(t, "SELECT 1", got["sql"])
	assert.Equal(t, "boom", got["error"])
	assert.Equal(t, 1500.0, got["duration"])
	assert.Equal(t, 42.0, got["pid"])
	assert.NotContains(t, got, "args", "args are trace-only")
	assert.Equal(t, "error", got["level"])
}

func TestPgxLogger_NoneIsSilent(t *testing.T) {
	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf))
	l.Log(context.Background(), tracelog.LogLevelNone, "ignored", nil)
	assert.Zero(t, buf.Len())
}

func TestTraceLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelTrace, traceLevel(zerolog.TraceLevel))
	assert.Equal(t, tracelog.LogLevelDebug, traceLevel(zerolog.DebugLevel))
	assert.Equal(t, tracelog.LogLevelInfo, traceLevel(zerolog.InfoLevel))
	assert.Equal(t, tracelog.LogLevelWarn, traceLevel(zerolog.WarnLevel))
	assert.Equal(t, tracelog.LogLevelError, traceLevel(zerolog.ErrorLevel))
}

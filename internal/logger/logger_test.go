package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf, Component: "resolver"})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"node": "$.children[0]"})
	log.Info(context.Background(), "resolved node", "type", "DataTable")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "resolved node", entry["message"])
	require.Equal(t, "$.children[0]", entry["node"])
	require.Equal(t, "DataTable", entry["type"])
	require.Equal(t, "resolver", entry["component"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log.Debug(context.Background(), "this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	ctx := WithCorrelationID(context.Background(), "abc-123")
	log = log.With("action", "editUser")
	log.Error(ctx, errors.New("boom"), "handler failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "handler failed", entry["message"])
	require.Equal(t, "editUser", entry["action"])
	require.Equal(t, "boom", entry["error"])
	require.Equal(t, "abc-123", entry["correlation_id"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

func TestNilLoggerIsSafe(t *testing.T) {
	t.Parallel()

	var log *Logger
	require.NotPanics(t, func() {
		log.Info(context.Background(), "ignored")
		log.Error(context.Background(), errors.New("x"), "ignored")
		require.Nil(t, log.With("k", "v"))
	})
}

func TestNewCorrelationIDIsUnique(t *testing.T) {
	t.Parallel()

	a := NewCorrelationID()
	b := NewCorrelationID()
	require.Len(t, a, 36)
	require.NotEqual(t, a, b)
	require.Equal(t, "", CorrelationID(context.Background()))
}

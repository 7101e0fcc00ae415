package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cleared-dev/payfield/internal/config"
	"github.com/cleared-dev/payfield/internal/redact"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "debug", Encoding: "json"}, &buf)
	require.NoError(t, err)

	log.Debug("checked", zap.String("field", "cvv"))
	require.NoError(t, log.Sync())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "checked", line["message"])
	assert.Equal(t, "cvv", line["field"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "warn", Encoding: "console"}, &buf)
	require.NoError(t, err)

	log.Info("hidden")
	assert.Empty(t, buf.String())
	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New(config.LogConfig{Encoding: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestPayload_Redacts(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	payload := map[string]any{
		"cardNumber": "4111111111111111",
		"nested":     map[string]any{"cvv": "123", "note": "ok"},
		"items":      []any{map[string]any{"cvc": "999"}, "x"},
	}
	log.Info("charge", Payload("payload", payload, redact.Default()))

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	got := ctx["payload"].(map[string]any)

	assert.Equal(t, "[REDACTED]", got["cardNumber"])
	nested := got["nested"].(map[string]any)
	assert.Equal(t, "[REDACTED]", nested["cvv"])
	assert.Equal(t, "ok", nested["note"])
	items := got["items"].([]any)
	assert.Equal(t, "[REDACTED]", items[0].(map[string]any)["cvc"])
	assert.Equal(t, "x", items[1])
}

func TestPayload_JSONOutputHasNoRawValues(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Encoding: "json"}, &buf)
	require.NoError(t, err)

	log.Info("charge", Payload("payload", []any{map[string]any{"card_number": "4111111111111111"}}, redact.Default()))
	assert.NotContains(t, buf.String(), "4111111111111111")
	assert.Contains(t, buf.String(), "[REDACTED]")
}

func TestPayload_Scalar(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	zap.New(core).Info("m", Payload("v", "plain", redact.Default()))
	assert.Equal(t, "plain", logs.All()[0].ContextMap()["v"])
}

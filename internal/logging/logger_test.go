package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Init(Config{Level: "info", Format: "json", ServiceName: "insiderfetch", Version: "test", Output: &buf})
	require.NoError(t, err)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	logger.Info().Str("ticker", "AAPL").Msg("hello")
	logger.Debug().Msg("dropped")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "insiderfetch", line["service"])
	assert.Equal(t, "AAPL", line["ticker"])
	assert.NotEmpty(t, line["run_id"])
}

func TestInitRejectsBadInput(t *testing.T) {
	_, err := Init(Config{Level: "loud", Format: "json"})
	assert.Error(t, err)

	_, err = Init(Config{Level: "info", Format: "xml"})
	assert.Error(t, err)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func TestRunIDsDiffer(t *testing.T) {
	var a, b bytes.Buffer
	la, err := Init(Config{Level: "info", Format: "json", Output: &a})
	require.NoError(t, err)
	lb, err := Init(Config{Level: "info", Format: "json", Output: &b})
	require.NoError(t, err)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	la.Info().Msg("a")
	lb.Info().Msg("b")

	var ma, mb map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(a.Bytes()), &ma))
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(b.Bytes()), &mb))
	assert.NotEqual(t, ma["run_id"], mb["run_id"])
}

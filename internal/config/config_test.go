package config

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	require.NoError(t, Load())

	assert.Equal(t, ":8080", APIAddr())
	assert.Equal(t, "http://localhost:8080", APIURL())
	assert.Equal(t, "resources/usage", MQTTTopic())
	assert.Equal(t, "US", ClimatiqRegion())
	assert.InDelta(t, 80.0, AlertThreshold(), 0.0001)
	assert.False(t, UseCloudServices())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("API_URL", "http://context.internal:9000")
	t.Setenv("ALERT_THRESHOLD", "65")
	require.NoError(t, Load())

	assert.Equal(t, "http://context.internal:9000", APIURL())
	assert.InDelta(t, 65.0, AlertThreshold(), 0.0001)
}

func TestSetupLogging(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "unknown falls back to info", level: "loud", want: zerolog.InfoLevel},
		{name: "empty falls back to info", level: "", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := setupLogging(&buf, tt.level, "json")
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestSetupLoggingJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogging(&buf, "info", "json")
	logger.Info().Str("component", "test").Msg("hello")

	assert.Contains(t, buf.String(), `"component":"test"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

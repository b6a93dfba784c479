package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected LogLevel
	}{
		{input: "", expected: InfoLevel},
		{input: "INFO", expected: InfoLevel},
		{input: "debug", expected: DebugLevel},
		{input: "warn", expected: WarnLevel},
		{input: "warning", expected: WarnLevel},
		{input: "error", expected: ErrorLevel},
		{input: "Fatal", expected: FatalLevel},
	} {
		t.Run(tc.input, func(t *testing.T) {
			level, err := ParseLogLevel(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, level)
		})
	}
}

func TestParseLogLevelUnknown(t *testing.T) {
	_, err := ParseLogLevel("loud")
	assert.EqualError(t, err, `unknown log level "loud"`)
}

func TestLogLevelString(t *testing.T) {
	for _, level := range []LogLevel{InfoLevel, DebugLevel, ErrorLevel, WarnLevel, FatalLevel} {
		parsed, err := ParseLogLevel(level.String())
		require.NoError(t, err)
		assert.Equal(t, level, parsed)
	}
	assert.Equal(t, "LogLevel(42)", LogLevel(42).String())
}

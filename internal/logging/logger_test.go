package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/stoik/phishing-detector/internal/config"
)

func TestInitLogger_Levels(t *testing.T) {
	tests := []struct {
		level    string
		format   string
		expected zapcore.Level
	}{
		{level: "debug", format: "json", expected: zapcore.DebugLevel},
		{level: "info", format: "console", expected: zapcore.InfoLevel},
		{level: "warn", format: "json", expected: zapcore.WarnLevel},
		{level: "error", format: "console", expected: zapcore.ErrorLevel},
		{level: "verbose", format: "json", expected: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			v := config.NewEmptyViper()
			v.Set("logging.level", tt.level)
			v.Set("logging.format", tt.format)

			logger, err := InitLogger(config.NewFromViper(v))
			require.NoError(t, err)

			assert.True(t, logger.Core().Enabled(tt.expected))
			if tt.expected > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.expected-1))
			}
		})
	}
}

package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/wage-engine/logger"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level, format string
		enabled       zapcore.Level
		disabled      zapcore.Level
	}{
		{"debug", "console", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"", "json", zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn", "json", zapcore.WarnLevel, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			l, err := logger.New(tt.level, tt.format)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.enabled))
			assert.False(t, l.Core().Enabled(tt.disabled))
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logger.New("loud", "json")
	assert.Error(t, err)
}

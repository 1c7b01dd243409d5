package logging

import (
	"testing"

	"github.com/automoto/quadplat/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		cfg  config.LoggingConfig
		want zapcore.Level
	}{
		{config.LoggingConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{config.LoggingConfig{Level: "warn", Format: "json"}, zapcore.WarnLevel},
		{config.LoggingConfig{Level: "loud"}, zapcore.InfoLevel},
	}
	for _, tc := range cases {
		log, err := New(tc.cfg)
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(tc.want), tc.cfg.Level)
		assert.False(t, log.Core().Enabled(tc.want-1), tc.cfg.Level)
	}
}

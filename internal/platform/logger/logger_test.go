package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstiles/blog-api/internal/config"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		name        string
		logLevel    string
		debugLogged bool
	}{
		{name: "debug_level", logLevel: "debug", debugLogged: true},
		{name: "info_level", logLevel: "info", debugLogged: false},
		{name: "warn_level", logLevel: "warn", debugLogged: false},
		{name: "invalid_level_falls_back_to_info", logLevel: "verbose", debugLogged: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := Setup(config.ServerConfig{Port: 8080, LogLevel: tt.logLevel})
			require.NotNil(t, logger)

			ctx := context.Background()
			assert.Equal(t, tt.debugLogged, logger.Enabled(ctx, slog.LevelDebug))
			assert.True(t, logger.Enabled(ctx, slog.LevelError))
		})
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	stored := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := WithLogger(context.Background(), stored)
	assert.Same(t, stored, FromContext(ctx))

	// No logger in context falls back to the default.
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	// Explicit fallback wins over the default.
	fallback := slog.New(slog.NewTextHandler(&buf, nil))
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, stored, FromContextOrDefault(ctx, fallback))
}

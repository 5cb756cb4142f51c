package logger_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"shareit/config"
	"shareit/shared/constant"
	"shareit/shared/logger"
)

// capture routes the global logger into a buffer and restores global state afterwards.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()

	saved, level, format := log.Logger, zerolog.GlobalLevel(), zerolog.TimeFieldFormat
	t.Cleanup(func() {
		log.Logger = saved
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = format
	})

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	return &buf
}

func TestInitLogger(t *testing.T) {
	capture(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestSetLogLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":    zerolog.DebugLevel,
		"info":     zerolog.InfoLevel,
		"warn":     zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"disabled": zerolog.Disabled,
		"verbose":  zerolog.TraceLevel,
		"":         zerolog.TraceLevel,
	}

	for value, want := range tests {
		t.Run("level "+value, func(t *testing.T) {
			capture(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = value

			logger.SetLogLevel(cfg)

			assert.Equal(t, want, zerolog.GlobalLevel())
		})
	}
}

func TestErrorWithStack(t *testing.T) {
	buf := capture(t)

	logger.ErrorWithStack(errors.New("failed to list bookings"))

	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "failed to list bookings")
}

func TestFromContext(t *testing.T) {
	t.Run("request and caller ids", func(t *testing.T) {
		buf := capture(t)

		ctx := context.WithValue(context.Background(), constant.ContextKeyRequestID, "req-42")
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, int64(7))

		logger.FromContext(ctx).Info().Msg("booking created")

		assert.Contains(t, buf.String(), `"request_id":"req-42"`)
		assert.Contains(t, buf.String(), `"user_id":7`)
	})

	t.Run("bare context", func(t *testing.T) {
		buf := capture(t)

		logger.FromContext(context.Background()).Info().Msg("health")

		assert.NotContains(t, buf.String(), "request_id")
		assert.NotContains(t, buf.String(), "user_id")
	})
}

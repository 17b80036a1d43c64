package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/demografi/pkg/utils/logging"
)

func TestParseLogLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}

	for input, want := range testCases {
		t.Run(input, func(t *testing.T) {
			gt.Equal(t, logging.ParseLogLevel(input), want)
		})
	}
}

func TestNewLoggerWithFormat(t *testing.T) {
	t.Run("non terminal writer gets JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLogger(slog.LevelInfo, &buf)
		logger.Info("fetched", "breakdown", "gender")

		var entry map[string]any
		gt.NoError(t, json.Unmarshal(buf.Bytes(), &entry)).Required()
		gt.Equal(t, entry["msg"], any("fetched"))
		gt.Equal(t, entry["breakdown"], any("gender"))
	})

	t.Run("level filters records", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLoggerWithFormat(slog.LevelWarn, &buf, logging.FormatJSON)
		logger.Info("hidden")
		gt.Equal(t, buf.Len(), 0)

		logger.Warn("shown")
		gt.S(t, buf.String()).Contains("shown")
	})

	t.Run("console format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLoggerWithFormat(slog.LevelInfo, &buf, logging.FormatConsole)
		logger.Info("console message")
		gt.S(t, buf.String()).Contains("console message")
	})
}

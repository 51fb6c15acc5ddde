package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCustomHandler(t *testing.T) {
	tests := []struct {
		name     string
		log      func(l *slog.Logger)
		contains []string
		empty    bool
	}{
		{
			name: "command line folds name user and timing",
			log: func(l *slog.Logger) {
				l.Info("Command executed",
					slog.String("type", "cmd"),
					slog.String("name", "done"),
					slog.String("user_name", "alice"),
					slog.String("status", "success"),
					slog.Duration("took", 1500*time.Millisecond))
			},
			contains: []string{"[CMD]", "Command executed [done by alice]", "[Status: success]", "(took 1500ms)"},
		},
		{
			name: "error appended to message",
			log: func(l *slog.Logger) {
				l.Error("Query failed", slog.String("type", "db"), slog.Any("error", errors.New("boom")))
			},
			contains: []string{"[DB]", "ERROR", "Query failed: boom"},
		},
		{
			name: "extra attrs rendered",
			log: func(l *slog.Logger) {
				l.With(slog.Int64("link_id", 7)).Warn("Slow")
			},
			contains: []string{"[SYS]", "WARN", "Slow link_id=7"},
		},
		{
			name: "below level dropped",
			log: func(l *slog.Logger) {
				l.Debug("noise")
			},
			empty: true,
		},
		{
			name: "gateway chatter dropped",
			log: func(l *slog.Logger) {
				l.Info("sending heartbeat")
			},
			empty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := slog.New(NewHandler(Options{Level: slog.LevelInfo, Output: &buf}))
			tt.log(l)

			if tt.empty {
				assert.Empty(t, buf.String())
				return
			}
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestNewHandlerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewHandler(Options{Format: "json", Output: &buf}))
	l.Info("hello", slog.String("type", "sys"))
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"type":"sys"`)
}

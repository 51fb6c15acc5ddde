package logger

import (
	"log/slog"
	"time"
)

// Setup installs the bot handler as the process-wide default logger.
func Setup(opts Options) *slog.Logger {
	l := slog.New(NewHandler(opts))
	slog.SetDefault(l)
	return l
}

// LogCommand logs command execution
func LogCommand(name, userName string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "cmd"),
		slog.String("name", name),
		slog.String("user_name", userName),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Command failed", append(attrs, slog.String("status", "failed"), slog.Any("error", err))...)
		return
	}
	slog.Info("Command executed", append(attrs, slog.String("status", "success"))...)
}

// LogSystem logs system events
func LogSystem(msg string, attrs ...any) {
	slog.Info(msg, append([]any{slog.String("type", "sys")}, attrs...)...)
}

// LogError logs error events
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}

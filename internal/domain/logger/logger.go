package logger

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
)

// QueryHook logs every bun query with the attribute layout the console
// handler understands. Successful queries go to debug, failures to error.
type QueryHook struct {
	SlowThreshold time.Duration
}

var _ bun.QueryHook = (*QueryHook)(nil)

func NewQueryHook(slowThreshold time.Duration) *QueryHook {
	return &QueryHook{SlowThreshold: slowThreshold}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)

	attrs := []any{
		slog.String("type", "db"),
		slog.String("operation", event.Operation()),
		slog.String("query", event.Query),
		slog.Duration("took", duration),
	}

	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		slog.ErrorContext(ctx, "Query failed", append(attrs, slog.Any("error", event.Err))...)
		return
	}

	if h.SlowThreshold > 0 && duration > h.SlowThreshold {
		slog.WarnContext(ctx, "Query executed slowly", append(attrs, slog.String("status", "slow"))...)
		return
	}

	if event.Result != nil {
		if n, err := event.Result.RowsAffected(); err == nil {
			attrs = append(attrs, slog.Int64("affected_rows", n))
		}
	}
	slog.DebugContext(ctx, "Query executed", attrs...)
}

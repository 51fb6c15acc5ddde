package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand LogType = "CMD"
	TypeDB      LogType = "DB"
	TypeSystem  LogType = "SYS"
	TypeError   LogType = "ERR"
)

// Gateway and rest chatter from disgo that drowns everything else at debug.
var skippedMessages = []string{
	"locking buckets",
	"unlocking buckets",
	"gateway event",
	"cleaning up bucket",
	"cleaned up rate limit buckets",
	"binary message received",
	"received gateway message",
	"locking gateway rate limiter",
	"unlocking gateway rate limiter",
	"sending gateway command",
	"new request",
	"new response",
	"locking rest bucket",
	"unlocking rest bucket",
	"rate limit response headers",
	"sending heartbeat",
}

type Options struct {
	Level slog.Leveler
	// Format is "text" (coloured, default) or "json".
	Format string
	Output io.Writer
}

type CustomHandler struct {
	opts   Options
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

func NewHandler(opts Options) slog.Handler {
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if strings.EqualFold(opts.Format, "json") {
		return slog.NewJSONHandler(opts.Output, &slog.HandlerOptions{Level: opts.Level})
	}
	return &CustomHandler{opts: opts, mu: &sync.Mutex{}}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}

// line collects the attributes the handler renders specially.
type line struct {
	logType  LogType
	name     string
	userName string
	status   string
	took     time.Duration
	err      string
	extra    []string
}

func (l *line) add(prefix string, a slog.Attr) {
	switch a.Key {
	case "type":
		switch a.Value.String() {
		case "cmd":
			l.logType = TypeCommand
		case "db":
			l.logType = TypeDB
		case "error":
			l.logType = TypeError
		}
	case "name":
		l.name = a.Value.String()
	case "user_name":
		l.userName = a.Value.String()
	case "status":
		l.status = a.Value.String()
	case "took":
		if a.Value.Kind() == slog.KindDuration {
			l.took = a.Value.Duration()
		}
	case "error":
		l.err = a.Value.String()
	default:
		l.extra = append(l.extra, fmt.Sprintf("%s%s=%v", prefix, a.Key, a.Value))
	}
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(&r) {
		return nil
	}

	prefix := ""
	if len(h.groups) > 0 {
		prefix = strings.Join(h.groups, ".") + "."
	}

	l := line{logType: TypeSystem}
	for _, a := range h.attrs {
		l.add(prefix, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		l.add(prefix, a)
		return true
	})

	levelColor, levelText := levelStyle(r.Level)

	message := r.Message
	if l.err != "" {
		message = fmt.Sprintf("%s: %s", message, l.err)
	}
	if l.name != "" && l.userName != "" {
		message = fmt.Sprintf("%s [%s by %s]", message, l.name, l.userName)
	}
	if l.status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, l.status)
	}
	if l.took > 0 {
		message = fmt.Sprintf("%s (took %dms)", message, l.took.Milliseconds())
	}
	if len(l.extra) > 0 {
		message += " " + strings.Join(l.extra, " ")
	}

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.opts.Output, "%s[EngageBot] [%s] [%s%s%s] [%s] %s%s\n",
		colorWhite,
		ts.Format("15:04:05"),
		levelColor,
		levelText,
		colorWhite,
		l.logType,
		message,
		colorReset,
	)
	return err
}

func levelStyle(level slog.Level) (string, string) {
	switch {
	case level >= slog.LevelError:
		return colorRed, "ERROR"
	case level >= slog.LevelWarn:
		return colorYellow, "WARN"
	case level >= slog.LevelInfo:
		return colorGreen, "INFO"
	default:
		return colorPurple, "DEBUG"
	}
}

func shouldSkipLog(r *slog.Record) bool {
	msg := strings.ToLower(r.Message)
	for _, skip := range skippedMessages {
		if strings.Contains(msg, skip) {
			return true
		}
	}
	return false
}

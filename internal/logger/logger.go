package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level, falling back to INFO.
func ParseLevel(s string) Level {
	lvl, ok := LookupLevel(s)
	if !ok {
		return INFO
	}
	return lvl
}

// LookupLevel reports whether s names a known level.
func LookupLevel(s string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG, true
	case "INFO":
		return INFO, true
	case "WARN", "WARNING":
		return WARN, true
	case "ERROR":
		return ERROR, true
	default:
		return INFO, false
	}
}

// sink is shared by a logger and every logger derived from it so that
// concurrent writers never interleave partial lines.
type sink struct {
	mu  sync.Mutex
	out io.Writer
}

// Logger is a levelled logger with a prefix and key=value fields.
type Logger struct {
	sink     *sink
	level    Level
	prefix   string
	fields   map[string]any
	colorize bool
}

// Option configures a Logger.
type Option func(*Logger)

func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.sink = &sink{out: w}
	}
}

func WithLevel(level Level) Option {
	return func(l *Logger) {
		l.level = level
	}
}

func WithPrefix(prefix string) Option {
	return func(l *Logger) {
		l.prefix = prefix
	}
}

func WithColors(enabled bool) Option {
	return func(l *Logger) {
		l.colorize = enabled
	}
}

// New creates a Logger writing to stdout at INFO unless overridden.
func New(opts ...Option) *Logger {
	l := &Logger{
		sink:     &sink{out: os.Stdout},
		level:    INFO,
		colorize: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var defaultLogger = New()

// SetDefault sets the default logger.
func SetDefault(l *Logger) {
	defaultLogger = l
}

// Default returns the default logger.
func Default() *Logger {
	return defaultLogger
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return New(WithOutput(io.Discard), WithLevel(ERROR+1), WithColors(false))
}

func (l *Logger) clone() *Logger {
	c := *l
	return &c
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields returns a new logger with the given fields added.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	c := l.clone()
	c.fields = merged
	return c
}

// WithError attaches err under the "error" field.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.WithField("error", err.Error())
}

// WithPrefix returns a new logger with the given prefix.
func (l *Logger) WithPrefix(prefix string) *Logger {
	c := l.clone()
	c.prefix = prefix
	return c
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.level
}

func (l *Logger) log(level Level, msg string, args ...any) {
	if !l.Enabled(level) {
		return
	}

	var sb strings.Builder
	sb.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	sb.WriteByte(' ')
	if l.colorize {
		sb.WriteString(colorize(level))
	} else {
		fmt.Fprintf(&sb, "%-5s", level.String())
	}
	sb.WriteByte(' ')

	if l.prefix != "" {
		sb.WriteString("[" + l.prefix + "] ")
	}

	if _, file, line, ok := runtime.Caller(2); ok {
		if idx := strings.LastIndex(file, "/"); idx >= 0 {
			file = file[idx+1:]
		}
		fmt.Fprintf(&sb, "[%s:%d] ", file, line)
	}

	if len(args) > 0 {
		fmt.Fprintf(&sb, msg, args...)
	} else {
		sb.WriteString(msg)
	}

	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s=%v", k, l.fields[k])
		}
	}
	sb.WriteByte('\n')

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	_, _ = io.WriteString(l.sink.out, sb.String())
}

func colorize(level Level) string {
	var color string
	switch level {
	case DEBUG:
		color = "\033[36m" // Cyan
	case INFO:
		color = "\033[32m" // Green
	case WARN:
		color = "\033[33m" // Yellow
	case ERROR:
		color = "\033[31m" // Red
	default:
		color = "\033[0m"
	}
	return fmt.Sprintf("%s%-5s\033[0m", color, level.String())
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(DEBUG, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(INFO, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(WARN, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(ERROR, msg, args...)
}

// Package-level functions that use the default logger.

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }

type ctxKey struct{}

// FromContext returns the logger from the context, or the default logger.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return defaultLogger
}

// NewContext returns a new context with the given logger.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

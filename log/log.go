package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"
)

// Logger is a leveled structured logger backed by [log/slog]. Its zero
// value is usable and discards all messages.
type Logger struct {
	*slog.Logger
	config
}

// Make creates a Logger writing to w with the default configuration,
// overridden by any provided options.
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{
		config: cfg,
		Logger: slog.New(cfg.handler()),
	}
}

// Wrap returns a new Logger layered over the receiver's configuration
// with the provided options applied.
func (l Logger) Wrap(opts ...Option) Logger {
	cfg := l.config.apply(opts...)

	return Logger{
		config: cfg,
		Logger: slog.New(cfg.handler()),
	}
}

// With returns a new Logger that includes the given attributes in every
// log message.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil {
		return l
	}

	return Logger{
		config: l.config,
		Logger: slog.New(l.Handler().WithAttrs(attrs)),
	}
}

// Level returns the configured minimum log level.
func (l Logger) Level() Level {
	if l.Logger == nil {
		return DefaultLevel
	}

	return l.level
}

// Format returns the configured output format.
func (l Logger) Format() Format {
	if l.Logger == nil {
		return DefaultFormat
	}

	return l.format
}

// TraceContext logs a message at Trace level with the provided context.
func (l Logger) TraceContext(
	ctx context.Context, msg string, attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelTrace, msg, attrs...)
}

// Trace logs a message at Trace level.
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.TraceContext(DefaultContextProvider(), msg, attrs...)
}

// DebugContext logs a message at Debug level with the provided context.
func (l Logger) DebugContext(
	ctx context.Context, msg string, attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelDebug, msg, attrs...)
}

// Debug logs a message at Debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.DebugContext(DefaultContextProvider(), msg, attrs...)
}

// InfoContext logs a message at Info level with the provided context.
func (l Logger) InfoContext(
	ctx context.Context, msg string, attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelInfo, msg, attrs...)
}

// Info logs a message at Info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.InfoContext(DefaultContextProvider(), msg, attrs...)
}

// WarnContext logs a message at Warn level with the provided context.
func (l Logger) WarnContext(
	ctx context.Context, msg string, attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelWarn, msg, attrs...)
}

// Warn logs a message at Warn level.
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.WarnContext(DefaultContextProvider(), msg, attrs...)
}

// ErrorContext logs a message at Error level with the provided context.
func (l Logger) ErrorContext(
	ctx context.Context, msg string, attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelError, msg, attrs...)
}

// Error logs a message at Error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.ErrorContext(DefaultContextProvider(), msg, attrs...)
}

// logContext writes a record at the given level with the caller's source
// position attached.
func (l Logger) logContext(
	ctx context.Context, level Level, msg string, attrs ...slog.Attr,
) {
	// Zero value loggers silently discard.
	if l.Logger == nil {
		return
	}

	if !l.Enabled(ctx, slog.Level(level)) {
		return
	}

	// Skip runtime.Callers, logContext, and the *Context method so the
	// record carries the position of the caller's call site. The
	// non-Context wrappers add one more frame, close enough for debug
	// output.
	var pcs [1]uintptr

	runtime.Callers(4, pcs[:])

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)

	_ = l.Handler().Handle(ctx, r)
}

// DefaultContextProvider supplies the context used by the non-Context
// logging methods. It may be replaced to thread a process-wide context
// through code paths that do not carry one.
var DefaultContextProvider = context.TODO

// defaultLogger is the process-wide logger used by the package-level
// functions. It starts as a zero value that discards everything until
// [SetDefault] installs a configured logger.
var defaultLogger atomic.Pointer[Logger]

// Default returns the process-wide logger.
func Default() Logger {
	if l := defaultLogger.Load(); l != nil {
		return *l
	}

	return Logger{}
}

// SetDefault installs l as the process-wide logger returned by [Default]
// and used by the package-level logging functions.
func SetDefault(l Logger) {
	defaultLogger.Store(&l)
}

// Config applies options to the process-wide logger, installing one that
// writes to [os.Stderr] if none exists yet, and returns the result.
func Config(opts ...Option) Logger {
	l := Default()
	if l.Logger == nil {
		l = Make(os.Stderr)
	}

	l = l.Wrap(opts...)
	SetDefault(l)

	return l
}

// Trace logs a message at Trace level using the process-wide logger.
func Trace(msg string, attrs ...slog.Attr) { Default().Trace(msg, attrs...) }

// Debug logs a message at Debug level using the process-wide logger.
func Debug(msg string, attrs ...slog.Attr) { Default().Debug(msg, attrs...) }

// Info logs a message at Info level using the process-wide logger.
func Info(msg string, attrs ...slog.Attr) { Default().Info(msg, attrs...) }

// Warn logs a message at Warn level using the process-wide logger.
func Warn(msg string, attrs ...slog.Attr) { Default().Warn(msg, attrs...) }

// Error logs a message at Error level using the process-wide logger.
func Error(msg string, attrs ...slog.Attr) { Default().Error(msg, attrs...) }

// TraceContext logs at Trace level using the process-wide logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().TraceContext(ctx, msg, attrs...)
}

// DebugContext logs at Debug level using the process-wide logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().DebugContext(ctx, msg, attrs...)
}

// InfoContext logs at Info level using the process-wide logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().InfoContext(ctx, msg, attrs...)
}

// WarnContext logs at Warn level using the process-wide logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().WarnContext(ctx, msg, attrs...)
}

// ErrorContext logs at Error level using the process-wide logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().ErrorContext(ctx, msg, attrs...)
}

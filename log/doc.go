// Package log provides a leveled structured logging interface based on
// [log/slog], with an additional Trace level below Debug and a
// colorized single-line text handler for terminals.
//
// Loggers are configured at creation time with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("RFC3339"))
//
// The zero value Logger is usable and discards every message, so
// libraries can accept a Logger without nil checks.
//
// Attributes attach to a logger with [Logger.With] and appear in every
// subsequent message. Each level has a context-aware method
// ([Logger.InfoContext]) and a plain variant ([Logger.Info]) that uses
// [DefaultContextProvider].
//
// The package-level functions log through the process-wide logger
// installed by [SetDefault]; until then they discard their input.
package log

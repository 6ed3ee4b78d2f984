package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestMake_Defaults(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.Level() != DefaultLevel {
		t.Errorf("Level() = %v, want %v", logger.Level(), DefaultLevel)
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("Format() = %v, want %v", logger.Format(), DefaultFormat)
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var logger Logger

	// Must not panic and must not write anywhere.
	logger.Trace("trace")
	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	if logger.Level() != DefaultLevel {
		t.Errorf("zero value Level() = %v, want %v", logger.Level(), DefaultLevel)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		logged  []string
		dropped []string
	}{
		{
			name:    "info drops debug and trace",
			level:   LevelInfo,
			logged:  []string{"info msg", "warn msg", "error msg"},
			dropped: []string{"trace msg", "debug msg"},
		},
		{
			name:   "trace logs everything",
			level:  LevelTrace,
			logged: []string{"trace msg", "debug msg", "info msg", "warn msg", "error msg"},
		},
		{
			name:    "error drops the rest",
			level:   LevelError,
			logged:  []string{"error msg"},
			dropped: []string{"trace msg", "debug msg", "info msg", "warn msg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := Make(&buf,
				WithLevel(tt.level),
				WithFormat(FormatText),
				WithPretty(false),
			)

			logger.Trace("trace msg")
			logger.Debug("debug msg")
			logger.Info("info msg")
			logger.Warn("warn msg")
			logger.Error("error msg")

			out := buf.String()

			for _, want := range tt.logged {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}

			for _, drop := range tt.dropped {
				if strings.Contains(out, drop) {
					t.Errorf("output should not contain %q:\n%s", drop, out)
				}
			}
		})
	}
}

func TestLogger_TraceLevelLabel(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithLevel(LevelTrace),
		WithFormat(FormatJSON),
	)

	logger.Trace("hello")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid JSON output %q: %v", buf.String(), err)
	}

	if record["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", record["level"])
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatJSON),
	).With(slog.String("component", "parser"))

	logger.Info("ready")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid JSON output %q: %v", buf.String(), err)
	}

	if record["component"] != "parser" {
		t.Errorf("component = %v, want parser", record["component"])
	}
}

func TestLogger_Wrap(t *testing.T) {
	var first, second bytes.Buffer

	base := Make(&first, WithLevel(LevelWarn), WithPretty(false))
	wrapped := base.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	wrapped.Debug("visible")

	if second.Len() == 0 {
		t.Error("wrapped logger dropped a debug message")
	}

	if first.Len() != 0 {
		t.Error("wrapped logger wrote to the original output")
	}

	// The original logger keeps its configuration.
	base.Debug("invisible")

	if first.Len() != 0 {
		t.Error("base logger level was changed by Wrap")
	}
}

func TestLogger_PrettyOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatText),
		WithPretty(true),
		WithTimeLayout("none"),
	)

	logger.Info("rolling", slog.Int("dice", 3))

	out := buf.String()

	for _, want := range []string{"INFO", "rolling", "dice", "3"} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output missing %q:\n%s", want, out)
		}
	}
}

func TestDefault(t *testing.T) {
	// Before SetDefault, package-level logging discards silently.
	Info("nowhere")

	var buf bytes.Buffer

	SetDefault(Make(&buf, WithPretty(false)))

	t.Cleanup(func() { SetDefault(Logger{}) })

	Info("somewhere")

	if !strings.Contains(buf.String(), "somewhere") {
		t.Errorf("default logger output missing message:\n%s", buf.String())
	}
}

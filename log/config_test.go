package log

import (
	"io"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{in: "trace", want: LevelTrace},
		{in: "TRACE", want: LevelTrace},
		{in: "debug", want: LevelDebug},
		{in: "info", want: LevelInfo},
		{in: "WARN", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "bogus", want: DefaultLevel},
		{in: "", want: DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{level: LevelTrace, want: "trace"},
		{level: LevelDebug, want: "debug"},
		{level: LevelInfo, want: "info"},
		{level: LevelWarn, want: "warn"},
		{level: LevelError, want: "error"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevel_RoundtripText(t *testing.T) {
	for name := range Levels() {
		var l Level
		if err := l.UnmarshalText([]byte(name)); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", name, err)
		}

		if l.String() != name {
			t.Errorf("roundtrip of %q produced %q", name, l.String())
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{in: "json", want: FormatJSON},
		{in: "JSON", want: FormatJSON},
		{in: " text ", want: FormatText},
		{in: "yaml", want: DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMakeFormatTimeFunc(t *testing.T) {
	ref := time.Date(2024, time.March, 7, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{layout: "RFC3339", want: "2024-03-07T15:04:05Z"},
		{layout: "Kitchen", want: "3:04PM"},
		{layout: "none", want: ""},
		{layout: "", want: ""},
		{layout: "2006-01-02", want: "2024-03-07"},
	}

	for _, tt := range tests {
		format := makeFormatTimeFunc(tt.layout)
		if got := format(ref); got != tt.want {
			t.Errorf("layout %q formatted %q, want %q", tt.layout, got, tt.want)
		}
	}
}

func TestConfig_OptionOrder(t *testing.T) {
	t.Parallel()

	// Options fold left to right, so the last setting wins.
	cfg := config{}.apply(
		WithDefaults(io.Discard),
		WithLevel(LevelDebug),
		WithFormat(FormatJSON),
		WithLevel(LevelError),
	)

	if cfg.level != LevelError {
		t.Errorf("level = %v, want %v", cfg.level, LevelError)
	}

	if cfg.format != FormatJSON {
		t.Errorf("format = %v, want %v", cfg.format, FormatJSON)
	}
}

package cli

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/roll/log"
)

// logLevel configures the logger level as a side effect of flag parsing
// via encoding.TextUnmarshaler, so the requested level takes effect early
// enough to cover messages emitted during parsing itself.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

// logFormat configures the logger format as a side effect of flag parsing
// via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"text"    enum:"text,json"                   help:"Set log format."`
	TimeLayout string    `default:"Kitchen"                                    help:"Set timestamp format."`
	Caller     bool      `default:"false"                                      help:"Include caller information."  negatable:""`
	Pretty     bool      `default:"true"                                       help:"Enable colorized log output." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start finalizes the logger configuration with all parsed values,
// including the fields that do not configure themselves through
// TextUnmarshaler. The returned function restores nothing and exists so
// call sites can defer it alongside the profiler.
func (f *logConfig) start(ctx context.Context) func() {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)

	return func() {}
}

// scan performs an early pass over command-line arguments to apply
// logger configuration before kong begins parsing, so the boolean flags
// that bypass TextUnmarshaler still take effect for early messages.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := splitFlag(args[i])

		// Non-boolean flags may take the next argument as their value.
		takeNext := func() string {
			if assigned {
				return value
			}

			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				i++

				return args[i]
			}

			return ""
		}

		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(takeNext()))

		case "--log-format":
			_ = f.Format.UnmarshalText([]byte(takeNext()))

		case "--log-pretty", "--no-log-pretty":
			enable := name == "--log-pretty"
			if assigned {
				if v, err := strconv.ParseBool(value); err == nil {
					enable = v == enable
				}
			}

			f.Pretty = enable

			log.Config(log.WithPretty(enable))

		case "--log-caller", "--no-log-caller":
			enable := name == "--log-caller"
			if assigned {
				if v, err := strconv.ParseBool(value); err == nil {
					enable = v == enable
				}
			}

			f.Caller = enable

			log.Config(log.WithCaller(enable))
		}
	}
}

// splitFlag splits an argument of the form "--name=value" into its name
// and value. assigned reports whether an '=' was present.
func splitFlag(arg string) (name, value string, assigned bool) {
	for i := range len(arg) {
		if arg[i] == '=' {
			return arg[:i], arg[i+1:], true
		}
	}

	return arg, "", false
}

// Package cli contains the command line interface for roll.
//
// # Usage
//
// Expressions given as arguments are evaluated by the default command:
//
//	roll 4d6kh3
//	roll --seed 42 "2d{1, 2, 3, 5, 8} + 5"
//	roll fmt "1+2*3"
//	roll explain 4d6kh3
//	roll repl
//
// # Configuration
//
// Flag defaults load from a configuration file in the user config
// directory (for example ~/.config/roll/config.yaml or config.json):
//
//	log-level: debug
//	log-pretty: false
//
// Command-line flags override configuration file values.
//
// # Logging options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: output format (text, json)
//   - --log-time-layout: timestamp layout (RFC3339, Kitchen, none, ...)
//   - --log-caller / --no-log-caller: include caller information
//   - --log-pretty / --no-log-pretty: colorized output
//
// # Profiling options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: enable profiling (cpu, heap, allocs, trace, ...)
//   - --pprof-dir: profile output directory
package cli

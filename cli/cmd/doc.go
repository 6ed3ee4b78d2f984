// Package cmd provides the eval, fmt, explain, and repl subcommands for
// working with dice expressions.
package cmd

package repl

import "github.com/ardnew/roll/lang"

var (
	// ErrOutOfBounds indicates a history index outside the valid range.
	ErrOutOfBounds = lang.NewError("index out of bounds")

	// ErrUnknownCommand indicates an unrecognized session command.
	ErrUnknownCommand = lang.NewError("unknown command")

	// ErrMissingArgument indicates a session command invoked without
	// its required argument.
	ErrMissingArgument = lang.NewError("missing argument")
)

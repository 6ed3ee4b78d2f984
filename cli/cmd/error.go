package cmd

import "github.com/ardnew/roll/lang"

// Sentinel errors for command-level failures.
var (
	ErrNoExpressions = lang.NewError("no expressions given")
	ErrBadRollCount  = lang.NewError("roll count must be positive")
)

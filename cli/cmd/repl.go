package cmd

import (
	"context"

	"github.com/ardnew/roll/cli/cmd/repl"
	"github.com/ardnew/roll/log"
)

// Repl starts an interactive read-eval-print session.
type Repl struct {
	Seed *uint64 `help:"Seed the roller for reproducible results" short:"s"`

	CacheDir string `default:"${cache}" help:"Directory for session history" hidden:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	return repl.Run(ctx, repl.Options{
		CacheDir: r.CacheDir,
		Seed:     r.Seed,
		Logger:   log.Default(),
	})
}

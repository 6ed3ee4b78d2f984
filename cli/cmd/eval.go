package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/roll/lang"
	"github.com/ardnew/roll/log"
)

// Eval parses and evaluates dice expressions.
type Eval struct {
	Exprs []string `arg:"" help:"Dice expressions, or '-' for stdin" name:"expr" optional:""`

	Seed  *uint64 `help:"Seed the roller for reproducible results"        short:"s"`
	Rolls int     `help:"Evaluate each expression this many times"       short:"n" default:"1"`
	Quiet bool    `help:"Print results only, without echoing expressions" short:"q"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if e.Rolls < 1 {
		return ErrBadRollCount.With(slog.Int("rolls", e.Rolls))
	}

	exprs, err := gatherExpressions(e.Exprs)
	if err != nil {
		return err
	}

	// A single seeded source spans the whole invocation, so repeated
	// rolls differ from each other while the run as a whole reproduces.
	src := newSource(e.Seed)

	out := stdout(ctx)

	for _, input := range exprs {
		expr, err := lang.Parse(ctx, input, lang.WithLogger(log.Default()))
		if err != nil {
			return lang.WrapError(err).
				With(slog.String("command", "eval"))
		}

		for range e.Rolls {
			value, err := lang.EvalWith(expr, src)
			if err != nil {
				return lang.WrapError(err).With(
					slog.String("command", "eval"),
					slog.String("expression", input),
				)
			}

			if e.Quiet || len(exprs) == 1 {
				fmt.Fprintln(out, renderValue(value))
			} else {
				fmt.Fprintf(out, "%s: %s\n", lang.FormatInline(expr), renderValue(value))
			}
		}
	}

	return nil
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/roll/cli/view"
	"github.com/ardnew/roll/lang"
	"github.com/ardnew/roll/log"
)

// Explain parses dice expressions and prints their parse trees, one node
// per line, so the structure the evaluator will walk is visible:
//
//	$ roll explain 4d6kh3
//	Keep Highest (kh)
//	  Dice Roll (d)
//	    Integer 4
//	    Integer 6
//	  Integer 3
type Explain struct {
	Exprs []string `arg:"" help:"Dice expressions, or '-' for stdin" name:"expr" optional:""`

	Plain bool `help:"Disable colorized output"`
}

// Run executes the explain command.
func (e *Explain) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	exprs, err := gatherExpressions(e.Exprs)
	if err != nil {
		return err
	}

	colors := view.DefaultPalette
	if e.Plain {
		colors = view.Palette{}
	}

	out := stdout(ctx)

	for i, input := range exprs {
		expr, err := lang.Parse(ctx, input, lang.WithLogger(log.Default()))
		if err != nil {
			return lang.WrapError(err).
				With(slog.String("command", "explain"))
		}

		tree, err := view.Tree(expr, colors)
		if err != nil {
			return lang.WrapError(err).
				With(slog.String("command", "explain"))
		}

		if i > 0 {
			fmt.Fprintln(out)
		}

		fmt.Fprint(out, tree)
	}

	return nil
}

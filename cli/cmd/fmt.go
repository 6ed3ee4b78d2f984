package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/roll/lang"
	"github.com/ardnew/roll/log"
)

// Fmt parses dice expressions and prints their canonical form, with
// every binary operation fully parenthesized. This makes the effective
// precedence and associativity of an expression visible:
//
//	$ roll fmt 4d6kh3+2
//	(((4 d 6) kh 3) + 2)
type Fmt struct {
	Exprs []string `arg:"" help:"Dice expressions, or '-' for stdin" name:"expr" optional:""`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	exprs, err := gatherExpressions(f.Exprs)
	if err != nil {
		return err
	}

	out := stdout(ctx)

	for _, input := range exprs {
		expr, err := lang.Parse(ctx, input, lang.WithLogger(log.Default()))
		if err != nil {
			return lang.WrapError(err).
				With(slog.String("command", "fmt"))
		}

		fmt.Fprintln(out, lang.FormatInline(expr))
	}

	return nil
}

package cmd

import (
	"bufio"
	"context"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/roll/lang"
)

var (
	// CacheIdentifier is the kong variable identifier containing the path
	// to the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the
	// path to the default configuration file, without extension.
	ConfigIdentifier = "config"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given
// kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the output stream bound to the command invocation,
// falling back to the process stdout outside a parsed invocation.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stdinSource is the argument indicating expressions are read from stdin.
const stdinSource = "-"

// gatherExpressions resolves the expression inputs of a command: the
// given arguments, or lines read from stdin when no arguments were given
// or an argument is "-". Blank lines are skipped.
func gatherExpressions(args []string) ([]string, error) {
	fromStdin := len(args) == 0

	exprs := make([]string, 0, len(args))

	for _, arg := range args {
		if arg == stdinSource {
			fromStdin = true

			continue
		}

		if strings.TrimSpace(arg) == "" {
			continue
		}

		exprs = append(exprs, arg)
	}

	if fromStdin {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			exprs = append(exprs, line)
		}

		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(exprs) == 0 {
		return nil, ErrNoExpressions
	}

	return exprs, nil
}

// newSource returns the random source for evaluation: a seeded generator
// when seed is set, or nil to use the process-level source.
func newSource(seed *uint64) rand.Source {
	if seed == nil {
		return nil
	}

	return rand.NewPCG(*seed, *seed)
}

// renderValue renders an evaluation result for display. Lists show both
// the individual elements and their sum, since the sum is almost always
// what a dice roll is read as.
func renderValue(v lang.Value) string {
	if v.Kind == lang.KindInteger {
		return strconv.FormatInt(v.Int, 10)
	}

	return strconv.FormatInt(v.Sum(), 10) + "  " + v.String()
}

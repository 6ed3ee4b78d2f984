package lang

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/roll/log"
)

// DefaultMaxDepth is the default maximum nesting depth of an expression.
// Users may modify this before parsing to change the default.
var DefaultMaxDepth = 100

// options holds parser configuration.
type options struct {
	maxDepth int
	logger   log.Logger
}

// Option configures parsing behavior.
type Option func(*options)

// WithMaxDepth sets the maximum expression nesting depth. Inputs nesting
// deeper than this fail with [ErrMaxDepthExceeded] instead of exhausting
// the stack.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Parse parses a dice notation expression and returns its AST.
//
// On failure it returns a [*ParseError] holding one or more positioned
// syntax errors: the grammar recovers from integer overflow and from
// malformed brace contents with placeholder values so that independent
// errors in the same input are all reported from a single attempt.
// A non-nil error never carries an empty error list.
//
// Input containing no expression at all fails with [ErrEmptyInput].
func Parse(ctx context.Context, input string, opts ...Option) (Expr, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}

	p := newParser(input, opts...)

	p.opts.logger.TraceContext(
		ctx,
		"parse start",
		slog.Int("source_length", len(input)),
	)

	expr := p.parseExpr(0)

	if !p.failed {
		p.skipSpace()

		if p.pos < len(p.src) {
			p.fail(p.pos, len(p.src), "unexpected trailing input")
		}
	}

	if len(p.errs) > 0 {
		p.opts.logger.TraceContext(
			ctx,
			"parse failed",
			slog.Int("error_count", len(p.errs)),
		)

		return nil, NewParseError(p.errs, input)
	}

	p.opts.logger.TraceContext(ctx, "parse complete")

	return expr, nil
}

// parser scans a source string and climbs operator precedence.
type parser struct {
	src    string
	pos    int
	depth  int
	errs   []*SyntaxError
	failed bool // a non-recoverable error was recorded
	opts   options
}

func newParser(input string, opts ...Option) *parser {
	p := &parser{src: input}
	p.opts.maxDepth = DefaultMaxDepth

	for _, opt := range opts {
		opt(&p.opts)
	}

	return p
}

// fail records a syntax error that terminates the parse attempt.
func (p *parser) fail(start, end int, msg string) {
	p.errs = append(p.errs, &SyntaxError{Start: start, End: end, Msg: msg})
	p.failed = true
}

// report records a recoverable syntax error; scanning continues with a
// placeholder value so further independent errors can surface.
func (p *parser) report(start, end int, msg string) {
	p.errs = append(p.errs, &SyntaxError{Start: start, End: end, Msg: msg})
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++

		default:
			return
		}
	}
}

// peek returns the next byte without consuming it, or 0 at end of input.
func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}

	return p.src[p.pos]
}

// expect consumes the next non-space byte if it equals b, and records a
// terminating error otherwise.
func (p *parser) expect(b byte) bool {
	p.skipSpace()

	if p.peek() != b {
		p.fail(p.pos, min(p.pos+1, len(p.src)), "expected '"+string(b)+"'")

		return false
	}

	p.pos++

	return true
}

// operatorTokens maps display tokens to operators in longest-match-first
// order so that `kh` is never scanned as `k`+`h` and `<=` never as `<`.
var operatorTokens = []struct {
	tok string
	op  BinaryOperator
}{
	{"kh", KeepHighest},
	{"kl", KeepLowest},
	{"dh", DropHighest},
	{"dl", DropLowest},
	{"==", Equal},
	{"!=", NotEqual},
	{"<=", LessEqual},
	{">=", GreaterEqual},
	{"d", DiceRoll},
	{"*", Multiplication},
	{"+", Addition},
	{"-", Subtraction},
	{"<", LessThan},
	{">", GreaterThan},
}

// scanOperator consumes and returns the binary operator at the current
// position, if any.
func (p *parser) scanOperator() (BinaryOperator, bool) {
	rest := p.src[p.pos:]

	for _, cand := range operatorTokens {
		if strings.HasPrefix(rest, cand.tok) {
			p.pos += len(cand.tok)

			return cand.op, true
		}
	}

	return 0, false
}

// parseExpr parses an expression whose operators all bind at least as
// tightly as minPrec, associating by the fixed precedence table:
// left-associative operators recurse with prec+1, the right-associative
// dice roll recurses with prec.
func (p *parser) parseExpr(minPrec int) Expr {
	if p.failed {
		return nil
	}

	p.depth++
	defer func() { p.depth-- }()

	if p.depth > p.opts.maxDepth {
		p.fail(p.pos, min(p.pos+1, len(p.src)), ErrMaxDepthExceeded.Error())

		return nil
	}

	left := p.parseAtom()

	for !p.failed {
		save := p.pos

		p.skipSpace()

		op, ok := p.scanOperator()
		if !ok {
			p.pos = save

			break
		}

		prec := op.Precedence()
		if prec < minPrec {
			p.pos = save

			break
		}

		next := prec + 1
		if op.RightAssociative() {
			next = prec
		}

		right := p.parseExpr(next)
		if p.failed {
			return nil
		}

		left = BinaryOp{Left: left, Op: op, Right: right}
	}

	return left
}

// parseAtom parses one of: a function call, a bracketed range literal, a
// brace list or strong list, an integer literal, or a parenthesized
// sub-expression.
func (p *parser) parseAtom() Expr {
	p.skipSpace()

	if p.pos >= len(p.src) {
		p.fail(p.pos, p.pos, "expected expression")

		return nil
	}

	c := p.src[p.pos]

	switch {
	case c == '(':
		p.pos++

		expr := p.parseExpr(0)
		if p.failed {
			return nil
		}

		if !p.expect(')') {
			return nil
		}

		return expr

	case c == '[':
		return p.parseRange()

	case c == '{':
		return p.parseBraces()

	case c == '-' || isDigit(c):
		return Int(p.parseInteger())

	case isIdentStart(c):
		return p.parseFunctionCall()

	default:
		p.fail(p.pos, p.pos+1, "expected expression")

		return nil
	}
}

// parseInteger parses an optional leading '-' followed by decimal digits.
// A literal outside the signed 64-bit range is reported at its source span
// and recovers with a placeholder of zero.
func (p *parser) parseInteger() int64 {
	p.skipSpace()

	start := p.pos

	if p.peek() == '-' {
		p.pos++
	}

	digits := p.pos
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}

	if p.pos == digits {
		p.fail(start, min(p.pos+1, len(p.src)), "expected integer")

		return 0
	}

	lit := p.src[start:p.pos]

	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		p.report(
			start,
			p.pos,
			"illegal integer literal: "+lit+" overflows a 64-bit integer",
		)

		return 0
	}

	return n
}

// parseRange parses `[start, end]` or `[start, end, step]`.
func (p *parser) parseRange() Expr {
	p.pos++ // consume '['

	start := p.parseInteger()
	if p.failed {
		return nil
	}

	if !p.expect(',') {
		return nil
	}

	end := p.parseInteger()
	if p.failed {
		return nil
	}

	var step *int64

	p.skipSpace()

	if p.peek() == ',' {
		p.pos++

		s := p.parseInteger()
		if p.failed {
			return nil
		}

		step = &s
	}

	if !p.expect(']') {
		return nil
	}

	return Range{Start: start, End: end, Step: step}
}

// parseBraces parses `{e1, e2, ...}` and disambiguates the result: all
// bare integer literals (at least one) form a concrete [List]; exactly one
// inner expression of any kind forms a [StrongList]; anything else is a
// grammar error that recovers with an empty list node.
func (p *parser) parseBraces() Expr {
	open := p.pos
	p.pos++ // consume '{'

	exprs, ok := p.parseSeparated('}')
	if !ok {
		return nil
	}

	end := p.pos

	ints := make([]int64, 0, len(exprs))
	allInts := true

	for _, e := range exprs {
		n, isInt := e.(Int)
		if !isInt {
			allInts = false

			break
		}

		ints = append(ints, int64(n))
	}

	switch {
	case allInts && len(exprs) > 0:
		return List(ints)

	case len(exprs) == 1:
		return StrongList{Inner: exprs[0]}

	default:
		p.report(
			open,
			end,
			"elements inside braces must be all integers (a list)"+
				" or a single expression (a strong list)",
		)

		return List(nil)
	}
}

// parseFunctionCall parses `name(arg1, arg2, ...)`.
func (p *parser) parseFunctionCall() Expr {
	start := p.pos

	for p.pos < len(p.src) && isIdentChar(p.src[p.pos]) {
		p.pos++
	}

	name := p.src[start:p.pos]

	p.skipSpace()

	if p.peek() != '(' {
		p.fail(start, p.pos, "expected '(' after identifier")

		return nil
	}

	p.pos++ // consume '('

	args, ok := p.parseSeparated(')')
	if !ok {
		return nil
	}

	return FunctionCall{Name: name, Args: args}
}

// parseSeparated parses a comma-separated, trailing-comma-tolerant list of
// expressions terminated by close. The opening delimiter must already be
// consumed.
func (p *parser) parseSeparated(close byte) ([]Expr, bool) {
	var exprs []Expr

	p.skipSpace()

	if p.peek() == close {
		p.pos++

		return exprs, true
	}

	for {
		expr := p.parseExpr(0)
		if p.failed {
			return nil, false
		}

		exprs = append(exprs, expr)

		p.skipSpace()

		switch p.peek() {
		case ',':
			p.pos++
			p.skipSpace()

			// Trailing comma before the closing delimiter.
			if p.peek() == close {
				p.pos++

				return exprs, true
			}

		case close:
			p.pos++

			return exprs, true

		default:
			p.fail(
				p.pos,
				min(p.pos+1, len(p.src)),
				"expected ',' or '"+string(close)+"'",
			)

			return nil, false
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentChar(b byte) bool { return isIdentStart(b) || isDigit(b) }

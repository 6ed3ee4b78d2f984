package lang

import (
	"strconv"
	"strings"
)

// FormatInline renders expr on a single line with every binary operation
// fully parenthesized, using each operator's canonical token.
//
// For example, `2d6 + 3` renders as `((2 d 6) + 3)`.
func FormatInline(expr Expr) string {
	s, _ := Visit(inlineFormatter{}, expr)

	return s
}

// inlineFormatter formats expressions in a single line.
// It never returns an error.
type inlineFormatter struct{}

func (f inlineFormatter) VisitLiteral(lit Literal) (string, error) {
	switch l := lit.(type) {
	case Int:
		return strconv.FormatInt(int64(l), 10), nil

	case List:
		return "{" + joinInt64(l, ", ") + "}", nil

	case Range:
		var b strings.Builder

		b.WriteByte('[')
		b.WriteString(strconv.FormatInt(l.Start, 10))
		b.WriteString(", ")
		b.WriteString(strconv.FormatInt(l.End, 10))

		if l.Step != nil {
			b.WriteString(", ")
			b.WriteString(strconv.FormatInt(*l.Step, 10))
		}

		b.WriteByte(']')

		return b.String(), nil

	default:
		return "", ErrInvalidExpr
	}
}

func (f inlineFormatter) VisitBinaryOp(
	left Expr,
	op BinaryOperator,
	right Expr,
) (string, error) {
	ls, _ := Visit(f, left)
	rs, _ := Visit(f, right)

	return "(" + ls + " " + op.String() + " " + rs + ")", nil
}

func (f inlineFormatter) VisitFunctionCall(
	name string,
	args []Expr,
) (string, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i], _ = Visit(f, arg)
	}

	return name + "(" + strings.Join(parts, ", ") + ")", nil
}

func (f inlineFormatter) VisitStrongList(inner Expr) (string, error) {
	s, _ := Visit(f, inner)

	return "{" + s + "}", nil
}

// joinInt64 renders vals separated by sep.
func joinInt64(vals []int64, sep string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatInt(v, 10)
	}

	return strings.Join(parts, sep)
}

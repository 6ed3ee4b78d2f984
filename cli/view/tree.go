// Package view renders parsed dice expressions for terminal display.
package view

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/roll/lang"
)

// Palette holds the styles used by the tree renderer. The zero value
// renders unstyled text.
type Palette struct {
	Op      lipgloss.Style
	Literal lipgloss.Style
	Note    lipgloss.Style
}

// DefaultPalette colorizes operators, literals, and annotations.
var DefaultPalette = Palette{
	Op:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
	Literal: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	Note:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

// Tree renders an expression tree as indented lines, one node per line,
// so the structure the evaluator will walk is visible:
//
//	Keep Highest (kh)
//	  Dice Roll (d)
//	    Integer 4
//	    Integer 6
//	  Integer 3
func Tree(expr lang.Expr, colors Palette) (string, error) {
	return lang.Visit[string](&treePrinter{colors: colors}, expr)
}

// treePrinter implements [lang.Visitor] over strings; inner nodes
// recurse with a deeper printer.
type treePrinter struct {
	colors Palette
	depth  int
}

func (p *treePrinter) line(style lipgloss.Style, text string) string {
	return strings.Repeat("  ", p.depth) + style.Render(text) + "\n"
}

func (p *treePrinter) child() *treePrinter {
	return &treePrinter{colors: p.colors, depth: p.depth + 1}
}

func (p *treePrinter) VisitLiteral(lit lang.Literal) (string, error) {
	switch l := lit.(type) {
	case lang.Int:
		return p.line(
			p.colors.Literal,
			"Integer "+strconv.FormatInt(int64(l), 10),
		), nil

	case lang.List:
		return p.line(
			p.colors.Literal,
			lang.FormatInline(l)+" "+p.colors.Note.Render(
				"(list, "+strconv.Itoa(len(l))+" elements)",
			),
		), nil

	case lang.Range:
		return p.line(
			p.colors.Literal,
			lang.FormatInline(l)+" "+p.colors.Note.Render(
				"(range, "+strconv.FormatUint(rangeCount(l), 10)+" values)",
			),
		), nil
	}

	return "", lang.ErrInvalidExpr
}

func (p *treePrinter) VisitBinaryOp(
	left lang.Expr, op lang.BinaryOperator, right lang.Expr,
) (string, error) {
	head := p.line(p.colors.Op, op.Desc()+" ("+op.String()+")")

	l, err := lang.Visit[string](p.child(), left)
	if err != nil {
		return "", err
	}

	r, err := lang.Visit[string](p.child(), right)
	if err != nil {
		return "", err
	}

	return head + l + r, nil
}

func (p *treePrinter) VisitFunctionCall(
	name string, args []lang.Expr,
) (string, error) {
	var sb strings.Builder

	sb.WriteString(p.line(
		p.colors.Op,
		"Call "+name+" "+p.colors.Note.Render(
			"("+strconv.Itoa(len(args))+" arguments)",
		),
	))

	for _, arg := range args {
		s, err := lang.Visit[string](p.child(), arg)
		if err != nil {
			return "", err
		}

		sb.WriteString(s)
	}

	return sb.String(), nil
}

func (p *treePrinter) VisitStrongList(inner lang.Expr) (string, error) {
	head := p.line(p.colors.Op, "Strong List {...}")

	s, err := lang.Visit[string](p.child(), inner)
	if err != nil {
		return "", err
	}

	return head + s, nil
}

// rangeCount computes the number of values a range enumerates without
// iterating, so enormous ranges explain instantly.
func rangeCount(r lang.Range) uint64 {
	lo, hi := r.Start, r.End
	if lo > hi {
		lo, hi = hi, lo
	}

	span := uint64(hi) - uint64(lo)

	step := uint64(1)

	if r.Step != nil {
		switch s := *r.Step; {
		case s == 0:
			// A zero step yields only the start value.
			return 1

		case s < 0:
			step = uint64(-s)

		default:
			step = uint64(s)
		}
	}

	return span/step + 1
}

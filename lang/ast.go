package lang

import (
	"iter"
	"math"
)

// Expr is an expression in the dice notation AST.
//
// The variant set is closed: [Int], [List], and [Range] (the literals),
// [BinaryOp], [FunctionCall], and [StrongList]. Trees are built once by
// the parser and never mutated; every child is owned exclusively by its
// parent, so traversals need no synchronization.
type Expr interface {
	isExpr()
}

// Literal is a literal value in the dice notation AST.
// Every Literal is also an [Expr].
type Literal interface {
	Expr

	isLiteral()
}

// Int is an integer literal.
type Int int64

// List is an explicit list literal, e.g. `{1, 2, 3}`.
type List []int64

// Range is a range list literal, e.g. `[1, 5, 2]`.
//
// The direction is ascending iff End >= Start. The effective step is the
// magnitude of Step (1 when nil) with its sign forced to match direction.
// Enumeration includes Start and every value up to and including the last
// one that does not overshoot End.
type Range struct {
	Start int64
	End   int64
	Step  *int64 // nil means a step of 1
}

// Step returns a pointer to n for constructing [Range] values.
func Step(n int64) *int64 { return &n }

// Seq returns an iterator over the values of the range.
//
// Stepping uses wraparound (modulo 2⁶⁴) addition so ranges touching the
// int64 boundaries terminate instead of overflowing: iteration stops when
// the next candidate overshoots End or moves against the range direction.
func (r Range) Seq() iter.Seq[int64] {
	inc := r.End >= r.Start

	step := int64(1)
	if r.Step != nil {
		step = wrappingAbs(*r.Step)
	}

	if !inc {
		step = -step
	}

	return func(yield func(int64) bool) {
		cur := r.Start
		for {
			if !yield(cur) {
				return
			}

			next := cur + step
			if inc && (next > r.End || next <= cur) {
				return
			}

			if !inc && (next < r.End || next >= cur) {
				return
			}

			cur = next
		}
	}
}

// Values materializes the range into a slice.
func (r Range) Values() []int64 {
	var vals []int64
	for v := range r.Seq() {
		vals = append(vals, v)
	}

	return vals
}

// Len returns the number of values the range enumerates.
func (r Range) Len() int {
	n := 0
	for range r.Seq() {
		n++
	}

	return n
}

// wrappingAbs returns the absolute value of n with two's-complement
// wraparound: the minimum int64 maps to itself.
func wrappingAbs(n int64) int64 {
	if n == math.MinInt64 {
		return n
	}

	if n < 0 {
		return -n
	}

	return n
}

func (Int) isExpr()   {}
func (List) isExpr()  {}
func (Range) isExpr() {}

func (Int) isLiteral()   {}
func (List) isLiteral()  {}
func (Range) isLiteral() {}

// BinaryOp is a binary operation on two sub-expressions.
type BinaryOp struct {
	Left  Expr
	Op    BinaryOperator
	Right Expr
}

// FunctionCall is a function call expression, e.g. `max(3d6)`.
type FunctionCall struct {
	Name string
	Args []Expr
}

// StrongList marks its child as a list that must never collapse to the
// sum of its elements during arithmetic or comparison.
type StrongList struct {
	Inner Expr
}

func (BinaryOp) isExpr()     {}
func (FunctionCall) isExpr() {}
func (StrongList) isExpr()   {}

// BinaryOperator is one of the fourteen binary operators of the language.
type BinaryOperator int

const (
	// DiceRoll is the dice roll operator `d`.
	DiceRoll BinaryOperator = iota
	// KeepHighest is the keep highest operator `kh`.
	KeepHighest
	// KeepLowest is the keep lowest operator `kl`.
	KeepLowest
	// DropHighest is the drop highest operator `dh`.
	DropHighest
	// DropLowest is the drop lowest operator `dl`.
	DropLowest
	// Multiplication is the multiplication operator `*`.
	Multiplication
	// Addition is the addition operator `+`.
	Addition
	// Subtraction is the subtraction operator `-`.
	Subtraction
	// Equal is the equality operator `==`.
	Equal
	// NotEqual is the inequality operator `!=`.
	NotEqual
	// LessThan is the less-than operator `<`.
	LessThan
	// LessEqual is the less-or-equal operator `<=`.
	LessEqual
	// GreaterThan is the greater-than operator `>`.
	GreaterThan
	// GreaterEqual is the greater-or-equal operator `>=`.
	GreaterEqual
)

// Precedence returns the binding power of the operator.
// Higher values bind tighter.
func (op BinaryOperator) Precedence() int {
	switch op {
	case DiceRoll:
		return 150

	case KeepHighest, KeepLowest, DropHighest, DropLowest:
		return 130

	case Multiplication:
		return 90

	case Addition, Subtraction:
		return 70

	case Equal, NotEqual, LessThan, LessEqual, GreaterThan, GreaterEqual:
		return 50

	default:
		return 0
	}
}

// RightAssociative reports whether the operator associates to the right.
// Only the dice roll operator does; all others associate to the left.
func (op BinaryOperator) RightAssociative() bool {
	return op == DiceRoll
}

// String returns the display token of the operator.
func (op BinaryOperator) String() string {
	switch op {
	case DiceRoll:
		return "d"
	case KeepHighest:
		return "kh"
	case KeepLowest:
		return "kl"
	case DropHighest:
		return "dh"
	case DropLowest:
		return "dl"
	case Multiplication:
		return "*"
	case Addition:
		return "+"
	case Subtraction:
		return "-"
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case LessThan:
		return "<"
	case LessEqual:
		return "<="
	case GreaterThan:
		return ">"
	case GreaterEqual:
		return ">="
	default:
		return "?"
	}
}

// Desc returns a human-readable description of the operator.
func (op BinaryOperator) Desc() string {
	switch op {
	case DiceRoll:
		return "Dice Roll"
	case KeepHighest:
		return "Keep Highest"
	case KeepLowest:
		return "Keep Lowest"
	case DropHighest:
		return "Drop Highest"
	case DropLowest:
		return "Drop Lowest"
	case Multiplication:
		return "Multiplication"
	case Addition:
		return "Addition"
	case Subtraction:
		return "Subtraction"
	case Equal:
		return "Equal"
	case NotEqual:
		return "Not Equal"
	case LessThan:
		return "Less Than"
	case LessEqual:
		return "Less or Equal"
	case GreaterThan:
		return "Greater Than"
	case GreaterEqual:
		return "Greater or Equal"
	default:
		return "Unknown"
	}
}

// Visitor traverses an expression tree and produces a value of type R.
//
// It is the sole traversal protocol over [Expr]: the evaluator, the inline
// formatter, and external tree printers all implement it and dispatch
// through [Visit].
type Visitor[R any] interface {
	// VisitLiteral visits a literal value.
	VisitLiteral(lit Literal) (R, error)
	// VisitBinaryOp visits a binary operation with both children still
	// unevaluated.
	VisitBinaryOp(left Expr, op BinaryOperator, right Expr) (R, error)
	// VisitFunctionCall visits a function call.
	VisitFunctionCall(name string, args []Expr) (R, error)
	// VisitStrongList visits a strong list wrapper.
	VisitStrongList(inner Expr) (R, error)
}

// Visit dispatches expr to the matching method of v.
func Visit[R any](v Visitor[R], expr Expr) (R, error) {
	switch e := expr.(type) {
	case Int:
		return v.VisitLiteral(e)

	case List:
		return v.VisitLiteral(e)

	case Range:
		return v.VisitLiteral(e)

	case BinaryOp:
		return v.VisitBinaryOp(e.Left, e.Op, e.Right)

	case FunctionCall:
		return v.VisitFunctionCall(e.Name, e.Args)

	case StrongList:
		return v.VisitStrongList(e.Inner)

	default:
		var zero R

		return zero, ErrInvalidExpr
	}
}

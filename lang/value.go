package lang

import "strconv"

// ValueKind indicates the type of a [Value].
type ValueKind int

const (
	// KindInteger represents an integer result.
	KindInteger ValueKind = iota

	// KindList represents a list result.
	KindList
)

// String returns a string representation of the value kind.
func (vk ValueKind) String() string {
	switch vk {
	case KindInteger:
		return "Integer"

	case KindList:
		return "List"

	default:
		return "Unknown"
	}
}

// Value is the result of evaluating an expression.
//
// It is one of the two types visible across the evaluation boundary:
// an integer or a fully materialized list. The strong/weak distinction
// the evaluator tracks internally is erased before a Value is returned.
type Value struct {
	Kind ValueKind
	// Exactly one of these is meaningful based on Kind
	Int  int64
	List []int64
}

// IntegerValue constructs an integer Value.
func IntegerValue(n int64) Value {
	return Value{Kind: KindInteger, Int: n}
}

// ListValue constructs a list Value.
func ListValue(vals []int64) Value {
	return Value{Kind: KindList, List: vals}
}

// Sum returns the integer itself, or the sum of the list's elements.
// Summation wraps modulo 2⁶⁴ like all evaluator arithmetic.
func (v Value) Sum() int64 {
	if v.Kind == KindInteger {
		return v.Int
	}

	var sum int64
	for _, n := range v.List {
		sum += n
	}

	return sum
}

// String renders the value: a bare decimal for an integer, or
// `{a, b, c}` for a list.
func (v Value) String() string {
	if v.Kind == KindInteger {
		return strconv.FormatInt(v.Int, 10)
	}

	return "{" + joinInt64(v.List, ", ") + "}"
}

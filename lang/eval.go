package lang

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
)

// source is the subset of [rand.Rand] the evaluator draws from.
type source interface {
	Uint64() uint64
	Uint64N(n uint64) uint64
	Shuffle(n int, swap func(i, j int))
}

// processSource adapts the package-level functions of [math/rand/v2],
// which share one auto-seeded generator per process.
type processSource struct{}

func (processSource) Uint64() uint64          { return rand.Uint64() }
func (processSource) Uint64N(n uint64) uint64 { return rand.Uint64N(n) }

func (processSource) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// Eval evaluates expr using the process-level random source.
func Eval(expr Expr) (Value, error) {
	return evalWith(expr, processSource{})
}

// EvalWith evaluates expr drawing all randomness from src, so a fixed
// seed reproduces the exact same rolls. A nil src falls back to the
// process-level source.
func EvalWith(expr Expr, src rand.Source) (Value, error) {
	if src == nil {
		return Eval(expr)
	}

	return evalWith(expr, rand.New(src))
}

func evalWith(expr Expr, src source) (Value, error) {
	v, err := Visit(&evaluator{rng: src}, expr)
	if err != nil {
		return Value{}, err
	}

	return v.public(), nil
}

// listInner is the evaluator's working list representation. A list backed
// by a range stays unmaterialized until its individual elements are
// needed, so `1000000d[1, 10]` never allocates the face set.
type listInner struct {
	elems []int64
	rng   *Range // non-nil when backed by an unmaterialized range
}

func materialList(elems []int64) listInner { return listInner{elems: elems} }

func rangeList(r Range) listInner { return listInner{rng: &r} }

// sum reduces the list to the wrapping sum of its elements.
func (l listInner) sum() int64 {
	var s int64

	if l.rng != nil {
		for v := range l.rng.Seq() {
			s += v
		}

		return s
	}

	for _, v := range l.elems {
		s += v
	}

	return s
}

// values materializes the list. The returned slice is owned by the
// evaluation step that called it and may be reordered or overwritten.
func (l listInner) values() []int64 {
	if l.rng != nil {
		return l.rng.Values()
	}

	return l.elems
}

// sample draws count elements uniformly with replacement. A contiguous
// range (unit step) is sampled directly from its bounds without
// materializing; all other face sets index into their materialized
// elements.
func (l listInner) sample(src source, count int64) []int64 {
	if count <= 0 {
		return nil
	}

	out := make([]int64, 0, count)

	if r := l.rng; r != nil && (r.Step == nil || wrappingAbs(*r.Step) == 1) {
		lo, hi := r.Start, r.End
		if lo > hi {
			lo, hi = hi, lo
		}

		// Width as unsigned arithmetic is exact even when the bounds
		// span more than half the signed domain.
		width := uint64(hi) - uint64(lo)

		for range count {
			var n uint64
			if width == math.MaxUint64 {
				n = src.Uint64()
			} else {
				n = src.Uint64N(width + 1)
			}

			out = append(out, int64(uint64(lo)+n))
		}

		return out
	}

	vals := l.values()
	for range count {
		out = append(out, vals[src.Uint64N(uint64(len(vals)))])
	}

	return out
}

// innerValue is a value mid-evaluation: an integer, or a list tagged with
// its strength. Weak lists reduce to their sum when an operand must be an
// integer; strong lists refuse and instead propagate elementwise.
type innerValue struct {
	list   *listInner // nil when the value is an integer
	n      int64
	strong bool
}

func integerValue(n int64) innerValue { return innerValue{n: n} }

func listValue(strong bool, inner listInner) innerValue {
	return innerValue{list: &inner, strong: strong}
}

func (v innerValue) assertInteger() (int64, error) {
	if v.list != nil {
		return 0, ErrIntegerExpected
	}

	return v.n, nil
}

func (v innerValue) assertList() (strong bool, inner listInner, err error) {
	if v.list == nil {
		return false, listInner{}, ErrListExpected
	}

	return v.strong, *v.list, nil
}

// reduce collapses the value to a scalar when permitted: integers are
// themselves, weak lists sum. A strong list does not reduce and is
// returned as the second result instead.
func (v innerValue) reduce() (int64, *listInner) {
	switch {
	case v.list == nil:
		return v.n, nil

	case !v.strong:
		return v.list.sum(), nil

	default:
		return 0, v.list
	}
}

// public converts the final evaluation result to the exported [Value],
// materializing any remaining lazy range.
func (v innerValue) public() Value {
	if v.list == nil {
		return IntegerValue(v.n)
	}

	return ListValue(v.list.values())
}

// evaluator walks the AST and produces an [innerValue] per node.
type evaluator struct {
	rng source
}

func (ev *evaluator) VisitLiteral(lit Literal) (innerValue, error) {
	switch l := lit.(type) {
	case Int:
		return integerValue(int64(l)), nil

	case List:
		// A brace list with more than one element is strong, so it
		// survives arithmetic elementwise; a single-element brace list
		// behaves as its lone value. Clone so in-place sorts and
		// rewrites during evaluation never touch the AST node.
		return listValue(len(l) > 1, materialList(slices.Clone(l))), nil

	case Range:
		return listValue(false, rangeList(l)), nil
	}

	return innerValue{}, ErrInvalidExpr
}

func (ev *evaluator) VisitBinaryOp(
	left Expr, op BinaryOperator, right Expr,
) (innerValue, error) {
	lv, err := Visit(ev, left)
	if err != nil {
		return innerValue{}, err
	}

	rv, err := Visit(ev, right)
	if err != nil {
		return innerValue{}, err
	}

	switch op {
	case DiceRoll:
		return ev.evalDiceRoll(lv, rv)

	case KeepHighest:
		return ev.evalKeepDrop(lv, rv, true, true)

	case KeepLowest:
		return ev.evalKeepDrop(lv, rv, true, false)

	case DropHighest:
		return ev.evalKeepDrop(lv, rv, false, true)

	case DropLowest:
		return ev.evalKeepDrop(lv, rv, false, false)

	case Multiplication:
		return evalElementwise(lv, rv, func(a, b int64) int64 { return a * b })

	case Addition:
		return evalElementwise(lv, rv, func(a, b int64) int64 { return a + b })

	case Subtraction:
		return evalElementwise(lv, rv, func(a, b int64) int64 { return a - b })

	case Equal:
		return evalElementwise(lv, rv, cmpOp(func(a, b int64) bool { return a == b }))

	case NotEqual:
		return evalElementwise(lv, rv, cmpOp(func(a, b int64) bool { return a != b }))

	case LessThan:
		return evalElementwise(lv, rv, cmpOp(func(a, b int64) bool { return a < b }))

	case LessEqual:
		return evalElementwise(lv, rv, cmpOp(func(a, b int64) bool { return a <= b }))

	case GreaterThan:
		return evalElementwise(lv, rv, cmpOp(func(a, b int64) bool { return a > b }))

	case GreaterEqual:
		return evalElementwise(lv, rv, cmpOp(func(a, b int64) bool { return a >= b }))
	}

	return innerValue{}, ErrInvalidExpr
}

func (ev *evaluator) VisitFunctionCall(
	name string, args []Expr,
) (innerValue, error) {
	return innerValue{}, ErrUnsupportedFunction.With(
		slog.String("function", name),
		slog.Int("args", len(args)),
	)
}

// VisitStrongList promotes the inner result: an integer becomes a weak
// one-element list, and any list becomes strong.
func (ev *evaluator) VisitStrongList(inner Expr) (innerValue, error) {
	v, err := Visit(ev, inner)
	if err != nil {
		return innerValue{}, err
	}

	if v.list == nil {
		return listValue(false, materialList([]int64{v.n})), nil
	}

	return listValue(true, *v.list), nil
}

// evalDiceRoll rolls `count` dice over the face set described by the
// right operand: an integer N is shorthand for the faces 1 through N, and
// a list supplies its elements as faces directly. The count must reduce
// to an integer, so a weak list count sums first while a strong list is
// an error. The rolls form a weak list. A non-positive count yields an
// empty list.
func (ev *evaluator) evalDiceRoll(left, right innerValue) (innerValue, error) {
	count, strongCount := left.reduce()
	if strongCount != nil {
		return innerValue{}, ErrIntegerExpected
	}

	var faces listInner

	if right.list == nil {
		faces = rangeList(Range{Start: 1, End: right.n})
	} else {
		faces = *right.list
	}

	if faces.rng == nil && len(faces.elems) == 0 {
		return innerValue{}, ErrEmptyFaces
	}

	return listValue(false, materialList(faces.sample(ev.rng, count))), nil
}

// evalKeepDrop retains a rank-selected subset of the left list. Keeping
// retains the requested count; dropping retains what remains after
// removing the requested count. The retained elements are reshuffled so
// their order carries no information, and the result keeps the strength
// of its input.
func (ev *evaluator) evalKeepDrop(
	left, right innerValue, keep, highest bool,
) (innerValue, error) {
	strong, list, err := left.assertList()
	if err != nil {
		return innerValue{}, err
	}

	requested, err := right.assertInteger()
	if err != nil {
		return innerValue{}, err
	}

	if requested < 0 {
		if keep {
			return innerValue{}, &KeepTooFewError{Requested: requested}
		}

		return innerValue{}, &DropTooFewError{Requested: requested}
	}

	vec := list.values()
	available := len(vec)

	if requested > int64(available) {
		if keep {
			return innerValue{}, &KeepTooManyError{
				Available: available,
				Requested: requested,
			}
		}

		return innerValue{}, &DropTooManyError{
			Available: available,
			Requested: requested,
		}
	}

	// Sort so the retained elements occupy the front: ascending when
	// keeping the lowest or dropping the highest, descending otherwise.
	if keep != highest {
		slices.Sort(vec)
	} else {
		slices.SortFunc(vec, func(a, b int64) int {
			switch {
			case a > b:
				return -1

			case a < b:
				return 1
			}

			return 0
		})
	}

	n := int(requested)
	if !keep {
		n = available - n
	}

	vec = vec[:n]

	ev.rng.Shuffle(len(vec), func(i, j int) {
		vec[i], vec[j] = vec[j], vec[i]
	})

	return listValue(strong, materialList(vec)), nil
}

// cmpOp lifts a predicate to an integer operation yielding 1 or 0.
func cmpOp(pred func(a, b int64) bool) func(a, b int64) int64 {
	return func(a, b int64) int64 {
		if pred(a, b) {
			return 1
		}

		return 0
	}
}

// evalElementwise applies a scalar operation across the four operand
// shapes: two reducible values produce a scalar; one reducible value and
// one strong list broadcast the scalar across the list; two strong lists
// of equal length combine elementwise. All list results are strong.
func evalElementwise(
	left, right innerValue, op func(a, b int64) int64,
) (innerValue, error) {
	ln, llist := left.reduce()
	rn, rlist := right.reduce()

	switch {
	case llist == nil && rlist == nil:
		return integerValue(op(ln, rn)), nil

	case llist == nil:
		vec := rlist.values()
		for i := range vec {
			vec[i] = op(ln, vec[i])
		}

		return listValue(true, materialList(vec)), nil

	case rlist == nil:
		vec := llist.values()
		for i := range vec {
			vec[i] = op(vec[i], rn)
		}

		return listValue(true, materialList(vec)), nil

	default:
		lv, rv := llist.values(), rlist.values()

		if len(lv) != len(rv) {
			return innerValue{}, &ListMismatchError{
				LeftLen:  len(lv),
				RightLen: len(rv),
			}
		}

		out := make([]int64, len(lv))
		for i := range lv {
			out[i] = op(lv[i], rv[i])
		}

		return listValue(true, materialList(out)), nil
	}
}

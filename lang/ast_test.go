package lang

import (
	"math"
	"testing"
)

func TestRange_Values(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want []int64
	}{
		{
			name: "ascending unit step",
			r:    Range{Start: 1, End: 5},
			want: []int64{1, 2, 3, 4, 5},
		},
		{
			name: "ascending step two",
			r:    Range{Start: 1, End: 5, Step: Step(2)},
			want: []int64{1, 3, 5},
		},
		{
			name: "step overshoots end",
			r:    Range{Start: 1, End: 10, Step: Step(4)},
			want: []int64{1, 5, 9},
		},
		{
			name: "descending inferred from bounds",
			r:    Range{Start: 5, End: 1},
			want: []int64{5, 4, 3, 2, 1},
		},
		{
			name: "descending step two",
			r:    Range{Start: 5, End: 1, Step: Step(2)},
			want: []int64{5, 3, 1},
		},
		{
			name: "step sign is ignored",
			r:    Range{Start: 1, End: 5, Step: Step(-2)},
			want: []int64{1, 3, 5},
		},
		{
			name: "single element",
			r:    Range{Start: 3, End: 3},
			want: []int64{3},
		},
		{
			name: "negative bounds",
			r:    Range{Start: -3, End: 1},
			want: []int64{-3, -2, -1, 0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.r.Values()

			if len(got) != len(tt.want) {
				t.Fatalf("Values() = %v, want %v", got, tt.want)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Values() = %v, want %v", got, tt.want)
				}
			}

			if n := tt.r.Len(); n != len(tt.want) {
				t.Errorf("Len() = %d, want %d", n, len(tt.want))
			}
		})
	}
}

func TestRange_SeqTerminatesAtExtremes(t *testing.T) {
	// Stepping past MaxInt64 must not spin forever on wraparound.
	r := Range{Start: math.MaxInt64 - 2, End: math.MaxInt64}

	var got []int64
	for v := range r.Seq() {
		got = append(got, v)

		if len(got) > 10 {
			t.Fatal("sequence did not terminate")
		}
	}

	if len(got) != 3 || got[2] != math.MaxInt64 {
		t.Errorf("got %v, want the three largest int64 values", got)
	}
}

func TestRange_SeqEarlyStop(t *testing.T) {
	r := Range{Start: 1, End: 1000}

	count := 0
	for range r.Seq() {
		count++

		if count == 3 {
			break
		}
	}

	if count != 3 {
		t.Errorf("yielded %d values after break, want 3", count)
	}
}

func TestBinaryOperator_Precedence(t *testing.T) {
	ordered := [][]BinaryOperator{
		{Equal, NotEqual, LessThan, LessEqual, GreaterThan, GreaterEqual},
		{Addition, Subtraction},
		{Multiplication},
		{KeepHighest, KeepLowest, DropHighest, DropLowest},
		{DiceRoll},
	}

	for i := 1; i < len(ordered); i++ {
		for _, lo := range ordered[i-1] {
			for _, hi := range ordered[i] {
				if lo.Precedence() >= hi.Precedence() {
					t.Errorf(
						"%s (prec %d) should bind looser than %s (prec %d)",
						lo, lo.Precedence(), hi, hi.Precedence(),
					)
				}
			}
		}
	}
}

func TestBinaryOperator_Associativity(t *testing.T) {
	for _, op := range []BinaryOperator{
		KeepHighest, KeepLowest, DropHighest, DropLowest,
		Multiplication, Addition, Subtraction,
		Equal, NotEqual, LessThan, LessEqual, GreaterThan, GreaterEqual,
	} {
		if op.RightAssociative() {
			t.Errorf("%s should be left associative", op)
		}
	}

	if !DiceRoll.RightAssociative() {
		t.Error("dice roll should be right associative")
	}
}

package view

import (
	"context"
	"testing"

	"github.com/ardnew/roll/lang"
)

func TestTree(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "integer",
			input: "42",
			want:  "Integer 42\n",
		},
		{
			name:  "keep highest roll",
			input: "4d6kh3",
			want: "Keep Highest (kh)\n" +
				"  Dice Roll (d)\n" +
				"    Integer 4\n" +
				"    Integer 6\n" +
				"  Integer 3\n",
		},
		{
			name:  "arithmetic",
			input: "1 + 2 * 3",
			want: "Addition (+)\n" +
				"  Integer 1\n" +
				"  Multiplication (*)\n" +
				"    Integer 2\n" +
				"    Integer 3\n",
		},
		{
			name:  "list faces",
			input: "2d{1, 2, 3}",
			want: "Dice Roll (d)\n" +
				"  Integer 2\n" +
				"  {1, 2, 3} (list, 3 elements)\n",
		},
		{
			name:  "range literal",
			input: "[1, 10, 2]",
			want:  "[1, 10, 2] (range, 5 values)\n",
		},
		{
			name:  "strong list",
			input: "{2d6} + 1",
			want: "Addition (+)\n" +
				"  Strong List {...}\n" +
				"    Dice Roll (d)\n" +
				"      Integer 2\n" +
				"      Integer 6\n" +
				"  Integer 1\n",
		},
		{
			name:  "function call",
			input: "min(1, 2)",
			want: "Call min (2 arguments)\n" +
				"  Integer 1\n" +
				"  Integer 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			expr, err := lang.Parse(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) = %v", tt.input, err)
			}

			got, err := Tree(expr, Palette{})
			if err != nil {
				t.Fatalf("Tree(%q) = %v", tt.input, err)
			}

			if got != tt.want {
				t.Errorf("Tree(%q) =\n%s\nwant:\n%s", tt.input, got, tt.want)
			}
		})
	}
}

func TestRangeCount(t *testing.T) {
	t.Parallel()

	step := func(n int64) *int64 { return &n }

	tests := []struct {
		name string
		r    lang.Range
		want uint64
	}{
		{name: "unit ascending", r: lang.Range{Start: 1, End: 6}, want: 6},
		{name: "single value", r: lang.Range{Start: 3, End: 3}, want: 1},
		{name: "descending", r: lang.Range{Start: 10, End: 1}, want: 10},
		{name: "stepped", r: lang.Range{Start: 1, End: 10, Step: step(2)}, want: 5},
		{name: "negative step", r: lang.Range{Start: 1, End: 10, Step: step(-3)}, want: 4},
		{name: "zero step", r: lang.Range{Start: 1, End: 10, Step: step(0)}, want: 1},
		{
			name: "full span",
			r:    lang.Range{Start: -9223372036854775808, End: 9223372036854775807},
			want: 0, // 2⁶⁴ values wraps the counter to zero
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := rangeCount(tt.r); got != tt.want {
				t.Errorf("rangeCount(%v) = %d, want %d", tt.r, got, tt.want)
			}
		})
	}
}

package cmd

import (
	"errors"
	"testing"

	"github.com/ardnew/roll/lang"
)

func TestGatherExpressions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
		err  error
	}{
		{
			name: "single expression",
			args: []string{"4d6kh3"},
			want: []string{"4d6kh3"},
		},
		{
			name: "multiple expressions",
			args: []string{"1d20", "2d6 + 3"},
			want: []string{"1d20", "2d6 + 3"},
		},
		{
			name: "blank arguments skipped",
			args: []string{"", "1d4", "   "},
			want: []string{"1d4"},
		},
		{
			name: "only blank arguments",
			args: []string{"", "   "},
			err:  ErrNoExpressions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := gatherExpressions(tt.args)

			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("gatherExpressions(%v) error = %v, want %v",
						tt.args, err, tt.err)
				}

				return
			}

			if err != nil {
				t.Fatalf("gatherExpressions(%v) = %v", tt.args, err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("gatherExpressions(%v) = %v, want %v",
					tt.args, got, tt.want)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("gatherExpressions(%v)[%d] = %q, want %q",
						tt.args, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewSource(t *testing.T) {
	t.Parallel()

	if src := newSource(nil); src != nil {
		t.Error("newSource(nil) should return nil to select the process source")
	}

	seed := uint64(42)

	a, b := newSource(&seed), newSource(&seed)

	for i := range 16 {
		if x, y := a.Uint64(), b.Uint64(); x != y {
			t.Fatalf("draw %d: sources with equal seeds diverged: %d != %d", i, x, y)
		}
	}
}

func TestRenderValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value lang.Value
		want  string
	}{
		{
			name:  "integer",
			value: lang.IntegerValue(17),
			want:  "17",
		},
		{
			name:  "negative integer",
			value: lang.IntegerValue(-3),
			want:  "-3",
		},
		{
			name:  "list shows sum and elements",
			value: lang.ListValue([]int64{5, 6, 3}),
			want:  "14  {5, 6, 3}",
		},
		{
			name:  "empty list",
			value: lang.ListValue(nil),
			want:  "0  {}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := renderValue(tt.value); got != tt.want {
				t.Errorf("renderValue(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

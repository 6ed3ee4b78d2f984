package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // inline formatting of the parsed tree
	}{
		{
			name:  "dice binds tighter than addition",
			input: "2d6 + 3",
			want:  "((2 d 6) + 3)",
		},
		{
			name:  "dice binds tighter than keep",
			input: "4d6kh3",
			want:  "((4 d 6) kh 3)",
		},
		{
			name:  "dice is right associative",
			input: "2d3d4",
			want:  "(2 d (3 d 4))",
		},
		{
			name:  "keep is left associative",
			input: "10d6kh5kl2",
			want:  "(((10 d 6) kh 5) kl 2)",
		},
		{
			name:  "multiplication over addition",
			input: "1 + 2 * 3",
			want:  "(1 + (2 * 3))",
		},
		{
			name:  "subtraction is left associative",
			input: "10 - 4 - 3",
			want:  "((10 - 4) - 3)",
		},
		{
			name:  "comparison binds loosest",
			input: "2d6 + 1 >= 7",
			want:  "(((2 d 6) + 1) >= 7)",
		},
		{
			name:  "parentheses override precedence",
			input: "(1 + 2) * 3",
			want:  "((1 + 2) * 3)",
		},
		{
			name:  "drop highest is not dice then identifier",
			input: "4d6dh1",
			want:  "((4 d 6) dh 1)",
		},
		{
			name:  "drop lowest",
			input: "4d6dl1",
			want:  "((4 d 6) dl 1)",
		},
		{
			name:  "negative literal operand",
			input: "-3 + 5",
			want:  "(-3 + 5)",
		},
		{
			name:  "dice over custom faces",
			input: "2d{1, 2, 3, 5, 8}",
			want:  "(2 d {1, 2, 3, 5, 8})",
		},
		{
			name:  "range with step",
			input: "3d[1, 10, 2]",
			want:  "(3 d [1, 10, 2])",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if got := FormatInline(expr); got != tt.want {
				t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Literals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Expr
	}{
		{
			name:  "max int64",
			input: "9223372036854775807",
			want:  Int(9223372036854775807),
		},
		{
			name:  "min int64",
			input: "-9223372036854775808",
			want:  Int(-9223372036854775808),
		},
		{
			name:  "zero",
			input: "0",
			want:  Int(0),
		},
		{
			name:  "all integer braces form a list",
			input: "{4, 8, 15, 16, 23, 42}",
			want:  List{4, 8, 15, 16, 23, 42},
		},
		{
			name:  "trailing comma in list",
			input: "{1, 2, 3,}",
			want:  List{1, 2, 3},
		},
		{
			name:  "single integer braces form a list",
			input: "{7}",
			want:  List{7},
		},
		{
			name:  "range literal",
			input: "[1, 10]",
			want:  Range{Start: 1, End: 10},
		},
		{
			name:  "descending range with negative step",
			input: "[10, 1, -3]",
			want:  Range{Start: 10, End: 1, Step: Step(-3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if got, want := FormatInline(expr), FormatInline(tt.want); got != want {
				t.Errorf("parsed %q as %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestParse_StrongList(t *testing.T) {
	expr, err := Parse(context.Background(), "{2d6}")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	sl, ok := expr.(StrongList)
	if !ok {
		t.Fatalf("expected StrongList, got %T", expr)
	}

	if got := FormatInline(sl.Inner); got != "(2 d 6)" {
		t.Errorf("inner expression = %q, want %q", got, "(2 d 6)")
	}
}

func TestParse_FunctionCall(t *testing.T) {
	expr, err := Parse(context.Background(), "max(2d6, 7)")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	call, ok := expr.(FunctionCall)
	if !ok {
		t.Fatalf("expected FunctionCall, got %T", expr)
	}

	if call.Name != "max" {
		t.Errorf("name = %q, want %q", call.Name, "max")
	}

	if len(call.Args) != 2 {
		t.Errorf("args = %d, want 2", len(call.Args))
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string // substring expected in the rendered error
	}{
		{
			name:    "trailing garbage",
			input:   "1 + 2 )",
			wantMsg: "unexpected trailing input",
		},
		{
			name:    "integer one past max",
			input:   "9223372036854775808",
			wantMsg: "overflows a 64-bit integer",
		},
		{
			name:    "integer one past min",
			input:   "-9223372036854775809",
			wantMsg: "overflows a 64-bit integer",
		},
		{
			name:    "unclosed parenthesis",
			input:   "(1 + 2",
			wantMsg: "expected ')'",
		},
		{
			name:    "unclosed range",
			input:   "[1, 10",
			wantMsg: "expected ']'",
		},
		{
			name:    "range missing comma",
			input:   "[1 10]",
			wantMsg: "expected ','",
		},
		{
			name:    "mixed braces are neither list nor strong list",
			input:   "{1, 2d6}",
			wantMsg: "elements inside braces",
		},
		{
			name:    "empty braces",
			input:   "{}",
			wantMsg: "elements inside braces",
		},
		{
			name:    "identifier without call",
			input:   "foo + 1",
			wantMsg: "expected '(' after identifier",
		},
		{
			name:    "dangling operator",
			input:   "1 +",
			wantMsg: "expected expression",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(context.Background(), tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, expected error", tt.input)
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}

			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		if _, err := Parse(context.Background(), input); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Parse(%q) = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestParse_ErrorRecovery(t *testing.T) {
	// Overflow recovery lets both out-of-range literals surface from one
	// parse attempt.
	_, err := Parse(
		context.Background(),
		"9223372036854775808 + 9223372036854775808",
	)
	if err == nil {
		t.Fatal("expected error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}

	if len(perr.Errors) != 2 {
		t.Errorf("collected %d errors, want 2", len(perr.Errors))
	}
}

func TestParse_ErrorContext(t *testing.T) {
	_, err := Parse(context.Background(), "1 + foo")
	if err == nil {
		t.Fatal("expected error")
	}

	msg := err.Error()

	for _, want := range []string{"line 1", "column 5", "1 + foo", "^"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
}

func TestParse_MaxDepth(t *testing.T) {
	deep := strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50)

	if _, err := Parse(context.Background(), deep); err != nil {
		t.Errorf("depth 50 within default limit: %v", err)
	}

	_, err := Parse(context.Background(), deep, WithMaxDepth(10))
	if err == nil {
		t.Fatal("expected max depth error")
	}

	if !strings.Contains(err.Error(), ErrMaxDepthExceeded.Error()) {
		t.Errorf("error %q does not mention depth limit", err.Error())
	}
}

func TestParse_Whitespace(t *testing.T) {
	inputs := []string{
		"2d6+3",
		"2d6 + 3",
		"  2 d 6   +   3  ",
		"2\td6\n+ 3",
	}

	for _, input := range inputs {
		expr, err := Parse(context.Background(), input)
		if err != nil {
			t.Errorf("Parse(%q): %v", input, err)

			continue
		}

		if got := FormatInline(expr); got != "((2 d 6) + 3)" {
			t.Errorf("Parse(%q) = %s", input, got)
		}
	}
}

// Package lang implements the dice notation expression language:
// parsing, formatting, and evaluation.
//
// The grammar is a small infix expression language over 64-bit signed
// integers and lists of them:
//
//	expr    = atom { binop expr }
//	atom    = integer | range | braces | call | "(" expr ")"
//	integer = [ "-" ] digit { digit }
//	range   = "[" integer "," integer [ "," integer ] "]"
//	braces  = "{" [ expr { "," expr } [ "," ] ] "}"
//	call    = ident "(" [ expr { "," expr } [ "," ] ] ")"
//	binop   = "d" | "kh" | "kl" | "dh" | "dl"
//	        | "*" | "+" | "-"
//	        | "==" | "!=" | "<" | "<=" | ">" | ">="
//
// Operators climb a fixed precedence table: dice rolls bind tightest and
// associate to the right, then keep/drop, multiplication, addition and
// subtraction, and finally comparisons, all left-associative. So
// `4d6kh3 + 2` parses as `((4 d 6) kh 3) + 2` and `2d3d4` as
// `2 d (3 d 4)`.
//
// Brace contents are disambiguated after parsing: all bare integers form
// a list literal, and a single expression of any other shape forms a
// strong list. Strong lists resist reduction during evaluation and
// propagate arithmetic elementwise; weak lists collapse to their sum
// wherever an integer is required. Dice results, bracket ranges, and
// single-element brace lists are weak; a brace list with more than one
// element is strong, as is anything wrapped by a strong list node.
//
// All arithmetic wraps on 64-bit overflow. Integer literals outside the
// 64-bit range are rejected at parse time with a positioned error.
package lang

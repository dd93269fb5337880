package parser

import (
	"testing"

	"github.com/fern-lang/fern/ast"
	"github.com/stretchr/testify/require"
)

// parseBody is a test helper that parses a bare expression and returns the
// body of the implicit main function it is wrapped in.
func parseBody(t *testing.T, input string) ast.Expr {
	t.Helper()
	program, err := Parse(input)
	require.Nil(t, err)
	require.Len(t, program.Funcs, 1)
	return program.Funcs[0].Body
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2 + 3 * 4", "(2 + (3 * 4))"},
		{"2 * 3 + 4 * 5", "((2 * 3) + (4 * 5))"},
		{"1 + 2 + 3", "((1 + 2) + 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"10 / 2 * 5", "((10 / 2) * 5)"},
		{"8 % 3 + 1", "((8 % 3) + 1)"},
		{"1 < 2 == true", "((1 < 2) == true)"},
		{"a <= b | c >= d", "((a <= b) | (c >= d))"},
		{"a & b | c", "((a & b) | c)"},
		{"a | b & c", "(a | (b & c))"},
		{"1 + 2 < 3 + 4", "((1 + 2) < (3 + 4))"},
		{"a != b & c == d", "((a != b) & (c == d))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"-1 + 2", "((-1) + 2)"},
		{"-(1 + 2)", "(-(1 + 2))"},
		{"!a & b", "((!a) & b)"},
		{"--1", "(-(-1))"},
		{"!!true", "(!(!true))"},
		{"1 + f(2, 3) * 4", "(1 + (f(2, 3) * 4))"},
	}
	for _, tt := range tests {
		body := parseBody(t, tt.input)
		require.Equal(t, tt.expected, body.String(), tt.input)
	}
}

func TestLiterals(t *testing.T) {
	body := parseBody(t, "42")
	intLit, ok := body.(*ast.Int)
	require.True(t, ok)
	require.Equal(t, int64(42), intLit.Value)

	body = parseBody(t, "3.25")
	floatLit, ok := body.(*ast.Float)
	require.True(t, ok)
	require.Equal(t, 3.25, floatLit.Value)

	body = parseBody(t, "2e3")
	floatLit, ok = body.(*ast.Float)
	require.True(t, ok)
	require.Equal(t, 2000.0, floatLit.Value)

	body = parseBody(t, "true")
	boolLit, ok := body.(*ast.Bool)
	require.True(t, ok)
	require.True(t, boolLit.Value)

	body = parseBody(t, `"hi\n"`)
	strLit, ok := body.(*ast.String)
	require.True(t, ok)
	require.Equal(t, `hi\n`, strLit.Value) // backslash preserved, not decoded
}

func TestImplicitMain(t *testing.T) {
	program, err := Parse("1 + 2")
	require.Nil(t, err)
	require.Len(t, program.Funcs, 1)
	fn := program.Funcs[0]
	require.Equal(t, "main", fn.Name)
	require.Empty(t, fn.Params)
	require.Equal(t, "int", fn.ReturnType.Name)
	require.Equal(t, "(1 + 2)", fn.Body.String())
}

func TestFuncDecl(t *testing.T) {
	program, err := Parse("func add(x: int, y: int): int == x + y")
	require.Nil(t, err)
	require.Len(t, program.Funcs, 1)
	fn := program.Funcs[0]
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	require.Equal(t, "x", fn.Params[0].Name)
	require.Equal(t, "int", fn.Params[0].Type.Name)
	require.Equal(t, "y", fn.Params[1].Name)
	require.Equal(t, "int", fn.ReturnType.Name)
	require.Equal(t, "(x + y)", fn.Body.String())
}

func TestFuncDeclNoParams(t *testing.T) {
	// The parameter list is optional; these are equivalent.
	for _, input := range []string{
		"func seven(): int == 7",
		"func seven: int == 7",
	} {
		program, err := Parse(input)
		require.Nil(t, err, input)
		require.Len(t, program.Funcs, 1)
		fn := program.Funcs[0]
		require.Equal(t, "seven", fn.Name)
		require.Empty(t, fn.Params)
	}
}

func TestMultipleFuncDecls(t *testing.T) {
	program, err := Parse(`
		func add(x: int, y: int): int == x + y
		func main(): int == add(3, 4)
	`)
	require.Nil(t, err)
	require.Len(t, program.Funcs, 2)
	require.Equal(t, "add", program.Funcs[0].Name)
	require.Equal(t, "main", program.Funcs[1].Name)
	call, ok := program.Funcs[1].Body.(*ast.Call)
	require.True(t, ok)
	require.Equal(t, "add", call.Name)
	require.Len(t, call.Args, 2)
}

func TestCustomTypeName(t *testing.T) {
	program, err := Parse("func f(p: point): point == p")
	require.Nil(t, err)
	fn := program.Funcs[0]
	require.Equal(t, "point", fn.Params[0].Type.Name)
	require.Equal(t, "point", fn.ReturnType.Name)
}

func TestIfExpression(t *testing.T) {
	body := parseBody(t, "if a < b then a else b fi")
	ifExpr, ok := body.(*ast.If)
	require.True(t, ok)
	require.Equal(t, "(a < b)", ifExpr.Cond.String())
	require.Equal(t, "a", ifExpr.Then.String())
	require.Equal(t, "b", ifExpr.Else.String())
}

func TestNestedIf(t *testing.T) {
	body := parseBody(t, "if a then if b then 1 else 2 fi else 3 fi")
	require.Equal(t, "if a then if b then 1 else 2 fi else 3 fi", body.String())
}

// The equality token also serves as the declaration-body separator; inside
// an expression it is always the comparison operator.
func TestEqualityInsideBody(t *testing.T) {
	program, err := Parse("func isZero(n: int): bool == n == 0")
	require.Nil(t, err)
	require.Equal(t, "(n == 0)", program.Funcs[0].Body.String())
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing then", "if a b else c fi"},
		{"missing else", "if a then b fi"},
		{"missing fi", "if a then b else c"},
		{"missing body separator", "func f(): int 1"},
		{"single equals as separator", "func f(): int = 1"},
		{"missing return type", "func f() == 1"},
		{"missing param type", "func f(x): int == x"},
		{"unclosed paren", "(1 + 2"},
		{"unclosed call", "f(1, 2"},
		{"dangling operator", "1 +"},
		{"empty input operand", "*"},
		{"char literal in expression", "'a'"},
		{"illegal character", "1 @ 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.NotNil(t, err)
			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			require.NotEmpty(t, syntaxErr.Expected)
			require.NotEmpty(t, syntaxErr.Found)
		})
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := Parse("if a then b\nelse c")
	require.NotNil(t, err)
	syntaxErr, ok := err.(*SyntaxError)
	require.True(t, ok)
	require.Equal(t, `"fi"`, syntaxErr.Expected)
	require.Equal(t, "end of input", syntaxErr.Found)
	require.Equal(t, 2, syntaxErr.StartPosition.LineNumber())
}

func TestErrorMessage(t *testing.T) {
	_, err := Parse("func f(): int == )")
	require.NotNil(t, err)
	require.Equal(t, `syntax error: expected expression, got ")" (line 1, column 18)`, err.Error())
}

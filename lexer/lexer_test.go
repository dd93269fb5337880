package lexer

import (
	"strings"
	"testing"

	"github.com/fern-lang/fern/token"
	"github.com/stretchr/testify/require"
)

func TestNextToken(t *testing.T) {
	input := "(){},:;.->+-*/%&|== = != ! < <= > >="
	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.COMMA, ","},
		{token.COLON, ":"},
		{token.SEMICOLON, ";"},
		{token.PERIOD, "."},
		{token.ARROW, "->"},
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.ASTERISK, "*"},
		{token.SLASH, "/"},
		{token.MOD, "%"},
		{token.AMPERSAND, "&"},
		{token.PIPE, "|"},
		{token.EQ, "=="},
		{token.ASSIGN, "="},
		{token.NOT_EQ, "!="},
		{token.BANG, "!"},
		{token.LT, "<"},
		{token.LT_EQUALS, "<="},
		{token.GT, ">"},
		{token.GT_EQUALS, ">="},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok := l.Next()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestFunctionDeclaration(t *testing.T) {
	input := `func add(x: int, y: int): int == x + y`
	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.FUNC, "func"},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.COLON, ":"},
		{token.INT_KW, "int"},
		{token.COMMA, ","},
		{token.IDENT, "y"},
		{token.COLON, ":"},
		{token.INT_KW, "int"},
		{token.RPAREN, ")"},
		{token.COLON, ":"},
		{token.INT_KW, "int"},
		{token.EQ, "=="},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.IDENT, "y"},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok := l.Next()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "if x then y else z fi type case of others fo"
	expected := []token.Type{
		token.IF, token.IDENT, token.THEN, token.IDENT, token.ELSE,
		token.IDENT, token.FI, token.TYPE, token.CASE, token.OF,
		token.OTHERS, token.FO, token.EOF,
	}
	l := New(input)
	for i, want := range expected {
		tok := l.Next()
		require.Equal(t, want, tok.Type, "tests[%d]", i)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input           string
		expectedType    token.Type
		expectedLiteral string
	}{
		{"0", token.INT, "0"},
		{"42", token.INT, "42"},
		{"12345678901", token.INT, "12345678901"},
		{"3.14", token.FLOAT, "3.14"},
		{"1.", token.FLOAT, "1."},
		{"2e10", token.FLOAT, "2e10"},
		{"2E10", token.FLOAT, "2E10"},
		{"2.5e-3", token.FLOAT, "2.5e-3"},
		{"6e+2", token.FLOAT, "6e+2"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Next()
		require.Equal(t, tt.expectedType, tok.Type, tt.input)
		require.Equal(t, tt.expectedLiteral, tok.Literal, tt.input)
		require.Equal(t, token.EOF, l.Next().Type, tt.input)
	}
}

func TestBoolLiterals(t *testing.T) {
	l := New("true false trueish")
	tok := l.Next()
	require.Equal(t, token.TRUE, tok.Type)
	require.Equal(t, "true", tok.Literal)
	tok = l.Next()
	require.Equal(t, token.FALSE, tok.Type)
	require.Equal(t, "false", tok.Literal)
	tok = l.Next()
	require.Equal(t, token.IDENT, tok.Type)
	require.Equal(t, "trueish", tok.Literal)
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input           string
		expectedLiteral string
	}{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"a b c"`, "a b c"},
		// Backslashes are preserved together with the following character,
		// not decoded into escape values.
		{`"a\nb"`, `a\nb`},
		{`"quote: \" end"`, `quote: \" end`},
		{`"trailing`, "trailing"}, // unterminated: ends at EOF
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Next()
		require.Equal(t, token.STRING, tok.Type, tt.input)
		require.Equal(t, tt.expectedLiteral, tok.Literal, tt.input)
	}
}

func TestCharLiterals(t *testing.T) {
	tests := []struct {
		input           string
		expectedLiteral string
	}{
		{`'a'`, "a"},
		{`'\n'`, `\n`},
		{`'\''`, `\'`},
		{`''`, ""},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Next()
		require.Equal(t, token.CHAR, tok.Type, tt.input)
		require.Equal(t, tt.expectedLiteral, tok.Literal, tt.input)
	}
}

func TestComments(t *testing.T) {
	input := "1 // one\n// full line\n2"
	l := New(input)
	tok := l.Next()
	require.Equal(t, token.INT, tok.Type)
	require.Equal(t, "1", tok.Literal)
	tok = l.Next()
	require.Equal(t, token.INT, tok.Type)
	require.Equal(t, "2", tok.Literal)
	require.Equal(t, token.EOF, l.Next().Type)
}

func TestIllegal(t *testing.T) {
	l := New("@ # $")
	for _, want := range []string{"@", "#", "$"} {
		tok := l.Next()
		require.Equal(t, token.ILLEGAL, tok.Type)
		require.Equal(t, want, tok.Literal)
	}
	require.Equal(t, token.EOF, l.Next().Type)
}

// The lexer is total: it always terminates in EOF and keeps returning EOF.
func TestEOFIsSticky(t *testing.T) {
	l := New("x")
	require.Equal(t, token.IDENT, l.Next().Type)
	for i := 0; i < 5; i++ {
		require.Equal(t, token.EOF, l.Next().Type)
	}
}

func TestPositions(t *testing.T) {
	input := "ab\n  cd"
	l := New(input)

	tok := l.Next()
	require.Equal(t, "ab", tok.Literal)
	require.Equal(t, 0, tok.StartPosition.Char)
	require.Equal(t, 1, tok.StartPosition.LineNumber())
	require.Equal(t, 1, tok.StartPosition.ColumnNumber())
	require.Equal(t, 2, tok.EndPosition.Char)

	tok = l.Next()
	require.Equal(t, "cd", tok.Literal)
	require.Equal(t, 5, tok.StartPosition.Char)
	require.Equal(t, 2, tok.StartPosition.LineNumber())
	require.Equal(t, 3, tok.StartPosition.ColumnNumber())
	require.Equal(t, 7, tok.EndPosition.Char)
}

// Token spans plus the skipped whitespace/comment gaps between them
// reconstruct the original source exactly.
func TestSourceReconstruction(t *testing.T) {
	inputs := []string{
		"func add(x: int, y: int): int == x + y",
		"1 + 2 * 3 // trailing comment",
		"if a < b then 'x' else \"y\\n\" fi",
		"  weird @ input # with $ junk  ",
		"// only a comment\n",
		"",
	}
	for _, input := range inputs {
		var out strings.Builder
		prev := 0
		for _, tok := range Tokenize(input) {
			out.WriteString(input[prev:tok.StartPosition.Char]) // skipped span
			out.WriteString(input[tok.StartPosition.Char:tok.EndPosition.Char])
			prev = tok.EndPosition.Char
		}
		out.WriteString(input[prev:])
		require.Equal(t, input, out.String())
	}
}

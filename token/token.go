// Package token defines language keywords and tokens used when lexing source code.
package token

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char      int // byte offset within the input
	LineStart int // byte offset of the start of the current line
	Line      int // 0-indexed line number
	Column    int // 0-indexed column number
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n bytes. This assumes the
// advance does not cross line boundaries.
func (p Position) Advance(n int) Position {
	return Position{
		Char:      p.Char + n,
		LineStart: p.LineStart,
		Line:      p.Line,
		Column:    p.Column + n,
	}
}

// NoPos is the zero value Position, representing an unset position.
var NoPos = Position{}

// Token represents one token lexed from the input source code.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position
}

// Token types
const (
	// Special
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	// Identifiers and literals
	IDENT  Type = "IDENT"
	INT    Type = "INT"
	FLOAT  Type = "FLOAT"
	STRING Type = "STRING"
	CHAR   Type = "CHAR"
	TRUE   Type = "TRUE"
	FALSE  Type = "FALSE"

	// Punctuation
	LPAREN    Type = "("
	RPAREN    Type = ")"
	LBRACE    Type = "{"
	RBRACE    Type = "}"
	COMMA     Type = ","
	COLON     Type = ":"
	SEMICOLON Type = ";"
	PERIOD    Type = "."
	ARROW     Type = "->"

	// Operators
	ASSIGN    Type = "="
	EQ        Type = "=="
	NOT_EQ    Type = "!="
	BANG      Type = "!"
	PLUS      Type = "+"
	MINUS     Type = "-"
	ASTERISK  Type = "*"
	SLASH     Type = "/"
	MOD       Type = "%"
	LT        Type = "<"
	LT_EQUALS Type = "<="
	GT        Type = ">"
	GT_EQUALS Type = ">="
	AMPERSAND Type = "&"
	PIPE      Type = "|"

	// Keywords
	FUNC   Type = "FUNC"
	IF     Type = "IF"
	THEN   Type = "THEN"
	ELSE   Type = "ELSE"
	FI     Type = "FI"
	TYPE   Type = "TYPE"
	CASE   Type = "CASE"
	OF     Type = "OF"
	OTHERS Type = "OTHERS"
	FO     Type = "FO"

	// Type keywords
	INT_KW    Type = "int"
	BOOL_KW   Type = "bool"
	CHAR_KW   Type = "char"
	STRING_KW Type = "string"
)

// Reserved keywords. The type/case/of/others/fo keywords are reserved for
// future use: the lexer recognizes them but no grammar rule consumes them.
var keywords = map[string]Type{
	"func":   FUNC,
	"if":     IF,
	"then":   THEN,
	"else":   ELSE,
	"fi":     FI,
	"type":   TYPE,
	"case":   CASE,
	"of":     OF,
	"others": OTHERS,
	"fo":     FO,
	"int":    INT_KW,
	"bool":   BOOL_KW,
	"char":   CHAR_KW,
	"string": STRING_KW,
}

// LookupIdent determines whether an identifier is a keyword, a boolean
// literal, or a plain identifier.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if ident == "true" {
		return TRUE
	}
	if ident == "false" {
		return FALSE
	}
	return IDENT
}

// IsTypeKeyword reports whether the token type names one of the built-in
// types usable in a type expression.
func IsTypeKeyword(t Type) bool {
	switch t {
	case INT_KW, BOOL_KW, CHAR_KW, STRING_KW:
		return true
	}
	return false
}

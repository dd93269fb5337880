// Package lexer provides a lexer that turns Fern source code into tokens.
//
// The lexer is total: Next always returns a token and never fails. Input
// it cannot recognize is returned as an ILLEGAL token, and once the end
// of input is reached every subsequent call returns an EOF token.
package lexer

import (
	"github.com/fern-lang/fern/token"
)

// Lexer produces tokens from an input string, one at a time.
type Lexer struct {
	input     string
	pos       int // byte offset of the next unread character
	line      int // 0-indexed current line
	lineStart int // byte offset of the start of the current line
}

// New creates a new Lexer for the given input.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize consumes the entire input and returns all tokens up to and
// including the first EOF token.
func Tokenize(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) peek() byte {
	if l.pos < len(l.input) {
		return l.input[l.pos]
	}
	return 0
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset < len(l.input) {
		return l.input[l.pos+offset]
	}
	return 0
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	c := l.input[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.lineStart = l.pos
	}
	return c
}

// position returns the Position of the next unread character.
func (l *Lexer) position() token.Position {
	return token.Position{
		Char:      l.pos,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.pos - l.lineStart,
	}
}

// skipWhitespace advances past whitespace and line comments. Comments run
// from "//" to the end of the line.
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			l.advance()
			continue
		}
		if c == '/' && l.peekAt(1) == '/' {
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.advance()
			}
			continue
		}
		break
	}
}

// Next returns the next token in the input. At end of input it returns an
// EOF token, repeatedly if called again.
func (l *Lexer) Next() token.Token {
	l.skipWhitespace()
	start := l.position()
	if l.pos >= len(l.input) {
		return token.Token{Type: token.EOF, Literal: "", StartPosition: start, EndPosition: start}
	}

	c := l.advance()
	switch c {
	case '(':
		return l.newToken(token.LPAREN, "(", start)
	case ')':
		return l.newToken(token.RPAREN, ")", start)
	case '{':
		return l.newToken(token.LBRACE, "{", start)
	case '}':
		return l.newToken(token.RBRACE, "}", start)
	case ',':
		return l.newToken(token.COMMA, ",", start)
	case ':':
		return l.newToken(token.COLON, ":", start)
	case ';':
		return l.newToken(token.SEMICOLON, ";", start)
	case '.':
		return l.newToken(token.PERIOD, ".", start)
	case '+':
		return l.newToken(token.PLUS, "+", start)
	case '-':
		if l.peek() == '>' {
			l.advance()
			return l.newToken(token.ARROW, "->", start)
		}
		return l.newToken(token.MINUS, "-", start)
	case '*':
		return l.newToken(token.ASTERISK, "*", start)
	case '/':
		return l.newToken(token.SLASH, "/", start)
	case '%':
		return l.newToken(token.MOD, "%", start)
	case '&':
		return l.newToken(token.AMPERSAND, "&", start)
	case '|':
		return l.newToken(token.PIPE, "|", start)
	case '=':
		if l.peek() == '=' {
			l.advance()
			return l.newToken(token.EQ, "==", start)
		}
		return l.newToken(token.ASSIGN, "=", start)
	case '!':
		if l.peek() == '=' {
			l.advance()
			return l.newToken(token.NOT_EQ, "!=", start)
		}
		return l.newToken(token.BANG, "!", start)
	case '<':
		if l.peek() == '=' {
			l.advance()
			return l.newToken(token.LT_EQUALS, "<=", start)
		}
		return l.newToken(token.LT, "<", start)
	case '>':
		if l.peek() == '=' {
			l.advance()
			return l.newToken(token.GT_EQUALS, ">=", start)
		}
		return l.newToken(token.GT, ">", start)
	case '\'':
		return l.readChar(start)
	case '"':
		return l.readString(start)
	}

	if isLetter(c) {
		return l.readIdent(c, start)
	}
	if isDigit(c) {
		return l.readNumber(c, start)
	}
	return l.newToken(token.ILLEGAL, string(c), start)
}

func (l *Lexer) newToken(typ token.Type, literal string, start token.Position) token.Token {
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   l.position(),
	}
}

// readIdent reads an identifier or keyword. The first character has
// already been consumed.
func (l *Lexer) readIdent(first byte, start token.Position) token.Token {
	literal := []byte{first}
	for isLetter(l.peek()) || isDigit(l.peek()) {
		literal = append(literal, l.advance())
	}
	text := string(literal)
	return l.newToken(token.LookupIdent(text), text, start)
}

// readNumber reads an integer literal, promoting it to a float literal if
// a fractional part and/or exponent suffix is present. The first digit has
// already been consumed.
func (l *Lexer) readNumber(first byte, start token.Position) token.Token {
	literal := []byte{first}
	isFloat := false
	for isDigit(l.peek()) {
		literal = append(literal, l.advance())
	}
	if l.peek() == '.' {
		isFloat = true
		literal = append(literal, l.advance())
		for isDigit(l.peek()) {
			literal = append(literal, l.advance())
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		literal = append(literal, l.advance())
		if l.peek() == '+' || l.peek() == '-' {
			literal = append(literal, l.advance())
		}
		for isDigit(l.peek()) {
			literal = append(literal, l.advance())
		}
	}
	typ := token.INT
	if isFloat {
		typ = token.FLOAT
	}
	return l.newToken(typ, string(literal), start)
}

// readChar reads a single-quoted character literal. A backslash is kept
// literally together with the character that follows it; escape sequences
// are not decoded. The opening quote has already been consumed and the
// closing quote is not part of the token literal.
func (l *Lexer) readChar(start token.Position) token.Token {
	var literal []byte
	if l.peek() == '\\' {
		literal = append(literal, l.advance())
		if l.pos < len(l.input) {
			literal = append(literal, l.advance())
		}
	} else if l.peek() != '\'' && l.pos < len(l.input) {
		literal = append(literal, l.advance())
	}
	if l.peek() == '\'' {
		l.advance()
	}
	return l.newToken(token.CHAR, string(literal), start)
}

// readString reads a double-quoted string literal. As with character
// literals, backslashes are preserved rather than decoded. The quotes are
// not part of the token literal. An unterminated string ends at EOF.
func (l *Lexer) readString(start token.Position) token.Token {
	var literal []byte
	for l.pos < len(l.input) && l.peek() != '"' {
		c := l.advance()
		if c == '\\' && l.pos < len(l.input) {
			literal = append(literal, c, l.advance())
			continue
		}
		literal = append(literal, c)
	}
	if l.peek() == '"' {
		l.advance()
	}
	return l.newToken(token.STRING, string(literal), start)
}

func isLetter(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

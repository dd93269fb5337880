package parser

import (
	"fmt"

	"github.com/fern-lang/fern/token"
)

// SyntaxError describes an expected-vs-found token mismatch at a given
// position. The parser aborts on the first syntax error; there is no
// synchronization or recovery.
type SyntaxError struct {
	Expected      string         // description of what the parser expected
	Found         string         // description of what it found instead
	StartPosition token.Position // position of the offending token
	EndPosition   token.Position // position immediately after the offending token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: expected %s, got %s (line %d, column %d)",
		e.Expected, e.Found, e.StartPosition.LineNumber(), e.StartPosition.ColumnNumber())
}

// newSyntaxError creates a SyntaxError located at the given token.
func newSyntaxError(expected string, found token.Token) *SyntaxError {
	foundDesc := describeToken(found)
	return &SyntaxError{
		Expected:      expected,
		Found:         foundDesc,
		StartPosition: found.StartPosition,
		EndPosition:   found.EndPosition,
	}
}

func describeToken(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.ILLEGAL:
		return fmt.Sprintf("illegal character %q", tok.Literal)
	default:
		return fmt.Sprintf("%q", tok.Literal)
	}
}

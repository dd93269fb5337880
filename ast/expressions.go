package ast

import (
	"strings"

	"github.com/fern-lang/fern/token"
)

// Ident is an expression node that refers to a value by name.
type Ident struct {
	NamePos token.Position // position of the identifier
	Name    string         // identifier name
}

func (x *Ident) exprNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }
func (x *Ident) End() token.Position { return x.NamePos.Advance(len(x.Name)) }

func (x *Ident) String() string { return x.Name }

// Prefix is an operator expression where the operator precedes the operand.
// Examples include "!done" and "-x".
type Prefix struct {
	OpPos token.Position // position of the operator
	Op    string         // operator: "-" or "!"
	X     Expr           // operand
}

func (x *Prefix) exprNode() {}

func (x *Prefix) Pos() token.Position { return x.OpPos }
func (x *Prefix) End() token.Position { return x.X.End() }

func (x *Prefix) String() string {
	var out strings.Builder
	out.WriteString("(")
	out.WriteString(x.Op)
	out.WriteString(x.X.String())
	out.WriteString(")")
	return out.String()
}

// Infix is an operator expression where the operator is between the
// operands. Examples include "x + y" and "5 < 1".
type Infix struct {
	X     Expr           // left operand
	OpPos token.Position // position of the operator
	Op    string         // operator: "+", "-", "*", "==", etc.
	Y     Expr           // right operand
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position { return x.X.Pos() }
func (x *Infix) End() token.Position { return x.Y.End() }

func (x *Infix) String() string {
	var out strings.Builder
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" " + x.Op + " ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}

// If is an expression node that evaluates to one of two sub-expressions
// based on a condition. Both branches are mandatory:
//
//	if cond then thenExpr else elseExpr fi
type If struct {
	IfPos token.Position // position of the "if" keyword
	FiPos token.Position // position of the "fi" keyword
	Cond  Expr           // condition
	Then  Expr           // value if the condition is true
	Else  Expr           // value if the condition is false
}

func (x *If) exprNode() {}

func (x *If) Pos() token.Position { return x.IfPos }
func (x *If) End() token.Position { return x.FiPos.Advance(2) } // len("fi")

func (x *If) String() string {
	var out strings.Builder
	out.WriteString("if ")
	out.WriteString(x.Cond.String())
	out.WriteString(" then ")
	out.WriteString(x.Then.String())
	out.WriteString(" else ")
	out.WriteString(x.Else.String())
	out.WriteString(" fi")
	return out.String()
}

// Call is an expression node that invokes a named function with ordered
// argument expressions.
type Call struct {
	NamePos token.Position // position of the callee name
	Name    string         // callee name
	Args    []Expr         // ordered arguments
	RParen  token.Position // position of the closing ")"
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.NamePos }
func (x *Call) End() token.Position { return x.RParen.Advance(1) }

func (x *Call) String() string {
	args := make([]string, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, a.String())
	}
	return x.Name + "(" + strings.Join(args, ", ") + ")"
}

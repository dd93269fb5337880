// Package ast defines the abstract syntax tree representation of Fern code.
//
// The tree is purely structural: nodes store their children and positions
// and have no behavior beyond rendering and traversal. It is a stable
// contract that alternative backends (for example a native-code generator)
// can walk without any knowledge of the bytecode pipeline. Each node
// exclusively owns its children; the tree has no cycles and no shared
// ownership.
package ast

import (
	"strings"

	"github.com/fern-lang/fern/token"
)

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string
}

// Expr represents an expression node. Expressions evaluate to a value and
// may be embedded within other expressions.
type Expr interface {
	Node
	exprNode()
}

// TypeExpr is a declared type annotation. Types are parsed but never
// validated against usage.
type TypeExpr struct {
	NamePos token.Position // position of the type name
	Name    string         // "int", "bool", "char", "string" or an identifier
}

func (t *TypeExpr) Pos() token.Position { return t.NamePos }
func (t *TypeExpr) End() token.Position { return t.NamePos.Advance(len(t.Name)) }
func (t *TypeExpr) String() string      { return t.Name }

// Param is a single function parameter: a name with a declared type.
type Param struct {
	NamePos token.Position // position of the parameter name
	Name    string         // parameter name
	Type    *TypeExpr      // declared type
}

func (p *Param) Pos() token.Position { return p.NamePos }
func (p *Param) End() token.Position { return p.Type.End() }
func (p *Param) String() string      { return p.Name + ": " + p.Type.String() }

// FuncDecl is a function declaration: a name, an ordered parameter list,
// a declared return type, and a single body expression.
type FuncDecl struct {
	FuncPos    token.Position // position of the "func" keyword
	Name       string         // function name
	Params     []*Param       // ordered parameters
	ReturnType *TypeExpr      // declared return type
	Body       Expr           // body expression
}

func (f *FuncDecl) Pos() token.Position { return f.FuncPos }
func (f *FuncDecl) End() token.Position { return f.Body.End() }

func (f *FuncDecl) String() string {
	var out strings.Builder
	out.WriteString("func ")
	out.WriteString(f.Name)
	out.WriteString("(")
	for i, p := range f.Params {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p.String())
	}
	out.WriteString("): ")
	out.WriteString(f.ReturnType.String())
	out.WriteString(" == ")
	out.WriteString(f.Body.String())
	return out.String()
}

// Program is an ordered sequence of function declarations.
type Program struct {
	Funcs []*FuncDecl
}

func (p *Program) Pos() token.Position {
	if len(p.Funcs) > 0 {
		return p.Funcs[0].Pos()
	}
	return token.NoPos
}

func (p *Program) End() token.Position {
	if n := len(p.Funcs); n > 0 {
		return p.Funcs[n-1].End()
	}
	return token.NoPos
}

func (p *Program) String() string {
	lines := make([]string, 0, len(p.Funcs))
	for _, f := range p.Funcs {
		lines = append(lines, f.String())
	}
	return strings.Join(lines, "\n")
}

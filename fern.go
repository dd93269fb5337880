// Package fern provides the top-level API for the Fern expression
// language: a pipeline from source text through tokens and an abstract
// syntax tree to bytecode executed on a stack virtual machine.
//
// The stages are exposed individually so callers can stop at any point
// (for example to inspect the AST or disassemble the bytecode), and Eval
// composes them for the common case:
//
//	results, err := fern.Eval(`
//		func add(x: int, y: int): int == x + y
//		func main(): int == add(3, 4)
//	`)
package fern

import (
	"github.com/fern-lang/fern/ast"
	"github.com/fern-lang/fern/compiler"
	"github.com/fern-lang/fern/object"
	"github.com/fern-lang/fern/parser"
	"github.com/fern-lang/fern/vm"
)

// Parse converts source text into a program AST. A program is a sequence
// of function declarations separated by ==; a bare expression parses as
// the body of an implicit main.
func Parse(source string) (*ast.Program, error) {
	return parser.Parse(source)
}

// Compile lowers a parsed program into a table of compiled functions.
// The returned table is immutable and safe for concurrent use; multiple
// virtual machines can execute the same table simultaneously.
func Compile(program *ast.Program) (*compiler.Table, error) {
	return compiler.Compile(program)
}

// Run executes a compiled program starting at main and returns the values
// main left on the operand stack, bottom first. Each call creates fresh
// runtime state.
func Run(table *compiler.Table) ([]object.Value, error) {
	machine := vm.New(table)
	if err := machine.Run(); err != nil {
		return nil, err
	}
	return machine.Stack(), nil
}

// Eval is a convenience function that parses, compiles, and runs source
// code. It is equivalent to Parse followed by Compile followed by Run.
func Eval(source string) ([]object.Value, error) {
	program, err := Parse(source)
	if err != nil {
		return nil, err
	}
	table, err := Compile(program)
	if err != nil {
		return nil, err
	}
	return Run(table)
}

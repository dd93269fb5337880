package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fern-lang/fern"
	"github.com/fern-lang/fern/dis"
	"github.com/fern-lang/fern/lexer"
	"github.com/fern-lang/fern/object"
	"github.com/fern-lang/fern/token"
)

// runSource compiles and executes a program, printing the values main
// leaves on the stack.
func runSource(source string) error {
	program, err := fern.Parse(source)
	if err != nil {
		return err
	}
	start := time.Now()
	table, err := fern.Compile(program)
	if err != nil {
		return err
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("compiled")

	start = time.Now()
	results, err := fern.Run(table)
	if err != nil {
		return err
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("executed")

	for _, value := range results {
		printValue(value)
	}
	return nil
}

func printValue(value object.Value) {
	switch value.Type() {
	case object.STRING:
		fmt.Println(stringColor.Sprint(value.Inspect()))
	case object.INT, object.FLOAT:
		fmt.Println(numberColor.Sprint(value.Inspect()))
	default:
		fmt.Println(value.Inspect())
	}
}

// showTokens prints one token per line with its position and literal.
func showTokens(source string) error {
	for _, tok := range lexer.Tokenize(source) {
		pos := tok.StartPosition
		fmt.Printf("%3d:%-3d %-12s %q\n",
			pos.LineNumber(), pos.ColumnNumber(), tok.Type, tok.Literal)
		if tok.Type == token.EOF {
			break
		}
	}
	return nil
}

// showAST prints each declared function in its source-like rendering.
func showAST(source string) error {
	program, err := fern.Parse(source)
	if err != nil {
		return err
	}
	for _, decl := range program.Funcs {
		fmt.Println(decl.String())
	}
	return nil
}

// showDisassembly prints an instruction table for every compiled function,
// in declaration order.
func showDisassembly(source string) error {
	program, err := fern.Parse(source)
	if err != nil {
		return err
	}
	table, err := fern.Compile(program)
	if err != nil {
		return err
	}
	for _, name := range table.Names() {
		fn, _ := table.Get(name)
		headerColor.Printf("func %s (%d params, %d locals)\n",
			name, fn.ParamCount(), fn.LocalsCount())
		instructions, err := dis.Disassemble(fn.Instructions())
		if err != nil {
			return err
		}
		dis.Print(instructions, os.Stdout)
	}
	return nil
}

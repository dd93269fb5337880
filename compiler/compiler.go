// Package compiler is used to compile a Fern abstract syntax tree (AST)
// into the corresponding bytecode.
//
// Each function declaration is lowered independently into a Function: a
// byte instruction stream plus a fixed local slot count. Parameters are
// bound to slots 0..N-1 via a per-function symbol table built before the
// body is compiled, and identifier expressions lower to local loads using
// those slots. Conditionals lower to jump-if-false/jump pairs with forward
// references patched once the branch lengths are known.
//
// Compilation visits every function even after one fails, so a single pass
// reports the errors for all failing functions.
package compiler

import (
	"encoding/binary"
	"math"

	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/fern-lang/fern/ast"
	"github.com/fern-lang/fern/errz"
	"github.com/fern-lang/fern/op"
)

// slotHeadroom is the number of local slots allocated beyond the parameter
// count. The allocation is a static over-approximation, not a computed
// minimum; frames never resize at runtime.
const slotHeadroom = 4

// jumpPlaceholder marks an unpatched jump target. Every placeholder is
// replaced before compilation of the function completes.
const jumpPlaceholder = uint32(math.MaxUint32)

// Compile lowers a parsed program into a table of compiled functions.
// Function names must be unique within the program. The same AST always
// compiles to byte-identical instruction streams.
func Compile(program *ast.Program) (*Table, error) {
	table := &Table{funcs: map[string]*Function{}}
	var errs error
	for _, decl := range program.Funcs {
		if _, exists := table.funcs[decl.Name]; exists {
			errs = multierror.Append(errs, errz.New(errz.ErrCompile,
				"function %q redeclared", decl.Name))
			continue
		}
		fn, err := compileFunc(decl)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		table.add(fn)
	}
	if errs != nil {
		return nil, errs
	}
	return table, nil
}

// funcCompiler accumulates the instruction stream for one function.
type funcCompiler struct {
	symbols *SymbolTable
	code    []byte
}

func compileFunc(decl *ast.FuncDecl) (*Function, error) {
	fc := &funcCompiler{symbols: NewSymbolTable()}
	for _, param := range decl.Params {
		if _, err := fc.symbols.InsertVariable(param.Name); err != nil {
			return nil, errz.New(errz.ErrCompile,
				"function %q: duplicate parameter %q", decl.Name, param.Name)
		}
	}
	if err := fc.compileExpr(decl.Body); err != nil {
		return nil, err
	}
	// Every compiled body ends with an explicit return.
	fc.emit(op.Return)

	localsCount := len(decl.Params) + slotHeadroom
	if localsCount < 1 {
		localsCount = 1
	}
	params := make([]string, 0, len(decl.Params))
	for _, p := range decl.Params {
		params = append(params, p.Name)
	}
	return &Function{
		id:           uuid.Must(uuid.NewV4()).String(),
		name:         decl.Name,
		params:       params,
		localsCount:  localsCount,
		instructions: fc.code,
	}, nil
}

func (fc *funcCompiler) compileExpr(node ast.Expr) error {
	switch node := node.(type) {
	case *ast.Int:
		fc.emit(op.PushInt)
		fc.emitU64(uint64(node.Value))
	case *ast.Float:
		fc.emit(op.PushFloat)
		fc.emitU64(math.Float64bits(node.Value))
	case *ast.Bool:
		fc.emit(op.PushBool)
		if node.Value {
			fc.code = append(fc.code, 1)
		} else {
			fc.code = append(fc.code, 0)
		}
	case *ast.String:
		fc.emit(op.PushString)
		fc.emitString(node.Value)
	case *ast.Ident:
		sym, ok := fc.symbols.Lookup(node.Name)
		if !ok {
			return errz.New(errz.ErrName, "undefined variable %q", node.Name)
		}
		fc.emit(op.LoadLocal)
		fc.emitU32(sym.Index())
	case *ast.Prefix:
		if err := fc.compileExpr(node.X); err != nil {
			return err
		}
		switch node.Op {
		case "-":
			fc.emit(op.Neg)
		case "!":
			fc.emit(op.Not)
		default:
			return errz.New(errz.ErrCompile, "unknown prefix operator %q", node.Op)
		}
	case *ast.Infix:
		return fc.compileInfix(node)
	case *ast.If:
		return fc.compileIf(node)
	case *ast.Call:
		for _, arg := range node.Args {
			if err := fc.compileExpr(arg); err != nil {
				return err
			}
		}
		fc.emit(op.Call)
		fc.emitString(node.Name)
		fc.emitU32(uint32(len(node.Args)))
	default:
		return errz.New(errz.ErrCompile, "cannot compile node of type %T", node)
	}
	return nil
}

// compileInfix lowers the left operand, then the right, then the single
// opcode matching the operator token.
func (fc *funcCompiler) compileInfix(node *ast.Infix) error {
	if err := fc.compileExpr(node.X); err != nil {
		return err
	}
	if err := fc.compileExpr(node.Y); err != nil {
		return err
	}
	switch node.Op {
	case "+":
		fc.emit(op.Add)
	case "-":
		fc.emit(op.Sub)
	case "*":
		fc.emit(op.Mul)
	case "/":
		fc.emit(op.Div)
	case "%":
		fc.emit(op.Mod)
	case "==", "=":
		fc.emit(op.Eq)
	case "!=":
		fc.emit(op.Ne)
	case "<":
		fc.emit(op.Lt)
	case "<=":
		fc.emit(op.Le)
	case ">":
		fc.emit(op.Gt)
	case ">=":
		fc.emit(op.Ge)
	case "&":
		fc.emit(op.And)
	case "|":
		fc.emit(op.Or)
	default:
		return errz.New(errz.ErrCompile, "unknown infix operator %q", node.Op)
	}
	return nil
}

// compileIf lowers a conditional so that only the taken branch executes:
//
//	<cond> JUMP_IF_FALSE else  <then> JUMP end  else: <else>  end:
//
// Both jump targets are forward references, written as placeholders and
// patched once the length of the intervening code is known.
func (fc *funcCompiler) compileIf(node *ast.If) error {
	if err := fc.compileExpr(node.Cond); err != nil {
		return err
	}
	fc.emit(op.JumpIfFalse)
	elseRef := fc.emitU32(jumpPlaceholder)

	if err := fc.compileExpr(node.Then); err != nil {
		return err
	}
	fc.emit(op.Jump)
	endRef := fc.emitU32(jumpPlaceholder)

	fc.patchU32(elseRef, uint32(len(fc.code)))
	if err := fc.compileExpr(node.Else); err != nil {
		return err
	}
	fc.patchU32(endRef, uint32(len(fc.code)))
	return nil
}

func (fc *funcCompiler) emit(code op.Code) {
	fc.code = append(fc.code, byte(code))
}

// emitU32 appends a little-endian u32 and returns its offset for patching.
func (fc *funcCompiler) emitU32(v uint32) int {
	pos := len(fc.code)
	fc.code = binary.LittleEndian.AppendUint32(fc.code, v)
	return pos
}

func (fc *funcCompiler) emitU64(v uint64) {
	fc.code = binary.LittleEndian.AppendUint64(fc.code, v)
}

// emitString appends a u32 length prefix followed by the raw bytes.
func (fc *funcCompiler) emitString(s string) {
	fc.emitU32(uint32(len(s)))
	fc.code = append(fc.code, s...)
}

func (fc *funcCompiler) patchU32(pos int, v uint32) {
	binary.LittleEndian.PutUint32(fc.code[pos:], v)
}

// Package vm provides a VirtualMachine that executes compiled Fern code.
//
// The machine is fully single-threaded and synchronous. It runs a single
// instruction-dispatch loop over the innermost active frame, applying each
// opcode's effect to one shared operand stack and the current frame's
// locals. Frames are an explicit data structure rather than host call
// stack activations, so recursion depth is bounded only by available
// memory and call-depth limits or step-debugging can be layered on without
// touching the host runtime.
//
// All runtime faults are terminal: the loop stops and the frame and
// operand stacks are left exactly as they were at the moment of the fault
// for diagnostic inspection.
package vm

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/fern-lang/fern/compiler"
	"github.com/fern-lang/fern/errz"
	"github.com/fern-lang/fern/object"
	"github.com/fern-lang/fern/op"
)

// ErrNoMain is returned by Run when the function table has no entry named
// "main". It is distinct from a runtime fault: no frame is ever pushed and
// the table remains valid and queryable.
var ErrNoMain = errors.New(`no function named "main"`)

// VirtualMachine executes a table of compiled functions using a shared
// operand stack and a stack of call frames. A VirtualMachine is not safe
// for concurrent use; no two instances share any state.
type VirtualMachine struct {
	table  *compiler.Table
	stack  []object.Value
	frames []frame
}

// New creates a VirtualMachine for the given function table.
func New(table *compiler.Table) *VirtualMachine {
	return &VirtualMachine{table: table}
}

// Run executes the program by invoking the function named "main" and
// returns the first fault encountered, if any. Compilation has fully
// completed before Run begins; there is no suspension or cancellation.
func (vm *VirtualMachine) Run() error {
	main, ok := vm.table.Get("main")
	if !ok {
		return ErrNoMain
	}
	vm.frames = append(vm.frames, newFrame(main))
	return vm.dispatch()
}

// Stack returns a copy of the operand stack, bottom first. After a normal
// run it holds whatever values main left behind; after a fault it holds
// the stack at the moment of the fault.
func (vm *VirtualMachine) Stack() []object.Value {
	out := make([]object.Value, len(vm.stack))
	copy(out, vm.stack)
	return out
}

// TOS returns the top of the operand stack, if the stack is non-empty.
func (vm *VirtualMachine) TOS() (object.Value, bool) {
	if len(vm.stack) == 0 {
		return object.None, false
	}
	return vm.stack[len(vm.stack)-1], true
}

// FrameDepth returns the number of active call frames.
func (vm *VirtualMachine) FrameDepth() int {
	return len(vm.frames)
}

// dispatch runs the instruction loop until every frame has been popped, a
// halt instruction executes, or a fault occurs.
func (vm *VirtualMachine) dispatch() error {
	for len(vm.frames) > 0 {
		fr := &vm.frames[len(vm.frames)-1]
		code := fr.fn.Instructions()

		// Running off the end of the instruction stream is an implicit return.
		if fr.ip >= len(code) {
			vm.frames = vm.frames[:len(vm.frames)-1]
			continue
		}

		opcode := op.Code(code[fr.ip])
		fr.ip++

		switch opcode {
		case op.Halt:
			return nil

		case op.PushInt:
			v, err := fr.readU64(code)
			if err != nil {
				return err
			}
			vm.push(object.NewInt(int64(v)))

		case op.PushFloat:
			v, err := fr.readU64(code)
			if err != nil {
				return err
			}
			vm.push(object.NewFloat(math.Float64frombits(v)))

		case op.PushBool:
			if fr.ip >= len(code) {
				return errTruncated(fr.fn)
			}
			vm.push(object.NewBool(code[fr.ip] != 0))
			fr.ip++

		case op.PushString:
			s, err := fr.readString(code)
			if err != nil {
				return err
			}
			vm.push(object.NewString(s))

		case op.LoadLocal:
			idx, err := fr.readU32(code)
			if err != nil {
				return err
			}
			if int(idx) >= len(fr.locals) {
				return errz.New(errz.ErrRuntime, "local slot %d out of range in %q", idx, fr.fn.Name())
			}
			vm.push(fr.locals[idx])

		case op.StoreLocal:
			idx, err := fr.readU32(code)
			if err != nil {
				return err
			}
			if int(idx) >= len(fr.locals) {
				return errz.New(errz.ErrRuntime, "local slot %d out of range in %q", idx, fr.fn.Name())
			}
			v, err := vm.pop()
			if err != nil {
				return err
			}
			fr.locals[idx] = v

		case op.Add, op.Sub, op.Mul, op.Div, op.Mod:
			a, b, err := vm.popPair()
			if err != nil {
				return err
			}
			result, err := arith(opcode, a, b)
			if err != nil {
				return err
			}
			vm.push(result)

		case op.Neg:
			a, err := vm.pop()
			if err != nil {
				return err
			}
			switch a.Type() {
			case object.INT:
				vm.push(object.NewInt(-a.Int()))
			case object.FLOAT:
				vm.push(object.NewFloat(-a.Float()))
			default:
				return errz.New(errz.ErrType, "unsupported operand type for -: %s", a.Type())
			}

		case op.Not:
			a, err := vm.pop()
			if err != nil {
				return err
			}
			if a.Type() != object.BOOL {
				return errz.New(errz.ErrType, "unsupported operand type for !: %s", a.Type())
			}
			vm.push(object.NewBool(!a.Bool()))

		case op.Eq, op.Ne, op.Lt, op.Le, op.Gt, op.Ge:
			a, b, err := vm.popPair()
			if err != nil {
				return err
			}
			result, err := compare(opcode, a, b)
			if err != nil {
				return err
			}
			vm.push(result)

		case op.And, op.Or:
			a, b, err := vm.popPair()
			if err != nil {
				return err
			}
			if a.Type() != object.BOOL || b.Type() != object.BOOL {
				return errz.New(errz.ErrType, "unsupported operand types for %s: %s and %s",
					logicalOpText(opcode), a.Type(), b.Type())
			}
			if opcode == op.And {
				vm.push(object.NewBool(a.Bool() && b.Bool()))
			} else {
				vm.push(object.NewBool(a.Bool() || b.Bool()))
			}

		case op.Jump:
			target, err := fr.readU32(code)
			if err != nil {
				return err
			}
			if int(target) > len(code) {
				return errz.New(errz.ErrRuntime, "jump target %d out of range in %q", target, fr.fn.Name())
			}
			fr.ip = int(target)

		case op.JumpIfFalse:
			target, err := fr.readU32(code)
			if err != nil {
				return err
			}
			if int(target) > len(code) {
				return errz.New(errz.ErrRuntime, "jump target %d out of range in %q", target, fr.fn.Name())
			}
			cond, err := vm.pop()
			if err != nil {
				return err
			}
			if cond.Type() != object.BOOL {
				return errz.New(errz.ErrType, "condition must be bool, got %s", cond.Type())
			}
			if !cond.Bool() {
				fr.ip = int(target)
			}

		case op.Call:
			if err := vm.call(fr, code); err != nil {
				return err
			}

		case op.Return:
			// Whatever the callee left on the operand stack stays visible
			// to the caller; the caller decides how many values to consume.
			vm.frames = vm.frames[:len(vm.frames)-1]

		case op.Pop:
			if _, err := vm.pop(); err != nil {
				return err
			}

		default:
			return errz.New(errz.ErrRuntime, "unknown opcode %d in %q", opcode, fr.fn.Name())
		}
	}
	return nil
}

// call decodes a call instruction and pushes a frame for the callee. The
// callee is resolved before any frame is created: an unknown name faults
// with the frame stack unchanged. Arguments are popped in reverse order so
// they land in slots 0..N-1 in their original left-to-right order.
func (vm *VirtualMachine) call(fr *frame, code []byte) error {
	name, err := fr.readString(code)
	if err != nil {
		return err
	}
	argc, err := fr.readU32(code)
	if err != nil {
		return err
	}
	fn, ok := vm.table.Get(name)
	if !ok {
		return errz.New(errz.ErrName, "unknown function %q", name)
	}
	if fn.LocalsCount() < int(argc) {
		return errz.New(errz.ErrRuntime, "function %q has %d local slots but was called with %d arguments",
			name, fn.LocalsCount(), argc)
	}
	if len(vm.stack) < int(argc) {
		return errz.New(errz.ErrRuntime, "stack underflow in call to %q", name)
	}
	next := newFrame(fn)
	for i := int(argc) - 1; i >= 0; i-- {
		next.locals[i] = vm.stack[len(vm.stack)-1]
		vm.stack = vm.stack[:len(vm.stack)-1]
	}
	vm.frames = append(vm.frames, next)
	return nil
}

func (vm *VirtualMachine) push(v object.Value) {
	vm.stack = append(vm.stack, v)
}

// pop removes and returns the top of the operand stack. An empty stack is
// a runtime fault, never undefined behavior.
func (vm *VirtualMachine) pop() (object.Value, error) {
	if len(vm.stack) == 0 {
		return object.None, errz.New(errz.ErrRuntime, "stack underflow")
	}
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v, nil
}

// popPair pops the right operand then the left, returning them in
// evaluation order.
func (vm *VirtualMachine) popPair() (object.Value, object.Value, error) {
	b, err := vm.pop()
	if err != nil {
		return object.None, object.None, err
	}
	a, err := vm.pop()
	if err != nil {
		return object.None, object.None, err
	}
	return a, b, nil
}

// arith applies a binary arithmetic opcode. Int op int yields int for
// add/sub/mul/mod; any float operand widens both sides to float for
// add/sub/mul/div. Integer division by zero is a fatal fault and mod is
// defined only for ints. String add concatenates.
func arith(opcode op.Code, a, b object.Value) (object.Value, error) {
	bothInt := a.Type() == object.INT && b.Type() == object.INT
	bothNumeric := a.IsNumeric() && b.IsNumeric()

	switch opcode {
	case op.Add:
		if bothInt {
			return object.NewInt(a.Int() + b.Int()), nil
		}
		if bothNumeric {
			return object.NewFloat(a.AsFloat() + b.AsFloat()), nil
		}
		if a.Type() == object.STRING && b.Type() == object.STRING {
			return object.NewString(a.Str() + b.Str()), nil
		}
	case op.Sub:
		if bothInt {
			return object.NewInt(a.Int() - b.Int()), nil
		}
		if bothNumeric {
			return object.NewFloat(a.AsFloat() - b.AsFloat()), nil
		}
	case op.Mul:
		if bothInt {
			return object.NewInt(a.Int() * b.Int()), nil
		}
		if bothNumeric {
			return object.NewFloat(a.AsFloat() * b.AsFloat()), nil
		}
	case op.Div:
		if bothInt {
			if b.Int() == 0 {
				return object.None, errz.New(errz.ErrValue, "divide by zero")
			}
			return object.NewInt(a.Int() / b.Int()), nil
		}
		if bothNumeric {
			return object.NewFloat(a.AsFloat() / b.AsFloat()), nil
		}
	case op.Mod:
		if bothInt {
			if b.Int() == 0 {
				return object.None, errz.New(errz.ErrValue, "divide by zero")
			}
			return object.NewInt(a.Int() % b.Int()), nil
		}
		return object.None, errz.New(errz.ErrType, "unsupported operand types for %%: %s and %s", a.Type(), b.Type())
	}
	return object.None, errz.New(errz.ErrType, "unsupported operand types for %s: %s and %s",
		arithOpText(opcode), a.Type(), b.Type())
}

// compare applies a comparison opcode. Numeric operands follow the same
// int-vs-float widening rule as arithmetic. Equality is additionally
// defined for operands of the same non-numeric tag; ordering is not.
func compare(opcode op.Code, a, b object.Value) (object.Value, error) {
	if a.IsNumeric() && b.IsNumeric() {
		if a.Type() == object.INT && b.Type() == object.INT {
			return object.NewBool(compareInts(opcode, a.Int(), b.Int())), nil
		}
		return object.NewBool(compareFloats(opcode, a.AsFloat(), b.AsFloat())), nil
	}
	if (opcode == op.Eq || opcode == op.Ne) && a.Type() == b.Type() {
		eq := a.Equals(b)
		if opcode == op.Ne {
			eq = !eq
		}
		return object.NewBool(eq), nil
	}
	return object.None, errz.New(errz.ErrType, "unsupported operand types for %s: %s and %s",
		compareOpText(opcode), a.Type(), b.Type())
}

func compareInts(opcode op.Code, a, b int64) bool {
	switch opcode {
	case op.Eq:
		return a == b
	case op.Ne:
		return a != b
	case op.Lt:
		return a < b
	case op.Le:
		return a <= b
	case op.Gt:
		return a > b
	default:
		return a >= b
	}
}

func compareFloats(opcode op.Code, a, b float64) bool {
	switch opcode {
	case op.Eq:
		return a == b
	case op.Ne:
		return a != b
	case op.Lt:
		return a < b
	case op.Le:
		return a <= b
	case op.Gt:
		return a > b
	default:
		return a >= b
	}
}

func arithOpText(opcode op.Code) string {
	switch opcode {
	case op.Add:
		return "+"
	case op.Sub:
		return "-"
	case op.Mul:
		return "*"
	case op.Div:
		return "/"
	default:
		return "%"
	}
}

func compareOpText(opcode op.Code) string {
	switch opcode {
	case op.Eq:
		return "=="
	case op.Ne:
		return "!="
	case op.Lt:
		return "<"
	case op.Le:
		return "<="
	case op.Gt:
		return ">"
	default:
		return ">="
	}
}

func logicalOpText(opcode op.Code) string {
	if opcode == op.And {
		return "&"
	}
	return "|"
}

func errTruncated(fn *compiler.Function) error {
	return errz.New(errz.ErrRuntime, "truncated instruction in %q", fn.Name())
}

// readU32 decodes a little-endian u32 immediate at the instruction pointer.
func (fr *frame) readU32(code []byte) (uint32, error) {
	if fr.ip+4 > len(code) {
		return 0, errTruncated(fr.fn)
	}
	v := binary.LittleEndian.Uint32(code[fr.ip:])
	fr.ip += 4
	return v, nil
}

// readU64 decodes a little-endian u64 immediate at the instruction pointer.
func (fr *frame) readU64(code []byte) (uint64, error) {
	if fr.ip+8 > len(code) {
		return 0, errTruncated(fr.fn)
	}
	v := binary.LittleEndian.Uint64(code[fr.ip:])
	fr.ip += 8
	return v, nil
}

// readString decodes a u32 length-prefixed string at the instruction pointer.
func (fr *frame) readString(code []byte) (string, error) {
	n, err := fr.readU32(code)
	if err != nil {
		return "", err
	}
	if fr.ip+int(n) > len(code) {
		return "", errTruncated(fr.fn)
	}
	s := string(code[fr.ip : fr.ip+int(n)])
	fr.ip += int(n)
	return s, nil
}

package vm

import (
	"github.com/fern-lang/fern/compiler"
	"github.com/fern-lang/fern/object"
)

// frame is a call-activation record: a fixed-size local slot array and an
// instruction pointer into its function's bytecode. A frame exists only
// while its function call is active; it is pushed when a call instruction
// executes and popped when the function returns or runs off the end of its
// instruction stream.
type frame struct {
	fn     *compiler.Function
	ip     int
	locals []object.Value
}

func newFrame(fn *compiler.Function) frame {
	return frame{
		fn:     fn,
		locals: make([]object.Value, fn.LocalsCount()),
	}
}

// Package op defines opcodes used by the Fern compiler and virtual machine.
//
// An opcode is a single byte, optionally followed by fixed-format immediate
// operands: little-endian integers, IEEE-754 doubles, and u32
// length-prefixed text. The encoding is in-memory only and is not stable
// across versions.
package op

// Code is a single-byte opcode that indicates an operation to execute.
type Code uint8

const (
	Invalid Code = 0

	// Execution
	Halt   Code = 1
	Call   Code = 2
	Return Code = 3

	// Jumps (u32 absolute target within the function's instruction stream)
	Jump        Code = 10
	JumpIfFalse Code = 11

	// Immediate pushes
	PushInt    Code = 20
	PushFloat  Code = 21
	PushBool   Code = 22
	PushString Code = 23

	// Locals (u32 slot index)
	LoadLocal  Code = 30
	StoreLocal Code = 31

	// Arithmetic
	Add Code = 40
	Sub Code = 41
	Mul Code = 42
	Div Code = 43
	Mod Code = 44

	// Unary
	Neg Code = 50
	Not Code = 51

	// Comparisons
	Eq Code = 60
	Ne Code = 61
	Lt Code = 62
	Le Code = 63
	Gt Code = 64
	Ge Code = 65

	// Logical (operands are pre-evaluated; no short-circuit)
	And Code = 70
	Or  Code = 71

	// Stack
	Pop Code = 80
)

// ImmKind describes the encoding of one immediate operand following an
// opcode byte.
type ImmKind int

const (
	ImmU8  ImmKind = iota // 1 byte
	ImmU32                // 4 bytes, little-endian
	ImmI64                // 8 bytes, little-endian two's complement
	ImmF64                // 8 bytes, IEEE-754 little-endian
	ImmStr                // u32 little-endian length prefix + raw bytes
)

// Info contains information about an opcode.
type Info struct {
	Code       Code
	Name       string
	Immediates []ImmKind
}

var infos = make([]Info, 256)

func init() {
	ops := []Info{
		{Halt, "HALT", nil},
		{Call, "CALL", []ImmKind{ImmStr, ImmU32}},
		{Return, "RETURN", nil},
		{Jump, "JUMP", []ImmKind{ImmU32}},
		{JumpIfFalse, "JUMP_IF_FALSE", []ImmKind{ImmU32}},
		{PushInt, "PUSH_INT", []ImmKind{ImmI64}},
		{PushFloat, "PUSH_FLOAT", []ImmKind{ImmF64}},
		{PushBool, "PUSH_BOOL", []ImmKind{ImmU8}},
		{PushString, "PUSH_STRING", []ImmKind{ImmStr}},
		{LoadLocal, "LOAD_LOCAL", []ImmKind{ImmU32}},
		{StoreLocal, "STORE_LOCAL", []ImmKind{ImmU32}},
		{Add, "ADD", nil},
		{Sub, "SUB", nil},
		{Mul, "MUL", nil},
		{Div, "DIV", nil},
		{Mod, "MOD", nil},
		{Neg, "NEG", nil},
		{Not, "NOT", nil},
		{Eq, "EQ", nil},
		{Ne, "NE", nil},
		{Lt, "LT", nil},
		{Le, "LE", nil},
		{Gt, "GT", nil},
		{Ge, "GE", nil},
		{And, "AND", nil},
		{Or, "OR", nil},
		{Pop, "POP", nil},
	}
	for _, o := range ops {
		infos[o.Code] = o
	}
}

// GetInfo returns the Info for the given opcode. The Info for an undefined
// opcode has an empty name.
func GetInfo(c Code) Info {
	return infos[c]
}

// String returns the mnemonic for the opcode, or "INVALID" if the opcode
// is not defined.
func (c Code) String() string {
	name := infos[c].Name
	if name == "" {
		return "INVALID"
	}
	return name
}

package compiler

// Function is the compiled form of one function declaration: an opaque
// byte-oriented instruction stream plus a local slot count. A Function is
// produced once and is immutable thereafter; it lives for the lifetime of
// the Table that holds it.
type Function struct {
	id           string
	name         string
	params       []string
	localsCount  int
	instructions []byte
}

// ID returns a unique identifier for this compiled function, useful in
// diagnostics. It is not part of the bytecode encoding.
func (f *Function) ID() string {
	return f.id
}

// Name returns the function's declared name.
func (f *Function) Name() string {
	return f.name
}

// ParamCount returns the number of declared parameters.
func (f *Function) ParamCount() int {
	return len(f.params)
}

// Parameters returns the declared parameter names in order.
func (f *Function) Parameters() []string {
	out := make([]string, len(f.params))
	copy(out, f.params)
	return out
}

// LocalsCount returns the fixed number of local slots allocated to each
// frame executing this function.
func (f *Function) LocalsCount() int {
	return f.localsCount
}

// Instructions returns the function's instruction stream. Callers must
// not modify the returned slice.
func (f *Function) Instructions() []byte {
	return f.instructions
}

// Table holds the compiled functions of one program, keyed by their
// unique names. The table remains valid and queryable even when execution
// later fails.
type Table struct {
	funcs map[string]*Function
	names []string
}

// Get returns the function with the given name, if present.
func (t *Table) Get(name string) (*Function, bool) {
	fn, ok := t.funcs[name]
	return fn, ok
}

// Names returns the function names in declaration order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Count returns the number of compiled functions.
func (t *Table) Count() int {
	return len(t.names)
}

func (t *Table) add(fn *Function) {
	t.funcs[fn.name] = fn
	t.names = append(t.names, fn.name)
}

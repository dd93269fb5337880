package compiler

import "fmt"

// Symbol is a name bound to a local slot within one function.
type Symbol struct {
	name  string
	index uint32
}

// Name returns the symbol's name.
func (s *Symbol) Name() string {
	return s.name
}

// Index returns the local slot the symbol is stored in.
func (s *Symbol) Index() uint32 {
	return s.index
}

// SymbolTable maps declared names to local slot indices for a single
// function. Slots are assigned in insertion order, so parameters occupy
// slots 0..N-1 in declaration order.
type SymbolTable struct {
	symbols map[string]*Symbol
	names   []string
}

// NewSymbolTable creates an empty SymbolTable.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: map[string]*Symbol{}}
}

// InsertVariable binds a name to the next free slot. Redeclaring a name
// is an error.
func (t *SymbolTable) InsertVariable(name string) (*Symbol, error) {
	if _, ok := t.symbols[name]; ok {
		return nil, fmt.Errorf("symbol %q already defined", name)
	}
	s := &Symbol{name: name, index: uint32(len(t.names))}
	t.symbols[name] = s
	t.names = append(t.names, name)
	return s, nil
}

// Lookup returns the symbol bound to name, if any.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	s, ok := t.symbols[name]
	return s, ok
}

// Size returns the number of defined symbols.
func (t *SymbolTable) Size() int {
	return len(t.names)
}

package ast

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	switch n := node.(type) {
	case *Program:
		for _, f := range n.Funcs {
			Walk(v, f)
		}
	case *FuncDecl:
		for _, p := range n.Params {
			Walk(v, p)
		}
		if n.ReturnType != nil {
			Walk(v, n.ReturnType)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *Param:
		if n.Type != nil {
			Walk(v, n.Type)
		}
	case *Prefix:
		Walk(v, n.X)
	case *Infix:
		Walk(v, n.X)
		Walk(v, n.Y)
	case *If:
		Walk(v, n.Cond)
		Walk(v, n.Then)
		Walk(v, n.Else)
	case *Call:
		for _, arg := range n.Args {
			Walk(v, arg)
		}
	}
	// Int, Float, Bool, String, Ident and TypeExpr have no children.
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses an AST in depth-first order, calling f for each node.
// If f returns false for a node, its children are not visited.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

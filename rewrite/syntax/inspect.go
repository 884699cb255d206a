package syntax

// Inspect traverses the tree rooted at n in depth-first order, parent
// before children, left-to-right siblings. If f returns false for a node,
// its children are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch v := n.(type) {
	case *Program:
		for _, s := range v.Stmts {
			Inspect(s, f)
		}
	case *Block:
		for _, s := range v.Stmts {
			Inspect(s, f)
		}
	case *Assign:
		Inspect(v.Lhs, f)
		Inspect(v.Rhs, f)
	case *Unary:
		Inspect(v.X, f)
	case *Binary:
		Inspect(v.X, f)
		Inspect(v.Y, f)
	case *Paren:
		Inspect(v.X, f)
	case *Call:
		Inspect(v.Fun, f)
		for _, a := range v.Args {
			if a.Label != nil {
				Inspect(a.Label, f)
			}
			Inspect(a.Value, f)
		}
	case *Index:
		Inspect(v.X, f)
		for _, a := range v.Args {
			if a.Label != nil {
				Inspect(a.Label, f)
			}
			Inspect(a.Value, f)
		}
	}
}

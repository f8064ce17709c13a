package cnext

// inferArrayInitSize implements the array-initializer-size inference
// utility from §4.7. Two initializer shapes exist: a list
// `[e1, e2, ...]`, whose inferred size is its element count, and a
// fill-all `[v*]`, whose size can't be inferred from the initializer
// alone — the declaration must supply it. Nested initializers (an
// initializer whose elements are themselves initializers) yield only
// the outer dimension; inner dimensions, when the declaration omits
// them, default to the first row's arity.
func inferArrayInitSize(init Expr) (size int, inferable bool) {
	lit, ok := init.(*ArrayInitExpr)
	if !ok {
		return 0, false
	}
	if lit.FillAll {
		return 0, false
	}
	return len(lit.Elements), true
}

// inferInnerDimension returns the arity of the first row of a nested
// array initializer, used to default an omitted inner dimension (§4.7).
func inferInnerDimension(init Expr) (size int, inferable bool) {
	lit, ok := init.(*ArrayInitExpr)
	if !ok || lit.FillAll || len(lit.Elements) == 0 {
		return 0, false
	}
	return inferArrayInitSize(lit.Elements[0])
}

// reachPrimaryArrayInit walks the expression precedence ladder down to
// a primary node and returns its array initializer, if any (§4.7:
// "Traverses the expression precedence ladder to reach a primary
// node's array initializer").
func reachPrimaryArrayInit(e Expr) (*ArrayInitExpr, bool) {
	switch n := e.(type) {
	case *ArrayInitExpr:
		return n, true
	case *UnaryExpr:
		return reachPrimaryArrayInit(n.Operand)
	default:
		return nil, false
	}
}

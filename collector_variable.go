package cnext

// collectVariable turns a VariableDecl parse-tree node into a Variable
// Symbol (§4.1 Variable collector). It captures the declared type,
// array dimensions and initializer; when the declaration's type omits
// an explicit dimension (`u8 arr[] <- [1,2,3]`), the array-initializer
// inference utility (§4.7) is consulted to fill it in.
func collectVariable(decl *VariableDecl, file, scope string, consts map[string]int64) (*Symbol, []Diagnostic) {
	var diags []Diagnostic

	var dims []int
	for i, dimExpr := range decl.Dimensions {
		if dimExpr == nil {
			// Explicit dimension omitted in source (`arr[]`); try to
			// infer it from the initializer: the outer dimension is the
			// element count, an inner one the arity of the first row at
			// that depth.
			if decl.Initializer != nil {
				if init, ok := reachPrimaryArrayInit(decl.Initializer); ok {
					size, inferable := inferArrayInitSize(init)
					if i > 0 {
						var row Expr = init
						for d := 1; d < i; d++ {
							lit, isLit := row.(*ArrayInitExpr)
							if !isLit || len(lit.Elements) == 0 {
								row = nil
								break
							}
							row = lit.Elements[0]
						}
						size, inferable = inferInnerDimension(row)
					}
					if inferable {
						dims = append(dims, size)
						continue
					}
				}
			}
			diags = append(diags, errInvalidConstantExpression(decl.Name+" (array size not inferable)", file, decl.Span.Start))
			continue
		}
		v, ok := evalConstExpr(dimExpr, consts)
		if !ok || v <= 0 {
			diags = append(diags, errInvalidConstantExpression(decl.Name, file, decl.Span.Start))
			continue
		}
		dims = append(dims, int(v))
	}

	overflow := OverflowWrap
	switch decl.Overflow {
	case "saturate":
		overflow = OverflowSaturate
	case "trap":
		overflow = OverflowTrap
	}

	sym := &Symbol{
		Name:           decl.Name,
		SourceFile:     file,
		SourceLine:     decl.Span.Start.Line,
		SourceLanguage: LangInput,
		Kind:           KindVariableSym,
		Scope:          scope,
		VariableData: &VariableInfo{
			TypeName:        decl.TypeName,
			ArrayDimensions: dims,
			IsConst:         decl.IsConst,
			Overflow:        overflow,
			Atomic:          decl.Atomic,
			Initializer:     decl.Initializer,
		},
	}
	return sym, diags
}

package cnext

// collectFunction turns a FunctionDecl parse-tree node into a Function
// Symbol (§4.1). Visibility defaults to private when the source omits
// it, matching the scope collector's default (§4.1 Scope collector).
func collectFunction(decl *FunctionDecl, file, scope string, consts map[string]int64) (*Symbol, []Diagnostic) {
	var diags []Diagnostic

	visibility := VisibilityPrivate
	if decl.Visibility == "public" {
		visibility = VisibilityPublic
	}

	params := make([]*FunctionParam, 0, len(decl.Params))
	for _, p := range decl.Params {
		var dims []int
		for _, dimExpr := range p.ArrayDimensions {
			v, ok := evalConstExpr(dimExpr, consts)
			if !ok || v <= 0 {
				diags = append(diags, errInvalidConstantExpression(p.Name, file, decl.Span.Start))
				continue
			}
			dims = append(dims, int(v))
		}
		params = append(params, &FunctionParam{
			Name:            p.Name,
			TypeName:        p.TypeName,
			IsConst:         p.IsConst,
			IsArray:         p.IsArray,
			ArrayDimensions: dims,
		})
	}

	sym := &Symbol{
		Name:           decl.Name,
		SourceFile:     file,
		SourceLine:     decl.Span.Start.Line,
		SourceLanguage: LangInput,
		IsExported:     visibility == VisibilityPublic,
		Kind:           KindFunctionSym,
		Scope:          scope,
		FunctionData: &FunctionInfo{
			ReturnType: decl.ReturnType,
			Params:     params,
			Visibility: visibility,
			Body:       decl.Body,
		},
	}
	return sym, diags
}

package cnext

// collectEnum turns an EnumDecl parse-tree node into an Enum Symbol
// (§4.1 Enum collector). Members are iterated in declaration order; an
// auto-increment counter assigns 0,1,2,... unless a member spells an
// explicit `<- <expr>` assignment, in which case the evaluated constant
// is used and auto-increment continues from there+1. Fails with
// EnumNegative the moment any member resolves to a negative value.
func collectEnum(decl *EnumDecl, file string, scope string) (*Symbol, []Diagnostic) {
	info := newEnumInfo()
	var diags []Diagnostic

	next := int64(0)
	consts := map[string]int64{}

	for _, m := range decl.Members {
		value := next
		if m.Explicit != nil {
			v, ok := evalConstExpr(m.Explicit, consts)
			if !ok {
				diags = append(diags, errInvalidConstantExpression(m.Name, file, m.Span.Start))
				continue
			}
			value = v
		}

		if value < 0 {
			diags = append(diags, errEnumNegative(m.Name, value, file, m.Span.Start))
			continue
		}

		info.Members.Set(m.Name, value)
		consts[m.Name] = value
		next = value + 1
	}

	sym := &Symbol{
		Name:           decl.Name,
		SourceFile:     file,
		SourceLine:     decl.Span.Start.Line,
		SourceLanguage: LangInput,
		Kind:           KindEnumSym,
		Scope:          scope,
		EnumData:       info,
	}
	return sym, diags
}

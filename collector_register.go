package cnext

// collectRegister turns a RegisterDecl parse-tree node into a Register
// Symbol (§4.1 Register collector). For each member it resolves
// {offset, cType, access, bitmapType?} and verifies that, when present,
// bitmapType names a known bitmap.
func collectRegister(decl *RegisterDecl, file, scope string, knownBitmaps map[string]bool) (*Symbol, []Diagnostic) {
	info := newRegisterInfo(decl.BaseAddress)
	var diags []Diagnostic

	for _, m := range decl.Members {
		access, ok := ParseAccessMode(m.Access)
		if !ok {
			access = AccessRW
		}

		if m.BitmapTypeName != "" && !knownBitmaps[m.BitmapTypeName] {
			diags = append(diags, errUnknownTypeReference(m.BitmapTypeName, file, m.Span.Start))
		}

		info.Members.Set(m.Name, &RegisterMemberInfo{
			Offset:     m.Offset,
			CType:      cTypeFor(m.CType),
			Access:     access,
			BitmapType: m.BitmapTypeName,
		})
	}

	sym := &Symbol{
		Name:           decl.Name,
		SourceFile:     file,
		SourceLine:     decl.Span.Start.Line,
		SourceLanguage: LangInput,
		Kind:           KindRegisterSym,
		Scope:          scope,
		RegisterData:   info,
	}
	return sym, diags
}

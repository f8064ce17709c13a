package cnext

// collectScope turns a ScopeDecl parse-tree node into a Scope Symbol
// (§4.1 Scope collector). It walks scope members in source order,
// dispatches each one to its specialized collector (tagged dispatch
// over declaration kind, per Design Note §9), records
// {memberName -> visibility} (defaulting to private when the source
// omits a visibility modifier) and appends every collected sub-symbol
// to its own output list.
//
// consts is mutated as enum members are collected so later members of
// the same or a following scope can reference them in dimension
// expressions; knownBitmaps is pre-populated with any bitmaps collected
// so far in the file, and every bitmap collected in this scope is added
// to it.
func collectScope(
	decl *ScopeDecl,
	file string,
	consts map[string]int64,
	knownBitmaps map[string]bool,
) (*Symbol, []*Symbol, []Diagnostic) {
	info := newScopeInfo()
	localTypes := localTypeNamesOfScope(decl)

	var subSymbols []*Symbol
	var diags []Diagnostic

	for _, m := range decl.Members {
		visibility := VisibilityPrivate
		visName := "private"
		if m.Visibility == "public" {
			visibility = VisibilityPublic
			visName = "public"
		}

		var sub *Symbol
		var subDiags []Diagnostic

		switch {
		case m.Enum != nil:
			sub, subDiags = collectEnum(m.Enum, file, decl.Name)
			if sub.EnumData != nil {
				for pair := sub.EnumData.Members.Oldest(); pair != nil; pair = pair.Next() {
					consts[sub.QualifiedName()+"_"+pair.Key] = pair.Value
				}
			}
			info.MemberOrder = append(info.MemberOrder, m.Enum.Name)
			info.Visibility[m.Enum.Name] = visibility
		case m.Struct != nil:
			sub, subDiags = collectStruct(m.Struct, file, decl.Name, consts, localTypes)
			info.MemberOrder = append(info.MemberOrder, m.Struct.Name)
			info.Visibility[m.Struct.Name] = visibility
		case m.Bitmap != nil:
			sub, subDiags = collectBitmap(m.Bitmap, file, decl.Name)
			if sub.BitmapData != nil {
				knownBitmaps[sub.Name] = true
			}
			info.MemberOrder = append(info.MemberOrder, m.Bitmap.Name)
			info.Visibility[m.Bitmap.Name] = visibility
		case m.Register != nil:
			sub, subDiags = collectRegister(m.Register, file, decl.Name, knownBitmaps)
			info.MemberOrder = append(info.MemberOrder, m.Register.Name)
			info.Visibility[m.Register.Name] = visibility
		case m.Variable != nil:
			sub, subDiags = collectVariable(m.Variable, file, decl.Name, consts)
			info.MemberOrder = append(info.MemberOrder, m.Variable.Name)
			info.Visibility[m.Variable.Name] = visibility
		case m.Function != nil:
			sub, subDiags = collectFunction(m.Function, file, decl.Name, consts)
			info.MemberOrder = append(info.MemberOrder, m.Function.Name)
			info.Visibility[m.Function.Name] = visibility
		default:
			continue
		}

		sub.IsExported = visName == "public"
		info.Members = append(info.Members, sub)
		subSymbols = append(subSymbols, sub)
		diags = append(diags, subDiags...)
	}

	scopeSym := &Symbol{
		Name:           decl.Name,
		SourceFile:     file,
		SourceLine:     decl.Span.Start.Line,
		SourceLanguage: LangInput,
		Kind:           KindScopeSym,
		ScopeData:      info,
	}
	return scopeSym, subSymbols, diags
}

// localTypeNamesOfScope collects the names of every struct/enum/bitmap
// declared directly within a scope, for qualifyTypeName's "type
// declared in this scope" check.
func localTypeNamesOfScope(decl *ScopeDecl) map[string]bool {
	names := map[string]bool{}
	for _, m := range decl.Members {
		switch {
		case m.Struct != nil:
			names[m.Struct.Name] = true
		case m.Enum != nil:
			names[m.Enum.Name] = true
		case m.Bitmap != nil:
			names[m.Bitmap.Name] = true
		}
	}
	return names
}

package cnext

// CollectFile runs every per-kind collector over one parsed
// CompilationUnit and assembles the resulting Symbols into a
// SymbolTable (§3.1, §4.1, §6). Declarations are processed in source
// order, matching the ordering guarantee in §5 ("declarations within a
// file are processed in source order").
func CollectFile(unit *CompilationUnit) (*SymbolTable, []Diagnostic) {
	table := NewSymbolTable(unit.Path)

	consts := map[string]int64{}
	knownBitmaps := map[string]bool{}
	localTypes := localTypeNamesOfUnit(unit)

	var diags []Diagnostic

	for _, decl := range unit.Declarations {
		switch {
		case decl.Enum != nil:
			sym, d := collectEnum(decl.Enum, unit.Path, "")
			table.Add(sym)
			if sym.EnumData != nil {
				for pair := sym.EnumData.Members.Oldest(); pair != nil; pair = pair.Next() {
					consts[pair.Key] = pair.Value
				}
			}
			diags = append(diags, d...)

		case decl.Struct != nil:
			sym, d := collectStruct(decl.Struct, unit.Path, "", consts, localTypes)
			table.Add(sym)
			diags = append(diags, d...)

		case decl.Bitmap != nil:
			sym, d := collectBitmap(decl.Bitmap, unit.Path, "")
			table.Add(sym)
			knownBitmaps[sym.Name] = true
			diags = append(diags, d...)

		case decl.Register != nil:
			sym, d := collectRegister(decl.Register, unit.Path, "", knownBitmaps)
			table.Add(sym)
			diags = append(diags, d...)

		case decl.Variable != nil:
			sym, d := collectVariable(decl.Variable, unit.Path, "", consts)
			table.Add(sym)
			diags = append(diags, d...)

		case decl.Function != nil:
			sym, d := collectFunction(decl.Function, unit.Path, "", consts)
			table.Add(sym)
			diags = append(diags, d...)

		case decl.Scope != nil:
			scopeSym, subSymbols, d := collectScope(decl.Scope, unit.Path, consts, knownBitmaps)
			table.Add(scopeSym)
			for _, sub := range subSymbols {
				table.Add(sub)
			}
			diags = append(diags, d...)
		}
	}

	for _, d := range diags {
		table.AddDiagnostic(d)
	}
	return table, diags
}

// localTypeNamesOfUnit collects the names of every top-level
// struct/enum/bitmap in the file, used when a scope member's field
// type refers to a file-scope type (qualifyTypeName leaves those
// unqualified since they have no enclosing scope name).
func localTypeNamesOfUnit(unit *CompilationUnit) map[string]bool {
	names := map[string]bool{}
	for _, decl := range unit.Declarations {
		switch {
		case decl.Struct != nil:
			names[decl.Struct.Name] = true
		case decl.Enum != nil:
			names[decl.Enum.Name] = true
		case decl.Bitmap != nil:
			names[decl.Bitmap.Name] = true
		}
	}
	return names
}

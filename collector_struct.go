package cnext

// collectStruct turns a StructDecl parse-tree node into a Struct
// Symbol (§4.1 Struct collector). For each member it resolves the
// type name (qualifying user types with the enclosing scope when the
// type was itself declared in that scope), evaluates array dimensions
// (literal integers or const-table lookups), and — for a `string<N>`
// field — appends N+1 as the trailing dimension and marks the field as
// an array. Struct members carry no const modifier in the grammar.
func collectStruct(
	decl *StructDecl,
	file, scope string,
	consts map[string]int64,
	localTypeNames map[string]bool,
) (*Symbol, []Diagnostic) {
	info := newStructInfo()
	var diags []Diagnostic

	for _, f := range decl.Fields {
		typeName := qualifyTypeName(f.TypeName, scope, localTypeNames)

		field := &StructFieldInfo{TypeName: typeName}

		for _, dimExpr := range f.Dimensions {
			v, ok := evalConstExpr(dimExpr, consts)
			if !ok || v <= 0 {
				diags = append(diags, errInvalidConstantExpression(f.Name, file, f.Span.Start))
				continue
			}
			field.Dimensions = append(field.Dimensions, int(v))
			field.IsArray = true
		}

		if f.IsStringType {
			capacity := 0
			if f.StringCapacity != nil {
				v, ok := evalConstExpr(f.StringCapacity, consts)
				if !ok || v < 0 {
					diags = append(diags, errInvalidConstantExpression(f.Name, file, f.Span.Start))
				} else {
					capacity = int(v)
				}
			}
			field.Dimensions = append(field.Dimensions, capacity+1)
			field.IsArray = true
			field.IsString = true
			field.StringCapacity = capacity
		}

		info.Fields.Set(f.Name, field)
	}

	sym := &Symbol{
		Name:           decl.Name,
		SourceFile:     file,
		SourceLine:     decl.Span.Start.Line,
		SourceLanguage: LangInput,
		Kind:           KindStructSym,
		Scope:          scope,
		StructData:     info,
	}
	return sym, diags
}

// qualifyTypeName implements the "qualifying user types with the
// enclosing scope when appropriate" rule for struct field types (only
// collectStruct calls it): a type name that was itself
// declared as a member of the enclosing scope is rewritten to its
// qualified C name; base types and types declared outside the scope
// pass through unchanged.
func qualifyTypeName(typeName, scope string, localTypeNames map[string]bool) string {
	if _, isBase := cTypeTable[typeName]; isBase {
		return typeName
	}
	if scope != "" && localTypeNames != nil && localTypeNames[typeName] {
		return scope + "_" + typeName
	}
	return typeName
}

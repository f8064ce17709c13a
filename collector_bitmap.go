package cnext

// collectBitmap turns a BitmapDecl parse-tree node into a Bitmap Symbol
// (§4.1 Bitmap collector). Each field is assigned an offset equal to
// the sum of the widths of the fields that precede it; unlabeled
// single-bit fields have width 1, a labeled `[n]` field has width n.
// The sum of all field widths must equal the declared width exactly,
// or collection fails with BitmapWidthMismatch using the precise
// wording from §4.1/§8 scenario 6.
func collectBitmap(decl *BitmapDecl, file string, scope string) (*Symbol, []Diagnostic) {
	info := newBitmapInfo(decl.DeclaredWidth)

	offset := 0
	for _, f := range decl.Fields {
		width := 1
		if f.HasExplicitWidth {
			width = f.ExplicitWidth
		}
		info.Fields.Set(f.Name, &BitmapFieldInfo{Offset: offset, Width: width})
		offset += width
	}

	var diags []Diagnostic
	if offset != decl.DeclaredWidth {
		diags = append(diags, errBitmapWidthMismatch(decl.Name, offset, decl.DeclaredWidth, file, decl.Span.Start))
	}

	sym := &Symbol{
		Name:           decl.Name,
		SourceFile:     file,
		SourceLine:     decl.Span.Start.Line,
		SourceLanguage: LangInput,
		Kind:           KindBitmapSym,
		Scope:          scope,
		BitmapData:     info,
	}
	return sym, diags
}

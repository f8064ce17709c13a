package cnext

// SymbolTable is the per-file typed store described in §3.1/§6: every
// collected Symbol, plus aggregate indexes used across the rest of the
// pipeline (known-enum set, known-bitmap set, bitmap bit-widths,
// struct field info, ...). It is built once during collection and
// never mutated afterward (§3.5 lifecycle).
type SymbolTable struct {
	File string

	Scopes    []*Symbol
	Structs   []*Symbol
	Enums     []*Symbol
	Bitmaps   []*Symbol
	Registers []*Symbol
	Variables []*Symbol
	Functions []*Symbol

	// byQualifiedName indexes every symbol by its C-level qualified
	// name (§3.1 invariant: qualified names are globally unique).
	byQualifiedName map[string]*Symbol

	// KnownEnums / KnownBitmaps are aggregate indexes by (unqualified)
	// declared name, consulted by the Type Registry (§4.3) and the
	// bitmap-width index below.
	KnownEnums   map[string]bool
	KnownBitmaps map[string]bool

	// BitmapBitWidth maps a bitmap's declared name to its BitWidth,
	// used by variableTypeInfo (pipeline.go).
	BitmapBitWidth map[string]int

	// StructFields maps a struct's declared name to its StructInfo,
	// used for cross-file struct-field resolution during code-gen.
	StructFields map[string]*StructInfo

	Diagnostics []Diagnostic
}

func NewSymbolTable(file string) *SymbolTable {
	return &SymbolTable{
		File:            file,
		byQualifiedName: map[string]*Symbol{},
		KnownEnums:      map[string]bool{},
		KnownBitmaps:    map[string]bool{},
		BitmapBitWidth:  map[string]int{},
		StructFields:    map[string]*StructInfo{},
	}
}

// Add inserts a collected Symbol and updates every aggregate index it
// participates in.
func (t *SymbolTable) Add(sym *Symbol) {
	t.byQualifiedName[sym.QualifiedName()] = sym

	switch sym.Kind {
	case KindScopeSym:
		t.Scopes = append(t.Scopes, sym)
	case KindStructSym:
		t.Structs = append(t.Structs, sym)
		t.StructFields[sym.Name] = sym.StructData
	case KindEnumSym:
		t.Enums = append(t.Enums, sym)
		t.KnownEnums[sym.Name] = true
	case KindBitmapSym:
		t.Bitmaps = append(t.Bitmaps, sym)
		t.KnownBitmaps[sym.Name] = true
		t.BitmapBitWidth[sym.Name] = sym.BitmapData.BitWidth
	case KindRegisterSym:
		t.Registers = append(t.Registers, sym)
	case KindVariableSym:
		t.Variables = append(t.Variables, sym)
	case KindFunctionSym:
		t.Functions = append(t.Functions, sym)
	}
}

// AddDiagnostic records a non-fatal (or already-handled) diagnostic
// produced while building this table.
func (t *SymbolTable) AddDiagnostic(d Diagnostic) {
	t.Diagnostics = append(t.Diagnostics, d)
}

func (t *SymbolTable) Lookup(qualifiedName string) (*Symbol, bool) {
	sym, ok := t.byQualifiedName[qualifiedName]
	return sym, ok
}

// Merge folds another file's aggregate indexes into this one, without
// duplicating Symbol slices. Used by the transitive include walker to
// build a combined view for cross-file enum-prefix / struct-field
// resolution (§3.3, §4.2) while each file keeps owning its own
// SymbolTable (§3.5: "every reader constructs its own result list").
func (t *SymbolTable) Merge(other *SymbolTable) {
	for name := range other.KnownEnums {
		t.KnownEnums[name] = true
	}
	for name := range other.KnownBitmaps {
		t.KnownBitmaps[name] = true
	}
	for name, width := range other.BitmapBitWidth {
		if _, ok := t.BitmapBitWidth[name]; !ok {
			t.BitmapBitWidth[name] = width
		}
	}
	for name, info := range other.StructFields {
		if _, ok := t.StructFields[name]; !ok {
			t.StructFields[name] = info
		}
	}
}

package cnext

// TypeInfo is a type-registry entry (§3.2): everything the code
// generator needs to know about an identifier in scope to choose its C
// spelling. Exactly one of {IsEnum, IsBitmap, IsString, (plain)} holds.
type TypeInfo struct {
	BaseType        string
	BitWidth        int
	IsArray         bool
	ArrayDimensions []int // present iff IsArray; len >= 1

	IsConst bool

	IsEnum      bool
	EnumTypeName string

	IsBitmap       bool
	BitmapTypeName string

	IsString       bool
	StringCapacity int // valid iff IsString

	Overflow OverflowMode
	IsAtomic bool
}

// bitWidthTable is the fixed-width lookup from §4.4: u8/i8=8, u16/i16=16,
// u32/i32/f32=32, u64/i64/f64=64, bool=1. C header types map identically.
var bitWidthTable = map[string]int{
	"u8": 8, "i8": 8, "int8_t": 8, "uint8_t": 8,
	"u16": 16, "i16": 16, "int16_t": 16, "uint16_t": 16,
	"u32": 32, "i32": 32, "f32": 32, "int32_t": 32, "uint32_t": 32, "float": 32,
	"u64": 64, "i64": 64, "f64": 64, "int64_t": 64, "uint64_t": 64, "double": 64,
	"bool": 1,
}

// bitWidthOf returns the bit width of a base type name, or (0, false)
// when the type is unsupported and callers must fall back to a
// placeholder (§4.4 "unsupported type -> placeholder comment + 0").
func bitWidthOf(baseType string) (int, bool) {
	w, ok := bitWidthTable[baseType]
	return w, ok
}

// cTypeTable maps input-language base type spellings to their C
// spelling, used throughout header-gen and code-gen.
var cTypeTable = map[string]string{
	"u8": "uint8_t", "i8": "int8_t",
	"u16": "uint16_t", "i16": "int16_t",
	"u32": "uint32_t", "i32": "int32_t", "f32": "float",
	"u64": "uint64_t", "i64": "int64_t", "f64": "double",
	"bool": "bool",
}

// cTypeFor returns the C spelling for a base type; user-defined types
// (structs, enums, bitmaps) pass through unchanged since their C
// typedef shares the qualified name.
func cTypeFor(baseType string) string {
	if ct, ok := cTypeTable[baseType]; ok {
		return ct
	}
	return baseType
}

// TypeRegistry is the per-code-gen-session identifier -> TypeInfo map
// (§4.3). It is passed explicitly rather than held in a package
// global, per Design Note §9.
type TypeRegistry struct {
	entries map[string]*TypeInfo
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{entries: map[string]*TypeInfo{}}
}

func (r *TypeRegistry) Set(name string, info *TypeInfo) {
	r.entries[name] = info
}

func (r *TypeRegistry) Get(name string) (*TypeInfo, bool) {
	info, ok := r.entries[name]
	return info, ok
}

// tryRegisterEnumType registers `name` as an enum-typed identifier iff
// `base` names a known enum in `knownEnums`. Returns true on success.
// Nothing in the pipeline calls it: variableTypeInfo (pipeline.go)
// applies the same enum check inline (§4.3).
func (r *TypeRegistry) tryRegisterEnumType(name, base string, knownEnums map[string]bool) bool {
	if !knownEnums[base] {
		return false
	}
	r.Set(name, &TypeInfo{
		BaseType:     base,
		BitWidth:     32,
		IsEnum:       true,
		EnumTypeName: base,
	})
	return true
}

// tryRegisterBitmapType registers `name` as a bitmap-typed identifier
// iff `base` has an entry in `bitWidths`, recording array dimensions
// when present (§4.3). Nothing in the pipeline calls it:
// variableTypeInfo (pipeline.go) applies the same bitmap check inline.
func (r *TypeRegistry) tryRegisterBitmapType(name, base string, bitWidths map[string]int, dims []int) bool {
	width, ok := bitWidths[base]
	if !ok {
		return false
	}
	info := &TypeInfo{
		BaseType:       base,
		BitWidth:       width,
		IsBitmap:       true,
		BitmapTypeName: base,
	}
	if len(dims) > 0 {
		info.IsArray = true
		info.ArrayDimensions = dims
	}
	r.Set(name, info)
	return true
}

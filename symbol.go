package cnext

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SourceLanguage tags which grammar a Symbol's declaration came from.
type SourceLanguage int

const (
	LangInput SourceLanguage = iota
	LangC
	LangCpp
)

// SymbolKind selects which of a Symbol's *Data fields is meaningful.
// A Symbol is a tagged record (§3.1): exactly one *Data field is
// populated, chosen by Kind.
type SymbolKind int

const (
	KindScopeSym SymbolKind = iota
	KindStructSym
	KindEnumSym
	KindBitmapSym
	KindRegisterSym
	KindVariableSym
	KindFunctionSym
)

func (k SymbolKind) String() string {
	switch k {
	case KindScopeSym:
		return "scope"
	case KindStructSym:
		return "struct"
	case KindEnumSym:
		return "enum"
	case KindBitmapSym:
		return "bitmap"
	case KindRegisterSym:
		return "register"
	case KindVariableSym:
		return "variable"
	case KindFunctionSym:
		return "function"
	default:
		return "unknown"
	}
}

// Visibility controls whether a scope member is reachable from other
// translation units that include the scope's source (§5 ordering
// guarantees).
type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityPublic
)

// BackingType is the unsigned integer width a bitmap is packed into.
type BackingType int

const (
	BackingU8 BackingType = iota
	BackingU16
	BackingU32
	BackingU64
)

func (b BackingType) CType() string {
	switch b {
	case BackingU8:
		return "uint8_t"
	case BackingU16:
		return "uint16_t"
	case BackingU32:
		return "uint32_t"
	case BackingU64:
		return "uint64_t"
	default:
		return "uint32_t"
	}
}

func (b BackingType) Bits() int {
	switch b {
	case BackingU8:
		return 8
	case BackingU16:
		return 16
	case BackingU32:
		return 32
	case BackingU64:
		return 64
	default:
		return 32
	}
}

// BackingTypeForDeclaredWidth maps a declared bitmapN width to its
// storage backing type. A declared 24-bit bitmap keeps BitWidth==24 but
// BackingType==BackingU32 (§3.1 invariant).
func BackingTypeForDeclaredWidth(declared int) BackingType {
	switch {
	case declared <= 8:
		return BackingU8
	case declared <= 16:
		return BackingU16
	case declared <= 32:
		return BackingU32
	default:
		return BackingU64
	}
}

// AccessMode governs which assignment patterns are legal against a
// register member (§4.6 kind 3).
type AccessMode int

const (
	AccessRW AccessMode = iota
	AccessRO
	AccessWO
	AccessW1C
	AccessW1S
)

func ParseAccessMode(s string) (AccessMode, bool) {
	switch s {
	case "rw":
		return AccessRW, true
	case "ro":
		return AccessRO, true
	case "wo":
		return AccessWO, true
	case "w1c":
		return AccessW1C, true
	case "w1s":
		return AccessW1S, true
	default:
		return AccessRW, false
	}
}

// OverflowMode is the arithmetic overflow policy a variable declares.
type OverflowMode int

const (
	OverflowWrap OverflowMode = iota
	OverflowSaturate
	OverflowTrap
)

// StructFieldInfo describes one struct member (§3.1).
type StructFieldInfo struct {
	TypeName   string
	IsArray    bool
	IsConst    bool
	Dimensions []int

	// IsString/StringCapacity describe a `string<N>` field; Dimensions
	// already carries capacity+1 as its trailing entry for C array
	// declaration, StringCapacity keeps N itself for the property
	// access generator's `.capacity`/`.size` rules (§4.4).
	IsString       bool
	StringCapacity int
}

// StructInfo is the ordered field-name -> field-info mapping for a
// struct declaration; order is preserved so emitted C keeps declaration
// order (§8 universal property).
type StructInfo struct {
	Fields *orderedmap.OrderedMap[string, *StructFieldInfo]
}

func newStructInfo() *StructInfo {
	return &StructInfo{Fields: orderedmap.New[string, *StructFieldInfo]()}
}

// EnumInfo is the ordered member-name -> value mapping for an enum.
type EnumInfo struct {
	Members *orderedmap.OrderedMap[string, int64]
}

func newEnumInfo() *EnumInfo {
	return &EnumInfo{Members: orderedmap.New[string, int64]()}
}

// BitmapFieldInfo is one named bit-field within a bitmap.
type BitmapFieldInfo struct {
	Offset int
	Width  int
}

// BitmapInfo is a fixed-width unsigned integer with named, ordered bit
// fields (§3.1, §4.1 Bitmap collector).
type BitmapInfo struct {
	BackingType BackingType
	BitWidth    int // the declared width (8/16/24/32/64); may differ from BackingType.Bits()
	Fields      *orderedmap.OrderedMap[string, *BitmapFieldInfo]
}

func newBitmapInfo(declaredWidth int) *BitmapInfo {
	return &BitmapInfo{
		BackingType: BackingTypeForDeclaredWidth(declaredWidth),
		BitWidth:    declaredWidth,
		Fields:      orderedmap.New[string, *BitmapFieldInfo](),
	}
}

// RegisterMemberInfo describes one member of a memory-mapped register
// group (§3.1).
type RegisterMemberInfo struct {
	Offset      string // preserves source spelling; may be an expression
	CType       string
	Access      AccessMode
	BitmapType  string // "" if this member isn't bitmap-typed
}

// RegisterInfo is a memory-mapped structure with byte offsets, C-level
// types and access modes per member.
type RegisterInfo struct {
	BaseAddress string
	Members     *orderedmap.OrderedMap[string, *RegisterMemberInfo]
}

func newRegisterInfo(base string) *RegisterInfo {
	return &RegisterInfo{
		BaseAddress: base,
		Members:     orderedmap.New[string, *RegisterMemberInfo](),
	}
}

// VariableInfo captures a variable declaration's type and modifiers.
type VariableInfo struct {
	TypeName       string
	ArrayDimensions []int
	IsConst        bool
	Overflow       OverflowMode
	Atomic         bool
	Initializer    Expr // nil if uninitialized
}

// FunctionParam is one parameter of a function declaration.
type FunctionParam struct {
	Name            string
	TypeName        string
	IsConst         bool
	IsArray         bool
	ArrayDimensions []int
}

// FunctionInfo captures a function declaration's signature.
type FunctionInfo struct {
	ReturnType string
	Params     []*FunctionParam
	Visibility Visibility
	Body       []Stmt
}

// ScopeInfo is a named grouping of declarations; member order and
// per-member visibility are tracked so header-gen can qualify exported
// names (§4.1 Scope collector, GLOSSARY "Scope").
type ScopeInfo struct {
	MemberOrder []string
	Visibility  map[string]Visibility
	Members     []*Symbol
}

func newScopeInfo() *ScopeInfo {
	return &ScopeInfo{Visibility: map[string]Visibility{}}
}

// Symbol is the tagged record described in §3.1. All symbols carry the
// common fields; Kind selects which *Data field is meaningful.
type Symbol struct {
	Name           string
	SourceFile     string
	SourceLine     int
	SourceLanguage SourceLanguage
	IsExported     bool
	Kind           SymbolKind

	// Scope is the enclosing scope's name, or "" for the global scope.
	Scope string

	StructData   *StructInfo
	EnumData     *EnumInfo
	BitmapData   *BitmapInfo
	RegisterData *RegisterInfo
	VariableData *VariableInfo
	FunctionData *FunctionInfo
	ScopeData    *ScopeInfo
}

// QualifiedName implements the GLOSSARY rule: scope.name + "_" + name
// when scope.name != "", else name.
func (s *Symbol) QualifiedName() string {
	if s.Scope != "" {
		return s.Scope + "_" + s.Name
	}
	return s.Name
}

package cnext

import (
	"fmt"
	"strings"
)

// HeaderGenerator emits the `.h` companion for one translation unit:
// header guard, struct/enum/bitmap typedefs and one prototype per
// exported function (§4.9).
//
// Grounded on genc.go's cEvalHeaderEmitter — same guard-from-name,
// opaque-type-then-prototypes shape over an outputWriter — generalized
// from a single fixed parser type to every struct/enum/bitmap a
// translation unit declares, and from "always opaque" to full typedef
// bodies (consumers of generated C need the struct layout, not an
// opaque handle).
type HeaderGenerator struct {
	BaseName string
	Symbols  *SymbolTable
	Declared map[string]bool // names already emitted by a transitively-included header

	out *outputWriter
}

func NewHeaderGenerator(baseName string, symbols *SymbolTable, alreadyDeclared map[string]bool) *HeaderGenerator {
	if alreadyDeclared == nil {
		alreadyDeclared = map[string]bool{}
	}
	return &HeaderGenerator{
		BaseName: baseName,
		Symbols:  symbols,
		Declared: alreadyDeclared,
		out:      newOutputWriter("    "),
	}
}

// Generate renders the full header text for this translation unit.
func (h *HeaderGenerator) Generate() string {
	guard := headerGuardName(h.BaseName)

	h.out.writel(fmt.Sprintf("#ifndef %s", guard))
	h.out.writel(fmt.Sprintf("#define %s", guard))
	h.out.writel("")
	h.out.writel("#include <stdint.h>")
	h.out.writel("")

	for _, sym := range h.Symbols.Structs {
		h.writeStruct(sym)
	}
	for _, sym := range h.Symbols.Enums {
		h.writeEnum(sym)
	}
	for _, sym := range h.Symbols.Bitmaps {
		h.writeBitmap(sym)
	}
	for _, sym := range h.Symbols.Functions {
		if sym.FunctionData.Visibility != VisibilityPublic {
			continue
		}
		h.out.writel(NewCodeGenerator(h.Symbols.File, nil, h.Symbols).GenPrototype(sym))
	}

	h.out.writel("")
	h.out.writel(fmt.Sprintf("#endif /* %s */", guard))
	return h.out.String()
}

// headerGuardName derives a header guard from a translation unit's base
// name (its file name without extension): upper-cased, non-identifier
// runs collapsed to `_`, suffixed `_H`.
func headerGuardName(baseName string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(baseName) {
		if r == '_' || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	b.WriteString("_H")
	return b.String()
}

func (h *HeaderGenerator) writeStruct(sym *Symbol) {
	if h.Declared[sym.Name] {
		return
	}
	h.Declared[sym.Name] = true

	h.out.writel(fmt.Sprintf("typedef struct %s {", sym.Name))
	h.out.indent()
	for pair := sym.StructData.Fields.Oldest(); pair != nil; pair = pair.Next() {
		h.out.writeil(structFieldDecl(pair.Key, pair.Value))
	}
	h.out.unindent()
	h.out.writel(fmt.Sprintf("} %s;", sym.Name))
	h.out.writel("")
}

// structFieldDecl renders one struct member declaration, handling plain
// fields, fixed arrays and `string<N>` fields (whose trailing dimension
// is capacity+1 for the null terminator, §3.1/§4.1).
func structFieldDecl(name string, f *StructFieldInfo) string {
	spelling := cTypeFor(f.TypeName)
	if f.IsConst {
		spelling = "const " + spelling
	}
	if f.IsString {
		return fmt.Sprintf("%s %s[%d];", spelling, name, f.StringCapacity+1)
	}
	suffix := ""
	for _, dim := range f.Dimensions {
		suffix += fmt.Sprintf("[%d]", dim)
	}
	return fmt.Sprintf("%s %s%s;", spelling, name, suffix)
}

func (h *HeaderGenerator) writeEnum(sym *Symbol) {
	if h.Declared[sym.Name] {
		return
	}
	h.Declared[sym.Name] = true

	h.out.writel(fmt.Sprintf("typedef enum %s {", sym.Name))
	h.out.indent()
	for pair := sym.EnumData.Members.Oldest(); pair != nil; pair = pair.Next() {
		h.out.writeil(fmt.Sprintf("%s_%s = %d,", sym.Name, pair.Key, pair.Value))
	}
	h.out.unindent()
	h.out.writel(fmt.Sprintf("} %s;", sym.Name))
	h.out.writel("")
}

// writeBitmap emits the backing-integer typedef and a
// `<Bitmap>_<Field>_OFFSET`/`_WIDTH` `#define` pair per field. The §4.5
// read/write helpers do not use these macros; they emit numeric
// offsets and masks.
func (h *HeaderGenerator) writeBitmap(sym *Symbol) {
	if h.Declared[sym.Name] {
		return
	}
	h.Declared[sym.Name] = true

	bm := sym.BitmapData
	h.out.writel(fmt.Sprintf("typedef %s %s;", bm.BackingType.CType(), sym.Name))
	h.out.writel("")
	for pair := bm.Fields.Oldest(); pair != nil; pair = pair.Next() {
		field := pair.Value
		h.out.writel(fmt.Sprintf("#define %s_%s_OFFSET %d", sym.Name, pair.Key, field.Offset))
		h.out.writel(fmt.Sprintf("#define %s_%s_WIDTH %d", sym.Name, pair.Key, field.Width))
	}
	h.out.writel("")
}

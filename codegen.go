package cnext

// CodeGenerator walks statements and expressions for one function body,
// delegating to the property-access generator, bitmap field emitter
// and assignment handler registry, and accumulating the effects those
// emissions request (§2 step 7).
//
// Grounded on gen_go.go/gen_go_eval.go's per-node codeEmitter, adapted
// from langlang's single VM-bytecode target to C source text, and on
// genc.go for C-specific literal/identifier spelling.
type CodeGenerator struct {
	File         string
	Scope        string
	Types        *TypeRegistry
	Symbols      *SymbolTable
	Effects      *EffectSet
	LengthCache  map[string]string
	MainArgsName string

	// PlainBitConstants, when true, drops the MISRA-10.1 `U`/`ULL`
	// suffix from bitmap/register RMW shift constants (§9 Open
	// Question #1). Defaults to false (canonical unsigned form).
	PlainBitConstants bool

	vars map[string]*TypeInfo

	w *outputWriter
}

// NewCodeGenerator builds a generator for one translation unit. symbols
// should already be the merged, transitive-include-aware table
// produced by WalkIncludes so struct/enum/bitmap lookups see every
// reachable declaration.
func NewCodeGenerator(file string, types *TypeRegistry, symbols *SymbolTable) *CodeGenerator {
	return &CodeGenerator{
		File:        file,
		Types:       types,
		Symbols:     symbols,
		Effects:     NewEffectSet(),
		LengthCache: map[string]string{},
		vars:        map[string]*TypeInfo{},
		w:           newOutputWriter("    "),
	}
}

func (cg *CodeGenerator) structFieldLookup() StructFieldLookup {
	return func(structType, member string) (*StructFieldInfo, bool) {
		info, ok := cg.Symbols.StructFields[structType]
		if !ok {
			return nil, false
		}
		return info.Fields.Get(member)
	}
}

// bindParam declares a parameter's type for the duration of a
// function body, so identifier lookups inside GenExpr can resolve it.
func (cg *CodeGenerator) bindParam(name string, ti *TypeInfo) {
	cg.vars[name] = ti
}

func (cg *CodeGenerator) resetLocals() {
	cg.vars = map[string]*TypeInfo{}
}

// GenFunction emits a full C function definition: `RetType
// Scope_Name(params) { body }`, qualified the same way Symbol.QualifiedName
// qualifies any other scope member.
func (cg *CodeGenerator) GenFunction(sym *Symbol) (string, []Diagnostic) {
	cg.resetLocals()
	fn := sym.FunctionData
	if fn == nil {
		return "", nil
	}

	retC := cTypeFor(fn.ReturnType)
	qualified := sym.QualifiedName()

	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		ti := &TypeInfo{BaseType: p.TypeName, IsArray: p.IsArray}
		cg.bindParam(p.Name, ti)
		spelling := cTypeFor(p.TypeName)
		if p.IsConst {
			spelling = "const " + spelling
		}
		suffix := ""
		for range p.ArrayDimensions {
			suffix += "[]"
		}
		params = append(params, spelling+" "+p.Name+suffix)
	}

	signature := retC + " " + qualified + "(" + joinParams(params) + ")"

	var diags []Diagnostic
	cg.w = newOutputWriter("    ")
	cg.w.write(signature)
	cg.w.write(" {")
	if len(fn.Body) > 0 {
		cg.w.write("\n")
		cg.w.indent()
		for _, stmt := range fn.Body {
			d := cg.GenStmt(stmt)
			diags = append(diags, d...)
		}
		cg.w.unindent()
	}
	cg.w.write("}")

	return cg.w.String(), diags
}

// GenPrototype emits the header-file-facing declaration for one
// exported function (§4.9).
func (cg *CodeGenerator) GenPrototype(sym *Symbol) string {
	fn := sym.FunctionData
	retC := cTypeFor(fn.ReturnType)
	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		spelling := cTypeFor(p.TypeName)
		if p.IsConst {
			spelling = "const " + spelling
		}
		for range p.ArrayDimensions {
			spelling += "[]"
		}
		params = append(params, spelling+" "+p.Name)
	}
	return retC + " " + sym.QualifiedName() + "(" + joinParams(params) + ");"
}

func joinParams(params []string) string {
	if len(params) == 0 {
		return "void"
	}
	out := params[0]
	for _, p := range params[1:] {
		out += ", " + p
	}
	return out
}

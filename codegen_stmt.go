package cnext

import (
	"fmt"
	"strings"
)

// GenStmt lowers one statement into cg.w, returning any diagnostics
// produced along the way. Fatal diagnostics still leave a placeholder
// comment in the output rather than aborting the enclosing function
// body (§7 propagation policy).
func (cg *CodeGenerator) GenStmt(s Stmt) []Diagnostic {
	switch n := s.(type) {
	case *ExprStmt:
		text, diag := cg.GenExpr(n.X)
		if diag != nil {
			cg.w.writeil(fmt.Sprintf("/* %s */", diag.Message))
			return []Diagnostic{*diag}
		}
		cg.w.writeil(text + ";")
		return nil

	case *ReturnStmt:
		if n.Value == nil {
			cg.w.writeil("return;")
			return nil
		}
		text, diag := cg.GenExpr(n.Value)
		if diag != nil {
			cg.w.writeil(fmt.Sprintf("/* %s */", diag.Message))
			return []Diagnostic{*diag}
		}
		cg.w.writeil("return " + text + ";")
		return nil

	case *BlockStmt:
		var diags []Diagnostic
		for _, stmt := range n.Stmts {
			diags = append(diags, cg.GenStmt(stmt)...)
		}
		return diags

	case *IfStmt:
		return cg.genIfStmt(n)

	case *WhileStmt:
		return cg.genWhileStmt(n)

	case *ForStmt:
		return cg.genForStmt(n)

	case *BreakStmt:
		cg.w.writeil("break;")
		return nil

	case *ContinueStmt:
		cg.w.writeil("continue;")
		return nil

	case *LocalVarDeclStmt:
		return cg.genLocalVarDecl(n)

	case *AssignStmt:
		return cg.genAssignStmt(n)
	}
	return nil
}

func (cg *CodeGenerator) genIfStmt(n *IfStmt) []Diagnostic {
	cond, diag := cg.GenExpr(n.Cond)
	var diags []Diagnostic
	if diag != nil {
		diags = append(diags, *diag)
	}
	cg.w.writeil(fmt.Sprintf("if (%s) {", cond))
	cg.w.indent()
	diags = append(diags, cg.GenStmt(n.Then)...)
	cg.w.unindent()
	if n.Else != nil {
		cg.w.writeil("} else {")
		cg.w.indent()
		diags = append(diags, cg.GenStmt(n.Else)...)
		cg.w.unindent()
	}
	cg.w.writeil("}")
	return diags
}

func (cg *CodeGenerator) genWhileStmt(n *WhileStmt) []Diagnostic {
	cond, diag := cg.GenExpr(n.Cond)
	var diags []Diagnostic
	if diag != nil {
		diags = append(diags, *diag)
	}
	cg.w.writeil(fmt.Sprintf("while (%s) {", cond))
	cg.w.indent()
	diags = append(diags, cg.GenStmt(n.Body)...)
	cg.w.unindent()
	cg.w.writeil("}")
	return diags
}

func (cg *CodeGenerator) genForStmt(n *ForStmt) []Diagnostic {
	var diags []Diagnostic
	initText, d := cg.genInlineStmt(n.Init)
	diags = append(diags, d...)

	condText := ""
	if n.Cond != nil {
		t, diag := cg.GenExpr(n.Cond)
		if diag != nil {
			diags = append(diags, *diag)
		}
		condText = t
	}

	postText, d := cg.genInlineStmt(n.Post)
	diags = append(diags, d...)

	cg.w.writeil(fmt.Sprintf("for (%s; %s; %s) {", initText, condText, postText))
	cg.w.indent()
	diags = append(diags, cg.GenStmt(n.Body)...)
	cg.w.unindent()
	cg.w.writeil("}")
	return diags
}

// genInlineStmt renders a for-loop init/post clause (typically an
// AssignStmt or ExprStmt) as bare text with no trailing semicolon,
// since the surrounding `for (init; cond; post)` already supplies it.
func (cg *CodeGenerator) genInlineStmt(s Stmt) (string, []Diagnostic) {
	if s == nil {
		return "", nil
	}
	switch n := s.(type) {
	case *AssignStmt:
		ctx, diags, err := cg.buildAssignContext(n)
		if err != nil {
			return "", append(diags, *err)
		}
		text, effects, diag := GenerateAssignment(ctx, cg.File, n.Target.Span.Start)
		if diag != nil {
			return "", append(diags, *diag)
		}
		for _, eff := range effects {
			cg.Effects.Add(eff)
		}
		return strings.TrimSuffix(text, ";"), diags
	case *ExprStmt:
		text, diag := cg.GenExpr(n.X)
		if diag != nil {
			return "", []Diagnostic{*diag}
		}
		return text, nil
	default:
		return "", nil
	}
}

func (cg *CodeGenerator) genLocalVarDecl(n *LocalVarDeclStmt) []Diagnostic {
	decl := n.Decl
	ti := &TypeInfo{BaseType: decl.TypeName, Overflow: parseOverflow(decl.Overflow), IsAtomic: decl.Atomic, IsConst: decl.IsConst}
	for range decl.Dimensions {
		ti.IsArray = true
	}
	cg.vars[decl.Name] = ti

	spelling := cTypeFor(decl.TypeName)
	if decl.IsConst {
		spelling = "const " + spelling
	}
	suffix := ""
	for range decl.Dimensions {
		suffix += "[]"
	}

	var diags []Diagnostic
	if decl.Initializer != nil {
		value, diag := cg.GenExpr(decl.Initializer)
		if diag != nil {
			diags = append(diags, *diag)
		}
		cg.w.writeil(fmt.Sprintf("%s %s%s = %s;", spelling, decl.Name, suffix, value))
		return diags
	}
	cg.w.writeil(fmt.Sprintf("%s %s%s;", spelling, decl.Name, suffix))
	return diags
}

// genAssignStmt resolves an assignment target's chain, classifies it
// (bitmap field / register member / string / bit-access / array
// element / plain), and dispatches to the assignment handler registry
// (§4.6).
func (cg *CodeGenerator) genAssignStmt(n *AssignStmt) []Diagnostic {
	ctx, diags, buildDiag := cg.buildAssignContext(n)
	if buildDiag != nil {
		cg.w.writeil(fmt.Sprintf("/* %s */", buildDiag.Message))
		return append(diags, *buildDiag)
	}

	text, effects, diag := GenerateAssignment(ctx, cg.File, n.Target.Span.Start)
	if diag != nil {
		cg.w.writeil(fmt.Sprintf("/* %s */", diag.Message))
		return append(diags, *diag)
	}
	for _, eff := range effects {
		cg.Effects.Add(eff)
	}
	cg.w.writeil(text)
	return diags
}

// buildAssignContext evaluates the RHS and classifies the LHS target,
// producing the AssignmentContext GenerateAssignment dispatches on.
// The returned *Diagnostic (if any) is fatal for this statement; the
// []Diagnostic slice carries non-fatal diagnostics gathered while
// evaluating the value expression.
func (cg *CodeGenerator) buildAssignContext(n *AssignStmt) (*AssignmentContext, []Diagnostic, *Diagnostic) {
	value, diag := cg.GenExpr(n.Value)
	if diag != nil {
		return nil, nil, diag
	}
	isBool, boolVal := false, false
	if lit, ok := n.Value.(*BoolLiteralExpr); ok {
		isBool, boolVal = true, lit.Value
	}
	isStringLit, stringVal := false, ""
	if lit, ok := n.Value.(*StringLiteralExpr); ok {
		isStringLit, stringVal = true, lit.Value
	}
	ctx, buildDiag := cg.classifyAssignTarget(n.Target, n.Op, value)
	if ctx != nil {
		ctx.ValueIsBoolLiteral = isBool
		ctx.BoolLiteralValue = boolVal
		ctx.ValueIsStringLiteral = isStringLit
		ctx.ValueLiteralText = stringVal
	}
	return ctx, nil, buildDiag
}

// classifyAssignTarget walks an AssignTarget's base identifier and
// postfix ops, resolving what kind of storage it names so
// ClassifyAssignment can pick the right handler.
func (cg *CodeGenerator) classifyAssignTarget(t *AssignTarget, op AssignOp, value string) (*AssignmentContext, *Diagnostic) {
	base := t.Base
	baseType := cg.vars[base]

	if len(t.Ops) == 0 {
		if baseType != nil && baseType.IsString {
			return &AssignmentContext{
				TargetResolvedKind: ResolvedString,
				TargetCtx:          base,
				StringTarget:       base,
				StringCapacity:     baseType.StringCapacity,
				GeneratedValue:     value,
			}, nil
		}
		// Const/atomic/saturate targets take priority over a plain
		// assignment (§4.6 kind 7): a const write must fail, an atomic
		// write needs its helper-call wrapper, and a saturate overflow
		// mode needs its clamp sequence.
		if baseType != nil && baseType.IsConst {
			return &AssignmentContext{
				TargetResolvedKind: ResolvedConst,
				TargetCtx:          base,
				IsConst:            true,
			}, nil
		}
		if baseType != nil && baseType.IsAtomic {
			return &AssignmentContext{
				TargetResolvedKind: ResolvedAtomic,
				TargetCtx:          base,
				IsAtomic:           true,
				AtomicHelper:       "atomic_store",
				GeneratedValue:     value,
			}, nil
		}
		if baseType != nil && baseType.Overflow == OverflowSaturate {
			if min, max, ok := saturateBounds(baseType.BaseType); ok {
				return &AssignmentContext{
					TargetResolvedKind: ResolvedSaturating,
					TargetCtx:          base,
					Overflow:           OverflowSaturate,
					SaturateMin:        min,
					SaturateMax:        max,
					GeneratedValue:     value,
				}, nil
			}
		}
		return &AssignmentContext{
			TargetResolvedKind: ResolvedPlain,
			TargetCtx:          base,
			COp:                op.COp(),
			GeneratedValue:     value,
		}, nil
	}

	// Single member access `X.field` where X is a known bitmap or
	// register: dispatch to the matching RMW handler.
	if len(t.Ops) == 1 {
		if member, ok := t.Ops[0].(MemberOp); ok {
			if reg, ok := cg.findRegisterMember(base, member.Name); ok {
				width, backingBits := cg.registerMemberWidth(reg)
				return &AssignmentContext{
					TargetResolvedKind: ResolvedRegisterMember,
					TargetCtx:          base + "." + member.Name,
					RegisterExpr:       base + "." + member.Name,
					RegisterAccess:     reg.Access,
					FieldOffset:        0,
					FieldWidth:         width,
					BackingBits:        backingBits,
					GeneratedValue:     value,
					PlainBitConstants:  cg.PlainBitConstants,
				}, nil
			}
			if field, backingBits, ok := cg.findBitmapField(base, member.Name); ok {
				return &AssignmentContext{
					TargetResolvedKind: ResolvedBitmapField,
					TargetCtx:          base + "." + member.Name,
					BitmapExpr:         base,
					FieldOffset:        field.Offset,
					FieldWidth:         field.Width,
					BackingBits:        backingBits,
					GeneratedValue:     value,
					PlainBitConstants:  cg.PlainBitConstants,
				}, nil
			}
		}
		if sub, ok := t.Ops[0].(SubscriptOp); ok {
			if len(sub.Indices) >= 1 && baseType != nil && !baseType.IsArray {
				offsetText, d := cg.GenExpr(sub.Indices[0])
				if d != nil {
					return nil, d
				}
				width := 1
				offset := 0
				fmt.Sscanf(offsetText, "%d", &offset)
				if len(sub.Indices) == 2 {
					widthText, d := cg.GenExpr(sub.Indices[1])
					if d != nil {
						return nil, d
					}
					fmt.Sscanf(widthText, "%d", &width)
				}
				return &AssignmentContext{
					TargetResolvedKind: ResolvedBitAccess,
					TargetCtx:          base,
					BitAccessExpr:      base,
					FieldOffset:        offset,
					FieldWidth:         width,
					BackingBits:        bitWidthOrDefault(baseType, 32),
					GeneratedValue:     value,
					PlainBitConstants:  cg.PlainBitConstants,
				}, nil
			}
		}
	}

	// General case: array element / struct chain — render the target
	// text via the expression resolver and emit a plain assignment.
	text, d := cg.renderAssignTargetText(t)
	if d != nil {
		return nil, d
	}
	return &AssignmentContext{
		TargetResolvedKind: ResolvedArrayElement,
		TargetCtx:          text,
		COp:                op.COp(),
		GeneratedValue:     value,
	}, nil
}

// parseOverflow maps a parsed variable declaration's overflow spelling
// to its OverflowMode, defaulting to wrap-around when unspecified.
func parseOverflow(spelling string) OverflowMode {
	switch spelling {
	case "saturate":
		return OverflowSaturate
	case "trap":
		return OverflowTrap
	default:
		return OverflowWrap
	}
}

// saturateBounds returns the inclusive clamp range for an overflow
// saturate variable's base type (§4.6 kind 7), false for a type with no
// fixed integer range (e.g. a float or a user-defined type).
func saturateBounds(baseType string) (min, max string, ok bool) {
	switch baseType {
	case "u8":
		return "0", "255", true
	case "u16":
		return "0", "65535", true
	case "u32":
		return "0", "4294967295", true
	case "u64":
		return "0", "18446744073709551615", true
	case "i8":
		return "-128", "127", true
	case "i16":
		return "-32768", "32767", true
	case "i32":
		return "-2147483648", "2147483647", true
	case "i64":
		return "-9223372036854775808", "9223372036854775807", true
	default:
		return "", "", false
	}
}

func bitWidthOrDefault(ti *TypeInfo, def int) int {
	if ti == nil {
		return def
	}
	if w, ok := bitWidthOf(ti.BaseType); ok {
		return w
	}
	return def
}

// findBitmapByName looks up a declared bitmap's BitmapInfo, used both
// for variable-typed bitmaps and for register members whose value type
// names a bitmap (§4.6 kind 3).
func (cg *CodeGenerator) findBitmapByName(name string) (*BitmapInfo, bool) {
	for _, sym := range cg.Symbols.Bitmaps {
		if sym.Name == name && sym.BitmapData != nil {
			return sym.BitmapData, true
		}
	}
	return nil, false
}

// findBitmapField resolves varName.fieldName to its BitmapFieldInfo
// plus the bitmap's own backing width in bits, so 64-bit-backed
// bitmaps get the `1ULL`/`(uint64_t)` RMW form instead of a 32-bit
// constant shifted past its width.
func (cg *CodeGenerator) findBitmapField(varName, fieldName string) (*BitmapFieldInfo, int, bool) {
	ti := cg.vars[varName]
	if ti == nil || ti.BitmapTypeName == "" {
		return nil, 0, false
	}
	bitmap, ok := cg.findBitmapByName(ti.BitmapTypeName)
	if !ok {
		return nil, 0, false
	}
	field, ok := bitmap.Fields.Get(fieldName)
	if !ok {
		return nil, 0, false
	}
	return field, bitmap.BackingType.Bits(), true
}

func (cg *CodeGenerator) findRegisterMember(varName, memberName string) (*RegisterMemberInfo, bool) {
	for _, sym := range cg.Symbols.Registers {
		if sym.Name == varName && sym.RegisterData != nil {
			return sym.RegisterData.Members.Get(memberName)
		}
	}
	return nil, false
}

// registerMemberWidth implements §4.6 kind 3's "width derived from its
// bitmap (when present) or full-word otherwise": a bitmap-typed member
// occupies the whole backing word (offset 0, bitmap's own width);
// otherwise the member's own C type width is the full word.
func (cg *CodeGenerator) registerMemberWidth(reg *RegisterMemberInfo) (width, backingBits int) {
	if reg.BitmapType != "" {
		if bitmap, ok := cg.findBitmapByName(reg.BitmapType); ok {
			return bitmap.BitWidth, bitmap.BackingType.Bits()
		}
	}
	width = bitWidthOrDefault(&TypeInfo{BaseType: reg.CType}, 32)
	return width, width
}

// renderAssignTargetText renders a full target chain (`arr[i].field`
// style) as plain C text for the Simple/Array-element handlers.
func (cg *CodeGenerator) renderAssignTargetText(t *AssignTarget) (string, *Diagnostic) {
	text := t.Base
	for _, op := range t.Ops {
		switch o := op.(type) {
		case MemberOp:
			text += "." + o.Name
		case SubscriptOp:
			parts := make([]string, 0, len(o.Indices))
			for _, idx := range o.Indices {
				s, d := cg.GenExpr(idx)
				if d != nil {
					return "", d
				}
				parts = append(parts, s)
			}
			joined := parts[0]
			for _, p := range parts[1:] {
				joined += ", " + p
			}
			text += "[" + joined + "]"
		}
	}
	return text, nil
}

package cnext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// §8 scenario 1: scope Math { public i32 add(i32 a, i32 b) { return a + b; } }
func TestGenFunctionSimpleScope(t *testing.T) {
	fnSym := &Symbol{
		Name:       "add",
		Kind:       KindFunctionSym,
		Scope:      "Math",
		IsExported: true,
		FunctionData: &FunctionInfo{
			ReturnType: "i32",
			Visibility: VisibilityPublic,
			Params: []*FunctionParam{
				{Name: "a", TypeName: "i32"},
				{Name: "b", TypeName: "i32"},
			},
			Body: []Stmt{
				&ReturnStmt{Value: &BinaryExpr{Op: "+", Left: &IdentExpr{Name: "a"}, Right: &IdentExpr{Name: "b"}}},
			},
		},
	}

	cg := NewCodeGenerator("math.cnx", NewTypeRegistry(), NewSymbolTable("math.cnx"))
	body, diags := cg.GenFunction(fnSym)
	require.Empty(t, diags)
	require.Equal(t, "int32_t Math_add(int32_t a, int32_t b) {\n    return a + b;\n}", body)

	proto := cg.GenPrototype(fnSym)
	require.Equal(t, "int32_t Math_add(int32_t a, int32_t b);", proto)
}

// §8 scenario 2, wired end-to-end through statement lowering:
// flags.warning <- true; with flags : Status (bitmap8, warning at offset 3).
func TestGenAssignStmtBitmapFieldEndToEnd(t *testing.T) {
	symbols := NewSymbolTable("status.cnx")
	bitmapDecl := &BitmapDecl{
		Name:          "Status",
		DeclaredWidth: 8,
		Fields: []*BitmapFieldDecl{
			{Name: "enabled"}, {Name: "running"}, {Name: "error"}, {Name: "warning"}, {Name: "reserved", HasExplicitWidth: true, ExplicitWidth: 4},
		},
	}
	bitmapSym, diags := collectBitmap(bitmapDecl, "status.cnx", "")
	require.Empty(t, diags)
	symbols.Add(bitmapSym)

	cg := NewCodeGenerator("status.cnx", NewTypeRegistry(), symbols)
	cg.vars["flags"] = &TypeInfo{BaseType: "Status", IsBitmap: true, BitmapTypeName: "Status"}
	cg.w = newOutputWriter("    ")

	stmt := &AssignStmt{
		Target: &AssignTarget{Base: "flags", Ops: []PostfixTargetOp{MemberOp{Name: "warning"}}},
		Op:     AssignSet,
		Value:  &BoolLiteralExpr{Value: true},
	}
	d := cg.GenStmt(stmt)
	require.Empty(t, d)
	require.Equal(t, "flags = (flags & ~(1U << 3)) | (1U << 3);\n", cg.w.String())
}

// A bitmap64-backed field must use the `1ULL`/`(uint64_t)` RMW form
// (§4.6 kind 2 "64-bit backing targets"), not a 32-bit constant shifted
// past its width.
func TestGenAssignStmtBitmap64FieldUsesULLConstants(t *testing.T) {
	symbols := NewSymbolTable("wide.cnx")
	bitmapDecl := &BitmapDecl{
		Name:          "WideFlags",
		DeclaredWidth: 64,
		Fields: []*BitmapFieldDecl{
			{Name: "pad", HasExplicitWidth: true, ExplicitWidth: 40},
			{Name: "enabled"},
			{Name: "rest", HasExplicitWidth: true, ExplicitWidth: 23},
		},
	}
	bitmapSym, diags := collectBitmap(bitmapDecl, "wide.cnx", "")
	require.Empty(t, diags)
	symbols.Add(bitmapSym)

	cg := NewCodeGenerator("wide.cnx", NewTypeRegistry(), symbols)
	cg.vars["flags"] = &TypeInfo{BaseType: "WideFlags", IsBitmap: true, BitmapTypeName: "WideFlags"}
	cg.w = newOutputWriter("    ")

	stmt := &AssignStmt{
		Target: &AssignTarget{Base: "flags", Ops: []PostfixTargetOp{MemberOp{Name: "enabled"}}},
		Op:     AssignSet,
		Value:  &BoolLiteralExpr{Value: true},
	}
	d := cg.GenStmt(stmt)
	require.Empty(t, d)
	require.Equal(t, "flags = (flags & ~(1ULL << 40)) | (1ULL << 40);\n", cg.w.String())
}

// §4.6 kind 3: a bitmap-typed register member's RMW width comes from
// its bitmap's own backing width, not a hardcoded 32 bits.
func TestGenAssignStmtRegisterMemberDerivesWidthFromBitmap(t *testing.T) {
	symbols := NewSymbolTable("uart.cnx")
	bitmapDecl := &BitmapDecl{
		Name:          "Ctrl8",
		DeclaredWidth: 8,
		Fields:        []*BitmapFieldDecl{{Name: "enabled"}, {Name: "reserved", HasExplicitWidth: true, ExplicitWidth: 7}},
	}
	bitmapSym, diags := collectBitmap(bitmapDecl, "uart.cnx", "")
	require.Empty(t, diags)
	symbols.Add(bitmapSym)

	regSym, diags := collectRegister(&RegisterDecl{
		Name:        "Uart0",
		BaseAddress: "0x40001000",
		Members: []*RegisterMemberDecl{
			{Name: "ctrl", Offset: "0x00", CType: "u32", Access: "rw", BitmapTypeName: "Ctrl8"},
		},
	}, "uart.cnx", "", map[string]bool{"Ctrl8": true})
	require.Empty(t, diags)
	symbols.Add(regSym)

	cg := NewCodeGenerator("uart.cnx", NewTypeRegistry(), symbols)
	cg.w = newOutputWriter("    ")

	stmt := &AssignStmt{
		Target: &AssignTarget{Base: "Uart0", Ops: []PostfixTargetOp{MemberOp{Name: "ctrl"}}},
		Op:     AssignSet,
		Value:  &IdentExpr{Name: "v"},
	}
	d := cg.GenStmt(stmt)
	require.Empty(t, d)
	require.Equal(t, "Uart0.ctrl = (Uart0.ctrl & ~(0xFF << 0)) | ((v & 0xFF) << 0);\n", cg.w.String())
}

// §4.6 kind 7: const/atomic/saturate targets must reach
// handleSpecialAssignment instead of falling through to a plain write.
func TestGenAssignStmtSpecialTargetsReachHandler(t *testing.T) {
	t.Run("const target fails", func(t *testing.T) {
		cg := NewCodeGenerator("f.cnx", NewTypeRegistry(), NewSymbolTable("f.cnx"))
		cg.vars["LIMIT"] = &TypeInfo{BaseType: "i32", IsConst: true}
		cg.w = newOutputWriter("    ")
		stmt := &AssignStmt{Target: &AssignTarget{Base: "LIMIT"}, Op: AssignSet, Value: &IntLiteralExpr{Text: "5"}}
		d := cg.GenStmt(stmt)
		require.NotEmpty(t, d)
		require.Equal(t, KindUnknownTypeReference, d[0].Kind)
	})

	t.Run("atomic target wraps helper call", func(t *testing.T) {
		cg := NewCodeGenerator("f.cnx", NewTypeRegistry(), NewSymbolTable("f.cnx"))
		cg.vars["counter"] = &TypeInfo{BaseType: "i32", IsAtomic: true}
		cg.w = newOutputWriter("    ")
		stmt := &AssignStmt{Target: &AssignTarget{Base: "counter"}, Op: AssignSet, Value: &IntLiteralExpr{Text: "5"}}
		d := cg.GenStmt(stmt)
		require.Empty(t, d)
		require.Equal(t, "atomic_store(&counter, 5);\n", cg.w.String())
		require.Contains(t, cg.Effects.Headers(), "stdatomic.h")
	})

	t.Run("saturate target clamps", func(t *testing.T) {
		cg := NewCodeGenerator("f.cnx", NewTypeRegistry(), NewSymbolTable("f.cnx"))
		cg.vars["level"] = &TypeInfo{BaseType: "u8", Overflow: OverflowSaturate}
		cg.w = newOutputWriter("    ")
		stmt := &AssignStmt{Target: &AssignTarget{Base: "level"}, Op: AssignSet, Value: &IntLiteralExpr{Text: "300"}}
		d := cg.GenStmt(stmt)
		require.Empty(t, d)
		require.Equal(t, "level = 300 < 0 ? 0 : (300 > 255 ? 255 : 300);\n", cg.w.String())
	})
}

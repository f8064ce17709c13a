package cnext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStructEnumBitmap(t *testing.T) {
	src := `
struct Point {
    i32 x;
    i32 y;
}

enum Color {
    Red,
    Green <- 5,
    Blue,
}

bitmap8 Flags {
    Enabled,
    Mode[2],
}
`
	unit, diags := Parse("t.cnx", src)
	require.Empty(t, diags)
	require.Len(t, unit.Declarations, 3)

	require.NotNil(t, unit.Declarations[0].Struct)
	st := unit.Declarations[0].Struct
	require.Equal(t, "Point", st.Name)
	require.Len(t, st.Fields, 2)
	require.Equal(t, "x", st.Fields[0].Name)
	require.Equal(t, "i32", st.Fields[0].TypeName)

	require.NotNil(t, unit.Declarations[1].Enum)
	en := unit.Declarations[1].Enum
	require.Len(t, en.Members, 3)
	require.Nil(t, en.Members[0].Explicit)
	require.NotNil(t, en.Members[1].Explicit)

	require.NotNil(t, unit.Declarations[2].Bitmap)
	bm := unit.Declarations[2].Bitmap
	require.Equal(t, 8, bm.DeclaredWidth)
	require.Len(t, bm.Fields, 2)
	require.False(t, bm.Fields[0].HasExplicitWidth)
	require.True(t, bm.Fields[1].HasExplicitWidth)
	require.Equal(t, 2, bm.Fields[1].ExplicitWidth)
}

func TestParseFunctionWithAssignmentOperators(t *testing.T) {
	src := `
i32 add(i32 a, i32 b) {
    i32 total <- 0;
    total +<- a;
    total +<- b;
    return total;
}
`
	unit, diags := Parse("t.cnx", src)
	require.Empty(t, diags)
	require.Len(t, unit.Declarations, 1)

	fn := unit.Declarations[0].Function
	require.NotNil(t, fn)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	require.Len(t, fn.Body, 4)

	localDecl, ok := fn.Body[0].(*LocalVarDeclStmt)
	require.True(t, ok)
	require.Equal(t, "total", localDecl.Decl.Name)

	assign1, ok := fn.Body[1].(*AssignStmt)
	require.True(t, ok)
	require.Equal(t, AssignAdd, assign1.Op)
	require.Equal(t, "total", assign1.Target.Base)

	ret, ok := fn.Body[3].(*ReturnStmt)
	require.True(t, ok)
	require.NotNil(t, ret.Value)
}

func TestParseIfWhileForAndSubscriptTarget(t *testing.T) {
	src := `
void run() {
    if (x > 0) {
        y <- 1;
    } else if (x < 0) {
        y <- -1;
    } else {
        y <- 0;
    }

    while (x > 0) {
        x -<- 1;
    }

    for (i32 i <- 0; i < 10; i +<- 1) {
        buf[i] <- 0;
    }
}
`
	unit, diags := Parse("t.cnx", src)
	require.Empty(t, diags)
	fn := unit.Declarations[0].Function
	require.Len(t, fn.Body, 3)

	ifStmt, ok := fn.Body[0].(*IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Else)
	elseIf, ok := ifStmt.Else.(*IfStmt)
	require.True(t, ok)
	require.NotNil(t, elseIf.Else)

	whileStmt, ok := fn.Body[1].(*WhileStmt)
	require.True(t, ok)
	require.Len(t, whileStmt.Body.Stmts, 1)

	forStmt, ok := fn.Body[2].(*ForStmt)
	require.True(t, ok)
	require.NotNil(t, forStmt.Init)
	require.NotNil(t, forStmt.Cond)
	require.NotNil(t, forStmt.Post)

	assign, ok := forStmt.Body.Stmts[0].(*AssignStmt)
	require.True(t, ok)
	require.Equal(t, "buf", assign.Target.Base)
	require.Len(t, assign.Target.Ops, 1)
	_, isSubscript := assign.Target.Ops[0].(SubscriptOp)
	require.True(t, isSubscript)
}

func TestParseArrayInitFillAll(t *testing.T) {
	src := `u8 buf[4] <- [0*];`
	unit, diags := Parse("t.cnx", src)
	require.Empty(t, diags)
	v := unit.Declarations[0].Variable
	require.NotNil(t, v)
	lit, ok := v.Initializer.(*ArrayInitExpr)
	require.True(t, ok)
	require.True(t, lit.FillAll)
	require.Len(t, lit.Elements, 1)
}

func TestParseRegisterDecl(t *testing.T) {
	src := `
register Uart0 @ 0x40001000 {
    u32 ctrl @ 0x00 : Flags rw;
    u32 status @ 0x04 ro;
}
`
	unit, diags := Parse("t.cnx", src)
	require.Empty(t, diags)
	reg := unit.Declarations[0].Register
	require.NotNil(t, reg)
	require.Equal(t, "Uart0", reg.Name)
	require.Len(t, reg.Members, 2)
	require.Equal(t, "Flags", reg.Members[0].BitmapTypeName)
	require.Equal(t, "rw", reg.Members[0].Access)
	require.Equal(t, "ro", reg.Members[1].Access)
}

func TestParseScopeWithVisibility(t *testing.T) {
	src := `
scope Sensors {
    private i32 calibration;
    public i32 read() {
        return calibration;
    }
}
`
	unit, diags := Parse("t.cnx", src)
	require.Empty(t, diags)
	scope := unit.Declarations[0].Scope
	require.NotNil(t, scope)
	require.Equal(t, "Sensors", scope.Name)
	require.Len(t, scope.Members, 2)
	require.Equal(t, "private", scope.Members[0].Visibility)
	require.NotNil(t, scope.Members[0].Variable)
	require.Equal(t, "public", scope.Members[1].Visibility)
	require.NotNil(t, scope.Members[1].Function)
}

func TestParseIncludeDirectivesCollected(t *testing.T) {
	src := "#include \"common.cnx\"\n#include <stdint.h>\n\ni32 x;\n"
	unit, diags := Parse("t.cnx", src)
	require.Empty(t, diags)
	require.Len(t, unit.Includes, 2)
	require.Equal(t, "common.cnx", unit.Includes[0].Path)
	require.False(t, unit.Includes[0].Angled)
	require.Equal(t, "stdint.h", unit.Includes[1].Path)
	require.True(t, unit.Includes[1].Angled)
}

package cnext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderGuardNameFromBaseName(t *testing.T) {
	require.Equal(t, "STATUS_H", headerGuardName("status"))
	require.Equal(t, "MY_DRIVER_H", headerGuardName("my-driver"))
}

func TestHeaderGeneratorEmitsStructEnumBitmapAndPrototype(t *testing.T) {
	symbols := NewSymbolTable("status.cnx")

	structInfo := newStructInfo()
	structInfo.Fields.Set("count", &StructFieldInfo{TypeName: "i32"})
	symbols.Add(&Symbol{Name: "Counter", Kind: KindStructSym, StructData: structInfo})

	enumInfo := newEnumInfo()
	enumInfo.Members.Set("Idle", 0)
	enumInfo.Members.Set("Running", 1)
	symbols.Add(&Symbol{Name: "State", Kind: KindEnumSym, EnumData: enumInfo})

	bitmapDecl := &BitmapDecl{
		Name:          "Status",
		DeclaredWidth: 8,
		Fields:        []*BitmapFieldDecl{{Name: "enabled"}, {Name: "warning"}, {Name: "reserved", HasExplicitWidth: true, ExplicitWidth: 6}},
	}
	bitmapSym, diags := collectBitmap(bitmapDecl, "status.cnx", "")
	require.Empty(t, diags)
	symbols.Add(bitmapSym)

	symbols.Add(&Symbol{
		Name: "reset",
		Kind: KindFunctionSym,
		FunctionData: &FunctionInfo{
			ReturnType: "void",
			Visibility: VisibilityPublic,
		},
	})

	h := NewHeaderGenerator("status", symbols, nil)
	out := h.Generate()

	require.Contains(t, out, "#ifndef STATUS_H")
	require.Contains(t, out, "typedef struct Counter {")
	require.Contains(t, out, "int32_t count;")
	require.Contains(t, out, "typedef enum State {")
	require.Contains(t, out, "State_Idle = 0,")
	require.Contains(t, out, "State_Running = 1,")
	require.Contains(t, out, "typedef uint8_t Status;")
	require.Contains(t, out, "#define Status_enabled_OFFSET 0")
	require.Contains(t, out, "#define Status_warning_OFFSET 1")
	require.Contains(t, out, "void reset(void);")
	require.Contains(t, out, "#endif /* STATUS_H */")
}

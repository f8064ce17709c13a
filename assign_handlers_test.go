package cnext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// §8 scenario 2: flags.warning <- true; with offset 3, backing u8.
func TestHandleBitmapFieldAssignmentBoolLiteralSingleBit(t *testing.T) {
	ctx := &AssignmentContext{
		TargetResolvedKind: ResolvedBitmapField,
		BitmapExpr:         "flags",
		FieldOffset:        3,
		FieldWidth:         1,
		BackingBits:        8,
		ValueIsBoolLiteral: true,
		BoolLiteralValue:   true,
	}
	text, effects, diag := GenerateAssignment(ctx, "f.cnx", Location{})
	require.Nil(t, diag)
	require.Empty(t, effects)
	require.Equal(t, "flags = (flags & ~(1U << 3)) | (1U << 3);", text)
}

func TestHandleBitmapFieldAssignmentMultiBitFromExpression(t *testing.T) {
	ctx := &AssignmentContext{
		TargetResolvedKind: ResolvedBitmapField,
		BitmapExpr:         "flags",
		FieldOffset:        4,
		FieldWidth:         4,
		BackingBits:        8,
		GeneratedValue:     "level",
	}
	text, _, diag := GenerateAssignment(ctx, "f.cnx", Location{})
	require.Nil(t, diag)
	require.Equal(t, "flags = (flags & ~(0xF << 4)) | ((level & 0xF) << 4);", text)
}

// §9 Open Question #1: PlainBitConstants drops the MISRA-10.1 suffix.
func TestHandleBitmapFieldAssignmentPlainConstantsToggle(t *testing.T) {
	ctx := &AssignmentContext{
		TargetResolvedKind: ResolvedBitmapField,
		BitmapExpr:         "flags",
		FieldOffset:        3,
		FieldWidth:         1,
		BackingBits:        8,
		ValueIsBoolLiteral: true,
		BoolLiteralValue:   true,
		PlainBitConstants:  true,
	}
	text, _, diag := GenerateAssignment(ctx, "f.cnx", Location{})
	require.Nil(t, diag)
	require.Equal(t, "flags = (flags & ~(1 << 3)) | (1 << 3);", text)
}

// §8 scenario 3: string<16> name; name <- "hi";
func TestHandleStringAssignmentLiteral(t *testing.T) {
	ctx := &AssignmentContext{
		TargetResolvedKind:   ResolvedString,
		StringTarget:         "name",
		StringCapacity:       16,
		ValueIsStringLiteral: true,
		ValueLiteralText:     "hi",
	}
	text, effects, diag := GenerateAssignment(ctx, "f.cnx", Location{})
	require.Nil(t, diag)
	require.Equal(t, `strncpy(name, "hi", 16); name[16] = '\0';`, text)
	require.Len(t, effects, 1)
	require.Equal(t, "string.h", effects[0].Value)
}

func TestHandleRegisterMemberReadOnlyFails(t *testing.T) {
	ctx := &AssignmentContext{
		TargetResolvedKind: ResolvedRegisterMember,
		TargetCtx:          "CTRL.status",
		RegisterAccess:     AccessRO,
	}
	_, _, diag := GenerateAssignment(ctx, "f.cnx", Location{})
	require.NotNil(t, diag)
	require.Equal(t, KindRegisterReadOnly, diag.Kind)
}

func TestHandleRegisterMemberWriteOnly(t *testing.T) {
	ctx := &AssignmentContext{
		TargetResolvedKind: ResolvedRegisterMember,
		RegisterExpr:       "CTRL",
		RegisterAccess:     AccessWO,
		FieldOffset:        2,
		FieldWidth:         3,
		GeneratedValue:     "v",
	}
	text, _, diag := GenerateAssignment(ctx, "f.cnx", Location{})
	require.Nil(t, diag)
	require.Equal(t, "CTRL = (v & 0x7) << 2;", text)
}

func TestHandleSimpleAssignment(t *testing.T) {
	ctx := &AssignmentContext{
		TargetResolvedKind: ResolvedPlain,
		TargetCtx:          "total",
		COp:                "+=",
		GeneratedValue:     "5",
	}
	text, _, diag := GenerateAssignment(ctx, "f.cnx", Location{})
	require.Nil(t, diag)
	require.Equal(t, "total += 5;", text)
}

func TestHandleSpecialConstFails(t *testing.T) {
	ctx := &AssignmentContext{
		TargetResolvedKind: ResolvedConst,
		TargetCtx:          "LIMIT",
		IsConst:            true,
	}
	_, _, diag := GenerateAssignment(ctx, "f.cnx", Location{})
	require.NotNil(t, diag)
}

func TestHandleSpecialAtomicWrapsHelperCall(t *testing.T) {
	ctx := &AssignmentContext{
		TargetResolvedKind: ResolvedAtomic,
		TargetCtx:          "counter",
		IsAtomic:           true,
		AtomicHelper:       "atomic_store",
		GeneratedValue:     "5",
	}
	text, _, diag := GenerateAssignment(ctx, "f.cnx", Location{})
	require.Nil(t, diag)
	require.Equal(t, "atomic_store(&counter, 5);", text)
}

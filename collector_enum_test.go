package cnext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectEnumAutoIncrement(t *testing.T) {
	decl := &EnumDecl{
		Name: "Mode",
		Members: []*EnumMemberDecl{
			{Name: "AUTO"},
			{Name: "MANUAL"},
		},
	}
	sym, diags := collectEnum(decl, "mode.cnx", "")
	require.Empty(t, diags)
	require.Equal(t, KindEnumSym, sym.Kind)

	v, ok := sym.EnumData.Members.Get("AUTO")
	require.True(t, ok)
	require.Equal(t, int64(0), v)

	v, ok = sym.EnumData.Members.Get("MANUAL")
	require.True(t, ok)
	require.Equal(t, int64(1), v)
}

func TestCollectEnumExplicitAssignmentContinuesFromThere(t *testing.T) {
	decl := &EnumDecl{
		Name: "Status",
		Members: []*EnumMemberDecl{
			{Name: "IDLE"},
			{Name: "RUNNING", Explicit: &IntLiteralExpr{Text: "10"}},
			{Name: "DONE"},
		},
	}
	sym, diags := collectEnum(decl, "status.cnx", "")
	require.Empty(t, diags)

	idle, _ := sym.EnumData.Members.Get("IDLE")
	running, _ := sym.EnumData.Members.Get("RUNNING")
	done, _ := sym.EnumData.Members.Get("DONE")
	require.Equal(t, int64(0), idle)
	require.Equal(t, int64(10), running)
	require.Equal(t, int64(11), done)
}

func TestCollectEnumNegativeFails(t *testing.T) {
	decl := &EnumDecl{
		Name: "Bad",
		Members: []*EnumMemberDecl{
			{Name: "NEG", Explicit: &UnaryExpr{Op: "-", Operand: &IntLiteralExpr{Text: "1"}}},
		},
	}
	_, diags := collectEnum(decl, "bad.cnx", "")
	require.Len(t, diags, 1)
	require.Equal(t, KindEnumNegative, diags[0].Kind)
}

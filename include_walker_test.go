package cnext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalkIncludesMergesTransitiveEnumsAndHeaders(t *testing.T) {
	shared := &CompilationUnit{
		Path: "/proj/src/shared.cnx",
		Declarations: []*Declaration{
			{Enum: &EnumDecl{Name: "Mode", Members: []*EnumMemberDecl{{Name: "AUTO"}, {Name: "MANUAL"}}}},
		},
	}
	entry := &CompilationUnit{
		Path: "/proj/src/main.cnx",
		Includes: []*IncludeDirective{
			{Path: "shared.cnx", Angled: false},
			{Path: "stdint.h", Angled: true},
		},
		Declarations: []*Declaration{
			{Variable: &VariableDecl{Name: "x", TypeName: "u8"}},
		},
	}
	entry.Includes[0].Path = "shared.cnx"

	fs := fakeFS{files: map[string]bool{"/proj/src/shared.cnx": true}}
	resolver := &IncludeResolver{fs: fs}

	parse := func(path string) (*CompilationUnit, error) {
		require.Equal(t, "/proj/src/shared.cnx", path)
		return shared, nil
	}

	graph, aggregate, diags := WalkIncludes(entry, resolver, parse)
	require.Empty(t, diags)
	require.Len(t, graph.Nodes, 2)
	require.True(t, aggregate.KnownEnums["Mode"])
	require.Equal(t, []string{"stdint.h"}, graph.HeaderEffects.Headers())
}

func TestWalkIncludesWarnsOnUnresolvedInclude(t *testing.T) {
	entry := &CompilationUnit{
		Path: "/proj/src/main.cnx",
		Includes: []*IncludeDirective{
			{Path: "missing.cnx", Angled: false},
		},
		Declarations: []*Declaration{},
	}
	fs := fakeFS{files: map[string]bool{}}
	resolver := &IncludeResolver{fs: fs}
	parse := func(path string) (*CompilationUnit, error) { t.Fatal("should not be called"); return nil, nil }

	_, _, diags := WalkIncludes(entry, resolver, parse)
	require.Len(t, diags, 1)
	require.Equal(t, KindIncludeNotFound, diags[0].Kind)
	require.Equal(t, SeverityWarning, diags[0].Severity)
}

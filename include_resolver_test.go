package cnext

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeFileInfo struct {
	name  string
	isDir bool
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() os.FileMode  { return 0 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return f.isDir }
func (f fakeFileInfo) Sys() interface{}   { return nil }

type fakeFS struct {
	files map[string]bool
	dirs  map[string]bool
}

func (f fakeFS) Stat(path string) (os.FileInfo, error) {
	if f.dirs[path] {
		return fakeFileInfo{name: path, isDir: true}, nil
	}
	if f.files[path] {
		return fakeFileInfo{name: path, isDir: false}, nil
	}
	return nil, os.ErrNotExist
}

func TestExtractIncludesClassifiesByExtension(t *testing.T) {
	src := "#include \"board.cnx\"\n#include <stdint.h>\nscope Foo {}\n"
	incs := extractIncludes(src)
	require.Len(t, incs, 2)
	require.Equal(t, IncludeInputLang, incs[0].Kind)
	require.Equal(t, "board.cnx", incs[0].Directive.Path)
	require.False(t, incs[0].Directive.Angled)
	require.Equal(t, IncludeCHeader, incs[1].Kind)
	require.Equal(t, "stdint.h", incs[1].Directive.Path)
	require.True(t, incs[1].Directive.Angled)
}

func TestResolveFindsFileInIncludingDirFirst(t *testing.T) {
	fs := fakeFS{files: map[string]bool{"/proj/src/board.cnx": true}, dirs: map[string]bool{}}
	r := &IncludeResolver{fs: fs}
	resolved, ok := r.Resolve("board.cnx", "/proj/src")
	require.True(t, ok)
	require.Equal(t, "/proj/src/board.cnx", resolved)
}

func TestResolveFallsBackToExtraSearchPath(t *testing.T) {
	fs := fakeFS{files: map[string]bool{"/opt/include/board.cnx": true}}
	r := &IncludeResolver{ExtraSearchPaths: []string{"/opt/include"}, fs: fs}
	resolved, ok := r.Resolve("board.cnx", "/proj/src")
	require.True(t, ok)
	require.Equal(t, "/opt/include/board.cnx", resolved)
}

func TestResolveUsesProjectRootIncludeDir(t *testing.T) {
	fs := fakeFS{
		files: map[string]bool{"/proj/cnext.config.json": true, "/proj/include/board.cnx": true},
		dirs:  map[string]bool{"/proj/include": true},
	}
	r := &IncludeResolver{fs: fs}
	resolved, ok := r.Resolve("board.cnx", "/proj/src")
	require.True(t, ok)
	require.Equal(t, "/proj/include/board.cnx", resolved)
}

func TestResolveNotFoundReturnsFalse(t *testing.T) {
	fs := fakeFS{files: map[string]bool{}}
	r := &IncludeResolver{fs: fs}
	_, ok := r.Resolve("missing.cnx", "/proj/src")
	require.False(t, ok)
}

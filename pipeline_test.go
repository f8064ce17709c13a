package cnext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPipelineTranspileFileEndToEnd(t *testing.T) {
	dir := t.TempDir()
	src := `
struct Reading {
    i32 value;
}

enum Status {
    Ok,
    Error,
}

i32 clampPositive(i32 x) {
    if (x < 0) {
        return 0;
    }
    return x;
}
`
	path := writeTempSource(t, dir, "sensor.cnx", src)

	p := NewPipeline(DefaultConfig())
	result, err := p.TranspileFile(path)
	require.NoError(t, err)
	require.Empty(t, result.Diagnostics)

	require.Contains(t, result.Output.HeaderText, "typedef struct Reading {")
	require.Contains(t, result.Output.HeaderText, "typedef enum Status {")
	require.Contains(t, result.Output.HeaderText, "Status_Ok = 0,")
	require.Contains(t, result.Output.SourceText, "clampPositive(int32_t x)")
	require.Contains(t, result.Output.SourceText, "#include \"sensor.h\"")
}

func TestPipelineCacheHitSkipsRecompute(t *testing.T) {
	dir := t.TempDir()
	path := writeTempSource(t, dir, "counter.cnx", "i32 total;\n")

	p := NewPipeline(DefaultConfig())
	first, err := p.TranspileFile(path)
	require.NoError(t, err)

	second, ok := p.Cache.Lookup(path)
	require.True(t, ok)
	require.Equal(t, first.Output, second)
}

func TestPipelineBatchCollectsFatalDiagnosticsWithoutAbortingOthers(t *testing.T) {
	dir := t.TempDir()
	good := writeTempSource(t, dir, "good.cnx", "i32 total;\n")
	bad := writeTempSource(t, dir, "bad.cnx", "bitmap8 Bad { a, b, c, d, e, f, g, h, i }\n")

	p := NewPipeline(DefaultConfig())
	results, err := p.TranspileBatch([]string{good, bad})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Empty(t, results[0].Diagnostics)
	require.NotEmpty(t, results[1].Diagnostics)
}

func TestDiscoverSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeTempSource(t, dir, "a.cnx", "i32 a;\n")
	writeTempSource(t, dir, "b.txt", "not cnext\n")
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeTempSource(t, sub, "c.cnx", "i32 c;\n")

	files, err := DiscoverSourceFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
}

package cnext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PipelineResult is one file's outcome from the end-to-end transpile
// pipeline (§2): the composed header/source pair plus every diagnostic
// raised along the way, fatal or not.
type PipelineResult struct {
	Path        string
	Output      ComposedOutput
	Diagnostics []Diagnostic
}

// Pipeline ties together every stage of §2 (lex -> parse -> collect ->
// walk includes -> register types -> generate code -> generate header
// -> compose output) behind the incremental cache from §6, so
// TranspileFile and TranspileBatch are the only two entry points a
// caller (CLI, LSP, build-system plugin) needs.
type Pipeline struct {
	Config   *TranspilerConfig
	Resolver *IncludeResolver
	Cache    *FileCache
	DB       *Database
}

func NewPipeline(config *TranspilerConfig) *Pipeline {
	if config == nil {
		config = DefaultConfig()
	}
	return &Pipeline{
		Config:   config,
		Resolver: NewIncludeResolver(config.IncludePaths),
		Cache:    NewFileCache(),
		DB:       NewDatabase(config),
	}
}

// TranspileFile runs the full pipeline for one `.cnx` file, returning a
// cached result untouched if the file's mtime hasn't changed since the
// last run (§6). A *TranspileError return still carries a non-nil
// result so batch callers can record per-file diagnostics and continue.
func (p *Pipeline) TranspileFile(absPath string) (*PipelineResult, error) {
	if cached, ok := p.Cache.Lookup(absPath); ok {
		return &PipelineResult{Path: absPath, Output: cached}, nil
	}

	source, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", absPath, err)
	}

	var diags []Diagnostic

	entry, parseDiags := Parse(absPath, string(source))
	diags = append(diags, parseDiags...)

	parseFn := func(path string) (*CompilationUnit, error) {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		unit, unitDiags := Parse(path, string(src))
		diags = append(diags, unitDiags...)
		return unit, nil
	}

	graph, aggregate, walkDiags := WalkIncludes(entry, p.Resolver, parseFn)
	diags = append(diags, walkDiags...)

	entryNode, ok := graph.Nodes[entry.Path]
	if !ok {
		return nil, fmt.Errorf("internal error: %s missing from its own include graph", entry.Path)
	}
	entryTable := entryNode.Table

	result := &PipelineResult{Path: absPath}
	if hasFatalDiagnostic(diags) {
		result.Diagnostics = diags
		return result, NewTranspileError(diags)
	}

	types := buildTypeRegistry(entryTable)
	cg := NewCodeGenerator(absPath, types, aggregate)
	cg.PlainBitConstants = !p.Config.UnsignedBitConstants
	for _, sym := range entryTable.Variables {
		if ti := variableTypeInfo(sym, aggregate); ti != nil {
			cg.bindParam(sym.Name, ti)
		}
	}

	functionBodies := make([]string, 0, len(entryTable.Functions))
	for _, sym := range entryTable.Functions {
		body, fnDiags := cg.GenFunction(sym)
		diags = append(diags, fnDiags...)
		functionBodies = append(functionBodies, body)
	}

	if hasFatalDiagnostic(diags) {
		result.Diagnostics = diags
		return result, NewTranspileError(diags)
	}

	baseName := baseNameNoExt(absPath)
	header := NewHeaderGenerator(baseName, entryTable, map[string]bool{}).Generate()
	output := ComposeOutput(baseName, header, functionBodies, cg.Effects)

	dir := filepath.Dir(absPath)
	if p.Config.OutputDir != "" {
		dir = p.Config.OutputDir
	}
	output.HeaderPath = filepath.Join(dir, filepath.Base(output.HeaderPath))
	output.SourcePath = filepath.Join(dir, filepath.Base(output.SourcePath))

	_ = p.Cache.Store(absPath, output)

	result.Output = output
	result.Diagnostics = diags
	return result, nil
}

// TranspileBatch runs TranspileFile over every path, collecting results
// even when individual files fail with a non-fatal-to-the-batch
// *TranspileError so one broken file doesn't abort the rest (§2, §7).
func (p *Pipeline) TranspileBatch(paths []string) ([]*PipelineResult, error) {
	results := make([]*PipelineResult, 0, len(paths))
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return results, fmt.Errorf("resolving %s: %w", path, err)
		}
		res, err := p.TranspileFile(abs)
		if err != nil {
			if _, ok := err.(*TranspileError); ok {
				results = append(results, res)
				continue
			}
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// WriteOutputs persists every successful result's header/source pair to
// disk atomically (§2 step 9), skipping results that never reached
// code-gen (fatal diagnostics, i.e. empty Output).
func (p *Pipeline) WriteOutputs(results []*PipelineResult) error {
	for _, r := range results {
		if r == nil || r.Output.HeaderPath == "" {
			continue
		}
		if err := r.Output.Write(0o644); err != nil {
			return fmt.Errorf("writing outputs for %s: %w", r.Path, err)
		}
	}
	return nil
}

// DiscoverSourceFiles walks root collecting every `.cnx` file, the
// input batch/watch mode operates over when the caller passes a
// directory instead of an explicit file list.
func DiscoverSourceFiles(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".cnx" {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func hasFatalDiagnostic(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func baseNameNoExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// buildTypeRegistry registers every global variable this file declares
// by its qualified name (§4.3); local/parameter bindings inside a
// function body are tracked separately by the code generator itself.
func buildTypeRegistry(symbols *SymbolTable) *TypeRegistry {
	reg := NewTypeRegistry()
	for _, sym := range symbols.Variables {
		if ti := variableTypeInfo(sym, symbols); ti != nil {
			reg.Set(sym.QualifiedName(), ti)
		}
	}
	return reg
}

// variableTypeInfo classifies a collected variable declaration into the
// TypeRegistry/local-binding shape the code generator consumes,
// resolving enum/bitmap base types against the known-type indexes
// built up by CollectFile/WalkIncludes (§3.2, §4.3).
func variableTypeInfo(sym *Symbol, symbols *SymbolTable) *TypeInfo {
	v := sym.VariableData
	if v == nil {
		return nil
	}
	if symbols.KnownEnums[v.TypeName] {
		return &TypeInfo{BaseType: v.TypeName, BitWidth: 32, IsEnum: true, EnumTypeName: v.TypeName}
	}
	if width, ok := symbols.BitmapBitWidth[v.TypeName]; ok {
		info := &TypeInfo{BaseType: v.TypeName, BitWidth: width, IsBitmap: true, BitmapTypeName: v.TypeName}
		if len(v.ArrayDimensions) > 0 {
			info.IsArray = true
			info.ArrayDimensions = v.ArrayDimensions
		}
		return info
	}
	width, _ := bitWidthOf(v.TypeName)
	return &TypeInfo{
		BaseType:        v.TypeName,
		BitWidth:        width,
		IsArray:         len(v.ArrayDimensions) > 0,
		ArrayDimensions: v.ArrayDimensions,
		IsConst:         v.IsConst,
		Overflow:        v.Overflow,
		IsAtomic:        v.Atomic,
	}
}

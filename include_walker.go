package cnext

import "path/filepath"

// FileParser parses the `.cnx` file at absPath into a CompilationUnit.
// The walker is parser-agnostic so it can be exercised with a stub in
// tests without a real lexer/parser front end.
type FileParser func(absPath string) (*CompilationUnit, error)

// WalkIncludes computes the transitive include graph reachable from
// entry (§2 step 2, §3.3, §4.2): it recurses into every `.cnx` include,
// collects a SymbolTable per file, and merges all of them into one
// aggregate table so later pipeline stages can resolve a type declared
// in any transitively included file. C/C++ header includes are not
// parsed; they are recorded as IncludeHeader effects in
// graph.HeaderEffects (§3.4, §4.9), which the header generator does
// not read.
//
// Grounded on query_errors.go's discoverImportedFiles (DFS + visited
// set over an import graph) and grammar_import.go's dependency walk.
func WalkIncludes(entry *CompilationUnit, resolver *IncludeResolver, parse FileParser) (*IncludeGraph, *SymbolTable, []Diagnostic) {
	graph := newIncludeGraph()
	aggregate := NewSymbolTable(entry.Path)
	visiting := map[string]bool{}
	var diags []Diagnostic

	var walk func(unit *CompilationUnit)
	walk = func(unit *CompilationUnit) {
		path := unit.Path
		if visiting[path] {
			return
		}
		visiting[path] = true

		table, fileDiags := CollectFile(unit)
		diags = append(diags, fileDiags...)
		aggregate.Merge(table)
		graph.add(&IncludeNode{Path: path, Unit: unit, Table: table})

		dir := filepath.Dir(path)
		for _, inc := range extractIncludes(sourceOf(unit)) {
			switch inc.Kind {
			case IncludeCHeader:
				graph.HeaderEffects.Add(Effect{Kind: EffectIncludeHeader, Value: inc.Directive.Path})

			case IncludeInputLang:
				resolved, ok := resolver.Resolve(inc.Directive.Path, dir)
				if !ok {
					diags = append(diags, warnIncludeNotFound(inc.Directive.Path, path, inc.Directive.Span.Start))
					continue
				}
				if visiting[resolved] {
					continue
				}
				childUnit, err := parse(resolved)
				if err != nil {
					diags = append(diags, warnIncludeNotFound(inc.Directive.Path, path, inc.Directive.Span.Start))
					continue
				}
				walk(childUnit)
			}
		}
	}

	walk(entry)
	return graph, aggregate, diags
}

// sourceOf reconstructs the raw include lines belonging to a
// CompilationUnit so extractIncludes can re-scan them. The parser
// retains the original include directives verbatim on the unit so no
// second read of the file is required.
func sourceOf(unit *CompilationUnit) string {
	var out []byte
	for _, inc := range unit.Includes {
		prefix, suffix := `#include "`, `"`
		if inc.Angled {
			prefix, suffix = "#include <", ">"
		}
		out = append(out, []byte(prefix+inc.Path+suffix+"\n")...)
	}
	return string(out)
}

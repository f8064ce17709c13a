package cnext

import (
	"os"
	"path/filepath"
	"regexp"
)

// includeDirectiveRe matches both quoted and angle-bracketed include
// directives (§4.2, §6): `#include "name"` or `#include <name>`.
var includeDirectiveRe = regexp.MustCompile(`^\s*#\s*include\s*[<"]([^>"]+)[>"]`)

// projectRootMarkers is the priority-ordered list of files that mark a
// project root during upward directory discovery (§6).
var projectRootMarkers = []string{
	"platformio.ini",
	"cnext.config.json",
	".cnext.json",
	".cnextrc",
	".git",
}

// IncludeKind distinguishes the two edge kinds in the include graph
// (§3.3): a `.cnx` input-language include vs a C/C++ header include.
type IncludeKind int

const (
	IncludeInputLang IncludeKind = iota
	IncludeCHeader
)

// ExtractedInclude is one `#include` line found in a source file,
// classified by extension.
type ExtractedInclude struct {
	Directive *IncludeDirective
	Kind      IncludeKind
}

// extractIncludes scans source text line by line for include
// directives and classifies each by its file extension: `.cnx` is an
// input-language include, anything else is a C/C++ header include
// (§2 step 2, §4.2).
func extractIncludes(source string) []*ExtractedInclude {
	var out []*ExtractedInclude
	line := 1
	start := 0
	for i := 0; i <= len(source); i++ {
		if i == len(source) || source[i] == '\n' {
			text := source[start:i]
			if m := includeDirectiveRe.FindStringSubmatch(text); m != nil {
				path := m[1]
				angled := false
				if idx := indexOfAngle(text); idx {
					angled = true
				}
				directive := &IncludeDirective{
					Path:   path,
					Angled: angled,
					Span:   Span{Start: Location{Line: line, Column: 1}, End: Location{Line: line, Column: len(text) + 1}},
				}
				kind := IncludeCHeader
				if filepath.Ext(path) == ".cnx" {
					kind = IncludeInputLang
				}
				out = append(out, &ExtractedInclude{Directive: directive, Kind: kind})
			}
			line++
			start = i + 1
		}
	}
	return out
}

func indexOfAngle(text string) bool {
	for _, r := range text {
		switch r {
		case '<':
			return true
		case '"':
			return false
		}
	}
	return false
}

// IncludeResolver resolves an include path to an absolute file path
// using the §4.2 three-tier priority search order: (1) the including
// file's directory, (2) explicit `-I` search paths, (3) auto-discovered
// project roots (walking up for a marker, then trying its
// include/src/lib subdirectories).
//
// Grounded on grammar_import_loaders.go's RelativeImportLoader /
// getRelativePath pair, generalized from a single relative-to-parent
// rule to the full three-tier search.
type IncludeResolver struct {
	ExtraSearchPaths []string
	fs               fileSystem
}

// fileSystem is the minimal filesystem surface the resolver needs,
// abstracted so tests can substitute an in-memory implementation
// without touching disk (§5: "file handles are released before the
// call returns" — the real implementation below wraps os directly).
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
}

type osFileSystem struct{}

func (osFileSystem) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }

func NewIncludeResolver(extraSearchPaths []string) *IncludeResolver {
	return &IncludeResolver{ExtraSearchPaths: extraSearchPaths, fs: osFileSystem{}}
}

// Resolve returns the absolute path for includePath as seen from a
// file located at includingFileDir, or ("", false) if it can't be
// found anywhere in the search order (callers downgrade this to an
// IncludeNotFound warning per §7).
func (r *IncludeResolver) Resolve(includePath, includingFileDir string) (string, bool) {
	candidates := r.searchPaths(includingFileDir)
	for _, dir := range candidates {
		candidate := filepath.Join(dir, includePath)
		if r.exists(candidate) {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return candidate, true
			}
			return abs, true
		}
	}
	return "", false
}

func (r *IncludeResolver) exists(path string) bool {
	_, err := r.fs.Stat(path)
	return err == nil
}

// searchPaths builds the full, priority-ordered candidate directory
// list for one including file.
func (r *IncludeResolver) searchPaths(includingFileDir string) []string {
	paths := []string{includingFileDir}
	paths = append(paths, r.ExtraSearchPaths...)

	root, ok := r.findProjectRoot(includingFileDir)
	if ok {
		for _, sub := range []string{"include", "src", "lib"} {
			dir := filepath.Join(root, sub)
			if r.isDir(dir) {
				paths = append(paths, dir)
			}
		}
	}
	return paths
}

func (r *IncludeResolver) isDir(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && info.IsDir()
}

// findProjectRoot walks the directory tree upward from dir, returning
// the first ancestor (including dir itself) containing any of the
// project-root markers, tried in priority order (§6).
func (r *IncludeResolver) findProjectRoot(dir string) (string, bool) {
	current := dir
	for {
		for _, marker := range projectRootMarkers {
			if r.exists(filepath.Join(current, marker)) {
				return current, true
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

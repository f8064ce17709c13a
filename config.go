package cnext

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// TranspilerConfig holds the project-wide settings that control include
// search paths, cache location and output layout. Grounded on the
// teacher's typed Config map (same "every setting has one home, fails
// loudly if missing" spirit), generalized to load from a project's
// `.cnextrc` (TOML) or `cnext.config.json` (JSON) file.
type TranspilerConfig struct {
	// IncludePaths are extra directories searched for #include targets
	// after the including file's own directory (§4.2 tier 2).
	IncludePaths []string `toml:"include_paths" json:"include_paths"`

	// OutputDir, if set, redirects generated .h/.c pairs away from the
	// source tree. Empty means "next to the source file" (§2 step 9).
	OutputDir string `toml:"output_dir" json:"output_dir"`

	// CacheDir names a directory for an on-disk cache. Defaults to
	// ".cnext-cache" under the project root. Nothing reads it: the
	// pipeline's FileCache is held in memory only.
	CacheDir string `toml:"cache_dir" json:"cache_dir"`

	// IndentSpace is a whitespace unit for generated C source,
	// mirroring the teacher's per-target indent knob. Defaults to four
	// spaces. Nothing reads it: the code and header generators always
	// indent with four spaces.
	IndentSpace string `toml:"indent" json:"indent"`

	// UnsignedBitConstants selects the MISRA-10.1 `1U <<`/`1ULL <<`
	// spelling for bitmap/register RMW constants over the bare
	// `1 <<`/`1LL <<` form. Defaults to true (canonical).
	UnsignedBitConstants bool `toml:"unsigned_bit_constants" json:"unsigned_bit_constants"`
}

// DefaultConfig returns the configuration used when no project file is
// found, with every default primed up front.
func DefaultConfig() *TranspilerConfig {
	return &TranspilerConfig{
		CacheDir:             ".cnext-cache",
		IndentSpace:          "    ",
		UnsignedBitConstants: true,
	}
}

// LoadConfig reads a project's `.cnextrc` or `cnext.config.json`,
// searching upward from startDir for whichever marker file
// projectRootMarkers finds first (§6). It returns DefaultConfig when
// neither file exists anywhere above startDir.
func LoadConfig(startDir string) (*TranspilerConfig, string, error) {
	root, ok := findProjectRoot(startDir)
	if !ok {
		return DefaultConfig(), "", nil
	}

	rcPath := filepath.Join(root, ".cnextrc")
	if _, err := os.Stat(rcPath); err == nil {
		cfg := DefaultConfig()
		if _, err := toml.DecodeFile(rcPath, cfg); err != nil {
			return nil, root, fmt.Errorf("parsing %s: %w", rcPath, err)
		}
		return cfg, root, nil
	}

	jsonPath := filepath.Join(root, "cnext.config.json")
	if data, err := os.ReadFile(jsonPath); err == nil {
		cfg := DefaultConfig()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, root, fmt.Errorf("parsing %s: %w", jsonPath, err)
		}
		return cfg, root, nil
	}

	return DefaultConfig(), root, nil
}

// findProjectRoot walks upward from dir looking for one of
// projectRootMarkers (shared with the include resolver's own
// project-root discovery, §4.2/§6).
func findProjectRoot(dir string) (string, bool) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		for _, marker := range projectRootMarkers {
			if _, err := os.Stat(filepath.Join(current, marker)); err == nil {
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

package cnext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ComposedOutput is the final `.h`/`.c` pair produced for one
// translation unit, after effect dedup and header composition
// (§2 step 9).
type ComposedOutput struct {
	HeaderPath string
	HeaderText string
	SourcePath string
	SourceText string
}

// ComposeOutput assembles the header and source text for one
// translation unit: the header is headerBody unchanged; the source gets
// an `#include` of its own header, then one `#include` per
// effect-requested header (§3.4), then every generated function
// definition in declaration order.
func ComposeOutput(baseName string, headerBody string, functionBodies []string, effects *EffectSet) ComposedOutput {
	headerName := baseName + ".h"

	var src strings.Builder
	src.WriteString(fmt.Sprintf("#include \"%s\"\n", headerName))
	for _, header := range effects.Headers() {
		src.WriteString(fmt.Sprintf("#include <%s>\n", header))
	}
	src.WriteString("\n")
	for i, body := range functionBodies {
		if i > 0 {
			src.WriteString("\n\n")
		}
		src.WriteString(body)
	}
	src.WriteString("\n")

	return ComposedOutput{
		HeaderPath: headerName,
		HeaderText: headerBody,
		SourcePath: baseName + ".c",
		SourceText: src.String(),
	}
}

// WriteAtomic writes data to path without ever leaving a partially
// written file behind: it writes to a sibling temp file first, then
// renames over the destination, matching the teacher's single
// os.WriteFile output step (cmd/langlang/main.go) but extended for a
// destination that multiple goroutines or an interrupted process could
// otherwise observe half-written (§2 step 9, §5 durability note).
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmpName := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	if err := os.WriteFile(tmpName, data, perm); err != nil {
		return fmt.Errorf("writing temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file into %s: %w", path, err)
	}
	return nil
}

// Write persists both halves of a ComposedOutput atomically, the
// header before the source so a reader never observes a source file
// referencing a header that doesn't exist yet.
func (c ComposedOutput) Write(perm os.FileMode) error {
	if err := WriteAtomic(c.HeaderPath, []byte(c.HeaderText), perm); err != nil {
		return err
	}
	return WriteAtomic(c.SourcePath, []byte(c.SourceText), perm)
}

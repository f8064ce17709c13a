// Command cnextc transpiles CNEXT source files into C header/source
// pairs. Grounded on cmd/langlang/main.go's flag-to-pipeline wiring,
// restructured onto cobra/pflag subcommands and extended with an
// fsnotify-backed watch mode (see SPEC_FULL.md's Domain Stack).
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	cnext "github.com/cnext-lang/cnextc"
)

var (
	includePaths []string
	outputDir    string
	configPath   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cnextc",
		Short: "Transpile CNEXT sources into C header/source pairs",
	}
	root.PersistentFlags().StringSliceVarP(&includePaths, "include", "I", nil, "extra include search path (repeatable)")
	root.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "directory to write generated .h/.c files into")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a .cnextrc or cnext.config.json file")

	root.AddCommand(newTranspileCmd(), newBatchCmd(), newWatchCmd())
	return root
}

func loadPipeline(startDir string) (*cnext.Pipeline, error) {
	config := cnext.DefaultConfig()
	if configPath != "" {
		if filepath.Ext(configPath) == ".json" {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("reading config %s: %w", configPath, err)
			}
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", configPath, err)
			}
		} else if _, err := toml.DecodeFile(configPath, config); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", configPath, err)
		}
	} else {
		loaded, _, err := cnext.LoadConfig(startDir)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	config.IncludePaths = append(config.IncludePaths, includePaths...)
	if outputDir != "" {
		config.OutputDir = outputDir
	}
	return cnext.NewPipeline(config), nil
}

func newTranspileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transpile <file.cnx>",
		Short: "Transpile a single CNEXT source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			p, err := loadPipeline(filepath.Dir(abs))
			if err != nil {
				return err
			}
			result, err := p.TranspileFile(abs)
			reportDiagnostics(result)
			if err != nil {
				return err
			}
			return p.WriteOutputs([]*cnext.PipelineResult{result})
		},
	}
}

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file.cnx|dir>...",
		Short: "Transpile every CNEXT source reachable from the given files or directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := resolveBatchInputs(args)
			if err != nil {
				return err
			}
			p, err := loadPipeline(".")
			if err != nil {
				return err
			}
			results, err := p.TranspileBatch(files)
			for _, r := range results {
				reportDiagnostics(r)
			}
			if err != nil {
				return err
			}
			if err := p.WriteOutputs(results); err != nil {
				return err
			}
			failed := 0
			for _, r := range results {
				for _, d := range r.Diagnostics {
					if d.Severity == cnext.SeverityError {
						failed++
						break
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d file(s) failed to transpile", failed)
			}
			return nil
		},
	}
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <dir>",
		Short: "Re-transpile every CNEXT source under dir whenever a .cnx file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args[0])
		},
	}
}

func resolveBatchInputs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if info.IsDir() {
			found, err := cnext.DiscoverSourceFiles(arg)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		files = append(files, arg)
	}
	return files, nil
}

func runWatch(dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, dir); err != nil {
		return err
	}

	p, err := loadPipeline(dir)
	if err != nil {
		return err
	}

	runBatch := func() {
		files, err := cnext.DiscoverSourceFiles(dir)
		if err != nil {
			log.Printf("discovering sources: %v", err)
			return
		}
		results, err := p.TranspileBatch(files)
		for _, r := range results {
			reportDiagnostics(r)
		}
		if err != nil {
			log.Printf("batch transpile: %v", err)
			return
		}
		if err := p.WriteOutputs(results); err != nil {
			log.Printf("writing outputs: %v", err)
		}
	}

	runBatch()
	log.Printf("watching %s for .cnx changes", dir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".cnx" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			p.Cache.Invalidate(event.Name)
			runBatch()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func reportDiagnostics(r *cnext.PipelineResult) {
	if r == nil {
		return
	}
	for _, d := range r.Diagnostics {
		fmt.Fprintln(os.Stderr, d.FormatCLI())
	}
}

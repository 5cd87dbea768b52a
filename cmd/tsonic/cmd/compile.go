package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsoniclang/tsonic/internal/compilation"
	"github.com/tsoniclang/tsonic/internal/config"
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/manifest"
	"github.com/tsoniclang/tsonic/internal/manifestcache"
	"github.com/tsoniclang/tsonic/internal/surface"
	"github.com/tsoniclang/tsonic/internal/workspace"
)

var (
	projectDir    string
	outputDir     string
	rootNamespace string
	strictNumeric bool
	emitDiagJSON  bool
	cachePath     string
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a workspace's source tree to the target language",
	Long: `compile loads tsonic.workspace.json from --project, resolves the
binding manifests it names, parses every recognized source file under
the --project directory with the host parser, and runs the result through the compiler
core end to end.

This shell does not implement package restore or project scaffolding
(those are out of scope); it expects manifests and a source tree to
already be in place.`,
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVar(&projectDir, "project", ".", "directory containing tsonic.workspace.json")
	compileCmd.Flags().StringVar(&outputDir, "out", "out", "directory emitted target files are written under")
	compileCmd.Flags().StringVar(&rootNamespace, "namespace", "", "root namespace prefixed onto every module's synthesized namespace")
	compileCmd.Flags().BoolVar(&strictNumeric, "strict-numeric", false, "treat implicit numeric narrowings as errors")
	compileCmd.Flags().BoolVar(&emitDiagJSON, "emit-diagnostics-json", false, "additionally write the final diagnostic list as JSON")
	compileCmd.Flags().StringVar(&cachePath, "manifest-cache", "", "path to a sqlite manifest cache (skipped if empty)")
}

// HostParser parses one source file into the surface AST Binding and the
// IrBuilder consume. The host parser itself is external (spec.md §1); a
// real deployment sets this to a function backed by that parser before
// calling Execute. Left nil, `compile` reports a clear diagnostic instead
// of silently producing empty output.
var HostParser func(file string, source []byte) (*surface.Program, error)

func runCompile(_ *cobra.Command, _ []string) error {
	start := time.Now()
	ctx := context.Background()

	wsPath := filepath.Join(projectDir, "tsonic.workspace.json")
	cfg := &workspace.Config{}
	if data, err := os.ReadFile(wsPath); err == nil {
		cfg, err = workspace.Parse(data)
		if err != nil {
			return fmt.Errorf("compile: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("compile: reading %s: %w", wsPath, err)
	}

	manifestPaths := manifestPathsFromConfig(projectDir, cfg)
	manifests, err := loadManifests(ctx, manifestPaths, cachePath)
	if err != nil {
		return fmt.Errorf("compile: loading manifests: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "loaded %d binding manifest(s)\n", len(manifests))
	}

	sourceRoot := filepath.Join(projectDir)
	sourceFiles, err := discoverSourceFiles(sourceRoot)
	if err != nil {
		return fmt.Errorf("compile: discovering source files: %w", err)
	}

	if HostParser == nil {
		return fmt.Errorf("compile: no host parser configured; this build only wires workspace, manifest, and cache loading")
	}

	sourceText := make(map[string][]string, len(sourceFiles))
	programs := make([]*surface.Program, 0, len(sourceFiles))
	for _, f := range sourceFiles {
		data, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("compile: reading %s: %w", f, err)
		}
		sourceText[f] = strings.Split(string(data), "\n")
		prog, err := HostParser(f, data)
		if err != nil {
			return fmt.Errorf("compile: parsing %s: %w", f, err)
		}
		programs = append(programs, prog)
	}

	opts := config.Options{
		ProjectRoot:         projectDir,
		SourceRoot:          sourceRoot,
		TargetRootNamespace: rootNamespace,
		OutputRoot:          outputDir,
		StrictNumericMode:   strictNumeric,
		EmitDiagnosticsJSON: emitDiagJSON,
	}
	comp := compilation.New(opts, manifests, programs)
	outputs := comp.Run()

	renderer := diagnostics.NewRenderer(os.Stderr, func(file string, line int) (string, bool) {
		lines, ok := sourceText[file]
		if !ok || line < 1 || line > len(lines) {
			return "", false
		}
		return lines[line-1], true
	})
	diags := comp.Sink.Diagnostics()
	for _, d := range diags {
		renderer.Render(d)
	}
	renderer.Summary(diags, time.Since(start))

	if emitDiagJSON {
		if err := writeDiagnosticsJSON(outputDir, diags); err != nil {
			return fmt.Errorf("compile: writing diagnostics JSON: %w", err)
		}
	}

	if comp.Sink.HasErrors() {
		return fmt.Errorf("compile: failed with errors, no output written")
	}

	for _, out := range outputs {
		if err := os.MkdirAll(filepath.Dir(out.TargetPath), 0o755); err != nil {
			return fmt.Errorf("compile: %w", err)
		}
		if err := os.WriteFile(out.TargetPath, []byte(out.Text), 0o644); err != nil {
			return fmt.Errorf("compile: writing %s: %w", out.TargetPath, err)
		}
	}
	return nil
}

func manifestPathsFromConfig(root string, cfg *workspace.Config) []string {
	var paths []string
	for _, lib := range cfg.Libraries {
		if lib.HasTypes && lib.Types != "" {
			paths = append(paths, filepath.Join(root, lib.Types))
		}
	}
	for _, ref := range cfg.PackageReferences {
		if ref.TypesOverride != "" {
			paths = append(paths, filepath.Join(root, ref.TypesOverride))
		}
	}
	return paths
}

func loadManifests(ctx context.Context, paths []string, cachePath string) ([]*manifest.Manifest, error) {
	if cachePath == "" {
		return workspace.LoadManifests(ctx, paths)
	}
	cache, err := manifestcache.Open(cachePath)
	if err != nil {
		return nil, err
	}
	defer cache.Close()

	results := make([]*manifest.Manifest, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		m, err := cache.GetOrDecode(ctx, data, func(d []byte) (*manifest.Manifest, error) {
			return decodeManifestByExtension(p, d)
		})
		if err != nil {
			return nil, err
		}
		results[i] = m
	}
	return results, nil
}

func decodeManifestByExtension(path string, data []byte) (*manifest.Manifest, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return manifest.DecodeYAML(data)
	}
	return manifest.DecodeJSON(data)
}

func discoverSourceFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, ext := range config.SourceFileExtensions {
			if strings.HasSuffix(path, ext) {
				files = append(files, path)
				return nil
			}
		}
		return nil
	})
	return files, err
}

func writeDiagnosticsJSON(outDir string, diags []*diagnostics.Diagnostic) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(diags, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "diagnostics.json"), data, 0o644)
}

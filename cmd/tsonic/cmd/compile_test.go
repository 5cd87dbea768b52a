package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tsoniclang/tsonic/internal/workspace"
)

func TestManifestPathsFromConfig_CollectsLibraryAndPackageReferenceTypes(t *testing.T) {
	cfg := &workspace.Config{
		Libraries: []workspace.Library{
			{Path: "vendor.dll"},
			{Path: "other.dll", Types: "bindings/other.json", HasTypes: true},
		},
		PackageReferences: []workspace.PackageReference{
			{Id: "some.pkg", Version: "1.0.0"},
			{Id: "other.pkg", Version: "2.0.0", TypesOverride: "bindings/other-pkg.json"},
		},
	}
	paths := manifestPathsFromConfig("/proj", cfg)
	want := []string{
		filepath.Join("/proj", "bindings/other.json"),
		filepath.Join("/proj", "bindings/other-pkg.json"),
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %d: %v", len(want), len(paths), paths)
	}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("path %d: expected %q, got %q", i, p, paths[i])
		}
	}
}

func TestDecodeManifestByExtension_DispatchesOnFileExtension(t *testing.T) {
	m, err := decodeManifestByExtension("bindings.yaml", []byte("assembly: Foo\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Assembly != "Foo" {
		t.Errorf("expected YAML decode for .yaml extension, got %+v", m)
	}

	m, err = decodeManifestByExtension("bindings.json", []byte(`{"assembly":"Bar"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Assembly != "Bar" {
		t.Errorf("expected JSON decode for .json extension, got %+v", m)
	}
}

func TestDiscoverSourceFiles_FindsOnlyRecognizedExtensions(t *testing.T) {
	dir := t.TempDir()
	write := func(name string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("// stub\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.ts")
	write("b.tsx")
	write("readme.md")
	write("notes.txt")

	files, err := discoverSourceFiles(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 source files, got %d: %v", len(files), files)
	}
}

func TestRunCompile_ReportsAMissingHostParserRatherThanSilentlyNoOp(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.ts"), []byte("// stub\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	prevParser := HostParser
	prevProject, prevOut := projectDir, outputDir
	HostParser = nil
	projectDir = dir
	outputDir = filepath.Join(dir, "out")
	defer func() {
		HostParser = prevParser
		projectDir = prevProject
		outputDir = prevOut
	}()

	err := runCompile(compileCmd, nil)
	if err == nil {
		t.Fatal("expected an error when no host parser is configured")
	}
}

package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestParse_DecodesLibrariesAndPackageReferencesInBothShapes(t *testing.T) {
	data := []byte(`{
		"schemaVersion": 1,
		"dotnetVersion": "net8.0",
		"frameworkReferences": ["Microsoft.NETCore.App"],
		"libraries": [
			"lib/vendor.dll",
			{"path": "lib/other.dll", "types": "lib/other.d.ts"}
		],
		"packageReferences": [
			{"id": "newtonsoft.json", "version": "13.0.3"},
			{"id": "some.pkg", "version": "1.0.0", "types": false},
			{"id": "other.pkg", "version": "2.0.0", "types": "./bindings"}
		]
	}`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SchemaVersion != 1 || cfg.DotnetVersion != "net8.0" {
		t.Fatalf("unexpected top-level fields: %+v", cfg)
	}
	if len(cfg.Libraries) != 2 || cfg.Libraries[0].HasTypes || !cfg.Libraries[1].HasTypes {
		t.Fatalf("unexpected libraries: %+v", cfg.Libraries)
	}
	if len(cfg.PackageReferences) != 3 {
		t.Fatalf("expected 3 package references, got %d", len(cfg.PackageReferences))
	}
	if !cfg.PackageReferences[1].TypesDisabled {
		t.Errorf("expected second reference to have types disabled")
	}
	if cfg.PackageReferences[2].TypesOverride != "./bindings" {
		t.Errorf("expected third reference's types override, got %+v", cfg.PackageReferences[2])
	}
}

func TestParse_RejectsMissingRequiredFields(t *testing.T) {
	if _, err := Parse([]byte(`{"libraries": []}`)); err == nil {
		t.Error("expected an error for a missing dotnetVersion/schemaVersion")
	}
}

func TestParse_RejectsInvalidPackageVersion(t *testing.T) {
	data := []byte(`{
		"schemaVersion": 1, "dotnetVersion": "net8.0",
		"packageReferences": [{"id": "some.pkg", "version": "not-a-version"}]
	}`)
	if _, err := Parse(data); err == nil {
		t.Error("expected an error for a malformed version string")
	}
}

func TestLoadManifests_DecodesJSONAndYAMLByExtension(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "a.json")
	yamlPath := filepath.Join(dir, "b.yaml")
	if err := os.WriteFile(jsonPath, []byte(`{"assembly": "A"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPath, []byte("assembly: B\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	results, err := LoadManifests(context.Background(), []string{jsonPath, yamlPath})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 || results[0].Assembly != "A" || results[1].Assembly != "B" {
		t.Fatalf("expected manifests in input order, got %+v", results)
	}
}

func TestLoadManifests_PropagatesAReadError(t *testing.T) {
	if _, err := LoadManifests(context.Background(), []string{"/nonexistent/path.json"}); err == nil {
		t.Error("expected an error for a nonexistent manifest file")
	}
}

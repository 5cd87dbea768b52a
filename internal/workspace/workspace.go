// Package workspace decodes and validates tsonic.workspace.json (spec.md
// §6) and discovers the binding-manifest files it names. It is the
// host-driven phase that runs strictly before IR building begins (spec.md
// §5: "Suspension points. None inside the core. Host-driven work... happens
// strictly before IR building begins").
//
// Two of the schema's fields are polymorphic JSON — `libraries[]` entries
// are either a bare path string or a `{path, types}` object, and
// `packageReferences[].types` is either `false` or a string — which a
// single encoding/json struct can decode only awkwardly (a custom
// UnmarshalJSON per field, duplicated per field). gjson's path queries
// read either shape directly without that ceremony, matching
// internal/manifest's reason for using the same library.
package workspace

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
)

// Library is one entry of the workspace's `libraries` list: either a bare
// path (Types == "" and HasTypes == false) or a `{path, types}` object
// naming an explicit bindings directory.
type Library struct {
	Path     string
	Types    string
	HasTypes bool
}

// PackageReference is one entry of `packageReferences`: `{id, version}`,
// or `{id, version, types: false}` (skip binding generation for this
// package), or `{id, version, types: "<path>"}` (use an external bindings
// package instead of generating one).
type PackageReference struct {
	Id             string `validate:"required"`
	Version        string `validate:"required"`
	TypesDisabled  bool
	TypesOverride  string
}

// Config is the decoded, validated form of tsonic.workspace.json.
type Config struct {
	SchemaVersion       int    `validate:"required,gte=1"`
	DotnetVersion       string `validate:"required"`
	FrameworkReferences []string
	Libraries           []Library
	PackageReferences   []PackageReference
}

// Parse decodes and validates a tsonic.workspace.json document. Validation
// runs in two layers: go-playground/validator checks the struct-tag rules
// above (required fields, schemaVersion lower bound), then each package
// reference's Id/Version is checked against golang.org/x/mod's own
// module-path and semver syntax so a malformed reference is caught before
// it ever reaches a manifest resolution attempt.
func Parse(data []byte) (*Config, error) {
	root := gjson.ParseBytes(data)
	if !root.Exists() || !root.IsObject() {
		return nil, fmt.Errorf("workspace: not a JSON object")
	}

	cfg := &Config{
		SchemaVersion: int(root.Get("schemaVersion").Int()),
		DotnetVersion: root.Get("dotnetVersion").String(),
	}
	for _, fr := range root.Get("frameworkReferences").Array() {
		cfg.FrameworkReferences = append(cfg.FrameworkReferences, fr.String())
	}
	for _, lib := range root.Get("libraries").Array() {
		if lib.IsObject() {
			cfg.Libraries = append(cfg.Libraries, Library{
				Path:     lib.Get("path").String(),
				Types:    lib.Get("types").String(),
				HasTypes: lib.Get("types").Exists(),
			})
		} else {
			cfg.Libraries = append(cfg.Libraries, Library{Path: lib.String()})
		}
	}
	for _, pkg := range root.Get("packageReferences").Array() {
		ref := PackageReference{
			Id:      pkg.Get("id").String(),
			Version: pkg.Get("version").String(),
		}
		typesField := pkg.Get("types")
		if typesField.Exists() {
			if typesField.Type == gjson.False {
				ref.TypesDisabled = true
			} else {
				ref.TypesOverride = typesField.String()
			}
		}
		cfg.PackageReferences = append(cfg.PackageReferences, ref)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("workspace: %w", err)
	}
	for _, ref := range cfg.PackageReferences {
		// NuGet package ids are PascalCase dotted names ("Newtonsoft.Json"),
		// not Go import paths; module.CheckPath enforces Go's own
		// lowercase-element rule, so the id is folded to lowercase purely
		// for this shape check and stored unchanged otherwise.
		if err := module.CheckPath(strings.ToLower(ref.Id)); err != nil {
			return nil, fmt.Errorf("workspace: package reference %q: %w", ref.Id, err)
		}
		if v := "v" + ref.Version; !semver.IsValid(v) {
			return nil, fmt.Errorf("workspace: package reference %q has an invalid version %q", ref.Id, ref.Version)
		}
	}
	return cfg, nil
}

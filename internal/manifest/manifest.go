// Package manifest decodes binding manifests: the description of a CLR
// package's namespaces, types, members, and parameter modifiers that lets
// Binding resolve a surface import to a concrete target-side member
// (spec.md §6). The primary form is JSON; a legacy YAML form is also
// accepted for package authors who hand-maintain bindings.
//
// The JSON form is decoded with gjson rather than a single static struct
// set because two fields are genuinely polymorphic in the schema:
// `members[].binding.parameterModifiers` is an optional variable-length
// list, and `exports` is a flattened dynamic key space (an arbitrary set
// of exported names, each mapping to a small fixed-shape record) —
// encoding/json's struct tags can't express "object whose keys are
// unknown but whose values share one shape" without an intermediate
// map[string]json.RawMessage pass, which gjson's path queries do more
// directly.
package manifest

import (
	"fmt"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ParamModifier records that the parameter at Index requires the target
// language's ref/out/in modifier when the manifest's bound member is
// called (spec.md §6).
type ParamModifier struct {
	Index    int
	Modifier string // "ref" | "out" | "in"
}

// Binding names the concrete CLR-side member a manifest entry resolves to.
type Binding struct {
	Assembly           string
	Type               string
	Member             string
	ParameterModifiers []ParamModifier
	Signature          string
}

// Member is one bound method/property/field/etc. of a Type.
type Member struct {
	Kind    string
	Name    string
	Alias   string
	Binding Binding
}

// Type is one bound class/interface/etc. of a Namespace.
type Type struct {
	Name    string
	Alias   string
	Kind    string
	Members []Member
}

// Namespace groups the Types a manifest binds under one CLR namespace.
type Namespace struct {
	Name  string
	Alias string
	Types []Type
}

// Export is one flattened entry in a manifest's top-level `exports` map:
// a surface-visible name bound directly to a CLR member without going
// through the namespace/type/member nesting.
type Export struct {
	DeclaringClrType      string
	DeclaringAssemblyName string
	ClrName               string
}

// Manifest is the decoded form of one binding manifest file, covering both
// the JSON namespace-nested schema and (after normalization) the legacy
// YAML module-shaped form.
type Manifest struct {
	Assembly   string
	Namespaces []Namespace
	Exports    map[string]Export
}

// DecodeJSON parses the primary manifest schema (spec.md §6). Malformed
// JSON is reported through err; a structurally valid document with
// missing optional fields decodes those as zero values rather than
// failing, since every field below "assembly"/"namespaces" is optional.
func DecodeJSON(data []byte) (*Manifest, error) {
	root := gjson.ParseBytes(data)
	if !root.Exists() || !root.IsObject() {
		return nil, fmt.Errorf("manifest: not a JSON object")
	}

	m := &Manifest{
		Assembly: root.Get("assembly").String(),
		Exports:  map[string]Export{},
	}

	for _, nsVal := range root.Get("namespaces").Array() {
		ns := Namespace{
			Name:  nsVal.Get("name").String(),
			Alias: nsVal.Get("alias").String(),
		}
		for _, tVal := range nsVal.Get("types").Array() {
			ns.Types = append(ns.Types, decodeType(tVal))
		}
		m.Namespaces = append(m.Namespaces, ns)
	}

	root.Get("exports").ForEach(func(key, val gjson.Result) bool {
		m.Exports[key.String()] = Export{
			DeclaringClrType:      val.Get("declaringClrType").String(),
			DeclaringAssemblyName: val.Get("declaringAssemblyName").String(),
			ClrName:               val.Get("clrName").String(),
		}
		return true
	})

	return m, nil
}

func decodeType(tVal gjson.Result) Type {
	t := Type{
		Name:  tVal.Get("name").String(),
		Alias: tVal.Get("alias").String(),
		Kind:  tVal.Get("kind").String(),
	}
	for _, mVal := range tVal.Get("members").Array() {
		t.Members = append(t.Members, decodeMember(mVal))
	}
	return t
}

func decodeMember(mVal gjson.Result) Member {
	m := Member{
		Kind:  mVal.Get("kind").String(),
		Name:  mVal.Get("name").String(),
		Alias: mVal.Get("alias").String(),
		Binding: Binding{
			Assembly:  mVal.Get("binding.assembly").String(),
			Type:      mVal.Get("binding.type").String(),
			Member:    mVal.Get("binding.member").String(),
			Signature: mVal.Get("binding.signature").String(),
		},
	}
	for _, pm := range mVal.Get("binding.parameterModifiers").Array() {
		m.Binding.ParameterModifiers = append(m.Binding.ParameterModifiers, ParamModifier{
			Index:    int(pm.Get("index").Int()),
			Modifier: pm.Get("modifier").String(),
		})
	}
	return m
}

// legacyDoc mirrors the hand-maintained YAML binding form (module-shaped:
// one bound type per module import, plus loose global identifier
// bindings), grounded on the teacher's internal/ext/config.go's yaml.v3
// struct-tag decoding of funxy.yaml.
type legacyDoc struct {
	Assembly    string             `yaml:"assembly"`
	Module      string             `yaml:"module"`
	Type        string             `yaml:"type"`
	CsharpName  string             `yaml:"csharpName,omitempty"`
	Identifiers []legacyIdentifier `yaml:"identifiers,omitempty"`
}

type legacyIdentifier struct {
	Name       string `yaml:"name"`
	CsharpName string `yaml:"csharpName,omitempty"`
}

// DecodeYAML parses the legacy hand-maintained manifest form and
// normalizes it into the same Manifest shape DecodeJSON produces, so
// callers never need to know which form a given file used.
func DecodeYAML(data []byte) (*Manifest, error) {
	var doc legacyDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("manifest: invalid legacy YAML: %w", err)
	}

	m := &Manifest{Assembly: doc.Assembly, Exports: map[string]Export{}}
	if doc.Module != "" && doc.Type != "" {
		csharpName := doc.CsharpName
		if csharpName == "" {
			csharpName = doc.Type
		}
		m.Namespaces = append(m.Namespaces, Namespace{
			Name: doc.Module,
			Types: []Type{{
				Name:  doc.Type,
				Alias: csharpName,
				Kind:  "class",
			}},
		})
	}
	for _, id := range doc.Identifiers {
		clrName := id.CsharpName
		if clrName == "" {
			clrName = id.Name
		}
		m.Exports[id.Name] = Export{DeclaringAssemblyName: doc.Assembly, ClrName: clrName}
	}
	return m, nil
}

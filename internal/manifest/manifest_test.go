package manifest

import "testing"

func TestDecodeJSON_NamespacesTypesMembersAndParameterModifiers(t *testing.T) {
	data := []byte(`{
		"assembly": "System.Collections",
		"namespaces": [
			{ "name": "System.Collections.Generic", "types": [
				{ "name": "List", "kind": "class", "members": [
					{ "kind": "method", "name": "CopyTo", "binding": {
						"assembly": "System.Collections", "type": "List", "member": "CopyTo",
						"parameterModifiers": [{"index": 0, "modifier": "out"}]
					}}
				]}
			]}
		],
		"exports": {
			"parseInt": {"declaringClrType": "System.Int32", "clrName": "Parse"}
		}
	}`)
	m, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Assembly != "System.Collections" {
		t.Errorf("expected assembly System.Collections, got %q", m.Assembly)
	}
	if len(m.Namespaces) != 1 || len(m.Namespaces[0].Types) != 1 {
		t.Fatalf("expected one namespace with one type, got %+v", m.Namespaces)
	}
	members := m.Namespaces[0].Types[0].Members
	if len(members) != 1 || len(members[0].Binding.ParameterModifiers) != 1 {
		t.Fatalf("expected one member with one parameter modifier, got %+v", members)
	}
	if members[0].Binding.ParameterModifiers[0].Modifier != "out" {
		t.Errorf("expected out modifier, got %q", members[0].Binding.ParameterModifiers[0].Modifier)
	}
	exp, ok := m.Exports["parseInt"]
	if !ok || exp.ClrName != "Parse" {
		t.Errorf("expected parseInt export bound to Parse, got %+v", m.Exports)
	}
}

func TestDecodeJSON_MissingOptionalFieldsDecodeAsZeroValues(t *testing.T) {
	m, err := DecodeJSON([]byte(`{"assembly": "Foo"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Namespaces) != 0 || len(m.Exports) != 0 {
		t.Errorf("expected empty namespaces/exports, got %+v", m)
	}
}

func TestDecodeJSON_RejectsNonObjectInput(t *testing.T) {
	if _, err := DecodeJSON([]byte(`[1,2,3]`)); err == nil {
		t.Error("expected an error for a non-object top-level document")
	}
}

func TestDecodeYAML_ModuleShapedBindingWithCsharpNameOverride(t *testing.T) {
	data := []byte(`
assembly: MyLib
module: mylib
type: Client
csharpName: MyLib.Client
identifiers:
  - name: connect
    csharpName: Connect
`)
	m, err := DecodeYAML(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Namespaces) != 1 || m.Namespaces[0].Types[0].Alias != "MyLib.Client" {
		t.Fatalf("expected aliased module-shaped type, got %+v", m.Namespaces)
	}
	exp, ok := m.Exports["connect"]
	if !ok || exp.ClrName != "Connect" {
		t.Errorf("expected connect bound to Connect, got %+v", m.Exports)
	}
}

func TestDecodeYAML_IdentifierWithoutCsharpNameDefaultsToItsOwnName(t *testing.T) {
	data := []byte(`
assembly: MyLib
identifiers:
  - name: version
`)
	m, err := DecodeYAML(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Exports["version"].ClrName != "version" {
		t.Errorf("expected version to default its ClrName to its own name, got %+v", m.Exports["version"])
	}
}

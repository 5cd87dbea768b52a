package manifest

import "testing"

func TestPatchExport_AddsANewExportWithoutDisturbingExistingFields(t *testing.T) {
	data := []byte(`{"assembly": "System.Collections", "namespaces": []}`)

	out, err := PatchExport(data, "parseInt", Export{
		DeclaringClrType: "System.Int32", DeclaringAssemblyName: "mscorlib", ClrName: "Parse",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err := DecodeJSON(out)
	if err != nil {
		t.Fatalf("patched document no longer decodes: %v", err)
	}
	if m.Assembly != "System.Collections" {
		t.Errorf("expected the original assembly field to survive the patch, got %q", m.Assembly)
	}
	exp, ok := m.Exports["parseInt"]
	if !ok {
		t.Fatal("expected the patched export to be present")
	}
	if exp.ClrName != "Parse" || exp.DeclaringClrType != "System.Int32" || exp.DeclaringAssemblyName != "mscorlib" {
		t.Errorf("got %+v, want ClrName=Parse DeclaringClrType=System.Int32 DeclaringAssemblyName=mscorlib", exp)
	}
}

func TestPatchExport_OverwritesAnExistingEntryForTheSameName(t *testing.T) {
	data := []byte(`{"exports": {"parseInt": {"clrName": "OldParse"}}}`)

	out, err := PatchExport(data, "parseInt", Export{ClrName: "Parse"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := DecodeJSON(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Exports["parseInt"].ClrName; got != "Parse" {
		t.Errorf("got ClrName %q, want Parse", got)
	}
}

package pid

import (
	"sort"
	"testing"
)

func TestLoad(t *testing.T) {
	cat, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cat.Len() == 0 {
		t.Fatal("Load() returned an empty catalogue")
	}

	rpm := cat.Lookup("Engine RPM")
	if rpm == nil {
		t.Fatal("Engine RPM missing from catalogue")
	}
	if rpm.Command != "01 0C" {
		t.Errorf("Engine RPM command = %q, want %q", rpm.Command, "01 0C")
	}
	if rpm.Availability != Unknown {
		t.Errorf("fresh catalogue availability = %v, want unknown", rpm.Availability)
	}
	if len(rpm.Results) != 1 || rpm.Results[0].Type.Kind != Word {
		t.Fatalf("Engine RPM results = %+v, want one word descriptor", rpm.Results)
	}
	if got := rpm.Results[0].Formula.Apply(6896); got != 1724 {
		t.Errorf("Engine RPM formula(6896) = %v, want 1724", got)
	}

	sup := cat.Lookup("Supported parameters 01-20")
	if sup == nil {
		t.Fatal("Supported parameters 01-20 missing from catalogue")
	}
	var rpmBit *Descriptor
	for i := range sup.Results {
		if sup.Results[i].Name == "Engine RPM" {
			rpmBit = &sup.Results[i]
		}
	}
	if rpmBit == nil {
		t.Fatal("supported-parameters bitmask has no Engine RPM bit")
	}
	if rpmBit.Type.Kind != Bool || rpmBit.Type.Index != 1 {
		t.Errorf("Engine RPM bit type = %+v, want bool_1", rpmBit.Type)
	}
	if got := rpmBit.Formula.Apply(0xBE); got == 0 {
		t.Error("Engine RPM bit mask did not match 0xBE")
	}
}

func TestCatalogueRename(t *testing.T) {
	cat, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cat.SetAvailability("Bank 2 - Sensor 1 1D", Supported) {
		t.Fatal("SetAvailability failed for known name")
	}
	if !cat.Rename("Bank 2 - Sensor 1 1D", "Bank 2 - Sensor 1") {
		t.Fatal("Rename failed")
	}
	if cat.Lookup("Bank 2 - Sensor 1 1D") != nil {
		t.Error("old name still resolves after rename")
	}
	def := cat.Lookup("Bank 2 - Sensor 1")
	if def == nil {
		t.Fatal("canonical name does not resolve after rename")
	}
	if def.Name != "Bank 2 - Sensor 1" {
		t.Errorf("definition name = %q, want canonical", def.Name)
	}
	if def.Availability != Supported {
		t.Error("availability lost during rename")
	}
	if def.Command != "01 16" {
		t.Errorf("command = %q, want %q", def.Command, "01 16")
	}

	if cat.Rename("Bank 2 - Sensor 1 1D", "whatever") {
		t.Error("Rename of absent name should be a no-op")
	}
	if cat.Rename("Bank 2 - Sensor 1 13", "Bank 2 - Sensor 1") {
		t.Error("Rename onto a taken name should be a no-op")
	}
}

func TestCatalogueNamesSorted(t *testing.T) {
	cat, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	names := cat.Names()
	if len(names) != cat.Len() {
		t.Fatalf("Names() returned %d names, catalogue has %d", len(names), cat.Len())
	}
	if !sort.StringsAreSorted(names) {
		t.Error("Names() is not sorted")
	}
}

func TestCatalogueAddDuplicate(t *testing.T) {
	cat, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cat.Add(&Definition{Name: "Engine RPM", Command: "01 0C"}); err == nil {
		t.Error("Add of duplicate name should fail")
	}
}

package module

import (
	"testing"

	"crayfish/internal/bytecode"
	"crayfish/internal/value"
)

func TestBuilderNestedFunctionLookup(t *testing.T) {
	b := NewBuilder("root")
	fn := value.NewFunction("helper", nil, nil)
	b.Function("math::geometry::helper", fn)
	root := b.Build()

	got, err := root.GetFunction(bytecode.ParseFunctionPath("math::geometry::helper"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "helper" {
		t.Errorf("got %q, want helper", got.Name)
	}
}

func TestBuilderTopLevelFunction(t *testing.T) {
	b := NewBuilder("root")
	fn := value.NewFunction("main", nil, nil)
	b.Function("main", fn)
	root := b.Build()

	got, err := root.GetFunction(bytecode.ParseFunctionPath("main"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "main" {
		t.Errorf("got %q, want main", got.Name)
	}
}

func TestGetFunctionMissingErrors(t *testing.T) {
	b := NewBuilder("root")
	root := b.Build()
	_, err := root.GetFunction(bytecode.ParseFunctionPath("nonexistent"))
	if err == nil {
		t.Fatal("expected error for missing function")
	}
}

func TestFingerprintStableAcrossCalls(t *testing.T) {
	b := NewBuilder("root")
	b.Function("main", value.NewFunction("main", nil, nil))
	root := b.Build()

	a, err := root.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	c, err := root.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	if a != c {
		t.Errorf("fingerprint not stable: %s != %s", a, c)
	}
}

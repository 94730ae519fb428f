package bytecode

import "testing"

func TestParseFunctionPath(t *testing.T) {
	p := ParseFunctionPath("a::b::c")
	if p.Name() != "c" {
		t.Errorf("got %q, want c", p.Name())
	}
	mod := p.ModulePath()
	if len(mod) != 2 || mod[0] != "a" || mod[1] != "b" {
		t.Errorf("got %v, want [a b]", mod)
	}
}

func TestParseFunctionPathUnqualified(t *testing.T) {
	p := ParseFunctionPath("main")
	if p.Name() != "main" {
		t.Errorf("got %q, want main", p.Name())
	}
	if len(p.ModulePath()) != 0 {
		t.Errorf("expected no module path, got %v", p.ModulePath())
	}
}

func TestFunctionPathRoundTripString(t *testing.T) {
	p := ParseFunctionPath("a::b::c")
	if p.String() != "a::b::c" {
		t.Errorf("got %q, want a::b::c", p.String())
	}
}

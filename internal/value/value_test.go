package value

import (
	"testing"

	"crayfish/internal/numtower"
)

func TestVectorRoundTrip(t *testing.T) {
	v := NewVector([]Value{numtower.NewI32(1), numtower.NewI32(2), numtower.NewI32(3)})
	if v.Len() != 3 {
		t.Fatalf("got len %d, want 3", v.Len())
	}
	if err := v.Set(1, numtower.NewI32(42)); err != nil {
		t.Fatal(err)
	}
	got, err := v.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if got.(numtower.Integer).I32() != 42 {
		t.Errorf("got %v, want 42", got)
	}
}

func TestVectorSetKindMismatchLeavesVectorUnchanged(t *testing.T) {
	v := NewVector([]Value{numtower.NewI32(1), numtower.NewI32(2)})
	err := v.Set(0, "not an integer")
	if err == nil {
		t.Fatal("expected kind mismatch error")
	}
	got, _ := v.Get(0)
	if got.(numtower.Integer).I32() != 1 {
		t.Errorf("vector mutated despite failed Set: %v", got)
	}
}

func TestVectorOutOfBounds(t *testing.T) {
	v := NewVector([]Value{numtower.NewI32(1)})
	_, err := v.Get(5)
	if err == nil {
		t.Fatal("expected out-of-bounds error")
	}
}

func TestTupleOrderIsFirstPushedFirst(t *testing.T) {
	tup := NewTuple([]Value{numtower.NewI32(10), numtower.NewI32(20)})
	first, _ := tup.Get(0)
	if first.(numtower.Integer).I32() != 10 {
		t.Errorf("got %v, want element 0 = 10", first)
	}
}

func TestProductNameAndIndexAccessAgree(t *testing.T) {
	p := NewProduct("Point", []string{"x", "y"}, map[string]Value{
		"x": numtower.NewI32(1),
		"y": numtower.NewI32(2),
	})
	byName, _ := p.GetByName("x")
	byIndex, _ := p.GetByIndex(0)
	if byName.(numtower.Integer).I32() != byIndex.(numtower.Integer).I32() {
		t.Errorf("name/index views disagree: %v vs %v", byName, byIndex)
	}
}

func TestAggregateEqualityIsTypeError(t *testing.T) {
	a := NewVector([]Value{numtower.NewI32(1)})
	b := NewVector([]Value{numtower.NewI32(1)})
	_, err := Equal(a, b)
	if err != ErrAggregateOrdering {
		t.Fatalf("expected ErrAggregateOrdering, got %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	v := NewVector([]Value{numtower.NewI32(1)})
	clone := Clone(v).(*Vector)
	clone.Set(0, numtower.NewI32(99))
	orig, _ := v.Get(0)
	if orig.(numtower.Integer).I32() != 1 {
		t.Errorf("clone mutation leaked into original: %v", orig)
	}
}

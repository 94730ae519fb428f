package environment

import "testing"

func TestInsertGet(t *testing.T) {
	e := New()
	e.Insert("x", 42)
	v, ok := e.Get("x")
	if !ok || v.(int) != 42 {
		t.Fatalf("got %v,%v want 42,true", v, ok)
	}
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	e := New()
	e.Insert("x", 1)
	snap := e.Snapshot()
	e.Insert("x", 2)
	v, _ := snap.Get("x")
	if v.(int) != 1 {
		t.Errorf("snapshot changed after original mutated: got %v, want 1", v)
	}
}

func TestMergeMissingNeverShadowsExisting(t *testing.T) {
	e := New()
	e.Insert("x", "explicit")
	captured := New()
	captured.Insert("x", "captured")
	captured.Insert("y", "captured")
	e.MergeMissing(captured)
	x, _ := e.Get("x")
	y, _ := e.Get("y")
	if x.(string) != "explicit" {
		t.Errorf("MergeMissing overwrote explicit binding: got %v", x)
	}
	if y.(string) != "captured" {
		t.Errorf("MergeMissing did not add missing binding: got %v", y)
	}
}

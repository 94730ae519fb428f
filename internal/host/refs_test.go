package host

import "testing"

func TestRefsAllocateLookupStoreRoundTrip(t *testing.T) {
	r := NewRefs()
	id, err := r.Allocate("hello")
	if err != nil {
		t.Fatal(err)
	}
	got, ok := r.Lookup(id)
	if !ok || got != "hello" {
		t.Fatalf("got (%v, %v), want (hello, true)", got, ok)
	}
	if err := r.Store(id, "world"); err != nil {
		t.Fatal(err)
	}
	got, _ = r.Lookup(id)
	if got != "world" {
		t.Fatalf("got %v, want world", got)
	}
}

func TestRefsStoreUnallocatedFails(t *testing.T) {
	r := NewRefs()
	if err := r.Store(999, "x"); err == nil {
		t.Fatal("expected error storing into an unallocated reference")
	}
}

func TestRefsLookupMissingFails(t *testing.T) {
	r := NewRefs()
	if _, ok := r.Lookup(123); ok {
		t.Fatal("expected lookup of an unallocated reference to fail")
	}
}

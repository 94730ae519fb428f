package stack

import (
	"testing"

	"crayfish/internal/numtower"
)

func TestPushPopOrder(t *testing.T) {
	s := New()
	s.Push(numtower.NewI32(1))
	s.Push(numtower.NewI32(2))
	top, err := s.Pop()
	if err != nil {
		t.Fatal(err)
	}
	if top.(numtower.Integer).I32() != 2 {
		t.Errorf("got %v, want 2 (LIFO)", top)
	}
}

func TestPopEmptyUnderflows(t *testing.T) {
	s := New()
	if _, err := s.Pop(); err == nil {
		t.Fatal("expected underflow error on empty pop")
	}
}

func TestPeekDoesNotRemove(t *testing.T) {
	s := New()
	s.Push(numtower.NewI32(7))
	if _, err := s.Peek(); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 {
		t.Errorf("peek mutated stack depth: %d", s.Len())
	}
}

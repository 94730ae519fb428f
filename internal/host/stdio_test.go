package host

import (
	"bytes"
	"strings"
	"testing"
)

func TestStdioHostWriteRead(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("hello world\n")
	h := NewStdioHost(&out, in)

	if err := h.Write("greeting: "); err != nil {
		t.Fatal(err)
	}
	line, err := h.Read()
	if err != nil {
		t.Fatal(err)
	}
	if line != "hello world" {
		t.Fatalf("got %q, want %q", line, "hello world")
	}
	if out.String() != "greeting: " {
		t.Fatalf("got %q written, want %q", out.String(), "greeting: ")
	}
}

func TestStdioHostRequestSetValue(t *testing.T) {
	h := NewStdioHost(&bytes.Buffer{}, strings.NewReader(""))
	if err := h.SetValue("x", 42); err != nil {
		t.Fatal(err)
	}
	v, err := h.RequestValue("x")
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Fatalf("got %v, want 42", v)
	}
}

func TestStdioHostRequestMissingValueFails(t *testing.T) {
	h := NewStdioHost(&bytes.Buffer{}, strings.NewReader(""))
	if _, err := h.RequestValue("missing"); err == nil {
		t.Fatal("expected error requesting an unset value")
	}
}

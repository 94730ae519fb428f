package host

import "testing"

func TestStoreHostSetRequestValueRoundTrip(t *testing.T) {
	h, err := NewStoreHost(DriverSQLite, ":memory:", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer h.Close()

	if err := h.SetValue("name", "ada"); err != nil {
		t.Fatal(err)
	}
	got, err := h.RequestValue("name")
	if err != nil {
		t.Fatal(err)
	}
	if got != "ada" {
		t.Fatalf("got %v, want ada", got)
	}
}

func TestStoreHostRequestMissingValueFails(t *testing.T) {
	h, err := NewStoreHost(DriverSQLite, ":memory:", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer h.Close()

	if _, err := h.RequestValue("missing"); err == nil {
		t.Fatal("expected error requesting an unset value")
	}
}

func TestStoreHostWriteAppends(t *testing.T) {
	h, err := NewStoreHost(DriverSQLite, ":memory:", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer h.Close()

	if err := h.Write("hello "); err != nil {
		t.Fatal(err)
	}
	if err := h.Write("world"); err != nil {
		t.Fatal(err)
	}
	got, err := h.RequestValue("__stdout__")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello world" {
		t.Fatalf("got %q, want %q", got, "hello world")
	}
}

func TestStoreHostReadFailsNoInteractiveSource(t *testing.T) {
	h, err := NewStoreHost(DriverSQLite, ":memory:", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer h.Close()

	if _, err := h.Read(); err == nil {
		t.Fatal("expected Read to fail: StoreHost has no interactive input source")
	}
}

func TestStoreHostUnsupportedDriverFails(t *testing.T) {
	if _, err := NewStoreHost(Driver("oracle"), "", ""); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

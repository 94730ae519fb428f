package host

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"crayfish/internal/bytecode"
	"crayfish/internal/vm"
)

func dialInspector(t *testing.T, ins *Inspector) (*websocket.Conn, func()) {
	t.Helper()
	srv := httptest.NewServer(ins)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial: %v", err)
	}
	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func TestInspectorBroadcastsInstructionFrame(t *testing.T) {
	ins := NewInspector()
	conn, cleanup := dialInspector(t, ins)
	defer cleanup()

	// Give the server goroutine a moment to register the client.
	time.Sleep(20 * time.Millisecond)

	cont := ins.OnInstruction(bytecode.Instruction{Op: bytecode.IntegerAdd}, vm.Flags{}, 3)
	if !cont {
		t.Fatal("OnInstruction must always report continue")
	}

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var frame Frame
	if err := json.Unmarshal(payload, &frame); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if frame.Event != "instruction" || frame.Op != "IntegerAdd" || frame.StackDepth != 3 {
		t.Fatalf("got %+v, want instruction/IntegerAdd/depth 3", frame)
	}
}

func TestInspectorBroadcastsCallAndReturn(t *testing.T) {
	ins := NewInspector()
	conn, cleanup := dialInspector(t, ins)
	defer cleanup()
	time.Sleep(20 * time.Millisecond)

	ins.OnCall("fib", 1)
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var frame Frame
	if err := json.Unmarshal(payload, &frame); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if frame.Event != "call" || frame.Function != "fib" || frame.Depth != 1 {
		t.Fatalf("got %+v, want call/fib/depth 1", frame)
	}

	ins.OnReturn("fib", 1)
	_, payload, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := json.Unmarshal(payload, &frame); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if frame.Event != "return" || frame.Function != "fib" {
		t.Fatalf("got %+v, want return/fib", frame)
	}
}

func TestComparisonLabel(t *testing.T) {
	cases := []struct {
		flags vm.Flags
		want  string
	}{
		{vm.Flags{}, ""},
		{vm.Flags{HasComparison: true, Comparison: bytecode.CompareEqual}, "equal"},
		{vm.Flags{HasComparison: true, Comparison: bytecode.CompareNotEqual}, "not-equal"},
		{vm.Flags{HasComparison: true, Comparison: bytecode.CompareLessThan}, "less"},
		{vm.Flags{HasComparison: true, Comparison: bytecode.CompareLessThanOrEqual}, "less-or-equal"},
		{vm.Flags{HasComparison: true, Comparison: bytecode.CompareGreaterThan}, "greater"},
		{vm.Flags{HasComparison: true, Comparison: bytecode.CompareGreaterThanOrEqual}, "greater-or-equal"},
	}
	for _, c := range cases {
		if got := comparisonLabel(c.flags); got != c.want {
			t.Errorf("comparisonLabel(%+v) = %q, want %q", c.flags, got, c.want)
		}
	}
}

package host

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"crayfish/internal/bytecode"
	"crayfish/internal/vm"
)

// Inspector is a vm.DebugHook that mirrors every dispatched instruction,
// the flag register and the current stack depth to connected websocket
// clients — grounded on internal/network/websocket_server.go's
// mutex-guarded client registry and broadcast-to-all loop, trimmed to a
// single fixed "session" of clients rather than the teacher's
// multi-server registry (one Inspector serves one Driver run).
type Inspector struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*inspectorClient
	nextID  int
}

type inspectorClient struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

// Frame is one instruction-boundary snapshot broadcast to every
// connected client.
type Frame struct {
	Event      string `json:"event"`
	Function   string `json:"function,omitempty"`
	Depth      int    `json:"depth"`
	Op         string `json:"op,omitempty"`
	Row        int    `json:"row,omitempty"`
	Column     int    `json:"column,omitempty"`
	StackDepth int    `json:"stackDepth,omitempty"`
	Comparison string `json:"comparison,omitempty"`
	Zero       bool   `json:"zero,omitempty"`
	Negative   bool   `json:"negative,omitempty"`
	Error      string `json:"error,omitempty"`
}

func NewInspector() *Inspector {
	return &Inspector{
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		clients:  make(map[string]*inspectorClient),
	}
}

// ServeHTTP upgrades an incoming request to a websocket connection and
// registers it as an Inspector client.
func (ins *Inspector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := ins.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	ins.mu.Lock()
	ins.nextID++
	id := fmt.Sprintf("client-%d", ins.nextID)
	ins.clients[id] = &inspectorClient{conn: conn}
	ins.mu.Unlock()
}

func (ins *Inspector) broadcast(frame Frame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	ins.mu.RLock()
	clients := make([]*inspectorClient, 0, len(ins.clients))
	for _, c := range ins.clients {
		clients = append(clients, c)
	}
	ins.mu.RUnlock()

	for _, c := range clients {
		c.mu.Lock()
		if !c.closed {
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.closed = true
			}
		}
		c.mu.Unlock()
	}
}

func (ins *Inspector) OnInstruction(instr bytecode.Instruction, flags vm.Flags, stackDepth int) bool {
	ins.broadcast(Frame{
		Event:      "instruction",
		Op:         instr.Op.String(),
		Row:        instr.Pos.Row,
		Column:     instr.Pos.Column,
		StackDepth: stackDepth,
		Comparison: comparisonLabel(flags),
		Zero:       flags.Zero,
		Negative:   flags.Negative,
	})
	return true
}

func (ins *Inspector) OnCall(name string, depth int) {
	ins.broadcast(Frame{Event: "call", Function: name, Depth: depth})
}

func (ins *Inspector) OnReturn(name string, depth int) {
	ins.broadcast(Frame{Event: "return", Function: name, Depth: depth})
}

func (ins *Inspector) OnError(err error) {
	ins.broadcast(Frame{Event: "error", Error: err.Error()})
}

func comparisonLabel(flags vm.Flags) string {
	if !flags.HasComparison {
		return ""
	}
	switch flags.Comparison {
	case bytecode.CompareEqual:
		return "equal"
	case bytecode.CompareNotEqual:
		return "not-equal"
	case bytecode.CompareLessThan:
		return "less"
	case bytecode.CompareLessThanOrEqual:
		return "less-or-equal"
	case bytecode.CompareGreaterThan:
		return "greater"
	case bytecode.CompareGreaterThanOrEqual:
		return "greater-or-equal"
	default:
		return ""
	}
}

package vm

import (
	"sync"

	"crayfish/internal/value"
)

// Globals backs GlobalStore/GlobalLookup: a module-scoped map guarded by
// a mutex, lifetime tied to one Driver run (SPEC_FULL §11 — spec.md
// names these opcodes but leaves storage backing unspecified).
type Globals struct {
	mu   sync.RWMutex
	data map[string]value.Value
}

func NewGlobals() *Globals {
	return &Globals{data: make(map[string]value.Value)}
}

func (g *Globals) Store(name string, val value.Value) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.data[name] = val
}

func (g *Globals) Lookup(name string) (value.Value, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.data[name]
	return v, ok
}

// Package host ships the concrete vm.Host/vm.RefTable/vm.DebugHook
// collaborators a Driver embeds: terminal I/O, a SQL-backed key/value
// store, an opaque reference table, and a websocket instruction mirror.
package host

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Refs is the default vm.RefTable: opaque ids minted from a uuid v4,
// hashed down to 64 bits, backing a plain in-memory table. Grounded on
// SPEC_FULL.md's "host-level reference table" design note — until a
// caller installs one, FunctionCall(Address,...) and the Reference*
// opcodes fault with InvalidOperation, which is the correct behavior
// when no Refs field is set on vm.Core at all.
type Refs struct {
	mu    sync.RWMutex
	table map[uint64]any
}

func NewRefs() *Refs {
	return &Refs{table: make(map[uint64]any)}
}

func (r *Refs) Allocate(val any) (uint64, error) {
	id := idFromUUID(uuid.New())
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		if _, taken := r.table[id]; !taken {
			break
		}
		id = idFromUUID(uuid.New())
	}
	r.table[id] = val
	return id, nil
}

func (r *Refs) Lookup(id uint64) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.table[id]
	return v, ok
}

func (r *Refs) Store(id uint64, val any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.table[id]; !ok {
		return fmt.Errorf("host: reference %d is not allocated", id)
	}
	r.table[id] = val
	return nil
}

// idFromUUID folds a 128-bit uuid down to a 64-bit id by XORing its two
// halves — collisions are handled by Allocate's retry loop above.
func idFromUUID(u uuid.UUID) uint64 {
	var hi, lo uint64
	for i := 0; i < 8; i++ {
		hi = hi<<8 | uint64(u[i])
		lo = lo<<8 | uint64(u[i+8])
	}
	return hi ^ lo
}

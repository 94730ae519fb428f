package vm

import "crayfish/internal/bytecode"

// Host is the side-channel contract between the evaluator and its
// embedder: terminal-style I/O plus a host-owned key/value store. The
// spec only requires the contract; internal/host ships concrete
// collaborators (StdioHost, StoreHost).
type Host interface {
	Write(s string) error
	Read() (string, error)
	RequestValue(key string) (any, error)
	SetValue(key string, val any) error
}

// RefTable is the host-side reference allocator FunctionCall(Address,...)
// and the Reference* opcodes delegate to. Without one installed,
// Reference* and FunctionCall(Address) fault with InvalidOperation,
// matching the spec's stance that the reference table is a host concern.
type RefTable interface {
	Allocate(val any) (uint64, error)
	Lookup(id uint64) (any, bool)
	Store(id uint64, val any) error
}

// DebugHook lets a host interpose at instruction boundaries — stepping,
// breakpoints, live mirroring — grounded on the teacher's
// debugger/vm_hook.go VMDebugHook pattern (OnInstruction/OnCall/
// OnReturn/OnError).
type DebugHook interface {
	OnInstruction(instr bytecode.Instruction, flags Flags, stackDepth int) (cont bool)
	OnCall(name string, depth int)
	OnReturn(name string, depth int)
	OnError(err error)
}

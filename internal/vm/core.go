package vm

import "crayfish/internal/stack"

// Core is the single-threaded evaluator state: the operand stack, the
// flags register, and the optional host collaborators. One Core exists
// per Driver run; Environments come and go per call frame and are
// supplied to Step by the driver, not held here.
type Core struct {
	Flags   Flags
	Stack   *stack.Stack
	Globals *Globals
	Host    Host
	Refs    RefTable
	Hook    DebugHook
}

func NewCore(host Host) *Core {
	return &Core{
		Stack:   stack.New(),
		Globals: NewGlobals(),
		Host:    host,
	}
}

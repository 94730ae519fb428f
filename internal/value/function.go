package value

import (
	"fmt"

	"crayfish/internal/bytecode"
	"crayfish/internal/environment"
)

// Function is a callable value: its code, the names its arguments bind
// to, and — when built via ClosureNew — a snapshot of the environment it
// was closed over. A plain NewFunction (no closure) leaves Captured nil;
// call preparation then starts from an empty environment rather than
// merging in stale bindings.
type Function struct {
	Name          string
	ArgumentNames []string
	Code          []bytecode.Instruction
	Captured      *environment.Environment
}

func NewFunction(name string, argumentNames []string, code []bytecode.Instruction) *Function {
	return &Function{
		Name:          name,
		ArgumentNames: append([]string(nil), argumentNames...),
		Code:          code,
	}
}

// WithCapture returns a copy of f closing over a snapshot of env — the
// ClosureNew instruction's effect.
func (f *Function) WithCapture(env *environment.Environment) *Function {
	clone := *f
	clone.Captured = env.Snapshot()
	return &clone
}

func (f *Function) String() string {
	return fmt.Sprintf("<function %s/%d>", f.Name, len(f.ArgumentNames))
}

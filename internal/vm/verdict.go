package vm

import (
	"crayfish/internal/bytecode"
	"crayfish/internal/environment"
	"crayfish/internal/value"
)

// VerdictKind tells the Driver what to do after a Step call.
type VerdictKind int

const (
	VerdictContinue VerdictKind = iota
	VerdictStop
	VerdictReturnFromFrame
	VerdictCall
	VerdictCallByName
	VerdictUnwind
	VerdictJump
	VerdictClosureByName
	VerdictStringRef
)

// Verdict is Step's result: Continue (advance and keep stepping), Stop
// (Halt — unwinds every open frame, the Open Question's chosen answer),
// ReturnFromFrame (pop the current call frame), Call/CallByName (invoke
// a nested function, resuming this frame on return), or Unwind (an
// abort message propagating up through every frame).
type Verdict struct {
	Kind VerdictKind

	// Populated when Kind == VerdictCall: the resolved callee and a
	// prepared call environment — arguments already popped from the
	// stack and bound to parameter names, with any captured closure
	// bindings merged in without shadowing them (FunctionCall's protocol).
	Callee       *value.Function
	PreparedEnv  *environment.Environment

	// Populated when Kind == VerdictCallByName.
	CalleePath bytecode.FunctionPath

	// Populated when Kind == VerdictUnwind.
	Message string

	// Populated when Kind == VerdictJump: the target to apply (Relative
	// is added to the goto instruction's own program counter, Absolute
	// replaces it). Taken is false when the guarding Condition was not
	// satisfied, in which case the driver just advances the PC by one.
	Jump  bytecode.JumpTarget
	Taken bool

	// Populated when Kind == VerdictStringRef: the path the driver must
	// resolve against the module's string table before pushing the
	// result and resuming.
	StringPath bytecode.StringTablePath
}

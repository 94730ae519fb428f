package vm

import (
	"crayfish/internal/bytecode"
	"crayfish/internal/environment"
	"crayfish/internal/value"
	"crayfish/internal/vmerrors"
)

func (c *Core) goTo(imm bytecode.GotoImm) Verdict {
	return Verdict{
		Kind:  VerdictJump,
		Jump:  imm.Target,
		Taken: c.Flags.Satisfied(imm.Condition),
	}
}

func (c *Core) returnInstr(imm bytecode.ReturnImm) Verdict {
	if c.Flags.Satisfied(imm.Condition) {
		return Verdict{Kind: VerdictReturnFromFrame}
	}
	return Verdict{Kind: VerdictContinue}
}

// prepareCall pops N arguments in stack order (topmost = last/rightmost
// parameter) and binds them to callee's parameter names, then merges any
// closure-captured bindings in without shadowing the explicit
// parameters — FunctionCall's binding protocol.
func (c *Core) prepareCall(instr bytecode.Instruction, callee *value.Function) (*environment.Environment, error) {
	n := len(callee.ArgumentNames)
	args := make([]value.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, err := c.Stack.Pop()
		if err != nil {
			return nil, vmerrors.NewTypeMismatch(instr.Pos, "stack underflow preparing call arguments")
		}
		args[i] = v
	}
	env := environment.New()
	for i, name := range callee.ArgumentNames {
		env.Insert(name, args[i])
	}
	if callee.Captured != nil {
		env.MergeMissing(callee.Captured)
	}
	return env, nil
}

func (c *Core) functionCall(instr bytecode.Instruction, imm bytecode.CallImm) (Verdict, error) {
	if !c.Flags.Satisfied(imm.Condition) {
		return Verdict{Kind: VerdictContinue}, nil
	}
	switch imm.Source.Kind {
	case bytecode.SourceName:
		return Verdict{Kind: VerdictCallByName, CalleePath: imm.Source.Name}, nil
	case bytecode.SourceStack:
		top, err := c.Stack.Pop()
		if err != nil {
			return Verdict{}, vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in FunctionCall(Stack)")
		}
		fn, ok := top.(*value.Function)
		if !ok {
			return Verdict{}, vmerrors.NewTypeMismatch(instr.Pos, "FunctionCall(Stack) operand is not a function")
		}
		env, err := c.prepareCall(instr, fn)
		if err != nil {
			return Verdict{}, err
		}
		return Verdict{Kind: VerdictCall, Callee: fn, PreparedEnv: env}, nil
	case bytecode.SourceAddress:
		if c.Refs == nil {
			return Verdict{}, vmerrors.NewInvalidOperation(instr.Pos, "FunctionCall(Address) requires a host reference table")
		}
		top, err := c.Stack.Pop()
		if err != nil {
			return Verdict{}, vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in FunctionCall(Address)")
		}
		ref, ok := top.(value.Reference)
		if !ok {
			return Verdict{}, vmerrors.NewTypeMismatch(instr.Pos, "FunctionCall(Address) operand is not a reference")
		}
		resolved, ok := c.Refs.Lookup(uint64(ref))
		if !ok {
			return Verdict{}, vmerrors.NewInvalidOperation(instr.Pos, "dangling function reference")
		}
		fn, ok := resolved.(*value.Function)
		if !ok {
			return Verdict{}, vmerrors.NewTypeMismatch(instr.Pos, "reference does not resolve to a function")
		}
		env, err := c.prepareCall(instr, fn)
		if err != nil {
			return Verdict{}, err
		}
		return Verdict{Kind: VerdictCall, Callee: fn, PreparedEnv: env}, nil
	default:
		return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
	}
}

// closureNew builds a Function value closing over a snapshot of env.
// SourceStack pops the base function from the stack; SourceName/Address
// are resolved the same way FunctionCall resolves them, then pushed as a
// closed-over Function value rather than invoked.
func (c *Core) closureNew(instr bytecode.Instruction, imm bytecode.ClosureImm, env *environment.Environment) (Verdict, error) {
	switch imm.Source.Kind {
	case bytecode.SourceStack:
		top, err := c.Stack.Pop()
		if err != nil {
			return Verdict{}, vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in ClosureNew")
		}
		fn, ok := top.(*value.Function)
		if !ok {
			return Verdict{}, vmerrors.NewTypeMismatch(instr.Pos, "ClosureNew(Stack) operand is not a function")
		}
		c.Stack.Push(fn.WithCapture(env))
		return Verdict{Kind: VerdictContinue}, nil
	case bytecode.SourceAddress:
		if c.Refs == nil {
			return Verdict{}, vmerrors.NewInvalidOperation(instr.Pos, "ClosureNew(Address) requires a host reference table")
		}
		top, err := c.Stack.Pop()
		if err != nil {
			return Verdict{}, vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in ClosureNew")
		}
		ref, ok := top.(value.Reference)
		if !ok {
			return Verdict{}, vmerrors.NewTypeMismatch(instr.Pos, "ClosureNew(Address) operand is not a reference")
		}
		resolved, ok := c.Refs.Lookup(uint64(ref))
		if !ok {
			return Verdict{}, vmerrors.NewInvalidOperation(instr.Pos, "dangling function reference")
		}
		fn, ok := resolved.(*value.Function)
		if !ok {
			return Verdict{}, vmerrors.NewTypeMismatch(instr.Pos, "reference does not resolve to a function")
		}
		c.Stack.Push(fn.WithCapture(env))
		return Verdict{Kind: VerdictContinue}, nil
	case bytecode.SourceName:
		// a bare name cannot be resolved here without the module tree;
		// the driver resolves it and calls back into BuildClosure.
		return Verdict{Kind: VerdictClosureByName, CalleePath: imm.Source.Name}, nil
	default:
		return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
	}
}

// BuildClosure lets the driver finish a name-resolved ClosureNew once it
// has looked the function up in the module tree.
func BuildClosure(fn *value.Function, env *environment.Environment) *value.Function {
	return fn.WithCapture(env)
}

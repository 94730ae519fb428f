// Package driver implements call_main/call_function-style recursive
// frame invocation on top of internal/vm.Core, grounded on
// original_source/src/machine/mod.rs. Unlike that Rust revision's
// unchecked recursion, depth is bounded here and reported as
// vmerrors.StackOverflow — the host must never crash on runaway
// recursion (spec.md §5).
package driver

import (
	"crayfish/internal/bytecode"
	"crayfish/internal/environment"
	"crayfish/internal/module"
	"crayfish/internal/value"
	"crayfish/internal/vm"
	"crayfish/internal/vmerrors"
)

// DefaultMaxDepth bounds call_function recursion before the driver
// reports vmerrors.StackOverflow instead of exhausting the Go goroutine
// stack.
const DefaultMaxDepth = 4096

// Driver owns one Core and the Module it resolves FunctionCall(Name,...)
// and GetStringRef against.
type Driver struct {
	Core     *vm.Core
	Module   *module.Module
	MaxDepth int
	Hook     vm.DebugHook
}

func New(mod *module.Module, host vm.Host) *Driver {
	return &Driver{
		Core:     vm.NewCore(host),
		Module:   mod,
		MaxDepth: DefaultMaxDepth,
	}
}

// Run resolves entry (default "main") in the module tree and evaluates
// it to completion, returning the fault that stopped it, or nil. Any
// value the program leaves behind stays on d.Core.Stack for the caller.
func (d *Driver) Run(entry string) error {
	if entry == "" {
		entry = "main"
	}
	fn, err := d.Module.GetFunction(bytecode.ParseFunctionPath(entry))
	if err != nil {
		return err
	}
	env := environment.New()
	_, err = d.callFunction(fn, env, 0)
	return err
}

// callFunction executes fn's code from pc=0 in env, recursing into
// nested calls. It returns normally (nil error) on Halt or falling off
// the end of the code, or a fault on any evaluator error — including
// vmerrors.StackOverflow once depth exceeds MaxDepth.
func (d *Driver) callFunction(fn *value.Function, env *environment.Environment, depth int) (vm.Verdict, error) {
	if depth > d.MaxDepth {
		pos := bytecode.Position{}
		if len(fn.Code) > 0 {
			pos = fn.Code[0].Pos
		}
		return vm.Verdict{}, vmerrors.NewStackOverflow(pos)
	}
	if d.Hook != nil {
		d.Hook.OnCall(fn.Name, depth)
	}

	// Flags are a per-frame register (spec.md's Frame.flags): each
	// invocation starts clean and the caller's flags survive the call
	// unaffected by whatever the callee does to its own.
	callerFlags := d.Core.Flags
	d.Core.Flags = vm.Flags{}
	defer func() { d.Core.Flags = callerFlags }()

	pc := 0
	for pc < len(fn.Code) {
		instr := fn.Code[pc]

		if d.Hook != nil {
			if !d.Hook.OnInstruction(instr, d.Core.Flags, d.Core.Stack.Len()) {
				return vm.Verdict{}, vmerrors.NewUnwind(instr.Pos, "halted by debug hook")
			}
		}

		verdict, err := d.Core.Step(instr, env)
		if err != nil {
			if d.Hook != nil {
				d.Hook.OnError(err)
			}
			return vm.Verdict{}, err
		}

		switch verdict.Kind {
		case vm.VerdictContinue:
			pc++

		case vm.VerdictJump:
			if !verdict.Taken {
				pc++
				continue
			}
			switch verdict.Jump.Kind {
			case bytecode.JumpRelative:
				pc = pc + verdict.Jump.Delta
			case bytecode.JumpAbsolute:
				pc = verdict.Jump.Addr
			}
			if pc < 0 || pc > len(fn.Code) {
				return vm.Verdict{}, vmerrors.NewInvalidJump(instr.Pos)
			}

		case vm.VerdictStop:
			if d.Hook != nil {
				d.Hook.OnReturn(fn.Name, depth)
			}
			return verdict, nil

		case vm.VerdictReturnFromFrame:
			if d.Hook != nil {
				d.Hook.OnReturn(fn.Name, depth)
			}
			return verdict, nil

		case vm.VerdictCall:
			nested, err := d.callFunction(verdict.Callee, verdict.PreparedEnv, depth+1)
			if err != nil {
				return vm.Verdict{}, err
			}
			if nested.Kind == vm.VerdictStop {
				// Halt unwinds every open frame, not just the callee's.
				return nested, nil
			}
			pc++

		case vm.VerdictCallByName:
			callee, err := d.Module.GetFunction(verdict.CalleePath)
			if err != nil {
				return vm.Verdict{}, vmerrors.NewFunctionNotFound(instr.Pos, verdict.CalleePath)
			}
			preparedEnv, err := d.prepareCallEnv(instr, callee)
			if err != nil {
				return vm.Verdict{}, err
			}
			nested, err := d.callFunction(callee, preparedEnv, depth+1)
			if err != nil {
				return vm.Verdict{}, err
			}
			if nested.Kind == vm.VerdictStop {
				return nested, nil
			}
			pc++

		case vm.VerdictClosureByName:
			callee, err := d.Module.GetFunction(verdict.CalleePath)
			if err != nil {
				return vm.Verdict{}, vmerrors.NewFunctionNotFound(instr.Pos, verdict.CalleePath)
			}
			d.Core.Stack.Push(vm.BuildClosure(callee, env))
			pc++

		case vm.VerdictStringRef:
			s, err := d.Module.GetString(verdict.StringPath)
			if err != nil {
				return vm.Verdict{}, vmerrors.NewInvalidString(instr.Pos, verdict.StringPath)
			}
			d.Core.Stack.Push(s)
			pc++

		case vm.VerdictUnwind:
			return verdict, vmerrors.NewUnwind(instr.Pos, verdict.Message)

		default:
			return vm.Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
	}

	if d.Hook != nil {
		d.Hook.OnReturn(fn.Name, depth)
	}
	return vm.Verdict{Kind: vm.VerdictReturnFromFrame}, nil
}

// prepareCallEnv binds arguments for a name-resolved call the same way
// vm.Core.prepareCall does for a stack/address-resolved one — the driver
// needs its own copy since the module lookup happens outside Core.
func (d *Driver) prepareCallEnv(instr bytecode.Instruction, callee *value.Function) (*environment.Environment, error) {
	n := len(callee.ArgumentNames)
	args := make([]value.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, err := d.Core.Stack.Pop()
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

package vm

import (
	"crayfish/internal/bytecode"
	"crayfish/internal/environment"
	"crayfish/internal/numtower"
	"crayfish/internal/value"
	"crayfish/internal/vmerrors"
)

// cont is a shorthand Verdict for the common "advance to the next
// instruction" case.
var cont = Verdict{Kind: VerdictContinue}

// Step executes a single instruction against env (the current frame's
// bindings) and reports what the driver should do next. This mirrors
// original_source/src/machine/core.rs::execute_instruction, extended
// with the full Call/Return/ClosureNew protocol the spec's Driver
// section requires (the Rust revision this was distilled from left
// Unwind/Call handling as todo!() stubs).
func (c *Core) Step(instr bytecode.Instruction, env *environment.Environment) (Verdict, error) {
	switch instr.Op {
	case bytecode.Halt:
		return Verdict{Kind: VerdictStop}, nil

	case bytecode.NoOp:
		return cont, nil

	case bytecode.Push:
		imm, ok := instr.Imm.(bytecode.PushImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		c.Stack.Push(imm.Value)
		return cont, nil

	case bytecode.Pop:
		if _, err := c.Stack.Pop(); err != nil {
			return Verdict{}, vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in Pop")
		}
		return cont, nil

	case bytecode.Duplicate:
		top, err := c.Stack.Peek()
		if err != nil {
			return Verdict{}, vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in Duplicate")
		}
		c.Stack.Push(value.Clone(top))
		return cont, nil

	case bytecode.TupleNew:
		if err := c.tupleNew(instr); err != nil {
			return Verdict{}, err
		}
		return cont, nil

	case bytecode.TupleGet:
		if err := c.tupleGet(instr); err != nil {
			return Verdict{}, err
		}
		return cont, nil

	case bytecode.VectorNew:
		imm, ok := instr.Imm.(bytecode.VectorNewImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		if err := c.vectorNew(instr, imm); err != nil {
			return Verdict{}, err
		}
		return cont, nil

	case bytecode.VectorGet:
		if err := c.vectorGet(instr); err != nil {
			return Verdict{}, err
		}
		return cont, nil

	case bytecode.VectorSet:
		if err := c.vectorSet(instr); err != nil {
			return Verdict{}, err
		}
		return cont, nil

	case bytecode.VectorLength:
		if err := c.vectorLength(instr); err != nil {
			return Verdict{}, err
		}
		return cont, nil

	case bytecode.ProductNew:
		imm, ok := instr.Imm.(bytecode.ProductNewImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		if err := c.productNew(instr, imm); err != nil {
			return Verdict{}, err
		}
		return cont, nil

	case bytecode.ProductGet:
		imm, ok := instr.Imm.(bytecode.ProductGetImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		if err := c.productGet(instr, imm.Field); err != nil {
			return Verdict{}, err
		}
		return cont, nil

	case bytecode.ProductSet:
		imm, ok := instr.Imm.(bytecode.ProductSetImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		if err := c.productSet(instr, imm.Index); err != nil {
			return Verdict{}, err
		}
		return cont, nil

	case bytecode.SumNew:
		imm, ok := instr.Imm.(bytecode.SumNewImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		if err := c.sumNew(instr, imm); err != nil {
			return Verdict{}, err
		}
		return cont, nil

	case bytecode.SumGet:
		imm, ok := instr.Imm.(bytecode.SumFieldImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		if err := c.sumGet(instr, imm.Field); err != nil {
			return Verdict{}, err
		}
		return cont, nil

	case bytecode.SumSet:
		imm, ok := instr.Imm.(bytecode.SumFieldImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		if err := c.sumSet(instr, imm.Field); err != nil {
			return Verdict{}, err
		}
		return cont, nil

	case bytecode.FunctionCall:
		imm, ok := instr.Imm.(bytecode.CallImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		return c.functionCall(instr, imm)

	case bytecode.Return:
		imm, ok := instr.Imm.(bytecode.ReturnImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		return c.returnInstr(imm), nil

	case bytecode.ClosureNew:
		imm, ok := instr.Imm.(bytecode.ClosureImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		return c.closureNew(instr, imm, env)

	case bytecode.ReferenceNew, bytecode.ReferenceGet, bytecode.ReferenceSet, bytecode.ReferenceSetShared:
		if err := c.referenceOp(instr, instr.Op); err != nil {
			return Verdict{}, err
		}
		return cont, nil

	case bytecode.IntegerNew:
		imm, ok := instr.Imm.(bytecode.IntegerImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		c.Stack.Push(imm.Value)
		return cont, nil

	case bytecode.IntegerAdd:
		return cont, c.integerBinOp(instr, numtower.OpAdd)
	case bytecode.IntegerSub:
		return cont, c.integerBinOp(instr, numtower.OpSub)
	case bytecode.IntegerMul:
		return cont, c.integerBinOp(instr, numtower.OpMul)
	case bytecode.IntegerDiv:
		return cont, c.integerBinOp(instr, numtower.OpDiv)
	case bytecode.IntegerMod:
		return cont, c.integerBinOp(instr, numtower.OpMod)
	case bytecode.IntegerAnd:
		return cont, c.integerBinOp(instr, numtower.OpAnd)
	case bytecode.IntegerOr:
		return cont, c.integerBinOp(instr, numtower.OpOr)
	case bytecode.IntegerXor:
		return cont, c.integerBinOp(instr, numtower.OpXor)
	case bytecode.IntegerShl:
		return cont, c.integerBinOp(instr, numtower.OpShl)
	case bytecode.IntegerShr:
		return cont, c.integerBinOp(instr, numtower.OpShr)
	case bytecode.IntegerNegate:
		return cont, c.integerUnaryOp(instr, numtower.Negate)
	case bytecode.IntegerNot:
		return cont, c.integerUnaryOp(instr, numtower.Not)
	case bytecode.IntegerPow:
		return cont, c.integerPow(instr)

	case bytecode.DecimalNew:
		imm, ok := instr.Imm.(bytecode.DecimalImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		c.Stack.Push(imm.Value)
		return cont, nil

	case bytecode.DecimalAdd:
		return cont, c.decimalBinOp(instr, numtower.OpAdd)
	case bytecode.DecimalSub:
		return cont, c.decimalBinOp(instr, numtower.OpSub)
	case bytecode.DecimalMul:
		return cont, c.decimalBinOp(instr, numtower.OpMul)
	case bytecode.DecimalDiv:
		return cont, c.decimalBinOp(instr, numtower.OpDiv)
	case bytecode.DecimalNegate:
		return cont, c.decimalNegate(instr)
	case bytecode.DecimalPow:
		return cont, c.decimalPow(instr)

	case bytecode.StringNew:
		imm, ok := instr.Imm.(bytecode.StringImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		c.Stack.Push(imm.Value)
		return cont, nil
	case bytecode.StringConcat:
		return cont, c.stringConcat(instr)
	case bytecode.StringLength:
		return cont, c.stringLength(instr)

	case bytecode.BooleanNew:
		imm, ok := instr.Imm.(bytecode.BooleanImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		c.Stack.Push(imm.Value)
		return cont, nil
	case bytecode.BooleanAnd:
		return cont, c.booleanBinOp(instr, true)
	case bytecode.BooleanOr:
		return cont, c.booleanBinOp(instr, false)
	case bytecode.BooleanNot:
		return cont, c.booleanNot(instr)

	case bytecode.CharacterNew:
		imm, ok := instr.Imm.(bytecode.CharacterImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		c.Stack.Push(imm.Value)
		return cont, nil

	case bytecode.RequestValue:
		imm, ok := instr.Imm.(bytecode.NameImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		if c.Host == nil {
			return Verdict{}, vmerrors.NewInvalidOperation(instr.Pos, "no host installed")
		}
		v, err := c.Host.RequestValue(imm.Name)
		if err != nil {
			return Verdict{}, vmerrors.NewMemoryError(instr.Pos, err.Error())
		}
		c.Stack.Push(v)
		return cont, nil

	case bytecode.SetValue:
		imm, ok := instr.Imm.(bytecode.NameImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		if c.Host == nil {
			return Verdict{}, vmerrors.NewInvalidOperation(instr.Pos, "no host installed")
		}
		v, err := c.Stack.Pop()
		if err != nil {
			return Verdict{}, vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in SetValue")
		}
		if err := c.Host.SetValue(imm.Name, v); err != nil {
			return Verdict{}, vmerrors.NewMemoryError(instr.Pos, err.Error())
		}
		return cont, nil

	case bytecode.Compare:
		imm, ok := instr.Imm.(bytecode.CompareImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		return cont, c.compare(instr, imm.Kind)

	case bytecode.Goto:
		imm, ok := instr.Imm.(bytecode.GotoImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		return c.goTo(imm), nil

	case bytecode.Store:
		imm, ok := instr.Imm.(bytecode.NameImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		v, err := c.Stack.Pop()
		if err != nil {
			return Verdict{}, vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in Store")
		}
		env.Insert(imm.Name, v)
		return cont, nil

	case bytecode.Lookup:
		imm, ok := instr.Imm.(bytecode.NameImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		v, ok := env.Get(imm.Name)
		if !ok {
			return Verdict{}, vmerrors.NewNameNotFound(instr.Pos, imm.Name)
		}
		c.Stack.Push(value.Clone(v))
		return cont, nil

	case bytecode.GlobalStore:
		imm, ok := instr.Imm.(bytecode.NameImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		v, err := c.Stack.Pop()
		if err != nil {
			return Verdict{}, vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in GlobalStore")
		}
		c.Globals.Store(imm.Name, v)
		return cont, nil

	case bytecode.GlobalLookup:
		imm, ok := instr.Imm.(bytecode.NameImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		v, ok := c.Globals.Lookup(imm.Name)
		if !ok {
			return Verdict{}, vmerrors.NewNameNotFound(instr.Pos, imm.Name)
		}
		c.Stack.Push(v)
		return cont, nil

	case bytecode.Write:
		if c.Host == nil {
			return Verdict{}, vmerrors.NewInvalidOperation(instr.Pos, "no host installed")
		}
		v, err := c.Stack.Pop()
		if err != nil {
			return Verdict{}, vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in Write")
		}
		if err := c.Host.Write(value.Display(v)); err != nil {
			return Verdict{}, vmerrors.NewMemoryError(instr.Pos, err.Error())
		}
		return cont, nil

	case bytecode.Read:
		if c.Host == nil {
			return Verdict{}, vmerrors.NewInvalidOperation(instr.Pos, "no host installed")
		}
		s, err := c.Host.Read()
		if err != nil {
			return Verdict{}, vmerrors.NewMemoryError(instr.Pos, err.Error())
		}
		c.Stack.Push(s)
		return cont, nil

	case bytecode.GetStringRef:
		// resolved by the driver, which owns the module's string table;
		// Step reports the path so the driver can push the resolved
		// string and resume.
		imm, ok := instr.Imm.(bytecode.StringRefImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		return Verdict{Kind: VerdictStringRef, StringPath: imm.Path}, nil

	case bytecode.Cast:
		imm, ok := instr.Imm.(bytecode.CastImm)
		if !ok {
			return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
		}
		return cont, c.cast(instr, imm)

	default:
		return Verdict{}, vmerrors.NewInvalidInstruction(instr.Pos)
	}
}

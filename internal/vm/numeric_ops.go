package vm

import (
	"crayfish/internal/bytecode"
	"crayfish/internal/numtower"
	"crayfish/internal/value"
	"crayfish/internal/vmerrors"
)

// integerBinOp pops right then left, requires both are numtower.Integer
// of the same kind, computes op, sets Zero/Negative from the RESULT (not
// the inputs — original_source's basic_alu_op! macro), and pushes the
// result back. Division/modulo by zero is reported as DivisionByZero
// without mutating the flags.
func (c *Core) integerBinOp(instr bytecode.Instruction, op numtower.BinOp) error {
	right, err := c.popInteger(instr)
	if err != nil {
		return err
	}
	left, err := c.popInteger(instr)
	if err != nil {
		return err
	}
	result, err := numtower.Arith(op, left, right)
	if err != nil {
		if err == numtower.ErrDivisionByZero {
			return vmerrors.NewDivisionByZero(instr.Pos)
		}
		return vmerrors.NewNotAnInteger(instr.Pos)
	}
	c.Flags.SetFromResult(result.IsZero(), result.IsNegative())
	c.Stack.Push(result)
	return nil
}

func (c *Core) integerUnaryOp(instr bytecode.Instruction, fn func(numtower.Integer) (numtower.Integer, error)) error {
	operand, err := c.popInteger(instr)
	if err != nil {
		return err
	}
	result, err := fn(operand)
	if err != nil {
		return vmerrors.NewNotAnInteger(instr.Pos)
	}
	c.Flags.SetFromResult(result.IsZero(), result.IsNegative())
	c.Stack.Push(result)
	return nil
}

func (c *Core) integerPow(instr bytecode.Instruction) error {
	exponent, err := c.popInteger(instr)
	if err != nil {
		return err
	}
	base, err := c.popInteger(instr)
	if err != nil {
		return err
	}
	result, err := numtower.Pow(base, exponent)
	if err != nil {
		return vmerrors.NewNotAnInteger(instr.Pos)
	}
	c.Flags.SetFromResult(result.IsZero(), result.IsNegative())
	c.Stack.Push(result)
	return nil
}

func (c *Core) decimalBinOp(instr bytecode.Instruction, op numtower.BinOp) error {
	right, err := c.popDecimal(instr)
	if err != nil {
		return err
	}
	left, err := c.popDecimal(instr)
	if err != nil {
		return err
	}
	result, err := numtower.DecimalArith(op, left, right)
	if err != nil {
		if err == numtower.ErrDivisionByZero {
			return vmerrors.NewDivisionByZero(instr.Pos)
		}
		return vmerrors.NewTypeMismatch(instr.Pos, err.Error())
	}
	c.Flags.SetFromResult(result.IsZero(), result.IsNegative())
	c.Stack.Push(result)
	return nil
}

func (c *Core) decimalNegate(instr bytecode.Instruction) error {
	operand, err := c.popDecimal(instr)
	if err != nil {
		return err
	}
	result := numtower.DecimalNegate(operand)
	c.Flags.SetFromResult(result.IsZero(), result.IsNegative())
	c.Stack.Push(result)
	return nil
}

func (c *Core) decimalPow(instr bytecode.Instruction) error {
	exponent, err := c.popInteger(instr)
	if err != nil {
		return err
	}
	base, err := c.popDecimal(instr)
	if err != nil {
		return err
	}
	result, err := numtower.Exponentiate(base, exponent)
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, err.Error())
	}
	c.Flags.SetFromResult(result.IsZero(), result.IsNegative())
	c.Stack.Push(result)
	return nil
}

// compare pops right then left, tests the relation named by kind, sets
// Flags.Comparison to kind on true or to the table's complement on
// false (spec.md's Comparison table; original_source/src/machine/core.rs's
// compare() sets the same complement per kind), then pushes left and
// right back unchanged, in that order.
func (c *Core) compare(instr bytecode.Instruction, kind bytecode.ComparisonType) error {
	right, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in Compare")
	}
	left, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in Compare")
	}
	eq, err := value.Equal(left, right)
	if err != nil {
		c.Stack.Push(left)
		c.Stack.Push(right)
		return vmerrors.NewTypeMismatch(instr.Pos, err.Error())
	}
	var less bool
	if !eq {
		less, err = value.Less(left, right)
		if err != nil {
			c.Stack.Push(left)
			c.Stack.Push(right)
			return vmerrors.NewTypeMismatch(instr.Pos, err.Error())
		}
	}
	greater := !eq && !less

	var holds bool
	switch kind {
	case bytecode.CompareEqual:
		holds = eq
	case bytecode.CompareNotEqual:
		holds = !eq
	case bytecode.CompareLessThan:
		holds = less
	case bytecode.CompareLessThanOrEqual:
		holds = less || eq
	case bytecode.CompareGreaterThan:
		holds = greater
	case bytecode.CompareGreaterThanOrEqual:
		holds = greater || eq
	default:
		c.Stack.Push(left)
		c.Stack.Push(right)
		return vmerrors.NewInvalidInstruction(instr.Pos)
	}

	if holds {
		c.Flags.SetComparison(kind)
	} else {
		c.Flags.SetComparison(compareComplement(kind))
	}
	c.Stack.Push(left)
	c.Stack.Push(right)
	return nil
}

// compareComplement is the "flag on false" column of spec.md's
// Comparison table.
func compareComplement(kind bytecode.ComparisonType) bytecode.ComparisonType {
	switch kind {
	case bytecode.CompareEqual:
		return bytecode.CompareNotEqual
	case bytecode.CompareNotEqual:
		return bytecode.CompareEqual
	case bytecode.CompareLessThan:
		return bytecode.CompareGreaterThanOrEqual
	case bytecode.CompareLessThanOrEqual:
		return bytecode.CompareGreaterThan
	case bytecode.CompareGreaterThan:
		return bytecode.CompareLessThanOrEqual
	case bytecode.CompareGreaterThanOrEqual:
		return bytecode.CompareLessThan
	default:
		return kind
	}
}

func (c *Core) popInteger(instr bytecode.Instruction) (numtower.Integer, error) {
	v, err := c.Stack.Pop()
	if err != nil {
		return numtower.Integer{}, vmerrors.NewNotAnInteger(instr.Pos)
	}
	i, ok := v.(numtower.Integer)
	if !ok {
		return numtower.Integer{}, vmerrors.NewNotAnInteger(instr.Pos)
	}
	return i, nil
}

func (c *Core) popDecimal(instr bytecode.Instruction) (numtower.Decimal, error) {
	v, err := c.Stack.Pop()
	if err != nil {
		return numtower.Decimal{}, vmerrors.NewTypeMismatch(instr.Pos, "stack underflow")
	}
	d, ok := v.(numtower.Decimal)
	if !ok {
		return numtower.Decimal{}, vmerrors.NewTypeMismatch(instr.Pos, "not a decimal")
	}
	return d, nil
}

// cast applies Cast(Target) to the top-of-stack value. Target is a
// numtower.TargetKind for numeric casts.
func (c *Core) cast(instr bytecode.Instruction, imm bytecode.CastImm) error {
	top, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in Cast")
	}
	target, ok := imm.Target.(numtower.TargetKind)
	if !ok {
		return vmerrors.NewTypeMismatch(instr.Pos, "unsupported cast target")
	}
	switch src := top.(type) {
	case numtower.Integer:
		if target.IsDecimal {
			c.Stack.Push(numtower.CastIntegerToDecimal(src, target.Dec))
		} else {
			c.Stack.Push(numtower.CastInteger(src, target.Int))
		}
	case numtower.Decimal:
		if target.IsDecimal {
			c.Stack.Push(numtower.CastDecimal(src, target.Dec))
		} else {
			c.Stack.Push(numtower.CastDecimalToInteger(src, target.Int))
		}
	default:
		return vmerrors.NewTypeMismatch(instr.Pos, "cast only applies to numeric values")
	}
	return nil
}

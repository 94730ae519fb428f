package vm

import (
	"crayfish/internal/bytecode"
	"crayfish/internal/numtower"
	"crayfish/internal/value"
	"crayfish/internal/vmerrors"
)

// vectorZero returns the zero value for one element of a vector of the
// given declared element kind (spec.md's VectorNew: "pushes a
// zero-initialised vector of the declared element kind").
func vectorZero(ty bytecode.VectorType) value.Value {
	switch ty {
	case bytecode.VectorOfInteger:
		return numtower.NewI32(0)
	case bytecode.VectorOfDecimal:
		return numtower.NewF64(0)
	case bytecode.VectorOfString:
		return ""
	case bytecode.VectorOfBoolean:
		return false
	case bytecode.VectorOfCharacter:
		return rune(0)
	default:
		return nil
	}
}

func (c *Core) vectorNew(instr bytecode.Instruction, imm bytecode.VectorNewImm) error {
	size, err := c.popInteger(instr)
	if err != nil {
		return err
	}
	n := int(size.I64())
	if n < 0 {
		return vmerrors.NewTypeMismatch(instr.Pos, "VectorNew size must not be negative")
	}
	zero := vectorZero(imm.ElementType)
	elements := make([]value.Value, n)
	for i := range elements {
		elements[i] = zero
	}
	c.Stack.Push(value.NewVector(elements))
	return nil
}

func (c *Core) vectorGet(instr bytecode.Instruction) error {
	idx, err := c.popInteger(instr)
	if err != nil {
		return err
	}
	top, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in VectorGet")
	}
	vec, ok := top.(*value.Vector)
	if !ok {
		return vmerrors.NewTypeMismatch(instr.Pos, "VectorGet on a non-vector")
	}
	elem, err := vec.Get(int(idx.I64()))
	if err != nil {
		c.Stack.Push(vec)
		return vmerrors.NewOutOfBounds(instr.Pos, int(idx.I64()), vec.Len())
	}
	c.Stack.Push(vec)
	c.Stack.Push(elem)
	return nil
}

func (c *Core) vectorSet(instr bytecode.Instruction) error {
	newVal, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in VectorSet")
	}
	idx, err := c.popInteger(instr)
	if err != nil {
		return err
	}
	top, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in VectorSet")
	}
	vec, ok := top.(*value.Vector)
	if !ok {
		return vmerrors.NewTypeMismatch(instr.Pos, "VectorSet on a non-vector")
	}
	if i := int(idx.I64()); i < 0 || i >= vec.Len() {
		c.Stack.Push(vec)
		return vmerrors.NewOutOfBounds(instr.Pos, i, vec.Len())
	}
	if err := vec.Set(int(idx.I64()), newVal); err != nil {
		c.Stack.Push(vec)
		return vmerrors.NewTypeMismatch(instr.Pos, err.Error())
	}
	c.Stack.Push(vec)
	return nil
}

func (c *Core) vectorLength(instr bytecode.Instruction) error {
	top, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in VectorLength")
	}
	vec, ok := top.(*value.Vector)
	if !ok {
		return vmerrors.NewTypeMismatch(instr.Pos, "VectorLength on a non-vector")
	}
	c.Stack.Push(vec)
	c.Stack.Push(intLen(vec.Len()))
	return nil
}

// tupleNew pops N (a runtime Integer) then pops N values in reverse order
// to fill the tuple (spec.md's TupleNew).
func (c *Core) tupleNew(instr bytecode.Instruction) error {
	count, err := c.popInteger(instr)
	if err != nil {
		return err
	}
	n := int(count.I64())
	if n < 0 {
		return vmerrors.NewTypeMismatch(instr.Pos, "TupleNew count must not be negative")
	}
	elements := make([]value.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, err := c.Stack.Pop()
		if err != nil {
			return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in TupleNew")
		}
		elements[i] = v
	}
	c.Stack.Push(value.NewTuple(elements))
	return nil
}

func (c *Core) tupleGet(instr bytecode.Instruction) error {
	idx, err := c.popInteger(instr)
	if err != nil {
		return err
	}
	top, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in TupleGet")
	}
	tup, ok := top.(*value.Tuple)
	if !ok {
		return vmerrors.NewTypeMismatch(instr.Pos, "TupleGet on a non-tuple")
	}
	elem, err := tup.Get(int(idx.I64()))
	if err != nil {
		c.Stack.Push(tup)
		return vmerrors.NewOutOfBounds(instr.Pos, int(idx.I64()), tup.Len())
	}
	c.Stack.Push(tup)
	c.Stack.Push(elem)
	return nil
}

func (c *Core) productNew(instr bytecode.Instruction, imm bytecode.ProductNewImm) error {
	fields := make(map[string]value.Value, len(imm.Order))
	for i := len(imm.Order) - 1; i >= 0; i-- {
		v, err := c.Stack.Pop()
		if err != nil {
			return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in ProductNew")
		}
		fields[imm.Order[i]] = v
	}
	c.Stack.Push(value.NewProduct(imm.Name, imm.Order, fields))
	return nil
}

func (c *Core) productGet(instr bytecode.Instruction, field string) error {
	top, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in ProductGet")
	}
	prod, ok := top.(*value.Product)
	if !ok {
		return vmerrors.NewTypeMismatch(instr.Pos, "ProductGet on a non-product")
	}
	fieldVal, err := prod.GetByName(field)
	if err != nil {
		c.Stack.Push(prod)
		return vmerrors.NewTypeMismatch(instr.Pos, err.Error())
	}
	c.Stack.Push(prod)
	c.Stack.Push(fieldVal)
	return nil
}

func (c *Core) productSet(instr bytecode.Instruction, index int) error {
	newVal, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in ProductSet")
	}
	top, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in ProductSet")
	}
	prod, ok := top.(*value.Product)
	if !ok {
		return vmerrors.NewTypeMismatch(instr.Pos, "ProductSet on a non-product")
	}
	if err := prod.SetByIndex(index, newVal); err != nil {
		c.Stack.Push(prod)
		return vmerrors.NewOutOfBounds(instr.Pos, index, len(prod.Order))
	}
	c.Stack.Push(prod)
	return nil
}

func (c *Core) sumNew(instr bytecode.Instruction, imm bytecode.SumNewImm) error {
	fields := make(map[string]value.Value, len(imm.Order))
	for i := len(imm.Order) - 1; i >= 0; i-- {
		v, err := c.Stack.Pop()
		if err != nil {
			return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in SumNew")
		}
		fields[imm.Order[i]] = v
	}
	c.Stack.Push(value.NewSum(imm.Name, imm.Tag, imm.Order, fields))
	return nil
}

func (c *Core) sumGet(instr bytecode.Instruction, field string) error {
	top, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in SumGet")
	}
	sum, ok := top.(*value.Sum)
	if !ok {
		return vmerrors.NewTypeMismatch(instr.Pos, "SumGet on a non-sum")
	}
	fieldVal, err := sum.GetByName(field)
	if err != nil {
		c.Stack.Push(sum)
		return vmerrors.NewTypeMismatch(instr.Pos, err.Error())
	}
	c.Stack.Push(sum)
	c.Stack.Push(fieldVal)
	return nil
}

func (c *Core) sumSet(instr bytecode.Instruction, field string) error {
	newVal, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in SumSet")
	}
	top, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in SumSet")
	}
	sum, ok := top.(*value.Sum)
	if !ok {
		return vmerrors.NewTypeMismatch(instr.Pos, "SumSet on a non-sum")
	}
	if err := sum.SetByName(field, newVal); err != nil {
		c.Stack.Push(sum)
		return vmerrors.NewTypeMismatch(instr.Pos, err.Error())
	}
	c.Stack.Push(sum)
	return nil
}

func (c *Core) stringConcat(instr bytecode.Instruction) error {
	right, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in StringConcat")
	}
	left, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in StringConcat")
	}
	ls, ok := left.(string)
	if !ok {
		return vmerrors.NewTypeMismatch(instr.Pos, "StringConcat operand is not a string")
	}
	rs, ok := right.(string)
	if !ok {
		return vmerrors.NewTypeMismatch(instr.Pos, "StringConcat operand is not a string")
	}
	c.Stack.Push(ls + rs)
	return nil
}

func (c *Core) stringLength(instr bytecode.Instruction) error {
	top, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in StringLength")
	}
	s, ok := top.(string)
	if !ok {
		return vmerrors.NewTypeMismatch(instr.Pos, "StringLength on a non-string")
	}
	c.Stack.Push(s)
	c.Stack.Push(intLen(len(s)))
	return nil
}

func (c *Core) booleanBinOp(instr bytecode.Instruction, and bool) error {
	right, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow")
	}
	left, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow")
	}
	lb, ok := left.(bool)
	if !ok {
		return vmerrors.NewTypeMismatch(instr.Pos, "operand is not a boolean")
	}
	rb, ok := right.(bool)
	if !ok {
		return vmerrors.NewTypeMismatch(instr.Pos, "operand is not a boolean")
	}
	if and {
		c.Stack.Push(lb && rb)
	} else {
		c.Stack.Push(lb || rb)
	}
	return nil
}

func (c *Core) booleanNot(instr bytecode.Instruction) error {
	top, err := c.Stack.Pop()
	if err != nil {
		return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow")
	}
	b, ok := top.(bool)
	if !ok {
		return vmerrors.NewTypeMismatch(instr.Pos, "operand is not a boolean")
	}
	c.Stack.Push(!b)
	return nil
}

func (c *Core) referenceOp(instr bytecode.Instruction, op bytecode.OpCode) error {
	if c.Refs == nil {
		return vmerrors.NewInvalidOperation(instr.Pos, "no reference table installed")
	}
	switch op {
	case bytecode.ReferenceNew:
		top, err := c.Stack.Pop()
		if err != nil {
			return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in ReferenceNew")
		}
		id, err := c.Refs.Allocate(top)
		if err != nil {
			return vmerrors.NewMemoryError(instr.Pos, err.Error())
		}
		c.Stack.Push(value.Reference(id))
		return nil
	case bytecode.ReferenceGet:
		top, err := c.Stack.Pop()
		if err != nil {
			return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in ReferenceGet")
		}
		ref, ok := top.(value.Reference)
		if !ok {
			return vmerrors.NewTypeMismatch(instr.Pos, "ReferenceGet on a non-reference")
		}
		v, ok := c.Refs.Lookup(uint64(ref))
		if !ok {
			return vmerrors.NewInvalidOperation(instr.Pos, "dangling reference")
		}
		c.Stack.Push(v)
		return nil
	case bytecode.ReferenceSet, bytecode.ReferenceSetShared:
		newVal, err := c.Stack.Pop()
		if err != nil {
			return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in ReferenceSet")
		}
		top, err := c.Stack.Pop()
		if err != nil {
			return vmerrors.NewTypeMismatch(instr.Pos, "stack underflow in ReferenceSet")
		}
		ref, ok := top.(value.Reference)
		if !ok {
			return vmerrors.NewTypeMismatch(instr.Pos, "ReferenceSet on a non-reference")
		}
		if err := c.Refs.Store(uint64(ref), newVal); err != nil {
			return vmerrors.NewMemoryError(instr.Pos, err.Error())
		}
		return nil
	default:
		return vmerrors.NewInvalidInstruction(instr.Pos)
	}
}

func intLen(n int) value.Value {
	return numtower.NewI64(int64(n))
}

// Package vm implements the single-threaded bytecode evaluator: the
// Flags register, the Step dispatch loop, and the Host/DebugHook
// interposition contracts. Grounded on
// original_source/src/machine/core.rs (execute_instruction, can_jump,
// the basic_alu_op! macro family).
package vm

import "crayfish/internal/bytecode"

// Flags is the evaluator's condition register, set by Compare and by
// every arithmetic op from its own result (original_source's
// basic_alu_op! macro sets zero/negative from the computed value, not
// from the inputs).
type Flags struct {
	Comparison    bytecode.ComparisonType
	HasComparison bool
	Negative      bool
	Zero          bool
}

// SetFromResult updates Zero/Negative from an arithmetic result, the
// same side effect every integer/decimal ALU op applies.
func (f *Flags) SetFromResult(isZero, isNegative bool) {
	f.Zero = isZero
	f.Negative = isNegative
}

// SetComparison records the satisfied relation between the last two
// Compare operands (not its complement).
func (f *Flags) SetComparison(kind bytecode.ComparisonType) {
	f.Comparison = kind
	f.HasComparison = true
}

// Satisfied reports whether cond holds against the current flags,
// grounded on original_source's can_jump — direct equality against the
// named relation for all six comparison conditions, never a derived
// check, since compare() already resolved the complement on false.
func (f *Flags) Satisfied(cond bytecode.Condition) bool {
	switch cond {
	case bytecode.Always:
		return true
	case bytecode.Zero:
		return f.Zero
	case bytecode.NotZero:
		return !f.Zero
	case bytecode.Negative:
		return f.Negative
	case bytecode.NotNegative:
		return !f.Negative
	case bytecode.Equal:
		return f.HasComparison && f.Comparison == bytecode.CompareEqual
	case bytecode.NotEqual:
		return f.HasComparison && f.Comparison == bytecode.CompareNotEqual
	case bytecode.GreaterThan:
		return f.HasComparison && f.Comparison == bytecode.CompareGreaterThan
	case bytecode.GreaterThanOrEqual:
		return f.HasComparison && f.Comparison == bytecode.CompareGreaterThanOrEqual
	case bytecode.LessThan:
		return f.HasComparison && f.Comparison == bytecode.CompareLessThan
	case bytecode.LessThanOrEqual:
		return f.HasComparison && f.Comparison == bytecode.CompareLessThanOrEqual
	default:
		return false
	}
}

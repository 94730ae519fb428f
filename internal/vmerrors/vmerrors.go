// Package vmerrors implements the evaluator's fault taxonomy, grounded
// on the teacher's internal/errors.SentraError (type + message +
// location + call stack) and on machine::Fault in original_source.
package vmerrors

import (
	"fmt"

	"crayfish/internal/bytecode"
)

// Fault is implemented by every concrete fault type below. Position
// identifies the instruction that raised it.
type Fault interface {
	error
	Position() bytecode.Position
}

type base struct {
	Pos bytecode.Position
}

func (b base) Position() bytecode.Position { return b.Pos }

// DivisionByZero is raised by IntegerDiv/IntegerMod when the divisor is
// zero, and by DecimalDiv when a Rational divisor is zero (F32/F64
// division by zero yields an infinity instead).
type DivisionByZero struct{ base }

func (e DivisionByZero) Error() string {
	return fmt.Sprintf("division by zero at %d:%d", e.Pos.Row, e.Pos.Column)
}

func NewDivisionByZero(pos bytecode.Position) DivisionByZero {
	return DivisionByZero{base{pos}}
}

// StackOverflow is raised when the driver's recursion depth counter
// exceeds its configured bound — a deviation from the original's
// unchecked Rust recursion, added because the host must never crash the
// process on runaway recursion.
type StackOverflow struct{ base }

func (e StackOverflow) Error() string {
	return fmt.Sprintf("stack overflow at %d:%d", e.Pos.Row, e.Pos.Column)
}

func NewStackOverflow(pos bytecode.Position) StackOverflow { return StackOverflow{base{pos}} }

// Overflow/Underflow cover fixed-width arithmetic that wraps outside the
// spec's defined wraparound semantics (reserved for future strict-width
// opcodes; current arithmetic wraps per Go's native integer semantics).
type Overflow struct{ base }

func (e Overflow) Error() string { return fmt.Sprintf("overflow at %d:%d", e.Pos.Row, e.Pos.Column) }

type Underflow struct{ base }

func (e Underflow) Error() string {
	return fmt.Sprintf("underflow at %d:%d", e.Pos.Row, e.Pos.Column)
}

// NotAnInteger is raised when an integer opcode is applied to operands
// that are not both the same integer variant.
type NotAnInteger struct{ base }

func (e NotAnInteger) Error() string {
	return fmt.Sprintf("not an integer at %d:%d", e.Pos.Row, e.Pos.Column)
}

func NewNotAnInteger(pos bytecode.Position) NotAnInteger { return NotAnInteger{base{pos}} }

// TypeMismatch is raised for any operand kind mismatch not covered by a
// more specific fault (e.g. VectorSet with a value of the wrong element
// kind, Compare between non-orderable values).
type TypeMismatch struct {
	base
	Detail string
}

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch at %d:%d: %s", e.Pos.Row, e.Pos.Column, e.Detail)
}

func NewTypeMismatch(pos bytecode.Position, detail string) TypeMismatch {
	return TypeMismatch{base{pos}, detail}
}

// InvalidInstruction is raised for an opcode/immediate combination the
// evaluator does not recognize.
type InvalidInstruction struct{ base }

func (e InvalidInstruction) Error() string {
	return fmt.Sprintf("invalid instruction at %d:%d", e.Pos.Row, e.Pos.Column)
}

func NewInvalidInstruction(pos bytecode.Position) InvalidInstruction {
	return InvalidInstruction{base{pos}}
}

// InvalidJump is raised when a Goto target falls outside the current
// function's code bounds.
type InvalidJump struct{ base }

func (e InvalidJump) Error() string {
	return fmt.Sprintf("invalid jump at %d:%d", e.Pos.Row, e.Pos.Column)
}

func NewInvalidJump(pos bytecode.Position) InvalidJump { return InvalidJump{base{pos}} }

// FunctionNotFound is raised when FunctionCall(Name, ...) cannot resolve
// its FunctionPath within the current module tree.
type FunctionNotFound struct {
	base
	Path bytecode.FunctionPath
}

func (e FunctionNotFound) Error() string {
	return fmt.Sprintf("function not found: %s at %d:%d", e.Path, e.Pos.Row, e.Pos.Column)
}

func NewFunctionNotFound(pos bytecode.Position, path bytecode.FunctionPath) FunctionNotFound {
	return FunctionNotFound{base{pos}, path}
}

// NameNotFound is raised when Lookup cannot find a binding in the
// current environment.
type NameNotFound struct {
	base
	Name string
}

func (e NameNotFound) Error() string {
	return fmt.Sprintf("name not found: %q at %d:%d", e.Name, e.Pos.Row, e.Pos.Column)
}

func NewNameNotFound(pos bytecode.Position, name string) NameNotFound {
	return NameNotFound{base{pos}, name}
}

// OutOfBounds is raised by VectorGet/VectorSet/TupleGet/ProductSet(index)
// when the index falls outside the aggregate's current length.
type OutOfBounds struct {
	base
	Index, Length int
}

func (e OutOfBounds) Error() string {
	return fmt.Sprintf("index %d out of bounds (len %d) at %d:%d", e.Index, e.Length, e.Pos.Row, e.Pos.Column)
}

func NewOutOfBounds(pos bytecode.Position, index, length int) OutOfBounds {
	return OutOfBounds{base{pos}, index, length}
}

// InvalidOperation covers operations that are syntactically well-formed
// but semantically unsupported in the current configuration — e.g.
// ReferenceNew/Get/Set without a host RefTable installed, or
// FunctionCall(Address, ...) without a reference table resolving it.
type InvalidOperation struct {
	base
	Detail string
}

func (e InvalidOperation) Error() string {
	return fmt.Sprintf("invalid operation at %d:%d: %s", e.Pos.Row, e.Pos.Column, e.Detail)
}

func NewInvalidOperation(pos bytecode.Position, detail string) InvalidOperation {
	return InvalidOperation{base{pos}, detail}
}

// MemoryError surfaces a host-side I/O or storage failure (e.g. a
// StoreHost database error) back through the evaluator.
type MemoryError struct {
	base
	Detail string
}

func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error at %d:%d: %s", e.Pos.Row, e.Pos.Column, e.Detail)
}

func NewMemoryError(pos bytecode.Position, detail string) MemoryError {
	return MemoryError{base{pos}, detail}
}

// InvalidString is raised by GetStringRef when a StringTablePath cannot
// be resolved.
type InvalidString struct {
	base
	Path bytecode.StringTablePath
}

func (e InvalidString) Error() string {
	return fmt.Sprintf("invalid string ref: %s at %d:%d", e.Path, e.Pos.Row, e.Pos.Column)
}

func NewInvalidString(pos bytecode.Position, path bytecode.StringTablePath) InvalidString {
	return InvalidString{base{pos}, path}
}

// Unwind carries an abort message up through every open frame; the
// driver raises it when a DebugHook's OnInstruction stops execution.
// Halt is not a fault: it ends the run through vm.VerdictStop.
type Unwind struct {
	base
	Message string
}

func (e Unwind) Error() string {
	return fmt.Sprintf("unwind at %d:%d: %s", e.Pos.Row, e.Pos.Column, e.Message)
}

func NewUnwind(pos bytecode.Position, message string) Unwind {
	return Unwind{base{pos}, message}
}

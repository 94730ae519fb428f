package bytecode

import "crayfish/internal/numtower"

// Position is the source row/column an instruction was compiled from,
// carried through to fault reporting (original_source's Instruction{row,
// column, instruction}; the teacher's Chunk.Debug does the same job with
// a parallel DebugInfo slice — here it travels with the instruction
// itself).
type Position struct {
	Row, Column int
}

// Instruction pairs an opcode with its typed immediate operand, the same
// "single struct + typed Imm" idiom the pack's
// wippyai-wasm-runtime/wasm/instruction.go uses for a decoded instruction
// stream.
type Instruction struct {
	Op  OpCode
	Pos Position
	Imm any
}

// VectorType names the element kind a VectorNew instruction allocates.
type VectorType int

const (
	VectorOfInteger VectorType = iota
	VectorOfDecimal
	VectorOfString
	VectorOfBoolean
	VectorOfCharacter
	VectorOfAny
)

// JumpTargetKind discriminates JumpTarget's two forms.
type JumpTargetKind int

const (
	JumpRelative JumpTargetKind = iota
	JumpAbsolute
)

// JumpTarget is Goto's destination: Relative is added to the goto
// instruction's own program counter; Absolute replaces it outright.
type JumpTarget struct {
	Kind  JumpTargetKind
	Delta int // meaningful when Kind == JumpRelative
	Addr  int // meaningful when Kind == JumpAbsolute
}

func Relative(delta int) JumpTarget { return JumpTarget{Kind: JumpRelative, Delta: delta} }
func Absolute(addr int) JumpTarget  { return JumpTarget{Kind: JumpAbsolute, Addr: addr} }

// Condition gates whether Goto/Return/FunctionCall actually fires,
// evaluated against the Flags register.
type Condition int

const (
	Always Condition = iota
	Equal
	NotEqual
	GreaterThan
	GreaterThanOrEqual
	LessThan
	LessThanOrEqual
	Zero
	NotZero
	Negative
	NotNegative
)

// ComparisonType names which relation Compare tests and sets into
// Flags.Comparison.
type ComparisonType int

const (
	CompareEqual ComparisonType = iota
	CompareNotEqual
	CompareGreaterThan
	CompareGreaterThanOrEqual
	CompareLessThan
	CompareLessThanOrEqual
)

// FunctionSourceKind discriminates FunctionSource's three forms.
type FunctionSourceKind int

const (
	SourceName FunctionSourceKind = iota
	SourceAddress
	SourceStack
)

// FunctionSource names where FunctionCall/ClosureNew finds the callee:
// a module-qualified Name, a host-reference Address (a popped
// value.Reference resolved through the Core's reference table, an
// InvalidOperation fault when none is installed — see internal/host.Refs),
// or the Stack (pop a Function value).
type FunctionSource struct {
	Kind FunctionSourceKind
	Name FunctionPath
}

func ByName(path FunctionPath) FunctionSource { return FunctionSource{Kind: SourceName, Name: path} }
func ByAddress() FunctionSource                { return FunctionSource{Kind: SourceAddress} }
func ByStack() FunctionSource                  { return FunctionSource{Kind: SourceStack} }

// Imm payloads, one per opcode that carries an operand.

type PushImm struct{ Value any }

// VectorNewImm names only the element kind; the size itself is a runtime
// stack pop (spec.md's VectorNew "pops a size (Integer -> usize) and
// pushes a zero-initialised vector of the declared element kind").
type VectorNewImm struct {
	ElementType VectorType
}

type ProductNewImm struct {
	Name  string
	Order []string
}

type ProductGetImm struct{ Field string }
type ProductSetImm struct{ Index int }

type SumNewImm struct {
	Name  string
	Tag   uint8
	Order []string
}
type SumFieldImm struct{ Field string }

type CallImm struct {
	Source    FunctionSource
	Condition Condition
}

type ReturnImm struct{ Condition Condition }

type ClosureImm struct{ Source FunctionSource }

type IntegerImm struct{ Value numtower.Integer }
type DecimalImm struct{ Value numtower.Decimal }
type StringImm struct{ Value string }
type BooleanImm struct{ Value bool }
type CharacterImm struct{ Value rune }

// CompareImm names which of the six relations Compare tests. Flags.Comparison
// is set to Kind on true, or to the table's complement on false (spec.md's
// Comparison table: Equal/NotEqual, LessThan/GreaterThanOrEqual,
// LessThanOrEqual/GreaterThan, GreaterThan/LessThanOrEqual,
// GreaterThanOrEqual/LessThan).
type CompareImm struct{ Kind ComparisonType }

type GotoImm struct {
	Target    JumpTarget
	Condition Condition
}

type NameImm struct{ Name string }

type StringRefImm struct {
	Path  StringTablePath
	Index int
}

type CastImm struct{ Target any } // numtower.TargetKind, resolved in internal/vm; any other target is a TypeMismatch

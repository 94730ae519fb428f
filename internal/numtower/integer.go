// Package numtower implements the arbitrary-precision and fixed-width
// numeric tower: Integer (U8..I64, Natural, Integer) and Decimal
// (F32, F64, Rational).
package numtower

import (
	"fmt"
	"math"
	"math/big"
)

// IntegerKind tags which variant of the integer tower a value holds.
type IntegerKind uint8

const (
	KindU8 IntegerKind = iota
	KindU16
	KindU32
	KindU64
	KindI8
	KindI16
	KindI32
	KindI64
	KindNatural
	KindInteger
)

func (k IntegerKind) String() string {
	switch k {
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindI8:
		return "i8"
	case KindI16:
		return "i16"
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindNatural:
		return "natural"
	case KindInteger:
		return "integer"
	default:
		return "integer(?)"
	}
}

// Integer is a tagged value from the integer tower. Fixed-width kinds are
// stored as a reinterpreted 64-bit pattern in raw; Natural and Integer are
// backed by math/big.
type Integer struct {
	Kind IntegerKind
	raw  uint64
	big  *big.Int
}

func NewU8(v uint8) Integer   { return Integer{Kind: KindU8, raw: uint64(v)} }
func NewU16(v uint16) Integer { return Integer{Kind: KindU16, raw: uint64(v)} }
func NewU32(v uint32) Integer { return Integer{Kind: KindU32, raw: uint64(v)} }
func NewU64(v uint64) Integer { return Integer{Kind: KindU64, raw: v} }
func NewI8(v int8) Integer    { return Integer{Kind: KindI8, raw: uint64(uint8(v))} }
func NewI16(v int16) Integer  { return Integer{Kind: KindI16, raw: uint64(uint16(v))} }
func NewI32(v int32) Integer  { return Integer{Kind: KindI32, raw: uint64(uint32(v))} }
func NewI64(v int64) Integer  { return Integer{Kind: KindI64, raw: uint64(v)} }

// NewNatural wraps a non-negative big.Int. The sign is not checked here;
// callers constructing Natural values from trusted sources (immediates,
// cast results) are expected to pass non-negative magnitudes.
func NewNatural(v *big.Int) Integer { return Integer{Kind: KindNatural, big: new(big.Int).Set(v)} }
func NewBigInteger(v *big.Int) Integer {
	return Integer{Kind: KindInteger, big: new(big.Int).Set(v)}
}

func (i Integer) U8() uint8   { return uint8(i.raw) }
func (i Integer) U16() uint16 { return uint16(i.raw) }
func (i Integer) U32() uint32 { return uint32(i.raw) }
func (i Integer) U64() uint64 { return i.raw }
func (i Integer) I8() int8    { return int8(uint8(i.raw)) }
func (i Integer) I16() int16  { return int16(uint16(i.raw)) }
func (i Integer) I32() int32  { return int32(uint32(i.raw)) }
func (i Integer) I64() int64  { return int64(i.raw) }

// Big returns the backing big.Int for Natural/Integer kinds. It panics if
// called on a fixed-width kind; callers must check Kind first.
func (i Integer) Big() *big.Int {
	if i.big == nil {
		panic(fmt.Sprintf("numtower: Big() on fixed-width kind %s", i.Kind))
	}
	return i.big
}

func (i Integer) Clone() Integer {
	if i.big != nil {
		return Integer{Kind: i.Kind, big: new(big.Int).Set(i.big)}
	}
	return i
}

func (i Integer) IsZero() bool {
	if i.big != nil {
		return i.big.Sign() == 0
	}
	switch i.Kind {
	case KindU8, KindU16, KindU32, KindU64, KindI8, KindI16, KindI32, KindI64:
		return i.raw == 0
	}
	return false
}

func (i Integer) IsNegative() bool {
	switch i.Kind {
	case KindI8:
		return i.I8() < 0
	case KindI16:
		return i.I16() < 0
	case KindI32:
		return i.I32() < 0
	case KindI64:
		return i.I64() < 0
	case KindInteger:
		return i.big.Sign() < 0
	default:
		return false
	}
}

func (i Integer) String() string {
	switch i.Kind {
	case KindU8:
		return fmt.Sprintf("%d", i.U8())
	case KindU16:
		return fmt.Sprintf("%d", i.U16())
	case KindU32:
		return fmt.Sprintf("%d", i.U32())
	case KindU64:
		return fmt.Sprintf("%d", i.U64())
	case KindI8:
		return fmt.Sprintf("%d", i.I8())
	case KindI16:
		return fmt.Sprintf("%d", i.I16())
	case KindI32:
		return fmt.Sprintf("%d", i.I32())
	case KindI64:
		return fmt.Sprintf("%d", i.I64())
	case KindNatural, KindInteger:
		return i.big.String()
	default:
		return "<integer?>"
	}
}

// sameKind reports whether two Integers share a variant — the numeric
// tower requires this for every binary arithmetic/bitwise op (spec §4.1).
func sameKind(a, b Integer) bool { return a.Kind == b.Kind }

// BinOp names one of the arithmetic/bitwise integer operators.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAnd
	OpOr
	OpXor
	OpShl
	OpShr
)

var ErrNotAnInteger = fmt.Errorf("operands are not the same integer variant")
var ErrDivisionByZero = fmt.Errorf("division by zero")
var ErrBitwiseUnsupported = fmt.Errorf("bitwise op not defined for this integer variant")

// Arith applies a same-kind arithmetic or bitwise operator. Division and
// modulo on a zero divisor return ErrDivisionByZero; shifts/bitwise ops on
// the arbitrary-precision kinds (Natural and Integer alike) return
// ErrBitwiseUnsupported.
func Arith(op BinOp, left, right Integer) (Integer, error) {
	if !sameKind(left, right) {
		return Integer{}, ErrNotAnInteger
	}
	switch left.Kind {
	case KindU8:
		l, r := left.U8(), right.U8()
		res, err := fixedOp(op, uint64(l), uint64(r), false)
		if err != nil {
			return Integer{}, err
		}
		return NewU8(uint8(res)), nil
	case KindU16:
		l, r := left.U16(), right.U16()
		res, err := fixedOp(op, uint64(l), uint64(r), false)
		if err != nil {
			return Integer{}, err
		}
		return NewU16(uint16(res)), nil
	case KindU32:
		l, r := left.U32(), right.U32()
		res, err := fixedOp(op, uint64(l), uint64(r), false)
		if err != nil {
			return Integer{}, err
		}
		return NewU32(uint32(res)), nil
	case KindU64:
		res, err := fixedOp(op, left.U64(), right.U64(), false)
		if err != nil {
			return Integer{}, err
		}
		return NewU64(res), nil
	case KindI8:
		res, err := signedOp(op, int64(left.I8()), int64(right.I8()), 8)
		if err != nil {
			return Integer{}, err
		}
		return NewI8(int8(res)), nil
	case KindI16:
		res, err := signedOp(op, int64(left.I16()), int64(right.I16()), 16)
		if err != nil {
			return Integer{}, err
		}
		return NewI16(int16(res)), nil
	case KindI32:
		res, err := signedOp(op, int64(left.I32()), int64(right.I32()), 32)
		if err != nil {
			return Integer{}, err
		}
		return NewI32(int32(res)), nil
	case KindI64:
		res, err := signedOp(op, left.I64(), right.I64(), 64)
		if err != nil {
			return Integer{}, err
		}
		return NewI64(res), nil
	case KindNatural:
		return bigOp(op, left, right, true)
	case KindInteger:
		return bigOp(op, left, right, false)
	default:
		return Integer{}, ErrNotAnInteger
	}
}

func fixedOp(op BinOp, l, r uint64, signed bool) (uint64, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	case OpMod:
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l % r, nil
	case OpAnd:
		return l & r, nil
	case OpOr:
		return l | r, nil
	case OpXor:
		return l ^ r, nil
	case OpShl:
		return l << (r & 63), nil
	case OpShr:
		return l >> (r & 63), nil
	default:
		return 0, ErrNotAnInteger
	}
}

func signedOp(op BinOp, l, r int64, width uint) (int64, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	case OpMod:
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l % r, nil
	case OpAnd:
		return l & r, nil
	case OpOr:
		return l | r, nil
	case OpXor:
		return l ^ r, nil
	case OpShl:
		return l << (uint64(r) % uint64(width)), nil
	case OpShr:
		return l >> (uint64(r) % uint64(width)), nil
	default:
		return 0, ErrNotAnInteger
	}
}

func bigOp(op BinOp, left, right Integer, natural bool) (Integer, error) {
	l, r := left.Big(), right.Big()
	result := new(big.Int)
	switch op {
	case OpAdd:
		result.Add(l, r)
	case OpSub:
		result.Sub(l, r)
	case OpMul:
		result.Mul(l, r)
	case OpDiv:
		if r.Sign() == 0 {
			return Integer{}, ErrDivisionByZero
		}
		result.Quo(l, r)
	case OpMod:
		if r.Sign() == 0 {
			return Integer{}, ErrDivisionByZero
		}
		result.Rem(l, r)
	case OpAnd, OpOr, OpXor, OpShl, OpShr:
		return Integer{}, ErrBitwiseUnsupported
	default:
		return Integer{}, ErrNotAnInteger
	}
	if natural {
		return NewNatural(result), nil
	}
	return NewBigInteger(result), nil
}

// Not applies bitwise complement. It is only defined for fixed-width kinds
// and the arbitrary-precision signed Integer; Natural rejects it (spec §4.1).
func Not(v Integer) (Integer, error) {
	switch v.Kind {
	case KindU8:
		return NewU8(^v.U8()), nil
	case KindU16:
		return NewU16(^v.U16()), nil
	case KindU32:
		return NewU32(^v.U32()), nil
	case KindU64:
		return NewU64(^v.U64()), nil
	case KindI8:
		return NewI8(^v.I8()), nil
	case KindI16:
		return NewI16(^v.I16()), nil
	case KindI32:
		return NewI32(^v.I32()), nil
	case KindI64:
		return NewI64(^v.I64()), nil
	case KindInteger:
		result := new(big.Int).Not(v.Big())
		return NewBigInteger(result), nil
	case KindNatural:
		return Integer{}, ErrBitwiseUnsupported
	default:
		return Integer{}, ErrNotAnInteger
	}
}

// Negate implements spec §4.1's negation widening table: the result takes
// the narrowest signed type that can hold it, widening one step further
// when the unsigned input exceeds the narrower signed type's positive
// range. Negating zero preserves the variant. Negating a non-zero
// arbitrary Natural promotes to arbitrary Integer.
func Negate(v Integer) (Integer, error) {
	switch v.Kind {
	case KindU8:
		n := v.U8()
		if n == 0 {
			return NewU8(0), nil
		}
		if n <= 128 {
			return NewI8(-int8(n)), nil
		}
		return NewI16(-int16(n)), nil
	case KindU16:
		n := v.U16()
		if n == 0 {
			return NewU16(0), nil
		}
		if n <= 32768 {
			return NewI16(-int16(n)), nil
		}
		return NewI32(-int32(n)), nil
	case KindU32:
		n := v.U32()
		if n == 0 {
			return NewU32(0), nil
		}
		if n <= 1<<31 {
			return NewI32(-int32(n)), nil
		}
		return NewI64(-int64(n)), nil
	case KindU64:
		n := v.U64()
		if n == 0 {
			return NewU64(0), nil
		}
		if n <= 1<<63 {
			return NewI64(-int64(n)), nil
		}
		return NewBigInteger(new(big.Int).Neg(new(big.Int).SetUint64(n))), nil
	case KindI8:
		if v.I8() == math.MinInt8 {
			return NewI16(-int16(v.I8())), nil
		}
		return NewI8(-v.I8()), nil
	case KindI16:
		if v.I16() == math.MinInt16 {
			return NewI32(-int32(v.I16())), nil
		}
		return NewI16(-v.I16()), nil
	case KindI32:
		if v.I32() == math.MinInt32 {
			return NewI64(-int64(v.I32())), nil
		}
		return NewI32(-v.I32()), nil
	case KindI64:
		if v.I64() == math.MinInt64 {
			return NewBigInteger(new(big.Int).Neg(big.NewInt(v.I64()))), nil
		}
		return NewI64(-v.I64()), nil
	case KindNatural:
		if v.IsZero() {
			return NewNatural(big.NewInt(0)), nil
		}
		return NewBigInteger(new(big.Int).Neg(v.Big())), nil
	case KindInteger:
		return NewBigInteger(new(big.Int).Neg(v.Big())), nil
	default:
		return Integer{}, ErrNotAnInteger
	}
}

// Pow raises a fixed-width base to a U32 exponent, or an arbitrary Integer
// base to a U64 exponent, per spec §4.1. The exponent must be non-negative
// and the width the spec prescribes; anything else is a type error.
func Pow(base Integer, exponent Integer) (Integer, error) {
	switch base.Kind {
	case KindU8, KindU16, KindU32, KindU64, KindI8, KindI16, KindI32, KindI64:
		if exponent.Kind != KindU32 {
			return Integer{}, ErrNotAnInteger
		}
		exp := exponent.U32()
		return powFixed(base, exp)
	case KindNatural, KindInteger:
		if exponent.Kind != KindU64 {
			return Integer{}, ErrNotAnInteger
		}
		result := new(big.Int).Exp(base.Big(), new(big.Int).SetUint64(exponent.U64()), nil)
		if base.Kind == KindNatural {
			return NewNatural(result), nil
		}
		return NewBigInteger(result), nil
	default:
		return Integer{}, ErrNotAnInteger
	}
}

func powFixed(base Integer, exp uint32) (Integer, error) {
	result := base
	var acc Integer
	switch base.Kind {
	case KindU8, KindU16, KindU32, KindU64, KindI8, KindI16, KindI32, KindI64:
	default:
		return Integer{}, ErrNotAnInteger
	}
	acc = oneOf(base.Kind)
	for i := uint32(0); i < exp; i++ {
		var err error
		acc, err = Arith(OpMul, acc, result)
		if err != nil {
			return Integer{}, err
		}
	}
	return acc, nil
}

func oneOf(kind IntegerKind) Integer {
	switch kind {
	case KindU8:
		return NewU8(1)
	case KindU16:
		return NewU16(1)
	case KindU32:
		return NewU32(1)
	case KindU64:
		return NewU64(1)
	case KindI8:
		return NewI8(1)
	case KindI16:
		return NewI16(1)
	case KindI32:
		return NewI32(1)
	case KindI64:
		return NewI64(1)
	default:
		return NewI64(1)
	}
}

// Equal and Less implement same-kind equality/ordering (spec §4.1); mixed
// kinds are the caller's responsibility to reject before calling these.
func Equal(a, b Integer) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.big != nil {
		return a.big.Cmp(b.big) == 0
	}
	return a.raw == b.raw && signBitsEqual(a, b)
}

// signBitsEqual always reports true: for fixed-width kinds, signed ones
// included, equal raw bit patterns already mean equal values, so Equal
// rests on the raw comparison alone.
func signBitsEqual(a, b Integer) bool { return true }

func Less(a, b Integer) (bool, bool) {
	if a.Kind != b.Kind {
		return false, false
	}
	switch a.Kind {
	case KindU8:
		return a.U8() < b.U8(), true
	case KindU16:
		return a.U16() < b.U16(), true
	case KindU32:
		return a.U32() < b.U32(), true
	case KindU64:
		return a.U64() < b.U64(), true
	case KindI8:
		return a.I8() < b.I8(), true
	case KindI16:
		return a.I16() < b.I16(), true
	case KindI32:
		return a.I32() < b.I32(), true
	case KindI64:
		return a.I64() < b.I64(), true
	case KindNatural, KindInteger:
		return a.big.Cmp(b.big) < 0, true
	default:
		return false, false
	}
}

package numtower

import (
	"fmt"
	"math/big"
)

// DecimalKind tags which variant of the decimal tower a value holds.
type DecimalKind uint8

const (
	KindF32 DecimalKind = iota
	KindF64
	KindRational
)

func (k DecimalKind) String() string {
	switch k {
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindRational:
		return "rational"
	default:
		return "decimal(?)"
	}
}

// Decimal is a tagged value from the decimal tower.
type Decimal struct {
	Kind DecimalKind
	f32  float32
	f64  float64
	rat  *big.Rat
}

func NewF32(v float32) Decimal { return Decimal{Kind: KindF32, f32: v} }
func NewF64(v float64) Decimal { return Decimal{Kind: KindF64, f64: v} }
func NewRational(v *big.Rat) Decimal {
	return Decimal{Kind: KindRational, rat: new(big.Rat).Set(v)}
}

func (d Decimal) F32() float32    { return d.f32 }
func (d Decimal) F64() float64    { return d.f64 }
func (d Decimal) Rat() *big.Rat {
	if d.rat == nil {
		panic(fmt.Sprintf("numtower: Rat() on non-rational decimal kind %s", d.Kind))
	}
	return d.rat
}

func (d Decimal) Clone() Decimal {
	if d.rat != nil {
		return Decimal{Kind: d.Kind, rat: new(big.Rat).Set(d.rat)}
	}
	return d
}

func (d Decimal) IsZero() bool {
	switch d.Kind {
	case KindF32:
		return d.f32 == 0
	case KindF64:
		return d.f64 == 0
	case KindRational:
		return d.rat.Sign() == 0
	default:
		return false
	}
}

func (d Decimal) IsNegative() bool {
	switch d.Kind {
	case KindF32:
		return d.f32 < 0
	case KindF64:
		return d.f64 < 0
	case KindRational:
		return d.rat.Sign() < 0
	default:
		return false
	}
}

func (d Decimal) String() string {
	switch d.Kind {
	case KindF32:
		return fmt.Sprintf("%v", d.f32)
	case KindF64:
		return fmt.Sprintf("%v", d.f64)
	case KindRational:
		return d.rat.RatString()
	default:
		return "<decimal?>"
	}
}

var ErrRationalMixed = fmt.Errorf("rational only combines with rational")

// DecimalArith applies the decimal arithmetic operators. F32 and F64
// promote to F64 when mixed (the wider of the two); Rational only
// combines with Rational (original_source/src/value/decimal.rs).
func DecimalArith(op BinOp, left, right Decimal) (Decimal, error) {
	if left.Kind == KindRational || right.Kind == KindRational {
		if left.Kind != KindRational || right.Kind != KindRational {
			return Decimal{}, ErrRationalMixed
		}
		return ratOp(op, left.rat, right.rat)
	}
	if left.Kind == KindF32 && right.Kind == KindF32 {
		res, err := f32Op(op, left.f32, right.f32)
		if err != nil {
			return Decimal{}, err
		}
		return NewF32(res), nil
	}
	// mixed F32/F64 or F64/F64 promotes to F64.
	lv := widenToF64(left)
	rv := widenToF64(right)
	res, err := f64Op(op, lv, rv)
	if err != nil {
		return Decimal{}, err
	}
	return NewF64(res), nil
}

func widenToF64(d Decimal) float64 {
	if d.Kind == KindF32 {
		return float64(d.f32)
	}
	return d.f64
}

func f32Op(op BinOp, l, r float32) (float32, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		return l / r, nil
	default:
		return 0, fmt.Errorf("unsupported decimal operator")
	}
}

func f64Op(op BinOp, l, r float64) (float64, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		return l / r, nil
	default:
		return 0, fmt.Errorf("unsupported decimal operator")
	}
}

func ratOp(op BinOp, l, r *big.Rat) (Decimal, error) {
	result := new(big.Rat)
	switch op {
	case OpAdd:
		result.Add(l, r)
	case OpSub:
		result.Sub(l, r)
	case OpMul:
		result.Mul(l, r)
	case OpDiv:
		if r.Sign() == 0 {
			return Decimal{}, ErrDivisionByZero
		}
		result.Quo(l, r)
	default:
		return Decimal{}, fmt.Errorf("unsupported decimal operator")
	}
	return NewRational(result), nil
}

// DecimalNegate flips sign in place, preserving the variant.
func DecimalNegate(d Decimal) Decimal {
	switch d.Kind {
	case KindF32:
		return NewF32(-d.f32)
	case KindF64:
		return NewF64(-d.f64)
	case KindRational:
		return NewRational(new(big.Rat).Neg(d.rat))
	default:
		return d
	}
}

// Exponentiate raises a Decimal to an Integer power, per spec §4.1's
// Decimal^Integer exponentiation rule. A negative exponent on a zero
// Rational base returns ErrDivisionByZero; F32/F64 bases follow float
// division instead and yield an infinity.
func Exponentiate(base Decimal, exponent Integer) (Decimal, error) {
	exp := exponent.I64()
	if exponent.big != nil {
		exp = exponent.Big().Int64()
	}
	switch base.Kind {
	case KindF32:
		return NewF32(powF32(base.f32, exp)), nil
	case KindF64:
		return NewF64(powF64(base.f64, exp)), nil
	case KindRational:
		if exp < 0 {
			if base.rat.Sign() == 0 {
				return Decimal{}, ErrDivisionByZero
			}
			inv := new(big.Rat).Inv(base.rat)
			return NewRational(ratPow(inv, -exp)), nil
		}
		return NewRational(ratPow(base.rat, exp)), nil
	default:
		return Decimal{}, fmt.Errorf("not a decimal")
	}
}

func powF32(base float32, exp int64) float32 {
	result := float32(1)
	neg := exp < 0
	if neg {
		exp = -exp
	}
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	if neg {
		return 1 / result
	}
	return result
}

func powF64(base float64, exp int64) float64 {
	result := 1.0
	neg := exp < 0
	if neg {
		exp = -exp
	}
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	if neg {
		return 1 / result
	}
	return result
}

func ratPow(base *big.Rat, exp int64) *big.Rat {
	result := big.NewRat(1, 1)
	for i := int64(0); i < exp; i++ {
		result.Mul(result, base)
	}
	return result
}

func DecimalEqual(a, b Decimal) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindF32:
		return a.f32 == b.f32
	case KindF64:
		return a.f64 == b.f64
	case KindRational:
		return a.rat.Cmp(b.rat) == 0
	default:
		return false
	}
}

func DecimalLess(a, b Decimal) (bool, bool) {
	if a.Kind != b.Kind {
		return false, false
	}
	switch a.Kind {
	case KindF32:
		return a.f32 < b.f32, true
	case KindF64:
		return a.f64 < b.f64, true
	case KindRational:
		return a.rat.Cmp(b.rat) < 0, true
	default:
		return false, false
	}
}

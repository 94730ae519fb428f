package numtower

import (
	"fmt"
	"math/big"
)

// TargetKind names every castable numeric variant, integer or decimal.
type TargetKind struct {
	IsDecimal bool
	Int       IntegerKind
	Dec       DecimalKind
}

func IntTarget(k IntegerKind) TargetKind { return TargetKind{Int: k} }
func DecTarget(k DecimalKind) TargetKind { return TargetKind{IsDecimal: true, Dec: k} }

// CastInteger converts an Integer to any target integer kind, truncating
// or sign-extending as needed, per spec §4.1's cast matrix.
func CastInteger(v Integer, target IntegerKind) Integer {
	// route everything through a big.Int so truncation/extension rules are
	// uniform regardless of source width.
	var magnitude *big.Int
	if v.big != nil {
		magnitude = v.big
	} else {
		magnitude = fixedToBig(v)
	}
	return bigToFixed(magnitude, target)
}

func fixedToBig(v Integer) *big.Int {
	switch v.Kind {
	case KindU8:
		return new(big.Int).SetUint64(uint64(v.U8()))
	case KindU16:
		return new(big.Int).SetUint64(uint64(v.U16()))
	case KindU32:
		return new(big.Int).SetUint64(uint64(v.U32()))
	case KindU64:
		return new(big.Int).SetUint64(v.U64())
	case KindI8:
		return big.NewInt(int64(v.I8()))
	case KindI16:
		return big.NewInt(int64(v.I16()))
	case KindI32:
		return big.NewInt(int64(v.I32()))
	case KindI64:
		return big.NewInt(v.I64())
	default:
		return big.NewInt(0)
	}
}

func bigToFixed(magnitude *big.Int, target IntegerKind) Integer {
	switch target {
	case KindU8:
		return NewU8(uint8(truncateUint(magnitude, 8)))
	case KindU16:
		return NewU16(uint16(truncateUint(magnitude, 16)))
	case KindU32:
		return NewU32(uint32(truncateUint(magnitude, 32)))
	case KindU64:
		return NewU64(truncateUint(magnitude, 64))
	case KindI8:
		return NewI8(int8(truncateUint(magnitude, 8)))
	case KindI16:
		return NewI16(int16(truncateUint(magnitude, 16)))
	case KindI32:
		return NewI32(int32(truncateUint(magnitude, 32)))
	case KindI64:
		return NewI64(int64(truncateUint(magnitude, 64)))
	case KindNatural:
		if magnitude.Sign() < 0 {
			return NewNatural(new(big.Int).Neg(magnitude))
		}
		return NewNatural(magnitude)
	case KindInteger:
		return NewBigInteger(magnitude)
	default:
		return Integer{}
	}
}

// truncateUint reduces magnitude modulo 2^bits, matching wraparound
// truncation semantics for narrowing/reinterpreting casts.
func truncateUint(magnitude *big.Int, bits uint) uint64 {
	mod := new(big.Int).Lsh(big.NewInt(1), bits)
	reduced := new(big.Int).Mod(magnitude, mod)
	return reduced.Uint64()
}

// CastIntegerToDecimal converts an Integer to a Decimal kind.
func CastIntegerToDecimal(v Integer, target DecimalKind) Decimal {
	switch target {
	case KindF32:
		return NewF32(float32(intToFloat64(v)))
	case KindF64:
		return NewF64(intToFloat64(v))
	case KindRational:
		if v.big != nil {
			return NewRational(new(big.Rat).SetInt(v.big))
		}
		return NewRational(new(big.Rat).SetInt64(fixedToBig(v).Int64()))
	default:
		return Decimal{}
	}
}

func intToFloat64(v Integer) float64 {
	if v.big != nil {
		f := new(big.Float).SetInt(v.big)
		result, _ := f.Float64()
		return result
	}
	switch v.Kind {
	case KindU8:
		return float64(v.U8())
	case KindU16:
		return float64(v.U16())
	case KindU32:
		return float64(v.U32())
	case KindU64:
		return float64(v.U64())
	case KindI8:
		return float64(v.I8())
	case KindI16:
		return float64(v.I16())
	case KindI32:
		return float64(v.I32())
	case KindI64:
		return float64(v.I64())
	default:
		return 0
	}
}

// CastDecimalToInteger converts a Decimal to an Integer kind, truncating
// toward zero.
func CastDecimalToInteger(d Decimal, target IntegerKind) Integer {
	var magnitude *big.Int
	switch d.Kind {
	case KindF32:
		magnitude = floatToBigInt(float64(d.f32))
	case KindF64:
		magnitude = floatToBigInt(d.f64)
	case KindRational:
		magnitude = new(big.Int).Quo(d.rat.Num(), d.rat.Denom())
	default:
		magnitude = big.NewInt(0)
	}
	return bigToFixed(magnitude, target)
}

func floatToBigInt(f float64) *big.Int {
	bf := big.NewFloat(f)
	result, _ := bf.Int(nil)
	return result
}

// CastDecimal converts between decimal kinds.
func CastDecimal(d Decimal, target DecimalKind) Decimal {
	switch target {
	case KindF32:
		switch d.Kind {
		case KindF32:
			return d
		case KindF64:
			return NewF32(float32(d.f64))
		case KindRational:
			f, _ := new(big.Float).SetRat(d.rat).Float32()
			return NewF32(f)
		}
	case KindF64:
		switch d.Kind {
		case KindF32:
			return NewF64(float64(d.f32))
		case KindF64:
			return d
		case KindRational:
			f, _ := new(big.Float).SetRat(d.rat).Float64()
			return NewF64(f)
		}
	case KindRational:
		switch d.Kind {
		case KindF32:
			r, _ := new(big.Rat).SetString(fmt.Sprintf("%v", d.f32))
			return NewRational(r)
		case KindF64:
			r := new(big.Rat).SetFloat64(d.f64)
			if r == nil {
				r = big.NewRat(0, 1)
			}
			return NewRational(r)
		case KindRational:
			return d
		}
	}
	return Decimal{}
}

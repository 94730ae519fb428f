package numtower

import (
	"math/big"
	"testing"
)

func TestDecimalPromotion(t *testing.T) {
	result, err := DecimalArith(OpAdd, NewF32(1.5), NewF64(2.5))
	if err != nil {
		t.Fatal(err)
	}
	if result.Kind != KindF64 {
		t.Fatalf("expected promotion to f64, got %s", result.Kind)
	}
	if result.F64() != 4.0 {
		t.Errorf("got %v, want 4.0", result.F64())
	}
}

func TestRationalOnlyCombinesWithRational(t *testing.T) {
	_, err := DecimalArith(OpAdd, NewRational(big.NewRat(1, 2)), NewF64(1.0))
	if err != ErrRationalMixed {
		t.Fatalf("expected ErrRationalMixed, got %v", err)
	}
}

func TestRationalDivisionByZero(t *testing.T) {
	_, err := DecimalArith(OpDiv, NewRational(big.NewRat(1, 2)), NewRational(big.NewRat(0, 1)))
	if err != ErrDivisionByZero {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestExponentiateDecimal(t *testing.T) {
	result, err := Exponentiate(NewF64(2.0), NewI32(10))
	if err != nil {
		t.Fatal(err)
	}
	if result.F64() != 1024.0 {
		t.Errorf("got %v, want 1024.0", result.F64())
	}
}

func TestCastDecimalRoundTrip(t *testing.T) {
	orig := NewF64(3.25)
	asRat := CastDecimal(orig, KindRational)
	back := CastDecimal(asRat, KindF64)
	if back.F64() != orig.F64() {
		t.Errorf("round trip broke: %v != %v", back.F64(), orig.F64())
	}
}

func TestCastIntegerDecimalRoundTrip(t *testing.T) {
	orig := NewI32(100)
	dec := CastIntegerToDecimal(orig, KindF64)
	back := CastDecimalToInteger(dec, KindI32)
	if back.I32() != orig.I32() {
		t.Errorf("round trip broke: %d != %d", back.I32(), orig.I32())
	}
}

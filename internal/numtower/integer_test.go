package numtower

import (
	"math/big"
	"testing"
)

func TestArithSameKindRequired(t *testing.T) {
	_, err := Arith(OpAdd, NewU8(1), NewI8(1))
	if err != ErrNotAnInteger {
		t.Fatalf("expected ErrNotAnInteger, got %v", err)
	}
}

func TestDivisionModuloIdentity(t *testing.T) {
	// for all non-zero b: a == (a/b)*b + a%b
	cases := []struct {
		a, b int32
	}{
		{17, 5}, {-17, 5}, {17, -5}, {-17, -5}, {0, 7}, {100, 1},
	}
	for _, c := range cases {
		q, err := Arith(OpDiv, NewI32(c.a), NewI32(c.b))
		if err != nil {
			t.Fatalf("div(%d,%d): %v", c.a, c.b, err)
		}
		r, err := Arith(OpMod, NewI32(c.a), NewI32(c.b))
		if err != nil {
			t.Fatalf("mod(%d,%d): %v", c.a, c.b, err)
		}
		prod, err := Arith(OpMul, q, NewI32(c.b))
		if err != nil {
			t.Fatal(err)
		}
		sum, err := Arith(OpAdd, prod, r)
		if err != nil {
			t.Fatal(err)
		}
		if sum.I32() != c.a {
			t.Errorf("identity broke for a=%d b=%d: got %d", c.a, c.b, sum.I32())
		}
	}
}

func TestDivisionByZeroFaults(t *testing.T) {
	_, err := Arith(OpDiv, NewI32(10), NewI32(0))
	if err != ErrDivisionByZero {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	_, err = Arith(OpMod, NewI32(10), NewI32(0))
	if err != ErrDivisionByZero {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestNegationWideningTable(t *testing.T) {
	cases := []struct {
		name     string
		in       Integer
		wantKind IntegerKind
	}{
		{"u8 zero stays u8", NewU8(0), KindU8},
		{"u8 in i8 range widens to i8", NewU8(100), KindI8},
		{"u8 out of i8 range widens to i16", NewU8(200), KindI16},
		{"u16 in range widens to i16", NewU16(30000), KindI16},
		{"u16 out of range widens to i32", NewU16(40000), KindI32},
		{"u32 in range widens to i32", NewU32(1000), KindI32},
		{"u32 out of range widens to i64", NewU32(3000000000), KindI64},
		{"i32 stays i32", NewI32(-5), KindI32},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := Negate(c.in)
			if err != nil {
				t.Fatal(err)
			}
			if out.Kind != c.wantKind {
				t.Errorf("got kind %s, want %s", out.Kind, c.wantKind)
			}
		})
	}
}

func TestNegateU8_200(t *testing.T) {
	out, err := Negate(NewU8(200))
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != KindI16 || out.I16() != -200 {
		t.Errorf("got %s(%d), want i16(-200)", out.Kind, out.I16())
	}
}

func TestCastRoundTripIdentity(t *testing.T) {
	orig := NewI32(-42)
	widened := CastInteger(orig, KindI64)
	narrowed := CastInteger(widened, KindI32)
	if !Equal(orig, narrowed) {
		t.Errorf("round trip broke: %v != %v", orig, narrowed)
	}
}

func TestNaturalArith(t *testing.T) {
	a := NewNatural(big.NewInt(1000))
	b := NewNatural(big.NewInt(3))
	sum, err := Arith(OpAdd, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Big().Cmp(big.NewInt(1003)) != 0 {
		t.Errorf("got %s, want 1003", sum)
	}
	_, err = Arith(OpAnd, a, b)
	if err != ErrBitwiseUnsupported {
		t.Errorf("expected ErrBitwiseUnsupported for Natural bitwise, got %v", err)
	}
}

func TestPowFixed(t *testing.T) {
	result, err := Pow(NewU32(2), NewU32(10))
	if err != nil {
		t.Fatal(err)
	}
	if result.U32() != 1024 {
		t.Errorf("got %d, want 1024", result.U32())
	}
}

// Package value implements the VM's tagged value union: numeric scalars
// plus the aggregate kinds (Vector, Tuple, Product, Sum, Reference,
// Function).
package value

import (
	"crayfish/internal/numtower"
)

// Value is the tagged union of every runtime value, mirrored on the
// teacher's own `type Value interface{}` idiom: any concrete type below
// may be stored in a Value slot, discriminated with a type switch.
type Value = any

// Kind identifies the dynamic type of a Value for fault messages and
// Cast dispatch.
type Kind int

const (
	KindInteger Kind = iota
	KindDecimal
	KindString
	KindBoolean
	KindCharacter
	KindVector
	KindTuple
	KindProduct
	KindSum
	KindFunction
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindCharacter:
		return "character"
	case KindVector:
		return "vector"
	case KindTuple:
		return "tuple"
	case KindProduct:
		return "product"
	case KindSum:
		return "sum"
	case KindFunction:
		return "function"
	case KindReference:
		return "reference"
	default:
		return "value(?)"
	}
}

// KindOf reports the dynamic Kind of v.
func KindOf(v Value) Kind {
	switch v.(type) {
	case numtower.Integer:
		return KindInteger
	case numtower.Decimal:
		return KindDecimal
	case string:
		return KindString
	case bool:
		return KindBoolean
	case rune:
		return KindCharacter
	case *Vector:
		return KindVector
	case *Tuple:
		return KindTuple
	case *Product:
		return KindProduct
	case *Sum:
		return KindSum
	case *Function:
		return KindFunction
	case Reference:
		return KindReference
	default:
		return KindInteger
	}
}

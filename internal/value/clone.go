package value

import "crayfish/internal/numtower"

// Clone deep-copies aggregate values so that stack cells never alias
// mutable state across Duplicate/VectorSet boundaries; scalars are
// returned as-is since numtower.Integer/Decimal and the primitive Go
// kinds are already immutable value types.
func Clone(v Value) Value {
	switch t := v.(type) {
	case numtower.Integer:
		return t.Clone()
	case numtower.Decimal:
		return t.Clone()
	case *Vector:
		return t.Clone()
	case *Tuple:
		return t.Clone()
	case *Product:
		return t.Clone()
	case *Sum:
		return t.Clone()
	case *Function:
		clone := *t
		return &clone
	default:
		return v
	}
}

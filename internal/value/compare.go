package value

import (
	"fmt"

	"crayfish/internal/numtower"
)

// ErrAggregateOrdering is returned for any comparison attempt touching a
// Vector, Tuple, Product, Sum, Function or Reference. The original these
// semantics were distilled from leaves aggregate equality/ordering
// unimplemented (todo!() in original_source/src/value/mod.rs); here that
// becomes a real, reportable type error instead of a panic.
var ErrAggregateOrdering = fmt.Errorf("aggregate values have no defined equality or ordering")

// Equal reports scalar equality. Mixed dynamic kinds are never equal.
// Aggregates return ErrAggregateOrdering.
func Equal(a, b Value) (bool, error) {
	switch av := a.(type) {
	case numtower.Integer:
		bv, ok := b.(numtower.Integer)
		if !ok {
			return false, nil
		}
		return numtower.Equal(av, bv), nil
	case numtower.Decimal:
		bv, ok := b.(numtower.Decimal)
		if !ok {
			return false, nil
		}
		return numtower.DecimalEqual(av, bv), nil
	case string:
		bv, ok := b.(string)
		return ok && av == bv, nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv, nil
	case rune:
		bv, ok := b.(rune)
		return ok && av == bv, nil
	default:
		return false, ErrAggregateOrdering
	}
}

// Less reports scalar ordering. Mixed dynamic kinds and non-orderable
// kinds (string, boolean, character, aggregates) return an error.
func Less(a, b Value) (bool, error) {
	switch av := a.(type) {
	case numtower.Integer:
		bv, ok := b.(numtower.Integer)
		if !ok {
			return false, ErrAggregateOrdering
		}
		less, ok := numtower.Less(av, bv)
		if !ok {
			return false, ErrAggregateOrdering
		}
		return less, nil
	case numtower.Decimal:
		bv, ok := b.(numtower.Decimal)
		if !ok {
			return false, ErrAggregateOrdering
		}
		less, ok := numtower.DecimalLess(av, bv)
		if !ok {
			return false, ErrAggregateOrdering
		}
		return less, nil
	default:
		return false, ErrAggregateOrdering
	}
}

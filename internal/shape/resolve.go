package shape

import (
	"errors"
	"fmt"
)

// MaxWrapperDepth bounds how many wrappers Resolve looks through.
const MaxWrapperDepth = 64

// ErrNoShape is returned when a type reachable from a query has no structural description.
var ErrNoShape = errors.New("no structural description")

// Resolve returns the shape of t: the terminal or record type reached after
// looking through any chain of wrappers. Wrappers are transparent, so
// option<list<Order>> resolves to Order.
func Resolve(t *Type) (*Type, error) {
	cur := t

	for depth := 0; ; depth++ {
		if cur == nil {
			return nil, fmt.Errorf("%w: nil type", ErrNoShape)
		}

		switch cur.Kind {
		case KindTerminal, KindRecord:
			return cur, nil

		case KindWrapper:
			if depth >= MaxWrapperDepth {
				return nil, fmt.Errorf("%w: more than %d nested wrappers", ErrNoShape, MaxWrapperDepth)
			}

			cur = cur.Elem

		default:
			return nil, fmt.Errorf("%w for %s", ErrNoShape, cur)
		}
	}
}

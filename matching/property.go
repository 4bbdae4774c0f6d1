package matching

// Property extracts candidate sub-values of a matched value so a
// sub-pattern can be applied to them. An extraction may be empty (the
// property does not apply), single-valued (the common case), or ambiguous —
// several equivalent candidates, each continuing its own decomposition
// path.
type Property[T, R any] struct {
	name    string
	extract func(value T, context any) []R
}

// NewProperty builds a single-valued property. Returning ok=false ends the
// decomposition path.
func NewProperty[T, R any](name string, extract func(value T, context any) (R, bool)) Property[T, R] {
	return Property[T, R]{
		name: name,
		extract: func(value T, context any) []R {
			if r, ok := extract(value, context); ok {
				return []R{r}
			}
			return nil
		},
	}
}

// NewMultiProperty builds a property whose extraction may be ambiguous.
// Each candidate is matched independently and can yield its own Match.
func NewMultiProperty[T, R any](name string, extract func(value T, context any) []R) Property[T, R] {
	return Property[T, R]{name: name, extract: extract}
}

func (p Property[T, R]) Name() string {
	return p.name
}

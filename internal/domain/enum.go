package domain

// EnumSet is the closed set of symbols a field accepts.
type EnumSet[T ~string] struct {
	field   string
	members []T
}

func NewEnumSet[T ~string](field string, members ...T) EnumSet[T] {
	return EnumSet[T]{field: field, members: members}
}

// Parse maps raw to its symbol. Matching is exact: no trimming, no case folding.
func (s EnumSet[T]) Parse(raw string) (T, error) {
	for _, m := range s.members {
		if string(m) == raw {
			return m, nil
		}
	}
	var zero T
	return zero, &InvalidEnumValueError{Field: s.field, Value: raw, Allowed: s.Symbols()}
}

func (s EnumSet[T]) Symbols() []string {
	out := make([]string, len(s.members))
	for i, m := range s.members {
		out[i] = string(m)
	}
	return out
}

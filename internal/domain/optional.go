package domain

import (
	"bytes"
	"encoding/json"
)

// Optional records whether a field was supplied in a partial update. A missing
// key and an explicit JSON null both leave Set false; any other value, including
// an empty string, is supplied.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a supplied value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Apply overwrites *dst when the value was supplied.
func (o Optional[T]) Apply(dst *T) {
	if o.Set {
		*dst = o.Value
	}
}

package models

import "encoding/json"

// Optional is a JSON field that distinguishes between a key that was
// absent, a key set to null, and a key set to a value. Partial-update
// request bodies use it so "clear this field" and "leave unchanged" are
// never conflated.
type Optional[T any] struct {
	Set   bool // the key was present in the request body
	Valid bool // the value was non-null
	Value T
}

// UnmarshalJSON is only invoked for keys present in the body, so Set is
// always true here; absent keys keep the zero Optional.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON renders the value, or null when not valid.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns a pointer to the value when present and non-null, else nil.
func (o Optional[T]) Ptr() *T {
	if !o.Set || !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

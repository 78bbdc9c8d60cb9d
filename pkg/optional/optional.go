// Package optional provides a three-valued field wrapper for partial-update
// payloads: a key can be absent, present with null, or present with a value.
// A plain pointer cannot carry that distinction through encoding/json.
package optional

import "encoding/json"

// Field distinguishes "key absent" from "key present with null" from "key
// present with a value". The zero value is Undefined, which is what a field
// decodes to when its key is missing: encoding/json never calls UnmarshalJSON
// for absent keys.
type Field[T any] struct {
	defined bool
	value   *T
}

// Undefined returns a field whose key was absent.
func Undefined[T any]() Field[T] { return Field[T]{} }

// Null returns a field explicitly set to null.
func Null[T any]() Field[T] { return Field[T]{defined: true} }

// Of returns a field set to v.
func Of[T any](v T) Field[T] { return Field[T]{defined: true, value: &v} }

// Defined reports whether the key was present at all.
func (f Field[T]) Defined() bool { return f.defined }

// IsNull reports whether the key was present and explicitly null.
func (f Field[T]) IsNull() bool { return f.defined && f.value == nil }

// Get returns the value and true when the field holds a non-null value.
func (f Field[T]) Get() (T, bool) {
	if f.value == nil {
		var zero T
		return zero, false
	}
	return *f.value, true
}

// Ptr returns a pointer to the value, or nil for undefined and null fields.
// The pointee is a copy; mutating it does not affect the field.
func (f Field[T]) Ptr() *T {
	if f.value == nil {
		return nil
	}
	v := *f.value
	return &v
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.defined = true
	if string(b) == "null" {
		f.value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.value = &v
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.value)
}

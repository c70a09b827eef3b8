package dataforged

import (
	"bytes"
	"encoding/json"
)

// Object is a JSON object that keeps its keys in document order.
// Setting an existing key replaces the value and keeps its position.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty object
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Get returns the value stored under key
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Set stores value under key
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Delete removes key from the object
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in document order
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Values returns the values in document order
func (o *Object) Values() []any {
	if o == nil {
		return nil
	}
	values := make([]any, len(o.keys))
	for i, k := range o.keys {
		values[i] = o.values[k]
	}
	return values
}

// Len returns the number of keys
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// MarshalJSON encodes the object with its keys in document order
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keeping the key order of data
func (o *Object) UnmarshalJSON(data []byte) error {
	v, err := Parse(data)
	if err != nil {
		return err
	}
	parsed, ok := v.(*Object)
	if !ok {
		return &json.UnmarshalTypeError{Value: "non-object", Type: objectType}
	}
	*o = *parsed
	return nil
}

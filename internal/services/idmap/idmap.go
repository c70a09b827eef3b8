// Package idmap builds the run-scoped map from upstream content identifiers
// to compact DF identifiers.
package idmap

import (
	"bytes"
	"encoding/json"

	"github.com/KirkDiggler/ironsworn-content/internal/entities/dataforged"
	"github.com/KirkDiggler/ironsworn-content/internal/errors"
)

// Unresolved is substituted for identifiers missing from the map
const Unresolved = "undefined"

// IDMap maps upstream $id values to generated identifiers.
// Keys keep the order in which they were first discovered.
type IDMap struct {
	keys []string
	ids  map[string]string
}

// New creates an empty map
func New() *IDMap {
	return &IDMap{ids: make(map[string]string)}
}

// Set records id for key. A repeated key keeps its original position.
func (m *IDMap) Set(key, id string) {
	if _, ok := m.ids[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.ids[key] = id
}

// Lookup returns the identifier for key
func (m *IDMap) Lookup(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	id, ok := m.ids[key]
	return id, ok
}

// Resolve returns the identifier for key, or Unresolved
func (m *IDMap) Resolve(key string) string {
	if id, ok := m.Lookup(key); ok {
		return id
	}
	return Unresolved
}

// Keys returns the keys in discovery order
func (m *IDMap) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of entries
func (m *IDMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// MarshalJSON encodes the map as an object in discovery order
func (m *IDMap) MarshalJSON() ([]byte, error) {
	obj := dataforged.NewObject()
	for _, k := range m.Keys() {
		obj.Set(k, m.ids[k])
	}
	return obj.MarshalJSON()
}

// UnmarshalJSON decodes an object of string values keeping key order
func (m *IDMap) UnmarshalJSON(data []byte) error {
	var obj dataforged.Object
	if err := obj.UnmarshalJSON(bytes.TrimSpace(data)); err != nil {
		return err
	}

	decoded := New()
	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)
		id, ok := dataforged.AsString(v)
		if !ok {
			return errors.InvalidArgumentf("identifier for %q is not a string", k)
		}
		decoded.Set(k, id)
	}
	*m = *decoded
	return nil
}

var _ json.Marshaler = (*IDMap)(nil)

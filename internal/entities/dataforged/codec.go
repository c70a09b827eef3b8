package dataforged

import (
	"bytes"
	"encoding/json"
	"io"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/ironsworn-content/internal/errors"
)

var objectType = reflect.TypeOf(Object{})

// Parse decodes a JSON document into ordered values: *Object, []any,
// string, json.Number, bool or nil. Numbers keep their source text.
func Parse(data []byte) (any, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.DataLossf("document is not valid JSON")
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

func fromResult(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return json.Number(strings.TrimSpace(r.Raw))
	case gjson.String:
		return r.Str
	}

	if r.IsArray() {
		items := make([]any, 0)
		r.ForEach(func(_, value gjson.Result) bool {
			items = append(items, fromResult(value))
			return true
		})
		return items
	}

	obj := NewObject()
	r.ForEach(func(key, value gjson.Result) bool {
		obj.Set(key.Str, fromResult(value))
		return true
	})
	return obj
}

// Encode writes v as JSON indented by two spaces followed by a newline.
// HTML is not escaped because rewritten text fields carry markup. Numbers
// are written with their source text (1.50 stays 1.50, not 1.5) and
// U+2028/U+2029 come out escaped.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "failed to encode document")
	}
	return nil
}

// Marshal is Encode into a byte slice
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for i, k := range t.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeValue(buf, t.values[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case string:
		return writeString(buf, t)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return err
		}
		buf.Write(raw)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

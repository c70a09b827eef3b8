package dataforged

// AsObject returns v as an object
func AsObject(v any) (*Object, bool) {
	o, ok := v.(*Object)
	return o, ok && o != nil
}

// AsArray returns v as an array
func AsArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// AsString returns v as a string
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Field returns the named field of v when v is an object
func Field(v any, key string) (any, bool) {
	o, ok := AsObject(v)
	if !ok {
		return nil, false
	}
	return o.Get(key)
}

// StringField returns the named string field of v.
// Empty strings are reported as absent.
func StringField(v any, key string) (string, bool) {
	f, ok := Field(v, key)
	if !ok {
		return "", false
	}
	s, ok := AsString(f)
	return s, ok && s != ""
}

// ArrayField returns the named array field of v
func ArrayField(v any, key string) ([]any, bool) {
	f, ok := Field(v, key)
	if !ok {
		return nil, false
	}
	return AsArray(f)
}

// ObjectField returns the named object field of v
func ObjectField(v any, key string) (*Object, bool) {
	f, ok := Field(v, key)
	if !ok {
		return nil, false
	}
	return AsObject(f)
}

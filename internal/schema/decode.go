package schema

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
)

const rootField = "body"

// Decode parses data into v, which must be a non-nil pointer, and validates
// the result. Keys that are neither omitempty nor pointers must be present
// and non-null, and every value must have the JSON kind of its field. v is
// left untouched when an error is returned.
func Decode(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &json.InvalidUnmarshalError{Type: reflect.TypeOf(v)}
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	target := reflect.New(rv.Type().Elem())
	fields := checkShape(raw, target.Type().Elem(), "")

	if err := json.Unmarshal(data, target.Interface()); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return err
		}
		// The shape walk reports the same mismatch with an indexed path.
		if len(fields) == 0 {
			fields = append(fields, typeFieldError(typeErr))
		}
	}

	reported := make(map[string]bool, len(fields))
	for _, f := range fields {
		reported[f.Field] = true
	}
	for _, f := range validateValue(target, "") {
		if !reported[f.Field] {
			fields = append(fields, f)
		}
	}
	if len(fields) > 0 {
		return &Error{Fields: fields}
	}

	rv.Elem().Set(target.Elem())
	return nil
}

// checkShape walks the generic decode of a body alongside the Go type it is
// decoded into, reporting absent keys, nulls and JSON kind mismatches.
func checkShape(raw any, t reflect.Type, path string) []FieldError {
	if raw == nil {
		if path == "" && !nullable(t) {
			return []FieldError{nullFieldError(rootField)}
		}
		return nil
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		obj, ok := raw.(map[string]any)
		if !ok {
			return []FieldError{kindFieldError(path, t, raw)}
		}
		return checkObject(obj, t, path)
	case reflect.Slice, reflect.Array:
		items, ok := raw.([]any)
		if !ok {
			return []FieldError{kindFieldError(path, t, raw)}
		}
		var fields []FieldError
		for i, item := range items {
			fields = append(fields, checkShape(item, t.Elem(), indexPath(path, i))...)
		}
		return fields
	case reflect.String:
		if _, ok := raw.(string); !ok {
			return []FieldError{kindFieldError(path, t, raw)}
		}
	case reflect.Bool:
		if _, ok := raw.(bool); !ok {
			return []FieldError{kindFieldError(path, t, raw)}
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if _, ok := raw.(float64); !ok {
			return []FieldError{kindFieldError(path, t, raw)}
		}
	}
	return nil
}

func checkObject(obj map[string]any, t reflect.Type, path string) []FieldError {
	var fields []FieldError
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, opts, _ := strings.Cut(f.Tag.Get("json"), ",")
		if f.Anonymous && name == "" && f.Type.Kind() == reflect.Struct {
			fields = append(fields, checkObject(obj, f.Type, path)...)
			continue
		}
		if !f.IsExported() || name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}

		key := joinPath(path, name)
		optional := strings.Contains(opts, "omitempty") || nullable(f.Type)
		val, present := obj[name]
		switch {
		case !present && !optional:
			fields = append(fields, FieldError{Field: key, Rule: "required", Message: key + " is required"})
		case present && val == nil && !optional:
			fields = append(fields, nullFieldError(key))
		case present:
			fields = append(fields, checkShape(val, f.Type, key)...)
		}
	}
	return fields
}

func nullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface:
		return true
	default:
		return false
	}
}

func nullFieldError(field string) FieldError {
	return FieldError{Field: field, Rule: "type", Message: field + " must not be null"}
}

func kindFieldError(path string, t reflect.Type, raw any) FieldError {
	if path == "" {
		path = rootField
	}
	return FieldError{
		Field:   path,
		Rule:    "type",
		Message: path + " must be " + jsonKind(t) + ", got " + valueKind(raw),
	}
}

func typeFieldError(e *json.UnmarshalTypeError) FieldError {
	field := e.Field
	if field == "" {
		field = rootField
	}
	return FieldError{
		Field:   field,
		Rule:    "type",
		Message: field + " must be " + jsonKind(e.Type) + ", got " + e.Value,
	}
}

func valueKind(raw any) string {
	switch raw.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "null"
	}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	default:
		return t.String()
	}
}

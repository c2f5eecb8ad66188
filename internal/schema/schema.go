// Package schema validates entity values against the rules declared in their
// struct tags and decodes JSON bodies into validated values.
package schema

import (
	"fmt"
	"reflect"
	"strings"

	"booktracker/internal/entity"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(jsonName)
	validate.RegisterValidation("userbook_status", validateStatus)
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

func validateStatus(fl validator.FieldLevel) bool {
	return entity.Status(fl.Field().String()).Valid()
}

// FieldError is a single constraint violation. Field is a JSON path such as
// "books[0].status".
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error lists every constraint a value violated.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, f.Message)
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// Field returns the violation reported for the given JSON path.
func (e *Error) Field(name string) (FieldError, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f, true
		}
	}
	return FieldError{}, false
}

// Validate checks a struct, a pointer to one, or a slice of them.
func Validate(v any) error {
	fields := validateValue(reflect.ValueOf(v), "")
	if len(fields) == 0 {
		return nil
	}
	return &Error{Fields: fields}
}

func validateValue(rv reflect.Value, path string) []FieldError {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		var fields []FieldError
		for i := 0; i < rv.Len(); i++ {
			fields = append(fields, validateValue(rv.Index(i), indexPath(path, i))...)
		}
		return fields
	case reflect.Struct:
		return toFieldErrors(validate.Struct(rv.Interface()), path)
	default:
		return nil
	}
}

func toFieldErrors(err error, prefix string) []FieldError {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: prefix, Rule: "invalid", Message: err.Error()}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := joinPath(prefix, namespacePath(fe.Namespace()))
		fields = append(fields, FieldError{
			Field:   field,
			Rule:    fe.Tag(),
			Message: ruleMessage(field, fe.Tag()),
		})
	}
	return fields
}

func ruleMessage(field, rule string) string {
	switch rule {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "userbook_status":
		return fmt.Sprintf("%s must be one of %s", field, statusList())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func statusList() string {
	statuses := entity.Statuses()
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// namespacePath turns "User.books[0].status" into "books[0].status".
// Segments named after Go types (the root struct and embedded structs) start
// with an upper case letter, JSON names never do.
func namespacePath(ns string) string {
	segments := strings.Split(ns, ".")
	kept := segments[:0]
	for _, s := range segments {
		if s == "" || (s[0] >= 'A' && s[0] <= 'Z') {
			continue
		}
		kept = append(kept, s)
	}
	return strings.Join(kept, ".")
}

func joinPath(prefix, name string) string {
	switch {
	case prefix == "":
		return name
	case name == "":
		return prefix
	default:
		return prefix + "." + name
	}
}

func indexPath(prefix string, i int) string {
	return fmt.Sprintf("%s[%d]", prefix, i)
}

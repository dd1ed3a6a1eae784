package shared

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Global validator instance for reuse. Field names in validation errors come
// from the query tag, so they match what the client sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("query"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// BindQuery copies query parameters into the string fields of the struct
// pointed to by v, keyed by their query tag. Values are trimmed, so a blank
// parameter is the same as a missing one.
func BindQuery(values map[string][]string, v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("query"), ",")
		if name == "" || name == "-" || field.Type.Kind() != reflect.String {
			continue
		}
		if vals := values[name]; len(vals) > 0 {
			rv.Field(i).SetString(strings.TrimSpace(vals[0]))
		}
	}
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	// Check if the object implements the Validate interface
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	// Otherwise, use the struct validator
	return validate.Struct(v)
}

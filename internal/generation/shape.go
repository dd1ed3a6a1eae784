package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ListKey is the field a bare top-level JSON array is wrapped into before
// validation. Providers asked for a list of titles answer either with
// {"titles": [...]} or with the bare array, and both must validate.
const ListKey = "titles"

// FieldType enumerates the value kinds a Descriptor can describe.
type FieldType string

// Supported field types
const (
	FieldString     FieldType = "string"
	FieldStringList FieldType = "string_list"
	FieldObjectList FieldType = "object_list"
)

// Field is one named member of a Descriptor.
type Field struct {
	Name string
	Type FieldType

	// Fields lists the members of each item when Type is FieldObjectList.
	Fields []Field
}

// Descriptor is the declarative, provider-neutral description of the JSON
// object a caller expects. It is rendered into the system instruction and
// may be translated into a provider-specific response schema.
type Descriptor struct {
	// Name labels the shape in logs and metrics.
	Name   string
	Fields []Field
}

// Describe renders the descriptor as a JSON skeleton, e.g.
// {"titles": ["string"]}.
func (d Descriptor) Describe() string {
	var b strings.Builder
	writeObject(&b, d.Fields)
	return b.String()
}

func writeObject(b *strings.Builder, fields []Field) {
	b.WriteString("{")
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%q: ", f.Name)
		switch f.Type {
		case FieldStringList:
			b.WriteString(`["string"]`)
		case FieldObjectList:
			b.WriteString("[")
			writeObject(b, f.Fields)
			b.WriteString("]")
		default:
			b.WriteString(`"string"`)
		}
	}
	b.WriteString("}")
}

// Shape binds a Descriptor to the Go type the response decodes into.
// T carries json tags naming the fields and validate tags marking the
// required ones.
type Shape[T any] struct {
	Descriptor
}

// NewShape creates a Shape for T.
func NewShape[T any](name string, fields ...Field) Shape[T] {
	return Shape[T]{Descriptor: Descriptor{Name: name, Fields: fields}}
}

var validate = validator.New()

// Parse decodes raw provider output into T.
//
// A bare top-level array is wrapped into {"titles": <array>} first. Invalid
// JSON yields ErrMalformedResponse; unknown fields, wrong types, nulls and
// fields the descriptor declares but the document lacks yield
// ErrShapeMismatch. Empty strings and empty lists are accepted. No repair of
// malformed output is attempted.
func (s Shape[T]) Parse(raw string) (T, error) {
	var zero T

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	switch v := doc.(type) {
	case []any:
		doc = map[string]any{ListKey: v}
	case map[string]any:
	default:
		return zero, fmt.Errorf("%w: top-level value is %T, want object", ErrShapeMismatch, doc)
	}

	if path, ok := findNull(doc, ""); ok {
		return zero, fmt.Errorf("%w: null value at %s", ErrShapeMismatch, path)
	}
	if err := checkFields(doc.(map[string]any), s.Fields, ""); err != nil {
		return zero, err
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var out T
	dec := json.NewDecoder(bytes.NewReader(normalized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}

	if err := validate.Struct(out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}

	return out, nil
}

// findNull returns the path of the first null in v. encoding/json would
// silently decode it into a zero value.
func findNull(v any, path string) (string, bool) {
	switch v := v.(type) {
	case nil:
		if path == "" {
			return "$", true
		}
		return path, true
	case map[string]any:
		for k, item := range v {
			if p, ok := findNull(item, joinPath(path, k)); ok {
				return p, true
			}
		}
	case []any:
		for i, item := range v {
			if p, ok := findNull(item, fmt.Sprintf("%s[%d]", path, i)); ok {
				return p, true
			}
		}
	}
	return "", false
}

// checkFields reports the first declared field missing from obj, descending
// into the items of object lists.
func checkFields(obj map[string]any, fields []Field, path string) error {
	for _, f := range fields {
		v, ok := obj[f.Name]
		if !ok {
			return fmt.Errorf("%w: missing field %s", ErrShapeMismatch, joinPath(path, f.Name))
		}
		if f.Type != FieldObjectList {
			continue
		}
		items, ok := v.([]any)
		if !ok {
			continue
		}
		for i, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if err := checkFields(m, f.Fields, fmt.Sprintf("%s[%d]", joinPath(path, f.Name), i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

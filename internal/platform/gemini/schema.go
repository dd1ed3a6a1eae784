package gemini

import (
	"github.com/phrazzld/blogsmith-api/internal/generation"
	"google.golang.org/genai"
)

// SchemaFor translates a shape descriptor into a genai response schema.
// It returns nil for an empty descriptor.
func SchemaFor(d generation.Descriptor) *genai.Schema {
	if len(d.Fields) == 0 {
		return nil
	}
	return objectSchema(d.Fields)
}

func objectSchema(fields []generation.Field) *genai.Schema {
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(fields)),
		Required:   make([]string, 0, len(fields)),
	}
	for _, f := range fields {
		schema.Properties[f.Name] = fieldSchema(f)
		schema.Required = append(schema.Required, f.Name)
	}
	return schema
}

func fieldSchema(f generation.Field) *genai.Schema {
	switch f.Type {
	case generation.FieldStringList:
		return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
	case generation.FieldObjectList:
		return &genai.Schema{Type: genai.TypeArray, Items: objectSchema(f.Fields)}
	default:
		return &genai.Schema{Type: genai.TypeString}
	}
}

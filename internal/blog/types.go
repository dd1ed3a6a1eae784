package blog

import "github.com/phrazzld/blogsmith-api/internal/generation"

// Titles is the generated title list.
type Titles struct {
	Titles []string `json:"titles" validate:"required"`
}

// Idea is one blog post idea. Both keys must be present; empty strings are
// accepted.
type Idea struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Ideas is the generated idea list.
type Ideas struct {
	Items []Idea `json:"titles_with_descriptions" validate:"required,dive"`
}

// Shapes requested from the generator. The number of items is asked for in
// the prompt and not enforced.
var (
	TitlesShape = generation.NewShape[Titles]("titles",
		generation.Field{Name: "titles", Type: generation.FieldStringList},
	)

	IdeasShape = generation.NewShape[Ideas]("ideas",
		generation.Field{
			Name: "titles_with_descriptions",
			Type: generation.FieldObjectList,
			Fields: []generation.Field{
				{Name: "title", Type: generation.FieldString},
				{Name: "description", Type: generation.FieldString},
			},
		},
	)
)

package blog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/template"
)

// Template file names, both in the embedded set and in an override directory.
const (
	TitlesTemplate = "titles.tmpl"
	IdeasTemplate  = "ideas.tmpl"
)

// ErrPromptTemplate is returned when a prompt template cannot be loaded or rendered.
var ErrPromptTemplate = errors.New("prompt template error")

//go:embed prompts/*.tmpl
var embeddedPrompts embed.FS

// Prompts renders the user prompts sent to the generator.
type Prompts struct {
	titles *template.Template
	ideas  *template.Template
}

// titlesData is the data passed to the titles template.
type titlesData struct {
	Topic string
}

// ideasData is the data passed to the ideas template.
type ideasData struct {
	BlogPostIdea string
	Tone         string
}

// LoadPrompts parses the prompt templates. An empty dir uses the templates
// compiled into the binary; otherwise dir must contain both template files.
func LoadPrompts(dir string) (*Prompts, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(embeddedPrompts, "prompts")
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPromptTemplate, err)
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}

	titles, err := parseTemplate(fsys, TitlesTemplate)
	if err != nil {
		return nil, err
	}
	ideas, err := parseTemplate(fsys, IdeasTemplate)
	if err != nil {
		return nil, err
	}

	return &Prompts{titles: titles, ideas: ideas}, nil
}

func parseTemplate(fsys fs.FS, name string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").ParseFS(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrPromptTemplate, name, err)
	}
	return tmpl, nil
}

// Titles renders the title generation prompt.
func (p *Prompts) Titles(topic string) (string, error) {
	return render(p.titles, titlesData{Topic: topic})
}

// Ideas renders the idea generation prompt.
func (p *Prompts) Ideas(blogPostIdea, tone string) (string, error) {
	return render(p.ideas, ideasData{BlogPostIdea: blogPostIdea, Tone: tone})
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: failed to render %s: %w", ErrPromptTemplate, tmpl.Name(), err)
	}
	return buf.String(), nil
}

package schema

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Field type tags understood by the CMS runtime.
const (
	TypeString    = "string"
	TypeText      = "text" // rich text
	TypeReference = "reference"
	TypeList      = "list"
	TypeObject    = "object"
	TypeDatetime  = "datetime"
	TypeBoolean   = "boolean"
)

// ValidTypes contains all valid field type tags.
var ValidTypes = []string{
	TypeString,
	TypeText,
	TypeReference,
	TypeList,
	TypeObject,
	TypeDatetime,
	TypeBoolean,
}

// Schema is the full collection tree a project exposes to the CMS runtime.
// It is declarative configuration: loaded once, never mutated at runtime.
type Schema struct {
	Collections []Collection `yaml:"collections"`
}

// Collection is a named group of content documents sharing one field schema.
type Collection struct {
	Name   string  `yaml:"name"`
	Label  string  `yaml:"label"`
	Path   string  `yaml:"path"`
	Format string  `yaml:"format,omitempty"`
	Fields []Field `yaml:"fields"`
}

// Field describes one content attribute: its type tag plus the optional
// nesting, reference targets, and option constraints that tag allows.
type Field struct {
	Name        string   `yaml:"name"`
	Label       string   `yaml:"label,omitempty"`
	Type        string   `yaml:"type"`
	Description string   `yaml:"description,omitempty"`
	Required    bool     `yaml:"required,omitempty"`
	Fields      []Field  `yaml:"fields,omitempty"`      // object nesting
	Collections []string `yaml:"collections,omitempty"` // reference targets
	Options     []string `yaml:"options,omitempty"`     // enum constraint
}

// Load reads and parses a schema file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}

	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing schema %s: %w", path, err)
	}
	return &s, nil
}

// Save writes the schema to path as YAML.
func (s *Schema) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling schema: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing schema %s: %w", path, err)
	}
	return nil
}

// Collection returns the named collection, or nil when absent.
func (s *Schema) Collection(name string) *Collection {
	for i := range s.Collections {
		if s.Collections[i].Name == name {
			return &s.Collections[i]
		}
	}
	return nil
}

var titleCaser = cases.Title(language.English)

// DefaultLabel derives a display label from a machine name:
// "blog-posts" → "Blog Posts".
func DefaultLabel(name string) string {
	cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return titleCaser.String(cleaned)
}

// Default returns the starter blog schema the scaffolder writes into new
// projects: a posts collection with an author reference, and the authors
// collection it points at.
func Default() *Schema {
	return &Schema{
		Collections: []Collection{
			{
				Name:   "posts",
				Label:  "Blog Posts",
				Path:   "content/posts",
				Format: "md",
				Fields: []Field{
					{Name: "title", Label: "Title", Type: TypeString, Required: true},
					{Name: "published", Label: "Published", Type: TypeDatetime},
					{Name: "draft", Label: "Draft", Type: TypeBoolean},
					{Name: "author", Label: "Author", Type: TypeReference, Collections: []string{"authors"}},
					{Name: "tags", Label: "Tags", Type: TypeList, Options: []string{"news", "tutorial", "release"}},
					{
						Name:  "seo",
						Label: "SEO",
						Type:  TypeObject,
						Fields: []Field{
							{Name: "description", Label: "Description", Type: TypeString},
							{Name: "image", Label: "Image", Type: TypeString},
						},
					},
					{Name: "body", Label: "Body", Type: TypeText},
				},
			},
			{
				Name:   "authors",
				Label:  "Authors",
				Path:   "content/authors",
				Format: "md",
				Fields: []Field{
					{Name: "name", Label: "Name", Type: TypeString, Required: true},
					{Name: "avatar", Label: "Avatar", Type: TypeString},
					{Name: "bio", Label: "Bio", Type: TypeText},
				},
			},
		},
	}
}

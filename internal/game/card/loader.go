package card

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadTemplateFromBytes parses a single card template from raw YAML bytes.
// Unknown fields are rejected so content typos fail loudly at load time.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tmpl); err != nil {
		return nil, fmt.Errorf("parsing card YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed card
// templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading card dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// Registry holds card templates keyed by ID.
type Registry struct {
	templates map[string]*Template
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*Template)}
}

// Register adds tmpl, overwriting any existing entry with the same ID.
//
// Precondition: tmpl must not be nil and tmpl.ID must not be empty.
func (r *Registry) Register(tmpl *Template) {
	r.templates[tmpl.ID] = tmpl
}

// Get returns the template for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*Template, bool) {
	t, ok := r.templates[id]
	return t, ok
}

// All returns a snapshot slice of all registered templates.
func (r *Registry) All() []*Template {
	out := make([]*Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t)
	}
	return out
}

// LoadDirectory reads every card YAML in dir into a populated Registry.
//
// Precondition: dir must be a readable directory.
func LoadDirectory(dir string) (*Registry, error) {
	templates, err := LoadTemplates(dir)
	if err != nil {
		return nil, err
	}
	reg := NewRegistry()
	for _, t := range templates {
		reg.Register(t)
	}
	return reg, nil
}

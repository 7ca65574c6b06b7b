package queries

import (
	_ "embed"
	"fmt"
	"strings"

	"icatdirect/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed queries.yaml
var catalogFile []byte

// Template is a catalog entry.
//
// Params names the positional parameters ($1..$n) in order. Fragments names
// the %s placeholders that are substituted before parameters are bound.
type Template struct {
	Name      Name     `yaml:"name"`
	Params    []string `yaml:"params"`
	Fragments []string `yaml:"fragments"`
	SQL       string   `yaml:"sql"`
}

// Format substitutes trusted fragments into the template text.
// Templates without fragments are returned unchanged.
func (t *Template) Format(fragments ...string) (string, error) {
	if len(fragments) != len(t.Fragments) {
		return "", fmt.Errorf("query %s expects %d fragments (%s), got %d",
			t.Name, len(t.Fragments), strings.Join(t.Fragments, ", "), len(fragments))
	}
	if len(fragments) == 0 {
		return t.SQL, nil
	}

	values := make([]interface{}, len(fragments))
	for i, f := range fragments {
		values[i] = f
	}
	return fmt.Sprintf(t.SQL, values...), nil
}

type catalogDocument struct {
	Queries []Template `yaml:"queries"`
}

// Catalog maps symbolic names to SQL templates. It is read-only after loading.
type Catalog struct {
	templates map[Name]*Template
}

// Load parses the embedded catalog and checks that every Name is defined
func Load() (*Catalog, error) {
	c, err := Parse(catalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load query catalog: %w", err)
	}

	for _, name := range Names() {
		if _, err := c.Lookup(name); err != nil {
			return nil, fmt.Errorf("embedded query catalog: %w", err)
		}
	}

	return c, nil
}

// Parse reads a catalog document
func Parse(data []byte) (*Catalog, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal query catalog: %w", err)
	}

	c := &Catalog{templates: make(map[Name]*Template, len(doc.Queries))}
	for i := range doc.Queries {
		t := &doc.Queries[i]
		if t.Name == "" {
			return nil, fmt.Errorf("query #%d has no name", i)
		}
		if strings.TrimSpace(t.SQL) == "" {
			return nil, fmt.Errorf("query %s has no sql", t.Name)
		}
		if _, exists := c.templates[t.Name]; exists {
			return nil, fmt.Errorf("query %s defined twice", t.Name)
		}
		c.templates[t.Name] = t
	}

	return c, nil
}

// Lookup returns the template for name, or domain.ErrUnknownQuery
func (c *Catalog) Lookup(name Name) (*Template, error) {
	t, ok := c.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownQuery, name)
	}
	return t, nil
}

// Statement is a template with its fragments substituted, ready for binding
type Statement struct {
	Name Name
	SQL  string
}

// Package taxonomy supplies the closed sub-tag sets for each insight
// category. The sets are product configuration, not a stable domain model:
// deployments may override the embedded defaults with a YAML file.
package taxonomy

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/transcriptlab/insights/internal/domain/entities"
)

//go:embed categories.yaml
var defaultYAML []byte

// categoryConfig is the YAML shape for one category.
type categoryConfig struct {
	Tags    []string `yaml:"tags"`
	Default string   `yaml:"default"`
}

// Taxonomy maps each category to its allowed sub-tags and default sub-tag.
type Taxonomy struct {
	categories map[entities.Category]categoryConfig
}

// Default returns the embedded taxonomy.
func Default() *Taxonomy {
	t, err := parse(defaultYAML)
	if err != nil {
		// Embedded config is validated by tests; a parse failure here is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("taxonomy: embedded config invalid: %v", err))
	}
	return t
}

// LoadFile reads a taxonomy override from path.
func LoadFile(path string) (*Taxonomy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}
	return parse(b)
}

// Load returns the taxonomy at path, or the embedded default when path is
// empty.
func Load(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

func parse(b []byte) (*Taxonomy, error) {
	var raw map[string]categoryConfig
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}

	cats := make(map[entities.Category]categoryConfig, len(raw))
	for name, cfg := range raw {
		c := entities.Category(name)
		if !known(c) {
			return nil, fmt.Errorf("parse taxonomy: unknown category %q", name)
		}
		if len(cfg.Tags) == 0 {
			return nil, fmt.Errorf("parse taxonomy: category %q has no tags", name)
		}
		if cfg.Default == "" {
			return nil, fmt.Errorf("parse taxonomy: category %q has no default tag", name)
		}
		if !contains(cfg.Tags, cfg.Default) {
			return nil, fmt.Errorf("parse taxonomy: category %q default %q not in tag set", name, cfg.Default)
		}
		cats[c] = cfg
	}

	for _, c := range entities.Categories() {
		if _, ok := cats[c]; !ok {
			return nil, fmt.Errorf("parse taxonomy: category %q missing", c)
		}
	}

	return &Taxonomy{categories: cats}, nil
}

// AllowedTags returns the closed tag set for the category.
func (t *Taxonomy) AllowedTags(c entities.Category) []string {
	return t.categories[c].Tags
}

// DefaultTag returns the sub-tag substituted when the backend omits one.
func (t *Taxonomy) DefaultTag(c entities.Category) string {
	return t.categories[c].Default
}

// ValidTag reports whether tag belongs to the category's tag set.
func (t *Taxonomy) ValidTag(c entities.Category, tag string) bool {
	return contains(t.categories[c].Tags, tag)
}

func known(c entities.Category) bool {
	for _, k := range entities.Categories() {
		if c == k {
			return true
		}
	}
	return false
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

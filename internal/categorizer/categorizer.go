// Package categorizer assigns a category label to free-text transaction
// descriptions via an ordered keyword taxonomy.
package categorizer

import (
	"fmt"
	"os"
	"strings"

	"github.com/ghodss/yaml"
)

// Fallback is the label assigned when no keyword matches.
const Fallback = "Outros"

// Rule pairs a category label with the keyword phrases that select it.
// Rules live in an ordered slice, not a map: priority is positional.
type Rule struct {
	Category string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Categorizer resolves descriptions to categories. First rule whose
// keyword occurs as a case-insensitive substring wins; no match falls
// back to Fallback. Categorizing the same description always yields the
// same label.
type Categorizer struct {
	rules []Rule
}

// New returns a Categorizer using the built-in taxonomy.
func New() *Categorizer {
	return &Categorizer{rules: defaultRules}
}

// NewWithRules returns a Categorizer over a custom ordered rule list.
func NewWithRules(rules []Rule) *Categorizer {
	return &Categorizer{rules: rules}
}

// Categorize returns the category for a raw description.
func (c *Categorizer) Categorize(description string) string {
	desc := strings.ToLower(description)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(desc, strings.ToLower(kw)) {
				return rule.Category
			}
		}
	}
	return Fallback
}

// Categories returns the taxonomy labels in priority order, with the
// fallback label appended.
func (c *Categorizer) Categories() []string {
	out := make([]string, 0, len(c.rules)+1)
	for _, rule := range c.rules {
		out = append(out, rule.Category)
	}
	return append(out, Fallback)
}

// rulesFile is the YAML shape of a taxonomy override file:
//
//	categories:
//	  - name: Supermercado
//	    keywords: [mercado, carrefour]
type rulesFile struct {
	Categories []Rule `json:"categories"`
}

// LoadRules reads an ordered taxonomy from a YAML file.
func LoadRules(path string) ([]Rule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy file: %w", err)
	}

	var f rulesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing taxonomy file %q: %w", path, err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy file %q declares no categories", path)
	}
	return f.Categories, nil
}

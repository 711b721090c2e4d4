// Package catalog holds the static per-career tables: learning resources and
// fallback salary estimates.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultYAML []byte

// Resource is a single learning link.
type Resource struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

// Display renders the resource as a markdown link line.
func (r Resource) Display() string {
	return fmt.Sprintf("🔗 [%s](%s)", r.Title, r.URL)
}

// Catalog implements domain.ResourceCatalog and domain.SalaryTable.
type Catalog struct {
	CurrencySymbol   string                `yaml:"currency"`
	FallbackSalaries map[string]int64      `yaml:"fallback_salaries"`
	Links            map[string][]Resource `yaml:"resources"`
}

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	return parse(defaultYAML)
}

// Load reads a catalog from path. An empty path yields the bundled catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if c.CurrencySymbol == "" {
		c.CurrencySymbol = "₹"
	}
	return &c, nil
}

// Resources returns the display lines for career. Unknown careers and
// careers with an empty list report false.
func (c *Catalog) Resources(career string) ([]string, bool) {
	links, ok := c.Links[career]
	if !ok || len(links) == 0 {
		return nil, false
	}
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Display()
	}
	return out, true
}

// FallbackSalary returns the static estimate for career.
func (c *Catalog) FallbackSalary(career string) (int64, bool) {
	v, ok := c.FallbackSalaries[career]
	return v, ok
}

// Currency returns the symbol salaries are expressed in.
func (c *Catalog) Currency() string { return c.CurrencySymbol }

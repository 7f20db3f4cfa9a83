// Package catalog holds the loaded package definitions and answers lookups,
// searches and category queries over them. A catalog is immutable once built;
// the engine only reads it.
package catalog

import (
	"sort"
	"strings"

	"github.com/archbox-dev/archbox/pkg/model"
)

// Catalog is the immutable in-memory index of package definitions keyed by
// name.
type Catalog struct {
	packages map[string]*model.Package
}

// New builds a catalog from the given definitions. Later duplicates of the
// same name replace earlier ones, matching loader file order.
func New(pkgs []*model.Package) *Catalog {
	index := make(map[string]*model.Package, len(pkgs))
	for _, p := range pkgs {
		index[p.Name] = p
	}
	return &Catalog{packages: index}
}

// Get returns the definition for name.
func (c *Catalog) Get(name string) (*model.Package, bool) {
	p, ok := c.packages[name]
	return p, ok
}

// Has reports whether name is present in the catalog.
func (c *Catalog) Has(name string) bool {
	_, ok := c.packages[name]
	return ok
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.packages)
}

// Names returns all package names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.packages))
	for name := range c.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Packages returns all definitions sorted by name.
func (c *Catalog) Packages() []*model.Package {
	pkgs := make([]*model.Package, 0, len(c.packages))
	for _, name := range c.Names() {
		pkgs = append(pkgs, c.packages[name])
	}
	return pkgs
}

// Search returns definitions whose name, description or metadata tags contain
// the query, case-insensitively. Exact name matches sort first, the rest by
// name.
func (c *Catalog) Search(query string) []*model.Package {
	q := strings.ToLower(query)
	var results []*model.Package
	for _, p := range c.packages {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			tagsContain(p.Metadata.Tags, q) {
			results = append(results, p)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		iExact := strings.EqualFold(results[i].Name, query)
		jExact := strings.EqualFold(results[j].Name, query)
		if iExact != jExact {
			return iExact
		}
		return results[i].Name < results[j].Name
	})
	return results
}

// ByCategory returns definitions tagged with the given category, sorted by
// name.
func (c *Catalog) ByCategory(category string) []*model.Package {
	var results []*model.Package
	for _, p := range c.packages {
		for _, cat := range p.Categories {
			if cat == category {
				results = append(results, p)
				break
			}
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results
}

// Categories returns the sorted set of categories used by any definition.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	for _, p := range c.packages {
		for _, cat := range p.Categories {
			seen[cat] = struct{}{}
		}
	}
	cats := make([]string, 0, len(seen))
	for cat := range seen {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

func tagsContain(tags []string, q string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

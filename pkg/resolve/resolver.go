// Package resolve computes the install order for a requested set of packages.
// Resolution is a pure function over the catalog snapshot: it expands every
// non-system dependency edge, orders dependencies strictly before their
// dependents and detects unknown names and cycles before any installation
// begins.
package resolve

import (
	"fmt"
	"strings"

	"github.com/archbox-dev/archbox/pkg/catalog"
	"github.com/archbox-dev/archbox/pkg/errors"
)

// UnknownPackageError reports a requested or dependency name absent from the
// catalog.
type UnknownPackageError struct {
	Name       string
	RequiredBy string
}

func (e *UnknownPackageError) Error() string {
	if e.RequiredBy != "" {
		return fmt.Sprintf("package %q (required by %q): %v", e.Name, e.RequiredBy, errors.ErrUnknownPackage)
	}
	return fmt.Sprintf("package %q: %v", e.Name, errors.ErrUnknownPackage)
}

// Unwrap lets callers match the sentinel with errors.Is.
func (e *UnknownPackageError) Unwrap() error { return errors.ErrUnknownPackage }

// CycleError reports a dependency cycle. Cycle holds the full loop, starting
// and ending at the same name.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", errors.ErrCyclicDependency, strings.Join(e.Cycle, " -> "))
}

// Unwrap lets callers match the sentinel with errors.Is.
func (e *CycleError) Unwrap() error { return errors.ErrCyclicDependency }

// Resolver resolves install orders against one catalog snapshot.
type Resolver struct {
	cat *catalog.Catalog
}

// New creates a resolver over the given catalog.
func New(cat *catalog.Catalog) *Resolver {
	return &Resolver{cat: cat}
}

// Order expands the transitive closure of requested and returns a total
// install order in which every dependency precedes its dependents. Among
// independent packages the requested order is preserved, then dependency
// declaration order; the result is deterministic for a given input.
//
// Optional dependencies absent from the catalog are dropped. A required name
// absent from the catalog yields UnknownPackageError; a dependency loop
// yields CycleError naming the full loop.
func (r *Resolver) Order(requested []string) ([]string, error) {
	w := &walk{
		cat:      r.cat,
		done:     make(map[string]bool),
		visiting: make(map[string]bool),
	}
	for _, name := range requested {
		if err := w.visit(name, ""); err != nil {
			return nil, err
		}
	}
	return w.order, nil
}

// Dependents returns, for each resolved name, the set of packages in order
// whose required dependency chain includes it. The coordinator uses this to
// propagate DependencyFailed to transitive dependents.
func (r *Resolver) Dependents(order []string) map[string][]string {
	dependents := make(map[string][]string)
	for _, name := range order {
		pkg, ok := r.cat.Get(name)
		if !ok {
			continue
		}
		for _, dep := range pkg.CatalogDependencies() {
			if dep.Optional {
				continue
			}
			if r.cat.Has(dep.Name) {
				dependents[dep.Name] = append(dependents[dep.Name], name)
			}
		}
	}
	return dependents
}

type walk struct {
	cat      *catalog.Catalog
	done     map[string]bool
	visiting map[string]bool
	stack    []string
	order    []string
}

func (w *walk) visit(name, requiredBy string) error {
	if w.done[name] {
		return nil
	}
	if w.visiting[name] {
		return &CycleError{Cycle: w.cyclePath(name)}
	}

	pkg, ok := w.cat.Get(name)
	if !ok {
		return &UnknownPackageError{Name: name, RequiredBy: requiredBy}
	}

	w.visiting[name] = true
	w.stack = append(w.stack, name)

	for _, dep := range pkg.CatalogDependencies() {
		if !w.cat.Has(dep.Name) && dep.Optional {
			continue
		}
		if err := w.visit(dep.Name, name); err != nil {
			return err
		}
	}

	w.stack = w.stack[:len(w.stack)-1]
	delete(w.visiting, name)
	w.done[name] = true
	w.order = append(w.order, name)
	return nil
}

// cyclePath slices the visiting stack from the first occurrence of name and
// closes the loop for the error message.
func (w *walk) cyclePath(name string) []string {
	for i, n := range w.stack {
		if n == name {
			cycle := append([]string{}, w.stack[i:]...)
			return append(cycle, name)
		}
	}
	return []string{name, name}
}

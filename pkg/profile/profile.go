// Package profile groups packages into named sets and composes them into
// install profiles. Built-in groups and profiles ship with the tool; a user
// file can extend or override them.
package profile

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/archbox-dev/archbox/pkg/catalog"
	"github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/model"
)

// Group is a named set of package names. Optional members are not part of
// the group's install set; they surface as recommendations once the group
// itself is fully installed.
type Group struct {
	Description string   `yaml:"description,omitempty"`
	Packages    []string `yaml:"packages"`
	Optional    []string `yaml:"optional,omitempty"`
}

// Profile composes groups and package-level adjustments into one installable
// set. PostInstall is a shell script run once after the whole profile
// installed successfully.
type Profile struct {
	Description string   `yaml:"description,omitempty"`
	Groups      []string `yaml:"groups,omitempty"`
	Additional  []string `yaml:"additional,omitempty"`
	Excluded    []string `yaml:"excluded,omitempty"`
	PostInstall string   `yaml:"post_install,omitempty"`
}

// Manager holds the known groups and profiles.
type Manager struct {
	groups   map[string]Group
	profiles map[string]Profile
}

type profileFile struct {
	Groups   map[string]Group   `yaml:"groups,omitempty"`
	Profiles map[string]Profile `yaml:"profiles,omitempty"`
}

// NewManager returns a manager seeded with the built-in groups and profiles.
func NewManager() *Manager {
	return &Manager{
		groups:   builtinGroups(),
		profiles: builtinProfiles(),
	}
}

// LoadFile merges groups and profiles from a YAML file over the built-ins.
// A missing file is fine.
func (m *Manager) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read profile file %s", path)
	}

	var f profileFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return errors.Wrapf(errors.ErrConfigParse, "%s: %v", path, err)
	}
	for name, g := range f.Groups {
		m.groups[name] = g
	}
	for name, p := range f.Profiles {
		m.profiles[name] = p
	}
	return nil
}

// Group returns the named group.
func (m *Manager) Group(name string) (Group, bool) {
	g, ok := m.groups[name]
	return g, ok
}

// Profile returns the named profile.
func (m *Manager) Profile(name string) (Profile, bool) {
	p, ok := m.profiles[name]
	return p, ok
}

// GroupNames returns the sorted group names.
func (m *Manager) GroupNames() []string {
	return sortedKeys(m.groups)
}

// ProfileNames returns the sorted profile names.
func (m *Manager) ProfileNames() []string {
	return sortedKeys(m.profiles)
}

// ResolveProfile expands a profile into its sorted, deduplicated package
// list: the union of its groups plus additional packages, minus exclusions.
func (m *Manager) ResolveProfile(name string) ([]string, error) {
	p, ok := m.profiles[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrProfileNotFound, "%q", name)
	}

	set := make(map[string]struct{})
	for _, groupName := range p.Groups {
		g, ok := m.groups[groupName]
		if !ok {
			return nil, errors.Wrapf(errors.ErrProfileNotFound, "profile %q references unknown group %q", name, groupName)
		}
		for _, pkg := range g.Packages {
			set[pkg] = struct{}{}
		}
	}
	for _, pkg := range p.Additional {
		set[pkg] = struct{}{}
	}
	for _, pkg := range p.Excluded {
		delete(set, pkg)
	}

	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Recommend suggests packages related to what is already installed: catalog
// packages sharing a category with the installed set, plus optional members
// of groups whose required members are all installed. The installed set
// itself is never suggested. Results sort by score, then name.
func (m *Manager) Recommend(cat *catalog.Catalog, installed map[string]*model.InstallRecord, limit int) []*model.Package {
	categoryWeight := make(map[string]int)
	for name := range installed {
		if pkg, ok := cat.Get(name); ok {
			for _, c := range pkg.Categories {
				categoryWeight[c]++
			}
		}
	}

	scores := make(map[string]int)
	for _, pkg := range cat.Packages() {
		if _, ok := installed[pkg.Name]; ok {
			continue
		}
		score := 0
		for _, c := range pkg.Categories {
			score += categoryWeight[c]
		}
		if score > 0 {
			scores[pkg.Name] = score
		}
	}

	for _, g := range m.groups {
		if len(g.Optional) == 0 || !groupInstalled(g, installed) {
			continue
		}
		for _, opt := range g.Optional {
			if _, ok := installed[opt]; ok {
				continue
			}
			if cat.Has(opt) {
				scores[opt] += len(g.Packages)
			}
		}
	}

	type scored struct {
		pkg   *model.Package
		score int
	}
	candidates := make([]scored, 0, len(scores))
	for name, score := range scores {
		pkg, _ := cat.Get(name)
		candidates = append(candidates, scored{pkg: pkg, score: score})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].pkg.Name < candidates[j].pkg.Name
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]*model.Package, len(candidates))
	for i, c := range candidates {
		out[i] = c.pkg
	}
	return out
}

func groupInstalled(g Group, installed map[string]*model.InstallRecord) bool {
	for _, p := range g.Packages {
		if _, ok := installed[p]; !ok {
			return false
		}
	}
	return len(g.Packages) > 0
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

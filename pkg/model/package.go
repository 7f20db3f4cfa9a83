// Package model defines the data types shared across the archbox engine:
// package definitions, installation methods, install records and run reports.
package model

import (
	"fmt"

	"github.com/archbox-dev/archbox/pkg/errors"
)

// InstallMethod is the tag of an installation method variant. The set is
// closed; the dispatcher matches it exhaustively.
type InstallMethod string

// Supported installation methods.
const (
	MethodPacman   InstallMethod = "pacman"
	MethodAUR      InstallMethod = "aur"
	MethodBinary   InstallMethod = "binary"
	MethodSource   InstallMethod = "source"
	MethodScript   InstallMethod = "script"
	MethodAppImage InstallMethod = "appimage"
	MethodFlatpak  InstallMethod = "flatpak"
)

// Valid reports whether m is one of the supported method tags.
func (m InstallMethod) Valid() bool {
	switch m {
	case MethodPacman, MethodAUR, MethodBinary, MethodSource, MethodScript, MethodAppImage, MethodFlatpak:
		return true
	}
	return false
}

// DependencyType classifies a dependency edge.
type DependencyType string

// Dependency types. System dependencies are assumed present on the host and
// are never resolved through the catalog; all other types are catalog edges.
const (
	DependencySystem  DependencyType = "system"
	DependencyPackage DependencyType = "package"
	DependencyRuntime DependencyType = "runtime"
	DependencyBuild   DependencyType = "build"
)

// Dependency is a single dependency declaration of a package definition.
type Dependency struct {
	Name     string         `yaml:"name" validate:"required"`
	Version  string         `yaml:"version,omitempty"`
	Optional bool           `yaml:"optional,omitempty"`
	Platform string         `yaml:"platform,omitempty"`
	DepType  DependencyType `yaml:"dep_type,omitempty"`
}

// Type returns the dependency type, defaulting to system when unset.
func (d Dependency) Type() DependencyType {
	if d.DepType == "" {
		return DependencySystem
	}
	return d.DepType
}

// ResolvesInCatalog reports whether this dependency is an edge in the catalog
// dependency graph. System dependencies are handled by the native frontend.
func (d Dependency) ResolvesInCatalog() bool {
	return d.Type() != DependencySystem
}

// Installation is the closed tagged variant describing how a package is
// installed. Method selects the variant; the remaining fields are
// method-specific and ignored by the other variants.
type Installation struct {
	Method InstallMethod `yaml:"method" validate:"required"`

	// pacman
	Packages []string `yaml:"packages,omitempty"`
	Flags    []string `yaml:"flags,omitempty"`

	// aur
	Package string `yaml:"package,omitempty"`
	Helper  string `yaml:"helper,omitempty"`

	// binary, appimage and source share URL; binary and appimage share Checksum.
	URL         string `yaml:"url,omitempty"`
	Checksum    string `yaml:"checksum,omitempty"`
	InstallPath string `yaml:"install_path,omitempty"`
	Executable  *bool  `yaml:"executable,omitempty"`

	// source
	BuildCommands   []string `yaml:"build_commands,omitempty"`
	InstallCommands []string `yaml:"install_commands,omitempty"`

	// script
	Script      string `yaml:"script,omitempty"`
	Interpreter string `yaml:"interpreter,omitempty"`

	// appimage
	Integrate bool `yaml:"integrate,omitempty"`

	// flatpak
	ID     string `yaml:"id,omitempty"`
	Remote string `yaml:"remote,omitempty"`
}

// Default values for optional installation fields.
const (
	DefaultInterpreter   = "/bin/bash"
	DefaultFlatpakRemote = "flathub"
)

// IsExecutable reports whether the binary variant should set the executable
// bit. Defaults to true when the field is omitted.
func (i Installation) IsExecutable() bool {
	if i.Executable == nil {
		return true
	}
	return *i.Executable
}

// InterpreterOrDefault returns the script interpreter, defaulting to bash.
func (i Installation) InterpreterOrDefault() string {
	if i.Interpreter == "" {
		return DefaultInterpreter
	}
	return i.Interpreter
}

// RemoteOrDefault returns the flatpak remote, defaulting to flathub.
func (i Installation) RemoteOrDefault() string {
	if i.Remote == "" {
		return DefaultFlatpakRemote
	}
	return i.Remote
}

// Validate checks the method-specific required fields.
func (i Installation) Validate() error {
	switch i.Method {
	case MethodPacman:
		if len(i.Packages) == 0 {
			return errors.Wrap(errors.ErrValidation, "pacman method requires a non-empty packages list")
		}
	case MethodAUR:
		if i.Package == "" {
			return errors.Wrap(errors.ErrValidation, "aur method requires a package name")
		}
	case MethodBinary:
		if i.URL == "" || i.InstallPath == "" {
			return errors.Wrap(errors.ErrValidation, "binary method requires url and install_path")
		}
	case MethodSource:
		if i.URL == "" {
			return errors.Wrap(errors.ErrValidation, "source method requires a url")
		}
		if len(i.BuildCommands) == 0 || len(i.InstallCommands) == 0 {
			return errors.Wrap(errors.ErrValidation, "source method requires build_commands and install_commands")
		}
	case MethodScript:
		if i.Script == "" {
			return errors.Wrap(errors.ErrValidation, "script method requires a script body")
		}
	case MethodAppImage:
		if i.URL == "" {
			return errors.Wrap(errors.ErrValidation, "appimage method requires a url")
		}
	case MethodFlatpak:
		if i.ID == "" {
			return errors.Wrap(errors.ErrValidation, "flatpak method requires an id")
		}
	default:
		return errors.Wrapf(errors.ErrUnsupportedMethod, "%q", string(i.Method))
	}
	return nil
}

// PostInstall is the optional bundle of side effects applied after a
// successful install. Action categories run in the fixed order: commands,
// config files, environment, services, groups.
type PostInstall struct {
	Commands       []string          `yaml:"commands,omitempty"`
	ConfigFiles    map[string]string `yaml:"config_files,omitempty"`
	Environment    map[string]string `yaml:"environment,omitempty"`
	EnableServices []string          `yaml:"enable_services,omitempty"`
	UserGroups     []string          `yaml:"user_groups,omitempty"`
}

// Empty reports whether the bundle contains no actions.
func (p *PostInstall) Empty() bool {
	if p == nil {
		return true
	}
	return len(p.Commands) == 0 && len(p.ConfigFiles) == 0 && len(p.Environment) == 0 &&
		len(p.EnableServices) == 0 && len(p.UserGroups) == 0
}

// Metadata carries informational package fields. It never affects engine
// behavior.
type Metadata struct {
	Author     string   `yaml:"author,omitempty"`
	Homepage   string   `yaml:"homepage,omitempty"`
	Repository string   `yaml:"repository,omitempty"`
	License    string   `yaml:"license,omitempty"`
	Tags       []string `yaml:"tags,omitempty"`
	Updated    string   `yaml:"updated,omitempty"`
	Size       string   `yaml:"size,omitempty"`
}

// Package is a single package definition from the catalog.
type Package struct {
	Name            string       `yaml:"name" validate:"required"`
	Version         string       `yaml:"version" validate:"required"`
	Description     string       `yaml:"description" validate:"required"`
	LongDescription string       `yaml:"long_description,omitempty"`
	Categories      []string     `yaml:"categories,omitempty"`
	Dependencies    []Dependency `yaml:"dependencies,omitempty"`
	Installation    Installation `yaml:"installation"`
	PostInstall     *PostInstall `yaml:"post_install,omitempty"`
	Metadata        Metadata     `yaml:"metadata,omitempty"`
}

// CatalogDependencies returns the dependencies that resolve through the
// catalog (every non-system edge).
func (p *Package) CatalogDependencies() []Dependency {
	var deps []Dependency
	for _, d := range p.Dependencies {
		if d.ResolvesInCatalog() {
			deps = append(deps, d)
		}
	}
	return deps
}

// SystemDependencies returns the names of the host-level dependencies
// installed through the native frontend before the package itself.
func (p *Package) SystemDependencies() []string {
	var names []string
	for _, d := range p.Dependencies {
		if !d.ResolvesInCatalog() {
			names = append(names, d.Name)
		}
	}
	return names
}

// String implements fmt.Stringer for log output.
func (p *Package) String() string {
	return fmt.Sprintf("%s@%s (%s)", p.Name, p.Version, p.Installation.Method)
}

package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/logger"
	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/sirupsen/logrus"
)

// Loader reads package definition files into a Catalog.
type Loader struct {
	validate *validator.Validate
}

// NewLoader creates a loader with struct validation enabled.
func NewLoader() *Loader {
	return &Loader{validate: validator.New()}
}

// LoadCatalog walks the given paths (directories or single files) and loads
// every .yaml/.yml package definition found. Paths that do not exist are
// skipped so that default search paths can be listed unconditionally. Later
// files override earlier definitions of the same name.
func (l *Loader) LoadCatalog(paths []string) (*Catalog, error) {
	var pkgs []*model.Package
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Debug("package path does not exist, skipping", logrus.Fields{"path": path})
				continue
			}
			return nil, errors.Wrapf(err, "failed to stat package path %s", path)
		}

		if info.IsDir() {
			loaded, err := l.loadDirectory(path)
			if err != nil {
				return nil, err
			}
			pkgs = append(pkgs, loaded...)
			continue
		}

		loaded, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, loaded...)
	}
	return New(pkgs), nil
}

func (l *Loader) loadDirectory(dir string) ([]*model.Package, error) {
	var pkgs []*model.Package
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isDefinitionFile(path) {
			return nil
		}
		loaded, err := l.LoadFile(path)
		if err != nil {
			return err
		}
		pkgs = append(pkgs, loaded...)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load package directory %s", dir)
	}
	return pkgs, nil
}

// LoadFile parses one definition file. A file is either a single package
// definition or a mapping of name to definition; in the mapping form the key
// becomes the package name.
func (l *Loader) LoadFile(path string) ([]*model.Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	var single model.Package
	if err := yaml.Unmarshal(data, &single); err == nil && single.Name != "" {
		if err := l.validatePackage(&single); err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
		return []*model.Package{&single}, nil
	}

	var many map[string]*model.Package
	if err := yaml.Unmarshal(data, &many); err != nil {
		return nil, errors.Wrapf(errors.ErrCatalogParse, "%s: %v", path, err)
	}
	pkgs := make([]*model.Package, 0, len(many))
	for name, pkg := range many {
		if pkg == nil {
			return nil, errors.Wrapf(errors.ErrCatalogParse, "%s: empty definition for %q", path, name)
		}
		pkg.Name = name
		if err := l.validatePackage(pkg); err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
		pkgs = append(pkgs, pkg)
	}
	if len(pkgs) == 0 {
		return nil, errors.Wrapf(errors.ErrCatalogParse, "%s: no package definitions found", path)
	}
	return pkgs, nil
}

func (l *Loader) validatePackage(pkg *model.Package) error {
	if err := l.validate.Struct(pkg); err != nil {
		return errors.Wrapf(errors.ErrValidation, "package %q: %v", pkg.Name, err)
	}
	if err := pkg.Installation.Validate(); err != nil {
		return errors.Wrapf(err, "package %q", pkg.Name)
	}
	for _, dep := range pkg.Dependencies {
		if dep.Name == "" {
			return errors.Wrapf(errors.ErrValidation, "package %q has a dependency with an empty name", pkg.Name)
		}
	}
	return nil
}

func isDefinitionFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

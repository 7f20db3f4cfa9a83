package installer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/archbox-dev/archbox/pkg/archive"
	"github.com/archbox-dev/archbox/pkg/download"
	pkgerrors "github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/runner"
)

// Source builds a package from source: the tree is obtained by git clone or
// archive download, then the declared build and install command lines run in
// the source root.
type Source struct {
	runner    runner.Runner
	dl        download.Manager
	extractor *archive.Extractor
}

// NewSource creates the source backend.
func NewSource(r runner.Runner, dl download.Manager) *Source {
	return &Source{runner: r, dl: dl, extractor: archive.NewExtractor()}
}

// Method implements Installer.
func (s *Source) Method() model.InstallMethod { return model.MethodSource }

// CheckPresence is Unknown for source builds.
func (s *Source) CheckPresence(_ context.Context, _ *model.Package) Presence {
	return PresenceUnknown
}

// Install implements Installer.
func (s *Source) Install(ctx context.Context, pkg *model.Package, opts Options) (Result, error) {
	workDir, err := os.MkdirTemp(opts.TempDir, "source-"+pkg.Name+"-*")
	if err != nil {
		return Result{}, pkgerrors.Wrap(err, "could not create build directory")
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	srcRoot, err := s.obtainSource(ctx, pkg, workDir, opts)
	if err != nil {
		return Result{}, err
	}

	for _, cmd := range pkg.Installation.BuildCommands {
		if _, err := s.runner.RunIn(ctx, srcRoot, "sh", "-c", cmd); err != nil {
			return Result{}, pkgerrors.Wrapf(err, "build command %q", cmd)
		}
	}
	for _, cmd := range pkg.Installation.InstallCommands {
		if _, err := s.runner.RunIn(ctx, srcRoot, "sh", "-c", cmd); err != nil {
			return Result{}, pkgerrors.Wrapf(err, "install command %q", cmd)
		}
	}
	return Result{Version: pkg.Version}, nil
}

// obtainSource clones a git URL or downloads and extracts an archive, and
// returns the source root directory.
func (s *Source) obtainSource(ctx context.Context, pkg *model.Package, workDir string, opts Options) (string, error) {
	rawURL := pkg.Installation.URL
	if isGitURL(rawURL) {
		cloneDir := filepath.Join(workDir, pkg.Name)
		if _, err := s.runner.Run(ctx, "git", "clone", "--depth", "1", rawURL, cloneDir); err != nil {
			return "", pkgerrors.Wrap(err, "git clone failed")
		}
		return cloneDir, nil
	}

	item, err := DownloadItem(pkg)
	if err != nil {
		return "", err
	}
	archivePath, err := s.dl.Fetch(ctx, item, download.Options{Dir: opts.CacheDir})
	if err != nil {
		return "", err
	}

	extractDir := filepath.Join(workDir, "src")
	if err := s.extractor.ExtractAll(ctx, archivePath, extractDir); err != nil {
		return "", pkgerrors.Wrap(err, "could not extract source archive")
	}
	return sourceRoot(extractDir), nil
}

// sourceRoot descends into a lone top-level directory, the usual tarball
// layout, so build commands run where the Makefile lives.
func sourceRoot(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 || !entries[0].IsDir() {
		return dir
	}
	return filepath.Join(dir, entries[0].Name())
}

func isGitURL(raw string) bool {
	return strings.HasSuffix(raw, ".git") || strings.HasPrefix(raw, "git://") || strings.HasPrefix(raw, "git+")
}

// Remove is unsupported: an arbitrary install step has no inverse.
func (s *Source) Remove(_ context.Context, pkg *model.Package, _ Options) error {
	return pkgerrors.Wrapf(pkgerrors.ErrRemoveUnsupported, "%s", pkg.Name)
}

var _ Installer = (*Source)(nil)

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileSinglePackage(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ripgrep.yaml", `
name: ripgrep
version: 14.1.0
description: fast grep
installation:
  method: pacman
  packages: [ripgrep]
`)

	pkgs, err := NewLoader().LoadFile(path)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	assert.Equal(t, "ripgrep", pkgs[0].Name)
	assert.Equal(t, model.MethodPacman, pkgs[0].Installation.Method)
}

func TestLoadFileMappingForm(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tools.yaml", `
lazygit:
  version: 0.44.0
  description: terminal git ui
  installation:
    method: binary
    url: https://example.com/lazygit.tar.gz
    install_path: ~/.local/bin/lazygit
discord:
  version: 0.0.60
  description: chat client
  installation:
    method: flatpak
    id: com.discordapp.Discord
`)

	pkgs, err := NewLoader().LoadFile(path)
	require.NoError(t, err)
	require.Len(t, pkgs, 2)

	names := []string{pkgs[0].Name, pkgs[1].Name}
	assert.ElementsMatch(t, []string{"lazygit", "discord"}, names)
}

func TestLoadFileInvalidInstallation(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.yaml", `
name: broken
version: 1.0.0
description: missing packages list
installation:
  method: pacman
`)

	_, err := NewLoader().LoadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestLoadFileNotYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "junk.yaml", `: [ not yaml`)

	_, err := NewLoader().LoadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCatalogParse)
}

func TestLoadCatalogWalksDirectoriesAndSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "editors")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeFile(t, dir, "git.yaml", `
name: git
version: 2.46.0
description: version control
installation:
  method: pacman
  packages: [git]
`)
	writeFile(t, sub, "neovim.yml", `
name: neovim
version: 0.10.0
description: editor
installation:
  method: pacman
  packages: [neovim]
`)
	writeFile(t, dir, "notes.txt", "not a definition")

	cat, err := NewLoader().LoadCatalog([]string{dir, filepath.Join(dir, "does-not-exist")})
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	assert.True(t, cat.Has("git"))
	assert.True(t, cat.Has("neovim"))
}

func TestLoadCatalogLaterPathOverrides(t *testing.T) {
	base := t.TempDir()
	override := t.TempDir()
	writeFile(t, base, "git.yaml", `
name: git
version: 2.46.0
description: base definition
installation:
  method: pacman
  packages: [git]
`)
	writeFile(t, override, "git.yaml", `
name: git
version: 2.47.0
description: override definition
installation:
  method: pacman
  packages: [git]
`)

	cat, err := NewLoader().LoadCatalog([]string{base, override})
	require.NoError(t, err)
	got, ok := cat.Get("git")
	require.True(t, ok)
	assert.Equal(t, "2.47.0", got.Version)
}

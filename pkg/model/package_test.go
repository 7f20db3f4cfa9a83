package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archbox-dev/archbox/pkg/errors"
)

func TestInstallMethodValid(t *testing.T) {
	for _, m := range []InstallMethod{
		MethodPacman, MethodAUR, MethodBinary, MethodSource, MethodScript, MethodAppImage, MethodFlatpak,
	} {
		assert.True(t, m.Valid(), "%s", m)
	}
	assert.False(t, InstallMethod("homebrew").Valid())
	assert.False(t, InstallMethod("").Valid())
}

func TestDependencyTypeDefaultsToSystem(t *testing.T) {
	d := Dependency{Name: "gcc"}
	assert.Equal(t, DependencySystem, d.Type())
	assert.False(t, d.ResolvesInCatalog())

	d.DepType = DependencyPackage
	assert.True(t, d.ResolvesInCatalog())
	assert.True(t, Dependency{Name: "x", DepType: DependencyRuntime}.ResolvesInCatalog())
	assert.True(t, Dependency{Name: "x", DepType: DependencyBuild}.ResolvesInCatalog())
}

func TestInstallationDefaults(t *testing.T) {
	i := Installation{Method: MethodScript, Script: "echo hi"}
	assert.Equal(t, DefaultInterpreter, i.InterpreterOrDefault())

	i.Interpreter = "/usr/bin/fish"
	assert.Equal(t, "/usr/bin/fish", i.InterpreterOrDefault())

	f := Installation{Method: MethodFlatpak, ID: "org.example.App"}
	assert.Equal(t, DefaultFlatpakRemote, f.RemoteOrDefault())

	b := Installation{Method: MethodBinary}
	assert.True(t, b.IsExecutable())
	no := false
	b.Executable = &no
	assert.False(t, b.IsExecutable())
}

func TestInstallationValidate(t *testing.T) {
	valid := []Installation{
		{Method: MethodPacman, Packages: []string{"ripgrep"}},
		{Method: MethodAUR, Package: "yay-bin"},
		{Method: MethodBinary, URL: "https://example.com/x", InstallPath: "~/.local/bin/x"},
		{Method: MethodSource, URL: "https://example.com/x.tar.gz", BuildCommands: []string{"make"}, InstallCommands: []string{"make install"}},
		{Method: MethodScript, Script: "echo hi"},
		{Method: MethodAppImage, URL: "https://example.com/x.AppImage"},
		{Method: MethodFlatpak, ID: "org.example.App"},
	}
	for _, i := range valid {
		assert.NoError(t, i.Validate(), "%s", i.Method)
	}

	invalid := []Installation{
		{Method: MethodPacman},
		{Method: MethodAUR},
		{Method: MethodBinary, URL: "https://example.com/x"},
		{Method: MethodSource, URL: "https://example.com/x.tar.gz"},
		{Method: MethodScript},
		{Method: MethodAppImage},
		{Method: MethodFlatpak},
	}
	for _, i := range invalid {
		err := i.Validate()
		require.Error(t, err, "%s", i.Method)
		assert.ErrorIs(t, err, errors.ErrValidation, "%s", i.Method)
	}

	err := Installation{Method: "snap"}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnsupportedMethod)
}

func TestPostInstallEmpty(t *testing.T) {
	var p *PostInstall
	assert.True(t, p.Empty())
	assert.True(t, (&PostInstall{}).Empty())
	assert.False(t, (&PostInstall{Commands: []string{"x"}}).Empty())
	assert.False(t, (&PostInstall{UserGroups: []string{"docker"}}).Empty())
}

func TestPackageDependencyPartition(t *testing.T) {
	p := &Package{
		Name: "app",
		Dependencies: []Dependency{
			{Name: "gcc"},
			{Name: "lib", DepType: DependencyPackage},
			{Name: "builder", DepType: DependencyBuild},
		},
	}
	catalogDeps := p.CatalogDependencies()
	require.Len(t, catalogDeps, 2)
	assert.Equal(t, "lib", catalogDeps[0].Name)
	assert.Equal(t, []string{"gcc"}, p.SystemDependencies())
}

func TestInstallRecordInstalled(t *testing.T) {
	var r *InstallRecord
	assert.False(t, r.Installed())
	assert.True(t, (&InstallRecord{Outcome: OutcomeSuccess}).Installed())
	assert.False(t, (&InstallRecord{Outcome: OutcomeFailure}).Installed())
	assert.False(t, (&InstallRecord{Outcome: OutcomeRemoved}).Installed())
}

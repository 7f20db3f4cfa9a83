package hook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archbox-dev/archbox/pkg/errors"
)

func TestExecuteMissingScriptIsNoop(t *testing.T) {
	e := NewExecutor()
	assert.NoError(t, e.Execute(PreInstall, Context{PackageName: "x"}))
}

func TestExecuteScriptSeesContext(t *testing.T) {
	e := NewExecutor()
	e.AddScript(PreInstall, `
err := ""
if packageName != "ripgrep" {
	err = "unexpected package: " + packageName
}
if method != "pacman" {
	err = "unexpected method: " + method
}
`)

	require.NoError(t, e.Execute(PreInstall, Context{
		PackageName:    "ripgrep",
		PackageVersion: "14.1.0",
		Method:         "pacman",
	}))
}

func TestExecuteScriptErrVariableFails(t *testing.T) {
	e := NewExecutor()
	e.AddScript(PostInstall, `err := "refusing to continue"`)

	err := e.Execute(PostInstall, Context{PackageName: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHookScript)
	assert.Contains(t, err.Error(), "refusing to continue")
}

func TestExecuteCompileErrorWrapsExecution(t *testing.T) {
	e := NewExecutor()
	e.AddScript(PreRun, `this is not tengo`)

	err := e.Execute(PreRun, Context{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHookExecution)
}

func TestExecuteScriptCustomVars(t *testing.T) {
	e := NewExecutor()
	e.AddScript(PostRun, `
err := ""
if installed != 3 {
	err = "bad count"
}
`)
	require.NoError(t, e.Execute(PostRun, Context{Vars: map[string]interface{}{"installed": 3}}))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pre-install.tengo"), []byte(`err := ""`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unknown-type.tengo"), []byte(`err := ""`), 0o644))

	e := NewExecutor()
	require.NoError(t, LoadDir(e, dir))
	assert.True(t, e.HasScript(PreInstall))
	assert.False(t, e.HasScript(PostInstall))
	assert.False(t, e.HasScript(Type("unknown-type")))
}

func TestLoadDirMissingDirectory(t *testing.T) {
	e := NewExecutor()
	assert.NoError(t, LoadDir(e, filepath.Join(t.TempDir(), "absent")))
}

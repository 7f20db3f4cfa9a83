// Package hook runs user-provided Tengo scripts at run and package
// lifecycle points. Scripts live in the hooks directory as <type>.tengo and
// receive the package context as script variables; a non-empty err variable
// after the script fails the hook.
package hook

import (
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/archbox-dev/archbox/pkg/errors"
)

// Type identifies a hook point.
type Type string

// Supported hook points.
const (
	PreRun      Type = "pre-run"
	PostRun     Type = "post-run"
	PreInstall  Type = "pre-install"
	PostInstall Type = "post-install"
)

// knownTypes is the closed set of recognized hook file names.
var knownTypes = map[Type]bool{
	PreRun:      true,
	PostRun:     true,
	PreInstall:  true,
	PostInstall: true,
}

// Context carries the variables exposed to a hook script.
type Context struct {
	PackageName    string
	PackageVersion string
	Method         string
	Vars           map[string]interface{}
}

// Executor runs Tengo hook scripts.
type Executor struct {
	scripts map[Type]string
	mutex   sync.RWMutex
}

// NewExecutor creates an executor with no scripts registered.
func NewExecutor() *Executor {
	return &Executor{scripts: make(map[Type]string)}
}

// AddScript registers or replaces the script for a hook point.
func (e *Executor) AddScript(t Type, script string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[t] = script
}

// HasScript reports whether a script is registered for t.
func (e *Executor) HasScript(t Type) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, ok := e.scripts[t]
	return ok
}

// Execute runs the script for t with the given context. A missing script is
// a no-op.
func (e *Executor) Execute(t Type, ctx Context) error {
	e.mutex.RLock()
	script, ok := e.scripts[t]
	e.mutex.RUnlock()
	if !ok {
		return nil
	}

	instance := tengo.NewScript([]byte(script))
	instance.SetImports(stdlib.GetModuleMap("fmt", "os", "text", "times"))

	_ = instance.Add("packageName", ctx.PackageName)
	_ = instance.Add("packageVersion", ctx.PackageVersion)
	_ = instance.Add("method", ctx.Method)
	for k, v := range ctx.Vars {
		_ = instance.Add(k, v)
	}

	compiled, err := instance.Run()
	if err != nil {
		return errors.Wrapf(errors.ErrHookExecution, "%s: %v", t, err)
	}

	if errVar := compiled.Get("err"); errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return errors.Wrap(errors.ErrHookScript, v.Error())
		case string:
			if v != "" {
				return errors.Wrap(errors.ErrHookScript, v)
			}
		}
	}
	return nil
}

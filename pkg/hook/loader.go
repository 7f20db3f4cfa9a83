package hook

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/archbox-dev/archbox/pkg/errors"
)

// LoadDir registers every recognized hook script found in dir. Files are
// named <type>.tengo; anything else is ignored. A missing directory is fine.
func LoadDir(e *Executor, dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(errors.ErrHookLoad, "%s: %v", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".tengo" {
			continue
		}
		t := Type(strings.TrimSuffix(entry.Name(), ".tengo"))
		if !knownTypes[t] {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return errors.Wrapf(errors.ErrHookLoad, "%s: %v", entry.Name(), err)
		}
		e.AddScript(t, string(content))
	}
	return nil
}

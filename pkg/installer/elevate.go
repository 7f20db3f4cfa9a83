package installer

import (
	"os"

	pkgerrors "github.com/archbox-dev/archbox/pkg/errors"
)

// elevate prefixes argv with sudo -n when the process is not root. Elevation
// uses the non-interactive sudo mode so a missing cached credential fails
// fast instead of hanging on a password prompt.
func elevate(argv []string, allow bool) ([]string, error) {
	if os.Geteuid() == 0 {
		return argv, nil
	}
	if !allow {
		return nil, pkgerrors.Wrapf(pkgerrors.ErrElevationRequired, "%s", argv[0])
	}
	return append([]string{"sudo", "-n"}, argv...), nil
}

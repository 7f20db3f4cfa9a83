package installer

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/runner"
	"github.com/archbox-dev/archbox/pkg/runner/mocks"
)

func pacmanPkg(names ...string) *model.Package {
	return &model.Package{
		Name:    names[0],
		Version: "1.0.0",
		Installation: model.Installation{
			Method:   model.MethodPacman,
			Packages: names,
		},
	}
}

func TestPacmanInstallArgs(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, argv has no sudo prefix")
	}
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRunner(ctrl)
	r.EXPECT().Run(gomock.Any(), "sudo", "-n", "pacman", "-S", "--needed", "--noconfirm", "ripgrep", "fd").
		Return(runner.Result{}, nil)

	p := NewPacman(r)
	res, err := p.Install(context.Background(), pacmanPkg("ripgrep", "fd"),
		Options{NonInteractive: true, AllowElevation: true})
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", res.Version)
}

func TestPacmanInstallFlagsPrecedeNames(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, argv has no sudo prefix")
	}
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRunner(ctrl)
	r.EXPECT().Run(gomock.Any(), "sudo", "-n", "pacman", "-S", "--needed", "--noconfirm", "--asdeps", "tool").
		Return(runner.Result{}, nil)

	p := NewPacman(r)
	pkg := pacmanPkg("tool")
	pkg.Installation.Flags = []string{"--asdeps"}
	_, err := p.Install(context.Background(), pkg, Options{NonInteractive: true, AllowElevation: true})
	require.NoError(t, err)
}

func TestPacmanElevationDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, elevation never required")
	}
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRunner(ctrl)

	p := NewPacman(r)
	_, err := p.Install(context.Background(), pacmanPkg("ripgrep"), Options{NonInteractive: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrElevationRequired)
}

func TestPacmanCheckPresence(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRunner(ctrl)
	r.EXPECT().Run(gomock.Any(), "pacman", "-Q", "ripgrep").Return(runner.Result{}, nil)
	r.EXPECT().Run(gomock.Any(), "pacman", "-Q", "fd").
		Return(runner.Result{ExitCode: 1}, fmt.Errorf("not found: %w", errors.ErrSubprocessFailed))

	p := NewPacman(r)
	assert.Equal(t, PresenceAbsent, p.CheckPresence(context.Background(), pacmanPkg("ripgrep", "fd")))
}

func TestPacmanInstallNamesEmptyIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRunner(ctrl)

	p := NewPacman(r)
	require.NoError(t, p.InstallNames(context.Background(), nil, nil, Options{}))
}

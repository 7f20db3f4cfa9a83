package installer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/runner/mocks"
)

func newDispatcher(t *testing.T) (*Dispatcher, *mocks.MockRunner) {
	t.Helper()
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRunner(ctrl)
	return NewDispatcher(r, nil), r
}

func TestDispatcherRejectsUnknownMethod(t *testing.T) {
	d, _ := newDispatcher(t)
	pkg := &model.Package{
		Name:         "bogus",
		Version:      "1.0.0",
		Installation: model.Installation{Method: "chocolatey"},
	}

	_, err := d.Install(context.Background(), pkg, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnsupportedMethod)
	assert.Equal(t, PresenceUnknown, d.CheckPresence(context.Background(), pkg))
}

func TestDispatcherDryRunHasNoSideEffects(t *testing.T) {
	// The mock runner expects no calls: a dry run must not spawn anything.
	d, _ := newDispatcher(t)
	pkg := &model.Package{
		Name:    "ripgrep",
		Version: "14.1.0",
		Dependencies: []model.Dependency{
			{Name: "base-devel"},
		},
		Installation: model.Installation{Method: model.MethodPacman, Packages: []string{"ripgrep"}},
	}

	res, err := d.Install(context.Background(), pkg, Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, "14.1.0", res.Version)

	require.NoError(t, d.Remove(context.Background(), pkg, Options{DryRun: true}))
}

func TestDispatcherCoversEveryMethod(t *testing.T) {
	d, _ := newDispatcher(t)
	for _, m := range []model.InstallMethod{
		model.MethodPacman, model.MethodAUR, model.MethodBinary, model.MethodSource,
		model.MethodScript, model.MethodAppImage, model.MethodFlatpak,
	} {
		_, ok := d.backends[m]
		assert.True(t, ok, "missing backend for %s", m)
	}
}

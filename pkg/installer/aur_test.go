package installer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/runner"
	"github.com/archbox-dev/archbox/pkg/runner/mocks"
)

func aurPkg(helper string) *model.Package {
	return &model.Package{
		Name:    "visual-studio-code-bin",
		Version: "1.93.0",
		Installation: model.Installation{
			Method:  model.MethodAUR,
			Package: "visual-studio-code-bin",
			Helper:  helper,
		},
	}
}

func TestAURInstallUsesHelperUnelevated(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRunner(ctrl)
	r.EXPECT().LookPath("yay").Return("/usr/bin/yay", nil)
	r.EXPECT().Run(gomock.Any(), "yay", "-S", "--needed", "--noconfirm", "visual-studio-code-bin").
		Return(runner.Result{}, nil)

	a := NewAUR(r)
	res, err := a.Install(context.Background(), aurPkg(""), Options{NonInteractive: true, AllowElevation: true})
	require.NoError(t, err)
	assert.Equal(t, "1.93.0", res.Version)
}

func TestAURHelperPrecedence(t *testing.T) {
	a := NewAUR(nil)
	assert.Equal(t, "paru", a.helperFor(aurPkg("paru"), Options{AURHelper: "trizen"}))
	assert.Equal(t, "trizen", a.helperFor(aurPkg(""), Options{AURHelper: "trizen"}))
	assert.Equal(t, DefaultAURHelper, a.helperFor(aurPkg(""), Options{}))
}

func TestAURHelperNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRunner(ctrl)
	r.EXPECT().LookPath("yay").Return("", fmt.Errorf("not in PATH"))

	a := NewAUR(r)
	_, err := a.Install(context.Background(), aurPkg(""), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHelperNotFound)
}

package installer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/archbox-dev/archbox/pkg/download"
	"github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/runner"
	"github.com/archbox-dev/archbox/pkg/runner/mocks"
)

func appImageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("AppImage payload"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func appImagePkg(url string, integrate bool) *model.Package {
	return &model.Package{
		Name:    "krita",
		Version: "5.2.0",
		Installation: model.Installation{
			Method:    model.MethodAppImage,
			URL:       url,
			Integrate: integrate,
		},
	}
}

func TestAppImageInstallPlacesExecutableImage(t *testing.T) {
	srv := appImageServer(t)
	home := t.TempDir()
	a := NewAppImage(nil, download.NewManager(5*time.Second, ""))

	res, err := a.Install(context.Background(), appImagePkg(srv.URL+"/krita.AppImage", false),
		Options{HomeDir: home, CacheDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "5.2.0", res.Version)
	assert.Empty(t, res.Warnings)

	target := filepath.Join(home, ".local", "share", "applications", "krita.AppImage")
	st, err := os.Stat(target)
	require.NoError(t, err)
	assert.NotZero(t, st.Mode()&0o111)
}

func TestAppImageIntegrationFailureIsWarningNotFailure(t *testing.T) {
	srv := appImageServer(t)
	home := t.TempDir()

	ctrl := gomock.NewController(t)
	r := mocks.NewMockRunner(ctrl)
	r.EXPECT().RunIn(gomock.Any(), gomock.Any(), gomock.Any(), "--appimage-extract").
		Return(runner.Result{}, fmt.Errorf("squashfs extraction failed"))

	a := NewAppImage(r, download.NewManager(5*time.Second, ""))
	res, err := a.Install(context.Background(), appImagePkg(srv.URL+"/krita.AppImage", true),
		Options{HomeDir: home, CacheDir: t.TempDir(), TempDir: t.TempDir()})

	// The image is installed and runnable; only the desktop entry is missing.
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], errors.ErrIntegrationFailed.Error())

	_, statErr := os.Stat(filepath.Join(home, ".local", "share", "applications", "krita.AppImage"))
	assert.NoError(t, statErr)
}

func TestAppImageRemoveDeletesImageAndDesktopEntry(t *testing.T) {
	home := t.TempDir()
	appsDir := filepath.Join(home, ".local", "share", "applications")
	require.NoError(t, os.MkdirAll(appsDir, 0o755))
	image := filepath.Join(appsDir, "krita.AppImage")
	desktop := filepath.Join(appsDir, "krita.desktop")
	require.NoError(t, os.WriteFile(image, []byte("x"), 0o755))
	require.NoError(t, os.WriteFile(desktop, []byte("[Desktop Entry]\n"), 0o644))

	a := NewAppImage(nil, nil)
	pkg := appImagePkg("https://example.com/krita.AppImage", false)

	require.NoError(t, a.Remove(context.Background(), pkg, Options{HomeDir: home}))
	for _, p := range []string{image, desktop} {
		_, err := os.Stat(p)
		assert.True(t, os.IsNotExist(err), p)
	}

	err := a.Remove(context.Background(), pkg, Options{HomeDir: home})
	assert.ErrorIs(t, err, errors.ErrNotInstalled)
}

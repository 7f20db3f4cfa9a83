package installer

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
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

func sourcePkg(url string) *model.Package {
	return &model.Package{
		Name:    "htop",
		Version: "3.3.0",
		Installation: model.Installation{
			Method:          model.MethodSource,
			URL:             url,
			BuildCommands:   []string{"make"},
			InstallCommands: []string{"make install"},
		},
	}
}

func TestSourceInstallGitClone(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRunner(ctrl)
	gomock.InOrder(
		r.EXPECT().Run(gomock.Any(), "git", "clone", "--depth", "1",
			"https://example.com/htop.git", gomock.Any()).Return(runner.Result{}, nil),
		r.EXPECT().RunIn(gomock.Any(), gomock.Any(), "sh", "-c", "make").
			Return(runner.Result{}, nil),
		r.EXPECT().RunIn(gomock.Any(), gomock.Any(), "sh", "-c", "make install").
			Return(runner.Result{}, nil),
	)

	s := NewSource(r, nil)
	res, err := s.Install(context.Background(), sourcePkg("https://example.com/htop.git"),
		Options{TempDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "3.3.0", res.Version)
}

func TestSourceInstallArchiveRunsInSourceRoot(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	content := "all:\n\ttrue\n"
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: "htop-3.3.0/Makefile",
		Mode: 0o644,
		Size: int64(len(content)),
	}))
	_, err := tw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	r := mocks.NewMockRunner(ctrl)
	// The lone top-level directory of the tarball becomes the build root.
	r.EXPECT().RunIn(gomock.Any(), gomock.Any(), "sh", "-c", "make").
		DoAndReturn(func(_ context.Context, dir, _ string, _ ...string) (runner.Result, error) {
			assert.True(t, strings.HasSuffix(dir, "htop-3.3.0"), dir)
			return runner.Result{}, nil
		})
	r.EXPECT().RunIn(gomock.Any(), gomock.Any(), "sh", "-c", "make install").
		Return(runner.Result{}, nil)

	s := NewSource(r, download.NewManager(5*time.Second, ""))
	_, err = s.Install(context.Background(), sourcePkg(srv.URL+"/htop-3.3.0.tar.gz"),
		Options{TempDir: t.TempDir(), CacheDir: t.TempDir()})
	require.NoError(t, err)
}

func TestSourceBuildFailureStopsBeforeInstallCommands(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRunner(ctrl)
	gomock.InOrder(
		r.EXPECT().Run(gomock.Any(), "git", "clone", "--depth", "1",
			"https://example.com/htop.git", gomock.Any()).Return(runner.Result{}, nil),
		r.EXPECT().RunIn(gomock.Any(), gomock.Any(), "sh", "-c", "make").
			Return(runner.Result{}, fmt.Errorf("compiler error")),
	)

	s := NewSource(r, nil)
	_, err := s.Install(context.Background(), sourcePkg("https://example.com/htop.git"),
		Options{TempDir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "make")
}

func TestSourcePresenceUnknown(t *testing.T) {
	s := NewSource(nil, nil)
	assert.Equal(t, PresenceUnknown, s.CheckPresence(context.Background(), sourcePkg("")))
}

func TestSourceRemoveUnsupported(t *testing.T) {
	s := NewSource(nil, nil)
	err := s.Remove(context.Background(), sourcePkg(""), Options{})
	assert.ErrorIs(t, err, errors.ErrRemoveUnsupported)
}

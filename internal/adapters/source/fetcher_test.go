package source_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rbwasm/internal/adapters/shell"
	"go.trai.ch/rbwasm/internal/adapters/source"
	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// MockRoundTripper serves canned responses without a network.
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) *http.Response
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req), nil
}

func tarball(t *testing.T, files map[string]string) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	gz := gzip.NewWriter(buf)
	tw := tar.NewWriter(gz)
	for name, body := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: "ruby-ruby-abc123/" + name,
			Mode: 0o644,
			Size: int64(len(body)),
		}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func realRunner(t *testing.T) *shell.Executor {
	t.Helper()
	if _, err := exec.LookPath("tar"); err != nil {
		t.Skip("tar not available")
	}

	ctrl := gomock.NewController(t)
	lg := mocks.NewMockLogger(ctrl)
	lg.EXPECT().Verbose().Return(false).AnyTimes()
	lg.EXPECT().Info(gomock.Any()).AnyTimes()
	lg.EXPECT().Debug(gomock.Any()).AnyTimes()
	return shell.NewExecutor(lg)
}

func TestFetcher_Fetch_ExtractsStrippedTree(t *testing.T) {
	archive := tarball(t, map[string]string{"configure.ac": "AC_INIT", "version.h": "#define X"})

	var userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		_, _ = w.Write(archive)
	}))
	defer srv.Close()

	target := filepath.Join(t.TempDir(), "build", "ruby-1234")
	f := source.NewFetcherWithClient(realRunner(t), srv.Client())
	require.NoError(t, f.Fetch(context.Background(), srv.URL, target, 1))

	data, err := os.ReadFile(filepath.Join(target, "configure.ac"))
	require.NoError(t, err)
	assert.Equal(t, "AC_INIT", string(data))
	assert.FileExists(t, filepath.Join(target, "version.h"))
	assert.Equal(t, "rbwasm/dev", userAgent)

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no partial directory left behind")
}

func TestFetcher_Fetch_UnexpectedStatus(t *testing.T) {
	client := &http.Client{Transport: &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusNotFound,
				Body:       http.NoBody,
				Request:    req,
			}
		},
	}}

	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Times(0)

	parent := t.TempDir()
	target := filepath.Join(parent, "wasi-sdk-14.0")
	err := source.NewFetcherWithClient(runner, client).Fetch(context.Background(), "https://example.invalid/x.tar.gz", target, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to download archive")
	assert.NoDirExists(t, target)

	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetcher_Fetch_ExtractFailureLeavesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not a gzip stream"))
	}))
	defer srv.Close()

	parent := t.TempDir()
	target := filepath.Join(parent, "ruby-1234")
	err := source.NewFetcherWithClient(realRunner(t), srv.Client()).Fetch(context.Background(), srv.URL, target, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to extract archive")
	assert.NoDirExists(t, target)

	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetcher_Fetch_RunsTarInPartialDir(t *testing.T) {
	client := &http.Client{Transport: &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       http.NoBody,
				Request:    req,
			}
		},
	}}

	parent := t.TempDir()
	target := filepath.Join(parent, "wasi-vfs-0.1.1")

	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Command) error {
		assert.Equal(t, "tar", c.Name)
		assert.Equal(t, []string{"xz", "--strip-components", "0"}, c.Args)
		assert.Equal(t, parent, filepath.Dir(c.Dir))
		assert.NotEqual(t, target, c.Dir)
		assert.NotNil(t, c.Stdin)
		return os.WriteFile(filepath.Join(c.Dir, "libwasi_vfs.a"), []byte("!<arch>"), 0o644)
	})

	require.NoError(t, source.NewFetcherWithClient(runner, client).Fetch(context.Background(), "https://example.invalid/v.tar.gz", target, 0))
	assert.FileExists(t, filepath.Join(target, "libwasi_vfs.a"))
}

package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rbwasm/internal/adapters/source"
	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestResolver_Resolve_LocalDirMakesNoNetworkCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockArchiveFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	lg := mocks.NewMockLogger(ctrl)

	local := t.TempDir()
	dir, err := source.NewResolver(fetcher, lg).Resolve(context.Background(), domain.LocalSource(local), filepath.Join(t.TempDir(), "unused"))
	require.NoError(t, err)
	assert.Equal(t, local, dir)
}

func TestResolver_Resolve_RemoteDownloads(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockArchiveFetcher(ctrl)
	lg := mocks.NewMockLogger(ctrl)
	lg.EXPECT().Info(gomock.Any()).Times(1)

	src := domain.RemoteSource("ruby", "ruby", "v3_1_0")
	target := filepath.Join(t.TempDir(), "ruby-abcd")
	fetcher.EXPECT().Fetch(gomock.Any(), "https://api.github.com/repos/ruby/ruby/tarball/v3_1_0", target, 1).Return(nil)

	dir, err := source.NewResolver(fetcher, lg).Resolve(context.Background(), src, target)
	require.NoError(t, err)
	assert.Equal(t, target, dir)
}

func TestResolver_Resolve_RemoteAlreadyPresent(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockArchiveFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	lg := mocks.NewMockLogger(ctrl)

	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "configure.ac"), nil, 0o644))

	dir, err := source.NewResolver(fetcher, lg).Resolve(context.Background(), domain.RemoteSource("ruby", "ruby", "master"), target)
	require.NoError(t, err)
	assert.Equal(t, target, dir)
}

func TestResolver_Resolve_FetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockArchiveFetcher(ctrl)
	lg := mocks.NewMockLogger(ctrl)
	lg.EXPECT().Info(gomock.Any()).AnyTimes()

	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	_, err := source.NewResolver(fetcher, lg).Resolve(context.Background(), domain.RemoteSource("kateinoigakukun", "rb-wasm-support", "0.4.0"), filepath.Join(t.TempDir(), "support"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rbwasm/internal/adapters/cas"
	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestCache_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	hasher := mocks.NewMockHasher(ctrl)
	hasher.EXPECT().CacheKey("ruby", gomock.Any()).Return("ruby-0011223344556677")

	layout := domain.NewLayout("/ws")
	buildDir, installDir := cas.NewCache(hasher).Resolve(layout, "ruby", domain.BuildInput{})

	assert.Equal(t, "/ws/build/ruby-0011223344556677", buildDir)
	assert.Equal(t, "/ws/cache/ruby-0011223344556677", installDir)
}

func TestCache_ResolveCreatesNothing(t *testing.T) {
	layout := domain.NewLayout(t.TempDir())
	c := cas.NewCache(cas.NewHasher())

	buildDir, installDir := c.Resolve(layout, "ruby", input())
	assert.NoDirExists(t, buildDir)
	assert.NoDirExists(t, installDir)
	assert.False(t, c.Exists(installDir))

	require.NoError(t, os.MkdirAll(installDir, 0o750))
	assert.True(t, c.Exists(installDir))

	// Same input, same paths.
	b2, i2 := c.Resolve(layout, "ruby", input())
	assert.Equal(t, buildDir, b2)
	assert.Equal(t, installDir, i2)
}

func TestCache_Records(t *testing.T) {
	layout := domain.NewLayout(t.TempDir())
	require.NoError(t, os.MkdirAll(layout.Cache, 0o750))

	c := cas.NewCache(cas.NewHasher())
	records, err := c.Records(layout)
	require.NoError(t, err)
	assert.Empty(t, records)

	rec := domain.BuildRecord{
		Key:        "ruby-01",
		Name:       "ruby",
		Source:     domain.DefaultCRubySource,
		InstallDir: filepath.Join(layout.Cache, "ruby-01"),
		Timestamp:  time.Now(),
	}
	require.NoError(t, c.Record(layout, rec))
	assert.FileExists(t, filepath.Join(layout.Cache, domain.BuildRecordFileName))

	// A fresh cache reads the persisted index.
	records, err = cas.NewCache(cas.NewHasher()).Records(layout)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ruby-01", records[0].Key)
	assert.Equal(t, domain.DefaultCRubySource, records[0].Source)
}

package imagegen_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rbwasm/internal/adapters/fs"
	"go.trai.ch/rbwasm/internal/adapters/imagegen"
	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	runner *mocks.MockCommandRunner
	hasher *mocks.MockHasher
	gen    *imagegen.Generator
	tc     domain.Toolchain
	dir    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	lg := mocks.NewMockLogger(ctrl)
	lg.EXPECT().Info(gomock.Any()).AnyTimes()
	lg.EXPECT().Debug(gomock.Any()).AnyTimes()

	f := &fixture{
		runner: mocks.NewMockCommandRunner(ctrl),
		hasher: mocks.NewMockHasher(ctrl),
		tc:     domain.Toolchain{SDKRoot: "/opt/wasi-sdk", Version: "14.0"},
		dir:    t.TempDir(),
	}
	f.hasher.EXPECT().Digest(gomock.Any()).Return("0123456789abcdef").AnyTimes()
	f.gen = imagegen.NewGenerator(f.runner, fs.NewWalker(), f.hasher, lg)
	return f
}

// expectCompile makes the runner emit an object holding the compiled source.
func (f *fixture) expectCompile(t *testing.T) {
	t.Helper()
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Command) error {
		assert.Equal(t, "/opt/wasi-sdk/bin/clang", c.Name)
		assert.Equal(t, "--target=wasm32-wasi", c.Args[0])
		assert.Equal(t, f.dir, c.Dir)
		src, out := c.Args[len(c.Args)-3], c.Args[len(c.Args)-1]
		data, err := os.ReadFile(src)
		if err != nil {
			return err
		}
		return os.WriteFile(out, append([]byte("OBJ:"), data...), 0o644)
	})
}

func TestGenerator_GenerateFilesystem(t *testing.T) {
	f := newFixture(t)
	f.expectCompile(t)

	gems := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(gems, "rake", "lib"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(gems, "rake", "lib", "rake.rb"), []byte("AB"), 0o600))
	script := filepath.Join(t.TempDir(), "main.rb")
	require.NoError(t, os.WriteFile(script, nil, 0o600))

	spec := domain.NewVfsImageSpec([]domain.PathMapping{
		{Guest: "/gems", Host: gems},
		{Guest: "/app/main.rb", Host: script},
	})

	obj, err := f.gen.GenerateFilesystem(context.Background(), f.tc, f.dir, spec)
	require.NoError(t, err)
	assert.Equal(t, "fs.o", obj.Name)
	assert.True(t, strings.HasPrefix(string(obj.Bytes), "OBJ:"))

	src := string(obj.Source)
	assert.Contains(t, src, "static const uint8_t file_0[2] = {\n  0x41,0x42,\n};")
	assert.Contains(t, src, "static const uint8_t file_1[1] = {0};")
	assert.Contains(t, src, `__internal_wasi_vfs_rt_add_dir("/app")`)
	assert.Contains(t, src, `__internal_wasi_vfs_rt_add_dir("/gems/rake/lib")`)
	assert.Contains(t, src, `"rake.rb", file_0, 2);`)
	assert.Contains(t, src, `"main.rb", file_1, 0);`)
}

func TestGenerator_GenerateFilesystem_LaterMappingWins(t *testing.T) {
	f := newFixture(t)
	f.expectCompile(t)

	first := filepath.Join(t.TempDir(), "a")
	second := filepath.Join(t.TempDir(), "b")
	require.NoError(t, os.WriteFile(first, []byte{0x01}, 0o600))
	require.NoError(t, os.WriteFile(second, []byte{0x02}, 0o600))

	spec := domain.NewVfsImageSpec([]domain.PathMapping{
		{Guest: "/etc/conf", Host: first},
		{Guest: "/etc/conf", Host: second},
	})

	obj, err := f.gen.GenerateFilesystem(context.Background(), f.tc, f.dir, spec)
	require.NoError(t, err)
	assert.Contains(t, string(obj.Source), "0x02,")
	assert.NotContains(t, string(obj.Source), "0x01,")
	assert.NotContains(t, string(obj.Source), "file_1")
}

func TestGenerator_GenerateFilesystem_MissingHost(t *testing.T) {
	f := newFixture(t)
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Times(0)

	spec := domain.NewVfsImageSpec([]domain.PathMapping{
		{Guest: "/gems", Host: filepath.Join(t.TempDir(), "missing")},
	})

	_, err := f.gen.GenerateFilesystem(context.Background(), f.tc, f.dir, spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate object")
}

func TestGenerator_GeneratePresetArgs(t *testing.T) {
	f := newFixture(t)
	f.expectCompile(t)

	obj, err := f.gen.GeneratePresetArgs(context.Background(), f.tc, f.dir, "ruby.wasm", []string{"--disable-gems"})
	require.NoError(t, err)
	assert.Equal(t, "preset_args.o", obj.Name)
	assert.Contains(t, string(obj.Bytes), `"--disable-gems"`)

	// Intermediates stay in the work directory.
	assert.FileExists(t, filepath.Join(f.dir, "preset-args.c"))
	assert.FileExists(t, filepath.Join(f.dir, "preset-args.o"))
}

func TestGenerator_CompileFailure(t *testing.T) {
	f := newFixture(t)
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(errors.New("clang: error"))

	_, err := f.gen.GeneratePresetArgs(context.Background(), f.tc, f.dir, "ruby.wasm", []string{"-v"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clang: error")
}

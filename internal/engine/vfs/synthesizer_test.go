package vfs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rbwasm/internal/adapters/fs"
	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports/mocks"
	"go.trai.ch/rbwasm/internal/engine/vfs"
	"go.uber.org/mock/gomock"
)

func newSynthesizer(t *testing.T) (*vfs.Synthesizer, *[]string) {
	t.Helper()
	ctrl := gomock.NewController(t)
	lg := mocks.NewMockLogger(ctrl)

	var debug []string
	lg.EXPECT().Debug(gomock.Any()).Do(func(msg string) { debug = append(debug, msg) }).AnyTimes()
	return vfs.NewSynthesizer(fs.NewWalker(), lg), &debug
}

func TestSynthesizer_Expand(t *testing.T) {
	s, _ := newSynthesizer(t)

	tests := []struct {
		name string
		in   domain.PathMapping
		want domain.PathMapping
	}{
		{
			name: "host side prefixed",
			in:   domain.PathMapping{Guest: "/gems", Host: "@ruby_root/lib/gems"},
			want: domain.PathMapping{Guest: "/gems", Host: "/install/prefix/lib/gems"},
		},
		{
			name: "guest side prefixed",
			in:   domain.PathMapping{Guest: "@ruby_root/lib/app", Host: "/home/me/app"},
			want: domain.PathMapping{Guest: "/prefix/lib/app", Host: "/home/me/app"},
		},
		{
			name: "both sides",
			in:   domain.PathMapping{Guest: "@ruby_root", Host: "@ruby_root"},
			want: domain.PathMapping{Guest: "/prefix", Host: "/install/prefix"},
		},
		{
			name: "no prefix",
			in:   domain.PathMapping{Guest: "/app", Host: "./app"},
			want: domain.PathMapping{Guest: "/app", Host: "./app"},
		},
		{
			name: "prefix must be a whole component",
			in:   domain.PathMapping{Guest: "/x", Host: "@ruby_rootfs/lib"},
			want: domain.PathMapping{Guest: "/x", Host: "@ruby_rootfs/lib"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Expand(tt.in, "/install/prefix", "/prefix"))
		})
	}
}

func TestSynthesizer_BuiltinMappings_Exclusions(t *testing.T) {
	s, debug := newSynthesizer(t)

	root := t.TempDir()
	files := []string{
		"bin/ruby",
		"bin/irb",
		"lib/libruby-static.a",
		"lib/ruby/gems/3.0.0/cache/x.gem",
		"lib/ruby/gems/3.0.0/cache/x.gemspec",
		"lib/ruby/3.0.0/set.rb",
	}
	for _, f := range files {
		p := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, nil, 0o600))
	}

	mappings, err := s.BuiltinMappings(root)
	require.NoError(t, err)

	assert.Equal(t, []domain.PathMapping{
		{Guest: "@ruby_root/bin/irb", Host: filepath.Join(root, "bin/irb")},
		{Guest: "@ruby_root/lib/ruby/3.0.0/set.rb", Host: filepath.Join(root, "lib/ruby/3.0.0/set.rb")},
		{Guest: "@ruby_root/lib/ruby/gems/3.0.0/cache/x.gemspec", Host: filepath.Join(root, "lib/ruby/gems/3.0.0/cache/x.gemspec")},
	}, mappings)

	joined := strings.Join(*debug, "\n")
	assert.Contains(t, joined, "vfs: excluded "+filepath.Join(root, "bin/ruby"))
	assert.Contains(t, joined, "vfs: excluded "+filepath.Join(root, "lib/libruby-static.a"))
	assert.Contains(t, joined, "vfs: excluded "+filepath.Join(root, "lib/ruby/gems/3.0.0/cache/x.gem"))
}

func TestSynthesizer_BuiltinMappings_MissingRoot(t *testing.T) {
	s, _ := newSynthesizer(t)
	_, err := s.BuiltinMappings(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read dir")
}

func TestSynthesizer_Synthesize_KeepsOrderAndDuplicates(t *testing.T) {
	s, _ := newSynthesizer(t)

	raw := []domain.PathMapping{
		{Guest: "@ruby_root/lib/set.rb", Host: "/inst/embd-root/ruby/lib/set.rb"},
		{Guest: "/app", Host: "/src/app"},
		{Guest: "/app", Host: "/src/app2"},
	}
	spec := s.Synthesize(raw, "/inst/embd-root/ruby", "/ruby")

	assert.Equal(t, []domain.PathMapping{
		{Guest: "/ruby/lib/set.rb", Host: "/inst/embd-root/ruby/lib/set.rb"},
		{Guest: "/app", Host: "/src/app"},
		{Guest: "/app", Host: "/src/app2"},
	}, spec.Mappings())
}

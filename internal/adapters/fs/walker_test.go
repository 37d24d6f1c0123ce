package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rbwasm/internal/adapters/fs"
)

func TestWalker_WalkFiles(t *testing.T) {
	// root/
	//   bin/ruby
	//   lib/ruby/3.0.0/set.rb
	//   lib/ruby/3.0.0/json.rb -> set.rb
	//   lib/empty/
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bin"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib", "ruby", "3.0.0"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib", "empty"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bin", "ruby"), []byte("\x00asm"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib", "ruby", "3.0.0", "set.rb"), []byte("class Set; end"), 0o600))
	require.NoError(t, os.Symlink("set.rb", filepath.Join(root, "lib", "ruby", "3.0.0", "json.rb")))

	var got []string
	for path, err := range fs.NewWalker().WalkFiles(root) {
		require.NoError(t, err)
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		got = append(got, rel)
	}

	assert.Equal(t, []string{
		"bin/ruby",
		"lib/ruby/3.0.0/json.rb",
		"lib/ruby/3.0.0/set.rb",
	}, got)
}

func TestWalker_WalkFiles_MissingRoot(t *testing.T) {
	var errs []error
	for _, err := range fs.NewWalker().WalkFiles(filepath.Join(t.TempDir(), "missing")) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "failed to read dir")
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), nil, 0o600))
	}

	count := 0
	for range fs.NewWalker().WalkFiles(root) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestWalker_WalkFiles_FollowsDirectoryLinks(t *testing.T) {
	// root/
	//   lib/a.rb
	//   lib/linked -> gems/
	// gems/x.rb
	base := t.TempDir()
	root := filepath.Join(base, "root")
	gems := filepath.Join(base, "gems")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib"), 0o750))
	require.NoError(t, os.MkdirAll(gems, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib", "a.rb"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(gems, "x.rb"), nil, 0o600))
	require.NoError(t, os.Symlink(gems, filepath.Join(root, "lib", "linked")))

	var got []string
	for path, err := range fs.NewWalker().WalkFiles(root) {
		require.NoError(t, err)
		got = append(got, path)
	}

	assert.Equal(t, []string{
		filepath.Join(root, "lib", "a.rb"),
		filepath.Join(root, "lib", "linked", "x.rb"),
	}, got)
}

func TestWalker_WalkFiles_IgnoresLinkCycles(t *testing.T) {
	// root/
	//   lib/a.rb
	//   lib/self -> ..
	//   lib/other -> ../other/
	//   other/b.rb
	//   other/back -> ../lib/
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "other"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib", "a.rb"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "other", "b.rb"), nil, 0o600))
	require.NoError(t, os.Symlink("..", filepath.Join(root, "lib", "self")))
	require.NoError(t, os.Symlink("../other", filepath.Join(root, "lib", "other")))
	require.NoError(t, os.Symlink("../lib", filepath.Join(root, "other", "back")))

	var got []string
	for path, err := range fs.NewWalker().WalkFiles(root) {
		require.NoError(t, err)
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		got = append(got, rel)
	}

	assert.Equal(t, []string{
		"lib/a.rb",
		"lib/other/b.rb",
		"other/b.rb",
		"other/back/a.rb",
	}, got)
}

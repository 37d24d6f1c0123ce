package cas_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rbwasm/internal/adapters/cas"
	"go.trai.ch/rbwasm/internal/core/domain"
)

func TestStore_PutGetList(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.BuildRecordFileName)

	store, err := cas.NewStore(path)
	require.NoError(t, err)
	assert.Nil(t, store.Get("missing"))

	require.NoError(t, store.Put(domain.BuildRecord{Key: "ruby-b", Name: "ruby"}))
	require.NoError(t, store.Put(domain.BuildRecord{Key: "rb-wasm-support-a", Name: "rb-wasm-support"}))

	got := store.Get("ruby-b")
	require.NotNil(t, got)
	assert.Equal(t, "ruby", got.Name)

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, "rb-wasm-support-a", list[0].Key)
	assert.Equal(t, "ruby-b", list[1].Key)
}

func TestStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", domain.BuildRecordFileName)

	store1, err := cas.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store1.Put(domain.BuildRecord{Key: "ruby-1", Name: "ruby"}))

	store2, err := cas.NewStore(path)
	require.NoError(t, err)
	require.NotNil(t, store2.Get("ruby-1"))
}

func TestStore_CorruptIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.BuildRecordFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := cas.NewStore(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal build index")
}

func TestStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.BuildRecordFileName)
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	store, err := cas.NewStore(path)
	require.NoError(t, err)
	assert.Empty(t, store.List())
}

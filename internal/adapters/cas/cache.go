// Package cas implements the content-addressed build cache.
package cas

import (
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
)

var _ ports.BuildCache = (*Cache)(nil)

// Cache implements ports.BuildCache on top of the workspace layout.
type Cache struct {
	hasher ports.Hasher

	mu     sync.Mutex
	stores map[string]*Store
}

// NewCache creates a new Cache deriving keys with hasher.
func NewCache(hasher ports.Hasher) *Cache {
	return &Cache{
		hasher: hasher,
		stores: make(map[string]*Store),
	}
}

// Resolve returns build/<key> and cache/<key> for the input.
func (c *Cache) Resolve(layout domain.Layout, name string, input domain.BuildInput) (buildDir, installDir string) {
	key := c.hasher.CacheKey(name, input)
	return filepath.Join(layout.Build, key), filepath.Join(layout.Cache, key)
}

// Exists reports whether installDir is present.
func (c *Cache) Exists(installDir string) bool {
	_, err := os.Stat(installDir)
	return err == nil
}

// Record adds a completed build to the index of the workspace cache.
func (c *Cache) Record(layout domain.Layout, record domain.BuildRecord) error {
	store, err := c.store(layout)
	if err != nil {
		return err
	}
	return store.Put(record)
}

// Records lists the completed builds of the workspace cache.
func (c *Cache) Records(layout domain.Layout) ([]domain.BuildRecord, error) {
	store, err := c.store(layout)
	if err != nil {
		return nil, err
	}
	return store.List(), nil
}

func (c *Cache) store(layout domain.Layout) (*Store, error) {
	path := filepath.Join(layout.Cache, domain.BuildRecordFileName)

	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.stores[path]; ok {
		return s, nil
	}
	s, err := NewStore(path)
	if err != nil {
		return nil, err
	}
	c.stores[path] = s
	return s, nil
}

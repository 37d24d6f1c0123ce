package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rbwasm/internal/core/ports"
)

const (
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.cas.hasher"
	// CacheNodeID is the unique identifier for the build cache Graft node.
	CacheNodeID graft.ID = "adapter.cas.cache"
)

func init() {
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.BuildCache]{
		ID:        CacheNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{HasherNodeID},
		Run: func(ctx context.Context) (ports.BuildCache, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewCache(hasher), nil
		},
	})
}

package source

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rbwasm/internal/adapters/logger"
	"go.trai.ch/rbwasm/internal/adapters/shell"
	"go.trai.ch/rbwasm/internal/core/ports"
)

const (
	// FetcherNodeID is the unique identifier for the archive fetcher Graft node.
	FetcherNodeID graft.ID = "adapter.source.fetcher"
	// ResolverNodeID is the unique identifier for the source resolver Graft node.
	ResolverNodeID graft.ID = "adapter.source.resolver"
)

func init() {
	graft.Register(graft.Node[ports.ArchiveFetcher]{
		ID:        FetcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.ArchiveFetcher, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewFetcher(runner), nil
		},
	})

	graft.Register(graft.Node[ports.SourceResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{FetcherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.SourceResolver, error) {
			fetcher, err := graft.Dep[ports.ArchiveFetcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(fetcher, log), nil
		},
	})
}

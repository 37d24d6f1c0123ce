package toolchain

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rbwasm/internal/adapters/fs"
	"go.trai.ch/rbwasm/internal/adapters/logger"
	"go.trai.ch/rbwasm/internal/adapters/source"
	"go.trai.ch/rbwasm/internal/core/ports"
)

// NodeID is the unique identifier for the toolchain stager Graft node.
const NodeID graft.ID = "adapter.toolchain"

func init() {
	graft.Register(graft.Node[ports.ToolStager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{source.FetcherNodeID, fs.WalkerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ToolStager, error) {
			fetcher, err := graft.Dep[ports.ArchiveFetcher](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[ports.TreeWalker](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStager(fetcher, walker, log), nil
		},
	})
}

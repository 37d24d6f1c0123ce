package imagegen

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rbwasm/internal/adapters/cas"
	"go.trai.ch/rbwasm/internal/adapters/fs"
	"go.trai.ch/rbwasm/internal/adapters/logger"
	"go.trai.ch/rbwasm/internal/adapters/shell"
	"go.trai.ch/rbwasm/internal/core/ports"
)

// NodeID is the unique identifier for the object generator Graft node.
const NodeID graft.ID = "adapter.imagegen"

func init() {
	graft.Register(graft.Node[ports.ObjectGenerator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, fs.WalkerNodeID, cas.HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ObjectGenerator, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[ports.TreeWalker](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewGenerator(runner, walker, hasher, log), nil
		},
	})
}

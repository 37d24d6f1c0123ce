package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rbwasm/internal/core/ports"
)

// WalkerNodeID is the unique identifier for the tree walker Graft node.
const WalkerNodeID graft.ID = "adapter.fs.walker"

func init() {
	graft.Register(graft.Node[ports.TreeWalker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TreeWalker, error) {
			return NewWalker(), nil
		},
	})
}

package wasm

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rbwasm/internal/core/ports"
)

// NodeID is the unique identifier for the module verifier Graft node.
const NodeID graft.ID = "adapter.wasm.verifier"

func init() {
	graft.Register(graft.Node[ports.ModuleVerifier]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ModuleVerifier, error) {
			return NewVerifier(), nil
		},
	})
}

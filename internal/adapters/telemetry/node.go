package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rbwasm/internal/adapters/logger"
	"go.trai.ch/rbwasm/internal/adapters/telemetry/progrock"
	"go.trai.ch/rbwasm/internal/core/ports"
)

// TracerNodeID is the unique identifier for the tracer Graft node.
const TracerNodeID graft.ID = "adapter.telemetry.tracer"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{progrock.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			recorder, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewOTelTracer("rbwasm", recorder, NewLogBridge(log)), nil
		},
	})
}

package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rbwasm/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/rbwasm/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/rbwasm/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/rbwasm/internal/adapters/imagegen"           //nolint:depguard // Wired in app layer
	"go.trai.ch/rbwasm/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/rbwasm/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"go.trai.ch/rbwasm/internal/adapters/source"             //nolint:depguard // Wired in app layer
	"go.trai.ch/rbwasm/internal/adapters/telemetry"          //nolint:depguard // Wired in app layer
	"go.trai.ch/rbwasm/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/rbwasm/internal/adapters/toolchain"          //nolint:depguard // Wired in app layer
	"go.trai.ch/rbwasm/internal/adapters/wasm"               //nolint:depguard // Wired in app layer
	"go.trai.ch/rbwasm/internal/adapters/workspace"          //nolint:depguard // Wired in app layer
	"go.trai.ch/rbwasm/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App          *App
	Logger       ports.Logger
	ConfigLoader ports.ConfigLoader
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			workspace.NodeID,
			toolchain.NodeID,
			cas.CacheNodeID,
			source.ResolverNodeID,
			shell.NodeID,
			fs.WalkerNodeID,
			imagegen.NodeID,
			wasm.NodeID,
			telemetry.TracerNodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: runComponentsNode,
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	var (
		deps Deps
		err  error
	)

	if deps.Workspaces, err = graft.Dep[ports.WorkspaceFactory](ctx); err != nil {
		return nil, err
	}
	if deps.Stager, err = graft.Dep[ports.ToolStager](ctx); err != nil {
		return nil, err
	}
	if deps.Cache, err = graft.Dep[ports.BuildCache](ctx); err != nil {
		return nil, err
	}
	if deps.Resolver, err = graft.Dep[ports.SourceResolver](ctx); err != nil {
		return nil, err
	}
	if deps.Runner, err = graft.Dep[ports.CommandRunner](ctx); err != nil {
		return nil, err
	}
	if deps.Walker, err = graft.Dep[ports.TreeWalker](ctx); err != nil {
		return nil, err
	}
	if deps.Generator, err = graft.Dep[ports.ObjectGenerator](ctx); err != nil {
		return nil, err
	}
	if deps.Verifier, err = graft.Dep[ports.ModuleVerifier](ctx); err != nil {
		return nil, err
	}
	if deps.Tracer, err = graft.Dep[ports.Tracer](ctx); err != nil {
		return nil, err
	}
	if deps.Telemetry, err = graft.Dep[ports.Telemetry](ctx); err != nil {
		return nil, err
	}
	if deps.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
		return nil, err
	}

	return New(deps), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:          app,
		Logger:       log,
		ConfigLoader: loader,
	}, nil
}

package ports

import (
	"context"

	"go.trai.ch/rbwasm/internal/core/domain"
)

// ToolStager installs the cross compilation toolchain.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type ToolStager interface {
	// Install downloads missing tools into the workspace and locates the rest.
	Install(ctx context.Context, layout domain.Layout, opts domain.ToolchainOptions) (domain.Toolchain, error)
}

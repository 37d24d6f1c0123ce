package ports

import (
	"context"

	"go.trai.ch/rbwasm/internal/core/domain"
)

// ObjectGenerator produces the auxiliary objects linked into the executable.
//
//go:generate go run go.uber.org/mock/mockgen -source=imagegen.go -destination=mocks/mock_imagegen.go -package=mocks
type ObjectGenerator interface {
	// GenerateFilesystem compiles the image spec into an object holding the embedded files.
	// Sources and objects are written below workDir.
	GenerateFilesystem(ctx context.Context, tc domain.Toolchain, workDir string, spec domain.VfsImageSpec) (domain.Object, error)

	// GeneratePresetArgs compiles an object holding the default command line.
	GeneratePresetArgs(
		ctx context.Context, tc domain.Toolchain, workDir, argv0 string, args []string,
	) (domain.Object, error)
}

package ports

import "go.trai.ch/rbwasm/internal/core/domain"

// BuildCache maps build inputs to their build and install directories.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildCache interface {
	// Resolve returns the build and install directories for the input.
	// Nothing is created on disk.
	Resolve(layout domain.Layout, name string, input domain.BuildInput) (buildDir, installDir string)

	// Exists reports whether an install directory is present, which is what makes a cache hit.
	Exists(installDir string) bool

	// Record stores a completed build in the index of the workspace cache.
	Record(layout domain.Layout, record domain.BuildRecord) error

	// Records lists the completed builds of the workspace cache.
	Records(layout domain.Layout) ([]domain.BuildRecord, error)
}

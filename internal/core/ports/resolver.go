package ports

import (
	"context"

	"go.trai.ch/rbwasm/internal/core/domain"
)

// SourceResolver makes the source tree of a build available on disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type SourceResolver interface {
	// Resolve returns the source directory for src. Remote sources are fetched
	// into targetDir unless it already exists. Local sources are returned as is.
	Resolve(ctx context.Context, src domain.BuildSource, targetDir string) (string, error)
}

// ArchiveFetcher downloads a gzip compressed tarball and extracts it.
type ArchiveFetcher interface {
	// Fetch extracts the archive at url into targetDir, dropping the first strip
	// components of every member path. targetDir only appears once extraction
	// fully succeeded.
	Fetch(ctx context.Context, url, targetDir string, strip int) error
}

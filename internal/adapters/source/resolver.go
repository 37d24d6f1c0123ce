package source

import (
	"context"
	"fmt"
	"os"

	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceResolver = (*Resolver)(nil)

// Resolver implements ports.SourceResolver.
type Resolver struct {
	fetcher ports.ArchiveFetcher
	logger  ports.Logger
}

// NewResolver creates a new Resolver downloading remote sources with fetcher.
func NewResolver(fetcher ports.ArchiveFetcher, logger ports.Logger) *Resolver {
	return &Resolver{fetcher: fetcher, logger: logger}
}

// Resolve returns the directory holding the source tree of src.
func (r *Resolver) Resolve(ctx context.Context, src domain.BuildSource, targetDir string) (string, error) {
	switch src.Kind {
	case domain.SourceLocalDir:
		return src.Path, nil
	case domain.SourceRemote:
		if _, err := os.Stat(targetDir); err == nil {
			return targetDir, nil
		}

		r.logger.Info(fmt.Sprintf("downloading %s/%s source into %s", src.Owner, src.Repo, displayPath(targetDir)))
		if err := r.fetcher.Fetch(ctx, src.ArchiveURL(), targetDir, 1); err != nil {
			return "", zerr.With(err, "source", src.String())
		}
		return targetDir, nil
	default:
		return "", zerr.With(domain.ErrInvalidBuildSource, "source", src.String())
	}
}

package native

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
)

// Builder consults the content-addressed cache before running a native build.
type Builder struct {
	layout   domain.Layout
	cache    ports.BuildCache
	resolver ports.SourceResolver
	driver   *Driver
	logger   ports.Logger
	now      func() time.Time
}

// NewBuilder creates a new Builder for the workspace layout.
func NewBuilder(
	layout domain.Layout,
	cache ports.BuildCache,
	resolver ports.SourceResolver,
	driver *Driver,
	logger ports.Logger,
) *Builder {
	return &Builder{
		layout:   layout,
		cache:    cache,
		resolver: resolver,
		driver:   driver,
		logger:   logger,
		now:      time.Now,
	}
}

// Build returns the installed tree of recipe for input.
// A present install directory is a cache hit and runs no command at all.
func (b *Builder) Build(ctx context.Context, tc domain.Toolchain, recipe Recipe, input domain.BuildInput) (domain.BuildResult, error) {
	buildDir, installDir := b.cache.Resolve(b.layout, recipe.Name, input)
	result := domain.BuildResult{
		InstallDir: installDir,
		Prefix:     recipe.Prefix,
	}

	if b.cache.Exists(installDir) {
		b.logger.Info(recipe.Name + " build cache found. skip building again")
		result.Cached = true
		return result, nil
	}

	b.logger.Info("building " + recipe.Name)
	sourceDir, err := b.resolver.Resolve(ctx, input.Source, buildDir)
	if err != nil {
		return domain.BuildResult{}, err
	}

	if err := b.driver.Build(ctx, tc, recipe, input, sourceDir, buildDir, installDir); err != nil {
		// A partially installed tree must not turn into a cache hit.
		_ = os.RemoveAll(installDir)
		return domain.BuildResult{}, err
	}

	err = b.cache.Record(b.layout, domain.BuildRecord{
		Key:        filepath.Base(installDir),
		Name:       recipe.Name,
		Source:     input.Source.String(),
		InstallDir: installDir,
		Timestamp:  b.now(),
	})
	if err != nil {
		b.logger.Warn("failed to record build of " + recipe.Name + ": " + err.Error())
	}

	return result, nil
}
